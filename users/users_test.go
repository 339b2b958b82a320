package users_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bloghq/auth-service/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := users.HashPassword("password1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))
}

func TestCheckPasswordHashRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)

	assert.True(t, users.CheckPasswordHash("correct horse battery staple", hash))

	mismatches := []string{
		"",
		"correct horse battery stapl",
		"correct horse battery staple ",
		"CORRECT HORSE BATTERY STAPLE",
		"hunter2",
	}
	for _, pw := range mismatches {
		assert.False(t, users.CheckPasswordHash(pw, hash), "password %q should not verify", pw)
	}
}

func TestCheckPasswordHashMalformedHash(t *testing.T) {
	assert.False(t, users.CheckPasswordHash("password1", "not-a-bcrypt-hash"))
}

func TestGenUsername(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		username, err := users.GenUsername()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(username, "user-"))
		assert.LessOrEqual(t, len(username), 20, "username must fit the column limit")

		_, dup := seen[username]
		assert.False(t, dup, "generated a duplicate username: %s", username)
		seen[username] = struct{}{}
	}
}

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role  users.Role
		valid bool
	}{
		{users.RoleUser, true},
		{users.RoleAdmin, true},
		{users.Role(""), false},
		{users.Role("superadmin"), false},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("role_%s", tc.role), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.role.Valid())
		})
	}
}
