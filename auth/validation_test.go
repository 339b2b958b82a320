package auth

import (
	"strings"
	"testing"

	"github.com/bloghq/auth-service/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegisterInput(t *testing.T) {
	valid := RegisterInput{Email: "a@x.com", Password: "password1"}
	assert.Nil(t, ValidateRegisterInput(valid))

	withRole := valid
	withRole.Role = users.RoleAdmin
	assert.Nil(t, ValidateRegisterInput(withRole))

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
	}{
		{"empty email", func(in *RegisterInput) { in.Email = "" }, "email is required"},
		{"whitespace email", func(in *RegisterInput) { in.Email = "   " }, "email is required"},
		{"no at sign", func(in *RegisterInput) { in.Email = "ax.com" }, "invalid email format"},
		{"too long email", func(in *RegisterInput) { in.Email = strings.Repeat("a", 50) + "@x.com" }, "less than 50"},
		{"empty password", func(in *RegisterInput) { in.Password = "" }, "password is required"},
		{"short password", func(in *RegisterInput) { in.Password = "seven77" }, "at least 8"},
		{"unknown role", func(in *RegisterInput) { in.Role = "owner" }, "role"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := ValidateRegisterInput(in)
			require.NotNil(t, err)
			assert.Equal(t, KindValidation, err.Kind)
			assert.Contains(t, err.Message, tc.message)
		})
	}
}

func TestValidateLoginInput(t *testing.T) {
	assert.Nil(t, ValidateLoginInput(LoginInput{Email: "a@x.com", Password: "x"}))

	err := ValidateLoginInput(LoginInput{Password: "x"})
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)

	err = ValidateLoginInput(LoginInput{Email: "a@x.com"})
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)
}
