package config_test

import (
	"testing"
	"time"

	"github.com/bloghq/auth-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecrets(t *testing.T) {
	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_secret")
}

func TestLoadRequiresDistinctSecrets(t *testing.T) {
	t.Setenv("AUTH_ACCESS_SECRET", "same-secret")
	t.Setenv("AUTH_REFRESH_SECRET", "same-secret")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AUTH_ACCESS_SECRET", "access-secret")
	t.Setenv("AUTH_REFRESH_SECRET", "refresh-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("AUTH_REFRESH_TOKEN_EXPIRY", "72h")
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "access-secret", cfg.Auth.AccessSecret)
	assert.Equal(t, "refresh-secret", cfg.Auth.RefreshSecret)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenExpiry)
	assert.Equal(t, 72*time.Hour, cfg.Auth.RefreshTokenExpiry)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.True(t, cfg.IsProduction())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_ACCESS_SECRET", "access-secret")
	t.Setenv("AUTH_REFRESH_SECRET", "refresh-secret")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenExpiry)
	assert.Equal(t, "refreshToken", cfg.Auth.CookieName)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.Auth.AdminAllowlist)
}
