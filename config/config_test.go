package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ACCESS_EXPIRY_MIN", "")
	t.Setenv("REFRESH_EXPIRY_DAYS", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("DATABASE_URL", "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, cfg.CORSDevOrigin, cfg.AllowedOrigin())
	assert.Contains(t, cfg.DSN(), "dbname="+cfg.DBName)
}

func TestLoadConfig_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_PROD_ORIGIN", "https://chat.example.com")
	t.Setenv("JWT_ACCESS_TOKEN", "a-secret")
	t.Setenv("JWT_REFRESH_TOKEN", "r-secret")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("TOKEN_DENYLIST", "true")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://chat.example.com", cfg.AllowedOrigin())
	assert.Equal(t, "a-secret", cfg.JWTAccessSecret)
	assert.Equal(t, "r-secret", cfg.JWTRefreshSecret)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.TokenDenylist)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("ACCESS_EXPIRY_MIN", "soon")
	t.Setenv("TOKEN_DENYLIST", "maybe")

	cfg := LoadConfig()

	assert.Equal(t, 15, cfg.AccessExpiryMin)
	assert.False(t, cfg.TokenDenylist)
}

func TestDSN_PrefersDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db:5432/chat"}
	assert.Equal(t, "postgres://u:p@db:5432/chat", cfg.DSN())
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	assert.Empty(t, LoadConfig().TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,172.16.0.0/12 ")
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, LoadConfig().TrustedProxies)
}
