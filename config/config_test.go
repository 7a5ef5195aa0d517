package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ORIGIN", "http://localhost:8080")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	require.NoError(t, cfg.Validate())

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModePassword, cfg.Auth.Mode)
	assert.True(t, cfg.Auth.EmailPasswordEnabled)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionRenewWithin)
	assert.Equal(t, "candidate", cfg.Auth.DefaultRole)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
}

func TestAppConfig_MissingOriginFailsFast(t *testing.T) {
	// APP_ORIGIN is required; parsing without it must error rather than
	// leaving an empty allow-list behind.
	var cfg AppConfig
	err := env.Parse(&cfg)
	assert.Error(t, err)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ORIGIN", "https://jobs.example.com")
	t.Setenv("DEV", "true")
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("AUTH_SESSION_LIFETIME", "72h")
	t.Setenv("AUTH_SESSION_RENEW_WITHIN", "6h")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.IsDev)
	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, 72*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 6*time.Hour, cfg.Auth.SessionRenewWithin)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{ShutdownTimeout: -1}
	h.Sanitize()
	assert.Equal(t, 10*time.Second, h.ShutdownTimeout)
}
