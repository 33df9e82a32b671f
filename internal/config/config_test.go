package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))

	assert.Equal(t, "development", cfg.Environment.Name)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", "file:dev.db")
	t.Setenv("HTTP_PORT", "9090")

	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))

	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:dev.db", cfg.Database.URL)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}
