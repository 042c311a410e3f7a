package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "AUTH_JWT_SECRET", "AUTH_JWT_ISSUER", "AUTH_DISABLED",
		"CORS_ALLOWED_ORIGINS", "AGGREGATE_TIMEOUT_MS", "DISPLAY_LOCALE", "ENVIRONMENT", "SEED_DEMO_DATA",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.AggregateTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "en-IN", cfg.DisplayLocale)
	assert.Equal(t, "local", cfg.Environment)
	assert.True(t, cfg.SeedDemoData)
	assert.False(t, cfg.AuthDisabled)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("AGGREGATE_TIMEOUT_MS", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000,")
	t.Setenv("SEED_DEMO_DATA", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.AuthDisabled)
	assert.Equal(t, 250*time.Millisecond, cfg.AggregateTimeout)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadConfig_Validation(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig()
	require.ErrorContains(t, err, "AUTH_JWT_SECRET")

	t.Setenv("AUTH_JWT_SECRET", "secret")
	for _, raw := range []string{"0", "-5", "soon"} {
		t.Setenv("AGGREGATE_TIMEOUT_MS", raw)
		_, err := LoadConfig()
		require.ErrorContains(t, err, "AGGREGATE_TIMEOUT_MS")
	}
}
