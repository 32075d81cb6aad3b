package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MUEBLES_DATABASE__HOST", "localhost")
	t.Setenv("MUEBLES_DATABASE__USER", "muebles")
	t.Setenv("MUEBLES_DATABASE__PASSWORD", "secret")
	t.Setenv("MUEBLES_DATABASE__NAME", "muebles")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredDatabaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Address())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.RateLimit.Enabled)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfigServerHostAndPort(t *testing.T) {
	setRequiredDatabaseEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Address())
}

func TestLoadConfigPrefixedOverridesServerVariables(t *testing.T) {
	setRequiredDatabaseEnv(t)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("MUEBLES_SERVER__PORT", "4000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
}

func TestLoadConfigNestedKeys(t *testing.T) {
	setRequiredDatabaseEnv(t)
	t.Setenv("MUEBLES_PRIMARY__ENV", "production")
	t.Setenv("MUEBLES_DATABASE__MAX_OPEN_CONNS", "25")
	t.Setenv("MUEBLES_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("MUEBLES_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("MUEBLES_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigMissingDatabase(t *testing.T) {
	t.Setenv("MUEBLES_DATABASE__HOST", "localhost")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigInvalidLogLevel(t *testing.T) {
	setRequiredDatabaseEnv(t)
	t.Setenv("MUEBLES_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestLoadConfigRateLimitNeedsRedis(t *testing.T) {
	setRequiredDatabaseEnv(t)
	t.Setenv("MUEBLES_RATE_LIMIT__ENABLED", "true")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("MUEBLES_REDIS__ADDRESS", "localhost:6379")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestObservabilityChecksEnabled(t *testing.T) {
	obs := DefaultObservabilityConfig()
	assert.True(t, obs.ChecksEnabled("database"))
	assert.False(t, obs.ChecksEnabled("queue"))

	obs.HealthChecks.Enabled = false
	assert.False(t, obs.ChecksEnabled("database"))
}

func TestGetLogLevelFallsBackPerEnvironment(t *testing.T) {
	obs := DefaultObservabilityConfig()
	obs.Logging.Level = ""

	obs.Environment = "production"
	assert.Equal(t, "info", obs.GetLogLevel())

	obs.Environment = "local"
	assert.Equal(t, "debug", obs.GetLogLevel())
}
