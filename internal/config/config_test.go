package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "medicine-cabinet", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 90, cfg.Cabinet.WarningHorizonDays)
	assert.True(t, cfg.Cabinet.RequireOpeningDate)
	assert.Equal(t, float64(0), cfg.RateLimit.RPS)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "9090")
	t.Setenv("WARNING_HORIZON_DAYS", "30")
	t.Setenv("REQUIRE_OPENING_DATE", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr())
	assert.Equal(t, 30, cfg.Cabinet.WarningHorizonDays)
	assert.False(t, cfg.Cabinet.RequireOpeningDate)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoad_FromFile(t *testing.T) {
	content := `
env: test
http_server:
  port: "7070"
  write_timeout: 15s
log:
  level: debug
  format: json
cabinet:
  warning_horizon_days: 60
  seed_demo_household: demo-home
rate_limit:
  rps: 5
  burst: 10
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, ":7070", cfg.HTTP.Addr())
	assert.Equal(t, 15*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Cabinet.WarningHorizonDays)
	assert.Equal(t, "demo-home", cfg.Cabinet.SeedDemoHousehold)
	assert.Equal(t, float64(5), cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNegativeHorizon(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("WARNING_HORIZON_DAYS", "-1")

	_, err := Load()
	assert.Error(t, err)
}
