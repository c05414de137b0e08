package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/metrics", cfg.Server.MetricsPath)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Scenario.Jitter)
	assert.Empty(t, cfg.Scenario.Path)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GLINETSIM_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("GLINETSIM_SCENARIO_JITTER", "false")
	t.Setenv("GLINETSIM_SCENARIO_SEED", "42")
	t.Setenv("GLINETSIM_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.False(t, cfg.Scenario.Jitter)
	assert.Equal(t, int64(42), cfg.Scenario.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsBadLevel(t *testing.T) {
	t.Setenv("GLINETSIM_LOG_LEVEL", "shout")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoad_RejectsBadAddr(t *testing.T) {
	t.Setenv("GLINETSIM_SERVER_ADDR", "not an address")

	_, err := Load()
	assert.Error(t, err)
}
