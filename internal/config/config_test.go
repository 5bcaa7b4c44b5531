package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Store config
	assert.Equal(t, "gamedock.db", cfg.Store.Path)

	// Library config
	assert.Equal(t, AfterLaunchNothing, cfg.Library.AfterLaunch)
	assert.False(t, cfg.Library.FullscreenMode)
	assert.Equal(t, 10, cfg.Library.RecentGamesCount)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"DB_PATH":            "/tmp/library.db",
		"AFTER_LAUNCH":       "minimize",
		"FULLSCREEN_MODE":    "true",
		"RECENT_GAMES_COUNT": "5",
		"OPERATION_TIMEOUT":  "30s",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "/tmp/library.db", cfg.Store.Path)
	assert.Equal(t, AfterLaunchMinimize, cfg.Library.AfterLaunch)
	assert.True(t, cfg.Library.FullscreenMode)
	assert.Equal(t, 5, cfg.Library.RecentGamesCount)
	assert.Equal(t, 30*time.Second, cfg.Library.OperationTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("PORT", "3000")
	require.NoError(t, err)
	defer os.Unsetenv("PORT")

	err = os.Setenv("LOG_LEVEL", "warn")
	require.NoError(t, err)
	defer os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "gamedock.db", cfg.Store.Path)
}
