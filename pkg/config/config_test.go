package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

		// An explicit path that does not exist is an error; the default
		// search path silently falls back to defaults instead.
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("LoadsFromFile", func(t *testing.T) {
		path := writeConfigFile(t, `
logging:
  level: debug
  format: json
server:
  listen_addr: ":8080"
  shutdown_timeout: 10s
  worker_web_port: 31000
metadata:
  type: memory
content:
  type: memory
tiers:
  - MEM
  - HDD
preview:
  window_bytes: 2048
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", cfg.Logging.Level, "level is normalized to uppercase")
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, ":8080", cfg.Server.ListenAddr)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 31000, cfg.Server.WorkerWebPort)
		assert.Equal(t, []string{"MEM", "HDD"}, cfg.Tiers)
		assert.Equal(t, 2048, cfg.Preview.WindowBytes)
	})

	t.Run("PartialFileGetsDefaults", func(t *testing.T) {
		path := writeConfigFile(t, `
metadata:
  type: memory
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "INFO", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.Equal(t, ":19999", cfg.Server.ListenAddr)
		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "memory", cfg.Content.Type)
		assert.NotEmpty(t, cfg.Tiers)
		assert.Greater(t, cfg.Preview.WindowBytes, 0)
	})

	t.Run("EnvironmentOverridesFile", func(t *testing.T) {
		path := writeConfigFile(t, `
logging:
  level: info
`)
		t.Setenv("TIERVIEW_LOGGING_LEVEL", "error")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "ERROR", cfg.Logging.Level)
	})

	t.Run("InvalidYAMLFails", func(t *testing.T) {
		path := writeConfigFile(t, "logging: [not a map")

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("InvalidValuesFailValidation", func(t *testing.T) {
		path := writeConfigFile(t, `
logging:
  level: verbose
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})
}
