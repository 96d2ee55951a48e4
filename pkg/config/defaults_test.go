package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tierview/tierview/pkg/browse"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("EmptyConfigGetsAllDefaults", func(t *testing.T) {
		var cfg Config
		ApplyDefaults(&cfg)

		assert.Equal(t, "INFO", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.Equal(t, "stdout", cfg.Logging.Output)
		assert.Equal(t, ":19999", cfg.Server.ListenAddr)
		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 30000, cfg.Server.WorkerWebPort)
		assert.Equal(t, "memory", cfg.Metadata.Type)
		assert.Equal(t, "memory", cfg.Content.Type)
		assert.Equal(t, []string{"MEM"}, cfg.Tiers)
		assert.Equal(t, browse.DefaultPreviewBytes, cfg.Preview.WindowBytes)
	})

	t.Run("ExplicitValuesArePreserved", func(t *testing.T) {
		cfg := Config{
			Logging: LoggingConfig{Level: "warn", Format: "json", Output: "stderr"},
			Server:  ServerConfig{ListenAddr: ":8080", ShutdownTimeout: time.Second, WorkerWebPort: 1234},
			Tiers:   []string{"SSD"},
			Preview: PreviewConfig{WindowBytes: 16},
		}
		ApplyDefaults(&cfg)

		assert.Equal(t, "WARN", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, ":8080", cfg.Server.ListenAddr)
		assert.Equal(t, time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 1234, cfg.Server.WorkerWebPort)
		assert.Equal(t, []string{"SSD"}, cfg.Tiers)
		assert.Equal(t, 16, cfg.Preview.WindowBytes)
	})

	t.Run("LevelIsNormalizedToUppercase", func(t *testing.T) {
		cfg := Config{Logging: LoggingConfig{Level: "debug"}}
		ApplyDefaults(&cfg)
		assert.Equal(t, "DEBUG", cfg.Logging.Level)
	})

	t.Run("StoreSectionsAreInitialized", func(t *testing.T) {
		var cfg Config
		ApplyDefaults(&cfg)

		assert.NotNil(t, cfg.Metadata.Memory)
		assert.NotNil(t, cfg.Metadata.Badger)
		assert.NotNil(t, cfg.Content.Memory)
		assert.NotNil(t, cfg.Content.S3)
		assert.NotEmpty(t, cfg.Metadata.Badger["dir"])
		assert.NotEmpty(t, cfg.Content.Memory["address"])
	})
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.NoError(t, Validate(cfg), "default config must validate")
	assert.Equal(t, []string{"MEM", "SSD", "HDD"}, cfg.Tiers)
}
