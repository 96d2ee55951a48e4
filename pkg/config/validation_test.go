package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return GetDefaultConfig()
}

func TestValidate(t *testing.T) {
	t.Run("DefaultConfigIsValid", func(t *testing.T) {
		assert.NoError(t, Validate(validConfig()))
	})

	t.Run("RejectsUnknownLogLevel", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Level = "TRACE"
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsUnknownLogFormat", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Format = "xml"
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsMissingListenAddr", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ListenAddr = ""
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsZeroShutdownTimeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ShutdownTimeout = 0
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsOutOfRangeWorkerWebPort", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.WorkerWebPort = 70000
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsUnknownMetadataType", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metadata.Type = "postgres"
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsUnknownContentType", func(t *testing.T) {
		cfg := validConfig()
		cfg.Content.Type = "gcs"
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsEmptyTierList", func(t *testing.T) {
		cfg := validConfig()
		cfg.Tiers = nil
		assert.Error(t, Validate(cfg))
	})

	t.Run("RejectsDuplicateTierAliases", func(t *testing.T) {
		cfg := validConfig()
		cfg.Tiers = []string{"MEM", "SSD", "MEM"}
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate tier alias")
	})

	t.Run("RejectsZeroPreviewWindow", func(t *testing.T) {
		cfg := validConfig()
		cfg.Preview.WindowBytes = 0
		assert.Error(t, Validate(cfg))
	})

	t.Run("BadgerRequiresDir", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metadata.Type = "badger"
		cfg.Metadata.Badger = map[string]any{}
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dir is required")
	})

	t.Run("BadgerInMemoryNeedsNoDir", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metadata.Type = "badger"
		cfg.Metadata.Badger = map[string]any{"in_memory": true}
		assert.NoError(t, Validate(cfg))
	})

	t.Run("S3RequiresBucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Content.Type = "s3"
		cfg.Content.S3 = map[string]any{"region": "us-east-1"}
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})
}
