package config

import (
	"strings"
	"time"

	"github.com/tierview/tierview/pkg/browse"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Store-specific defaults are handled by store implementations
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyServerDefaults(&cfg.Server)
	applyMetadataDefaults(&cfg.Metadata)
	applyContentDefaults(&cfg.Content)

	if len(cfg.Tiers) == 0 {
		cfg.Tiers = []string{"MEM"}
	}

	applyPreviewDefaults(&cfg.Preview)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyServerDefaults sets HTTP server defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":19999"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.WorkerWebPort == 0 {
		cfg.WorkerWebPort = 30000
	}
}

// applyMetadataDefaults sets metadata store defaults.
func applyMetadataDefaults(cfg *MetadataConfig) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}

	if cfg.Memory == nil {
		cfg.Memory = make(map[string]any)
	}
	if cfg.Badger == nil {
		cfg.Badger = make(map[string]any)
	}

	// Apply defaults for all store types (for config file generation)
	if _, ok := cfg.Badger["dir"]; !ok {
		cfg.Badger["dir"] = "/var/lib/tierview/metadata"
	}
}

// applyContentDefaults sets content store defaults.
func applyContentDefaults(cfg *ContentConfig) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}

	if cfg.Memory == nil {
		cfg.Memory = make(map[string]any)
	}
	if cfg.S3 == nil {
		cfg.S3 = make(map[string]any)
	}

	if _, ok := cfg.Memory["address"]; !ok {
		cfg.Memory["address"] = "localhost:29999"
	}
}

// applyPreviewDefaults sets preview defaults.
func applyPreviewDefaults(cfg *PreviewConfig) {
	if cfg.WindowBytes == 0 {
		cfg.WindowBytes = browse.DefaultPreviewBytes
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Metadata: MetadataConfig{
			Memory: make(map[string]any),
			Badger: make(map[string]any),
		},
		Content: ContentConfig{
			Memory: make(map[string]any),
			S3:     make(map[string]any),
		},
		Tiers: []string{"MEM", "SSD", "HDD"},
	}

	ApplyDefaults(cfg)
	return cfg
}
