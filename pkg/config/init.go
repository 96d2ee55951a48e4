package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileTemplate mirrors Config with yaml tags so the generated file uses
// the same key names viper reads back.
type configFileTemplate struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Server struct {
		// ShutdownTimeout is written as a duration string ("30s") so the
		// generated file stays human-editable.
		ListenAddr      string `yaml:"listen_addr"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
		WorkerWebPort   int    `yaml:"worker_web_port"`
	} `yaml:"server"`
	Metadata struct {
		Type   string         `yaml:"type"`
		Badger map[string]any `yaml:"badger,omitempty"`
	} `yaml:"metadata"`
	Content struct {
		Type   string         `yaml:"type"`
		Memory map[string]any `yaml:"memory,omitempty"`
		S3     map[string]any `yaml:"s3,omitempty"`
	} `yaml:"content"`
	Tiers   []string `yaml:"tiers"`
	Preview struct {
		WindowBytes int `yaml:"window_bytes"`
	} `yaml:"preview"`
}

// WriteDefaultConfig writes a fully-populated default configuration file to
// path, creating parent directories as needed.
//
// Returns an error if the file already exists; callers that want to
// overwrite should remove the file first.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := GetDefaultConfig()

	var tmpl configFileTemplate
	tmpl.Logging.Level = cfg.Logging.Level
	tmpl.Logging.Format = cfg.Logging.Format
	tmpl.Logging.Output = cfg.Logging.Output
	tmpl.Server.ListenAddr = cfg.Server.ListenAddr
	tmpl.Server.ShutdownTimeout = cfg.Server.ShutdownTimeout.String()
	tmpl.Server.WorkerWebPort = cfg.Server.WorkerWebPort
	tmpl.Metadata.Type = cfg.Metadata.Type
	tmpl.Metadata.Badger = cfg.Metadata.Badger
	tmpl.Content.Type = cfg.Content.Type
	tmpl.Content.Memory = cfg.Content.Memory
	tmpl.Content.S3 = cfg.Content.S3
	tmpl.Tiers = cfg.Tiers
	tmpl.Preview.WindowBytes = cfg.Preview.WindowBytes

	data, err := yaml.Marshal(&tmpl)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
