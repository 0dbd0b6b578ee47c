package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all tool configuration
type Config struct {
	Logging   LoggingConfig
	Undo      UndoConfig
	Document  DocumentConfig
	Snapshots SnapshotConfig
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level       string `envconfig:"MVVM_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"MVVM_LOG_DEV" default:"false"`
}

// UndoConfig holds undo settings; a limit of 0 keeps every command
type UndoConfig struct {
	Limit int `envconfig:"MVVM_UNDO_LIMIT" default:"100"`
}

// DocumentConfig holds document output settings
type DocumentConfig struct {
	Indent int `envconfig:"MVVM_INDENT" default:"2"`
}

// SnapshotConfig holds snapshot store settings
type SnapshotConfig struct {
	Dir string `envconfig:"MVVM_SNAPSHOT_DIR" default:".mvvm-snapshots"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration or returns defaults on error
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
		},
		Undo: UndoConfig{
			Limit: 100,
		},
		Document: DocumentConfig{
			Indent: 2,
		},
		Snapshots: SnapshotConfig{
			Dir: ".mvvm-snapshots",
		},
	}
}

// Validate checks that values are usable
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Undo.Limit < 0 {
		return fmt.Errorf("undo limit must not be negative, got %d", c.Undo.Limit)
	}
	if c.Document.Indent < 0 || c.Document.Indent > 8 {
		return fmt.Errorf("indent must be between 0 and 8, got %d", c.Document.Indent)
	}
	return nil
}
