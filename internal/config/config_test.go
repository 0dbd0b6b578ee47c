package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 100, cfg.Undo.Limit)
	assert.Equal(t, 2, cfg.Document.Indent)
	assert.Equal(t, ".mvvm-snapshots", cfg.Snapshots.Dir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"MVVM_LOG_LEVEL":    "debug",
		"MVVM_LOG_DEV":      "true",
		"MVVM_UNDO_LIMIT":   "0",
		"MVVM_INDENT":       "4",
		"MVVM_SNAPSHOT_DIR": "/tmp/snapshots",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 0, cfg.Undo.Limit)
	assert.Equal(t, 4, cfg.Document.Indent)
	assert.Equal(t, "/tmp/snapshots", cfg.Snapshots.Dir)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("MVVM_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Undo.Limit)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad level", "MVVM_LOG_LEVEL", "loud"},
		{"negative limit", "MVVM_UNDO_LIMIT", "-1"},
		{"huge indent", "MVVM_INDENT", "20"},
		{"not a number", "MVVM_INDENT", "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}
