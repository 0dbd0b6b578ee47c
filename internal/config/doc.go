// Package config provides environment configuration for the mvvm tools.
//
// Configuration is loaded from environment variables with sensible defaults.
// Command line flags of the tools override these values.
//
// Configuration Sections:
//   - Logging: Log level and output format
//   - Undo: Undo history limit of models built by the tools
//   - Document: Output indentation of saved documents
//   - Snapshots: Directory of the snapshot store
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	model := mvvm.NewSessionModel("GraphModel", mvvm.WithUndoLimit(cfg.Undo.Limit))
//
// Environment Variables:
//   - MVVM_LOG_LEVEL, MVVM_LOG_DEV
//   - MVVM_UNDO_LIMIT
//   - MVVM_INDENT
//   - MVVM_SNAPSHOT_DIR
package config
