// Package config provides configuration loading and management for lawchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.lawchat/config.toml
//   - ~/.lawchat/config.json
//   - Built-in defaults
//
// Environment overrides use the LAWCHAT_ prefix and win over file values.
// A Watcher can re-load the file on change so a running client picks up
// edits without a restart.
package config
