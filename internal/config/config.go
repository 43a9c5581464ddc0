// Package config provides configuration loading and management for lawchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kiransrisai/Legal-chatbot/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete lawchat configuration.
type Config struct {
	// Backend connection settings
	Backend BackendConfig `toml:"backend" json:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Speech narration configuration
	Speech SpeechConfig `toml:"speech" json:"speech"`

	// Local turn archive configuration
	Archive ArchiveConfig `toml:"archive" json:"archive"`
}

// BackendConfig contains backend connection configuration.
type BackendConfig struct {
	// URL is the chat backend base URL
	URL string `toml:"url" json:"url"`
	// TimeoutSecs is the timeout for JSON requests in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// UploadTimeoutSecs is the timeout for multipart uploads in seconds
	UploadTimeoutSecs int `toml:"upload_timeout_secs" json:"upload_timeout_secs"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode uses a more compact layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowTimestamps displays message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// SpeechConfig contains speech narration configuration.
type SpeechConfig struct {
	// Enabled controls whether the read-aloud feature is offered
	Enabled bool `toml:"enabled" json:"enabled"`
}

// ArchiveConfig contains the local turn archive configuration.
type ArchiveConfig struct {
	// Enabled controls whether completed turns are recorded locally
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the archive database path (empty = ~/.lawchat/archive.db)
	Path string `toml:"path" json:"path"`
	// RetentionDays prunes turns older than this many days (0 = keep forever)
	RetentionDays int `toml:"retention_days" json:"retention_days"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:               "http://127.0.0.1:8000",
			TimeoutSecs:       60,
			UploadTimeoutSecs: 120,
		},
		UI: UIConfig{
			Theme:          "dark",
			CompactMode:    false,
			ShowTimestamps: false,
		},
		Speech: SpeechConfig{
			Enabled: true,
		},
		Archive: ArchiveConfig{
			Enabled:       true,
			RetentionDays: 0,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the lawchat configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".lawchat"), nil
}

// PathTOML returns the path to the TOML config file.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path to the JSON config file.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s). Tries TOML first, then
// JSON, and falls back to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	if path, err := PathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	if path, err := PathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with defaults,
// environment overrides, and validation applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config: %w", err)
		}
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults. A zero timeout in
// the file means "use the default", not "no timeout".
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Backend.UploadTimeoutSecs == 0 {
		c.Backend.UploadTimeoutSecs = defaults.Backend.UploadTimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies LAWCHAT_* environment variables over the loaded
// values. Unparseable values are ignored rather than fatal.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LAWCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("LAWCHAT_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Backend.TimeoutSecs = n
		}
	}
	if v := os.Getenv("LAWCHAT_UPLOAD_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Backend.UploadTimeoutSecs = n
		}
	}
	if v := os.Getenv("LAWCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("LAWCHAT_SPEECH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Speech.Enabled = b
		}
	}
	if v := os.Getenv("LAWCHAT_ARCHIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Archive.Enabled = b
		}
	}
	if v := os.Getenv("LAWCHAT_ARCHIVE_PATH"); v != "" {
		c.Archive.Path = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("not a valid URL: %q", c.Backend.URL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
		})
	}

	if c.Backend.TimeoutSecs < 1 || c.Backend.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.Backend.TimeoutSecs),
		})
	}
	if c.Backend.UploadTimeoutSecs < 1 || c.Backend.UploadTimeoutSecs > 1800 {
		errs = append(errs, ValidationError{
			Field:   "backend.upload_timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 1800, got %d", c.Backend.UploadTimeoutSecs),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be one of dark, light, auto, got %q", c.UI.Theme),
		})
	}

	if c.Archive.RetentionDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "archive.retention_days",
			Message: fmt.Sprintf("must not be negative, got %d", c.Archive.RetentionDays),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# lawchat configuration file")
	fmt.Fprintln(file, "# Generated by lawchat - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// DERIVED PATHS
// =============================================================================

// ArchivePath resolves the archive database path, honoring the configured
// override.
func (c *Config) ArchivePath() (string, error) {
	if c.Archive.Path != "" {
		return c.Archive.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archive.db"), nil
}
