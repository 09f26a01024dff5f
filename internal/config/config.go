// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigrun-debug/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigrun configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Brand     BrandConfig     `toml:"brand" json:"brand"`
	Local     LocalConfig     `toml:"local" json:"local"`
	Cloud     CloudConfig     `toml:"cloud" json:"cloud"`
	Voice     VoiceConfig     `toml:"voice" json:"voice"`
	Imaging   ImagingConfig   `toml:"imaging" json:"imaging"`
	Telemetry TelemetryConfig `toml:"telemetry" json:"telemetry"`
	Render    RenderConfig    `toml:"render" json:"render"`
	Debug     DebugConfig     `toml:"debug" json:"debug"`
	Logging   LoggingConfig   `toml:"logging" json:"logging"`
	Storage   StorageConfig   `toml:"storage" json:"storage"`

	// Source is the file this config was read from, empty for defaults.
	Source string `toml:"-" json:"-"`
}

// BrandConfig names the product in titles and exported file names.
type BrandConfig struct {
	Name    string `toml:"name" json:"name"`
	Title   string `toml:"title" json:"title"`
	HomeURL string `toml:"home_url" json:"home_url"`
}

// LocalConfig contains local Ollama configuration.
type LocalConfig struct {
	OllamaURL   string `toml:"ollama_url" json:"ollama_url"`
	OllamaModel string `toml:"ollama_model" json:"ollama_model"`
}

// CloudConfig contains cloud provider (OpenRouter) configuration.
type CloudConfig struct {
	OpenRouterKey string `toml:"openrouter_key" json:"openrouter_key"`
	DefaultModel  string `toml:"default_model" json:"default_model"`
}

// VoiceConfig holds text-to-speech settings.
type VoiceConfig struct {
	ElevenLabsKey     string `toml:"elevenlabs_key" json:"elevenlabs_key"`
	ElevenLabsVoiceID string `toml:"elevenlabs_voice_id" json:"elevenlabs_voice_id"`
}

// ImagingConfig holds text-to-image settings.
type ImagingConfig struct {
	// Provider is "", "openai" or "prodia".
	Provider  string `toml:"provider" json:"provider"`
	OpenAIKey string `toml:"openai_key" json:"openai_key"`
	ProdiaKey string `toml:"prodia_key" json:"prodia_key"`
}

// TelemetryConfig holds the analytics measurement ID. Empty disables it.
type TelemetryConfig struct {
	MeasurementID string `toml:"measurement_id" json:"measurement_id"`
}

// RenderConfig holds external renderer endpoints.
type RenderConfig struct {
	PlantUMLServerURL string `toml:"plantuml_server_url" json:"plantuml_server_url"`
}

// DebugConfig controls the debug page and its export.
type DebugConfig struct {
	// ExportDir is where debug JSON files are written. Empty means the
	// current working directory.
	ExportDir string `toml:"export_dir" json:"export_dir"`

	// IndentStrip, StripQuotes and StripTrailingComma parameterize the
	// dense on-screen rendering of the snapshot.
	IndentStrip        int  `toml:"indent_strip" json:"indent_strip"`
	StripQuotes        bool `toml:"strip_quotes" json:"strip_quotes"`
	StripTrailingComma bool `toml:"strip_trailing_comma" json:"strip_trailing_comma"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	// File is the log file used while a TUI page is running. Empty means
	// <data dir>/rigrun.log.
	File string `toml:"file" json:"file"`
}

// StorageConfig locates persisted state.
type StorageConfig struct {
	// DataDir holds state.db and conversations/. Empty means ~/.rigrun.
	DataDir string `toml:"data_dir" json:"data_dir"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Brand: BrandConfig{
			Name:    "rigrun",
			Title:   "rigrun",
			HomeURL: "https://github.com/jeranaias/rigrun",
		},
		Local: LocalConfig{
			OllamaURL:   "http://127.0.0.1:11434",
			OllamaModel: "qwen2.5-coder:14b",
		},
		Cloud: CloudConfig{
			DefaultModel: "anthropic/claude-3.5-sonnet",
		},
		Render: RenderConfig{
			PlantUMLServerURL: "https://www.plantuml.com/plantuml/svg/",
		},
		Debug: DebugConfig{
			IndentStrip:        2,
			StripQuotes:        true,
			StripTrailingComma: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rigrun configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigrun"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir returns the directory holding state.db and conversations.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	return ConfigDir()
}

// StatePath returns the path of the SQLite state database.
func (c *Config) StatePath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

// ConversationsDir returns the conversation store directory.
func (c *Config) ConversationsDir() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "conversations"), nil
}

// LogPath returns the log file used while a TUI page runs.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rigrun.log"), nil
}

// ensureSecurePermissions tightens config files to 0600; they hold API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration. An explicit path must exist; otherwise the TOML
// and JSON default locations are tried before falling back to defaults.
// .env files and environment overrides are applied last.
func Load(explicitPath string) (*Config, error) {
	LoadDotEnv()

	if explicitPath != "" {
		return LoadFromPath(explicitPath)
	}

	candidates := make([]string, 0, 2)
	if p, err := ConfigPathTOML(); err == nil {
		candidates = append(candidates, p)
	}
	if p, err := ConfigPathJSON(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return LoadFromPath(p)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file with full validation.
// Files ending in .json are decoded as JSON, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.Source = path

	cfg.ApplyEnvOverrides(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# rigrun configuration file\n")
	buf.WriteString("# Generated by rigrun - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Brand.Name) == "" {
		errs = append(errs, ValidationError{Field: "brand.name", Message: "must not be empty"})
	}

	urls := []struct {
		field string
		value string
	}{
		{"brand.home_url", c.Brand.HomeURL},
		{"local.ollama_url", c.Local.OllamaURL},
		{"render.plantuml_server_url", c.Render.PlantUMLServerURL},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		parsed, err := url.Parse(u.value)
		if err != nil {
			errs = append(errs, ValidationError{Field: u.field, Message: fmt.Sprintf("invalid URL: %v", err)})
			continue
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errs = append(errs, ValidationError{Field: u.field, Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)})
		}
	}

	switch strings.ToLower(c.Imaging.Provider) {
	case "", "openai", "prodia":
	default:
		errs = append(errs, ValidationError{
			Field:   "imaging.provider",
			Message: fmt.Sprintf("invalid provider '%s', must be one of: openai, prodia", c.Imaging.Provider),
		})
	}

	if c.Debug.IndentStrip < 0 || c.Debug.IndentStrip > 16 {
		errs = append(errs, ValidationError{Field: "debug.indent_strip", Message: "must be between 0 and 16"})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level '%s'", c.Logging.Level)})
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, ValidationError{Field: "logging.format", Message: "must be console or json"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies RIGRUN_* environment variables.
func (c *Config) ApplyEnvOverrides(getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Local.OllamaURL, "RIGRUN_OLLAMA_URL")
	set(&c.Local.OllamaModel, "RIGRUN_MODEL")
	set(&c.Cloud.OpenRouterKey, "RIGRUN_OPENROUTER_KEY")
	set(&c.Voice.ElevenLabsKey, "RIGRUN_ELEVENLABS_KEY")
	set(&c.Imaging.OpenAIKey, "RIGRUN_OPENAI_KEY")
	set(&c.Imaging.ProdiaKey, "RIGRUN_PRODIA_KEY")
	set(&c.Telemetry.MeasurementID, "RIGRUN_MEASUREMENT_ID")
	set(&c.Render.PlantUMLServerURL, "RIGRUN_PLANTUML_URL")
	set(&c.Storage.DataDir, "RIGRUN_DATA_DIR")
	set(&c.Debug.ExportDir, "RIGRUN_EXPORT_DIR")
	set(&c.Logging.Level, "RIGRUN_LOG_LEVEL")
}
