// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if cfg.Brand.Name != "rigrun" {
		t.Errorf("Brand.Name = %q, want %q", cfg.Brand.Name, "rigrun")
	}
	if cfg.Debug.IndentStrip != 2 || !cfg.Debug.StripQuotes || !cfg.Debug.StripTrailingComma {
		t.Errorf("unexpected debug defaults: %+v", cfg.Debug)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{name: "empty brand", mutate: func(c *Config) { c.Brand.Name = "  " }, field: "brand.name", wantErr: true},
		{name: "bad ollama scheme", mutate: func(c *Config) { c.Local.OllamaURL = "ftp://host" }, field: "local.ollama_url", wantErr: true},
		{name: "empty plantuml is fine", mutate: func(c *Config) { c.Render.PlantUMLServerURL = "" }},
		{name: "unknown imaging provider", mutate: func(c *Config) { c.Imaging.Provider = "dalle" }, field: "imaging.provider", wantErr: true},
		{name: "prodia provider", mutate: func(c *Config) { c.Imaging.Provider = "prodia" }},
		{name: "negative indent strip", mutate: func(c *Config) { c.Debug.IndentStrip = -1 }, field: "debug.indent_strip", wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, field: "logging.level", wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, field: "logging.format", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want ValidateErrors", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.field)
			}
		})
	}
}

func TestValidateErrors_Error(t *testing.T) {
	errs := ValidateErrors{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	if got := errs.Error(); got != "a: bad; b: worse" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLoadFromPath_TOMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[brand]
name = "big-agi"

[debug]
export_dir = "/tmp/exports"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	require.Equal(t, "big-agi", cfg.Brand.Name)
	require.Equal(t, "/tmp/exports", cfg.Debug.ExportDir)
	require.Equal(t, 2, cfg.Debug.IndentStrip)
	require.True(t, cfg.Debug.StripQuotes)
	require.Equal(t, path, cfg.Source)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"brand":{"name":"json-brand"}}`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "json-brand", cfg.Brand.Name)
	require.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[imaging]\nprovider = \"nope\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "imaging.provider")
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RIGRUN_DATA_DIR", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Empty(t, cfg.Source)
	require.Equal(t, "rigrun", cfg.Brand.Name)
}

func TestLoad_FindsHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".rigrun"), 0700))
	path := filepath.Join(home, ".rigrun", "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[brand]\nname = \"home\"\n"), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "home", cfg.Brand.Name)
	require.Equal(t, path, cfg.Source)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Telemetry.MeasurementID = "G-TEST"

	require.NoError(t, SaveTOML(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "# rigrun configuration file"))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "G-TEST", loaded.Telemetry.MeasurementID)
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"RIGRUN_OLLAMA_URL":   "http://gpu-box:11434",
		"RIGRUN_DATA_DIR":     "/var/lib/rigrun",
		"RIGRUN_EXPORT_DIR":   "/tmp/out",
		"RIGRUN_LOG_LEVEL":    "debug",
		"RIGRUN_PLANTUML_URL": "",
	}
	cfg := Default()
	cfg.ApplyEnvOverrides(func(k string) string { return env[k] })

	if cfg.Local.OllamaURL != "http://gpu-box:11434" {
		t.Errorf("OllamaURL = %q", cfg.Local.OllamaURL)
	}
	if cfg.Storage.DataDir != "/var/lib/rigrun" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Debug.ExportDir != "/tmp/out" {
		t.Errorf("ExportDir = %q", cfg.Debug.ExportDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Render.PlantUMLServerURL == "" {
		t.Error("empty env var must not clear PlantUMLServerURL")
	}
}

func TestCapabilities(t *testing.T) {
	env := map[string]string{
		"OPENROUTER_API_KEY": "sk-or",
		"ELEVENLABS_API_KEY": "  ",
	}
	cfg := Default()
	cfg.Voice.ElevenLabsKey = "client-side-only"

	caps := cfg.Capabilities(func(k string) string { return env[k] })

	require.True(t, caps.HasLlmOllama)
	require.True(t, caps.HasLlmOpenRouter)
	require.False(t, caps.HasVoiceElevenLabs, "blank env value and config key are not backend capabilities")
	require.False(t, caps.HasTelemetry)
	require.True(t, caps.HasPlantUML)
}

func TestDataPaths(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = "/data"

	state, err := cfg.StatePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/data", "state.db"), state)

	conv, err := cfg.ConversationsDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/data", "conversations"), conv)

	logPath, err := cfg.LogPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/data", "rigrun.log"), logPath)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "RIGRUN_DOTENV_PROBE"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=from-file\n"), 0600))

	loaded := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile)

	require.Equal(t, []string{envFile}, loaded)
	require.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	const key = "RIGRUN_DOTENV_KEEP"
	t.Setenv(key, "process")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=file\n"), 0600))

	LoadDotEnv(envFile)
	require.Equal(t, "process", os.Getenv(key))
}
