// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvFiles returns the .env files Load considers, in priority order.
func DotEnvFiles() []string {
	files := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	return files
}

// LoadDotEnv loads variables from the existing .env files. Variables already
// present in the process environment are never overwritten. Returns the files
// that were loaded.
func LoadDotEnv(files ...string) []string {
	if len(files) == 0 {
		files = DotEnvFiles()
	}
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			continue
		}
		loaded = append(loaded, f)
	}
	return loaded
}

// =============================================================================
// BACKEND CAPABILITIES
// =============================================================================

// Capabilities lists what the environment rigrun was launched in provides.
// Keys set in the process environment count as server-side configuration;
// keys only present in the config file are user (client-side) settings and
// are reported by the product capability probe instead.
type Capabilities struct {
	HasLlmOllama       bool `json:"hasLlmOllama"`
	HasLlmOpenRouter   bool `json:"hasLlmOpenRouter"`
	HasImagingOpenAI   bool `json:"hasImagingOpenAI"`
	HasImagingProdia   bool `json:"hasImagingProdia"`
	HasVoiceElevenLabs bool `json:"hasVoiceElevenLabs"`
	HasTelemetry       bool `json:"hasTelemetry"`
	HasPlantUML        bool `json:"hasPlantUML"`
}

// Capabilities derives backend capability flags from the config and getenv.
func (c *Config) Capabilities(getenv func(string) string) Capabilities {
	if getenv == nil {
		getenv = os.Getenv
	}
	has := func(keys ...string) bool {
		for _, k := range keys {
			if strings.TrimSpace(getenv(k)) != "" {
				return true
			}
		}
		return false
	}

	return Capabilities{
		HasLlmOllama:       c.Local.OllamaURL != "" || has("OLLAMA_HOST"),
		HasLlmOpenRouter:   has("OPENROUTER_API_KEY"),
		HasImagingOpenAI:   has("OPENAI_API_KEY"),
		HasImagingProdia:   has("PRODIA_API_KEY"),
		HasVoiceElevenLabs: has("ELEVENLABS_API_KEY"),
		HasTelemetry:       c.Telemetry.MeasurementID != "",
		HasPlantUML:        c.Render.PlantUMLServerURL != "",
	}
}

// HostName reports the machine name, or "" when it cannot be determined.
func HostName() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
