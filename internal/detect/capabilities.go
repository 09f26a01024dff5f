// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"strings"

	"github.com/jeranaias/rigrun-debug/internal/config"
)

// =============================================================================
// PRODUCT CAPABILITIES
// =============================================================================

// MicCapability reports whether speech input can work.
type MicCapability struct {
	MayWork  bool   `json:"mayWork"`
	Recorder string `json:"recorder,omitempty"`
}

// ElevenLabsCapability reports where an ElevenLabs key comes from.
type ElevenLabsCapability struct {
	MayWork                bool `json:"mayWork"`
	IsConfiguredServerSide bool `json:"isConfiguredServerSide"`
	IsConfiguredClientSide bool `json:"isConfiguredClientSide"`
}

// TextToImageCapability lists usable image providers.
type TextToImageCapability struct {
	MayWork   bool     `json:"mayWork"`
	Providers []string `json:"providers"`
}

// Capabilities is the capabilities block of the product section.
type Capabilities struct {
	Mic         MicCapability         `json:"mic"`
	ElevenLabs  ElevenLabsCapability  `json:"elevenLabs"`
	TextToImage TextToImageCapability `json:"textToImage"`
}

// recorders are audio capture tools, in preference order.
var recorders = map[string][]string{
	"linux":   {"arecord", "pw-record", "parecord", "rec", "ffmpeg"},
	"darwin":  {"rec", "ffmpeg"},
	"windows": {"ffmpeg", "sox"},
}

// Capabilities combines backend capability flags with local config.
func (p *Probe) Capabilities(cfg *config.Config) Capabilities {
	backend := cfg.Capabilities(p.Getenv)

	var caps Capabilities

	for _, bin := range recorders[p.GOOS] {
		if p.has(bin) {
			caps.Mic = MicCapability{MayWork: true, Recorder: bin}
			break
		}
	}

	client := strings.TrimSpace(cfg.Voice.ElevenLabsKey) != ""
	caps.ElevenLabs = ElevenLabsCapability{
		MayWork:                client || backend.HasVoiceElevenLabs,
		IsConfiguredServerSide: backend.HasVoiceElevenLabs,
		IsConfiguredClientSide: client,
	}

	providers := []string{}
	if backend.HasImagingOpenAI || cfg.Imaging.OpenAIKey != "" {
		providers = append(providers, "openai")
	}
	if backend.HasImagingProdia || cfg.Imaging.ProdiaKey != "" {
		providers = append(providers, "prodia")
	}
	caps.TextToImage = TextToImageCapability{
		MayWork:   len(providers) > 0,
		Providers: providers,
	}

	return caps
}
