// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/rigrun-debug/internal/config"
)

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// ModelInfo contains detailed information about a model.
type ModelInfo struct {
	// ID is the model identifier used in API calls
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Source is the ID of the source that serves the model
	Source string `json:"source"`

	// CostPer1K is the cost per 1000 tokens in dollars (0 for local models)
	CostPer1K float64 `json:"cost_per_1k"`

	// MaxTokens is the maximum context window size
	MaxTokens int `json:"max_tokens"`
}

// ContextString returns a formatted context window string.
func (m ModelInfo) ContextString() string {
	switch {
	case m.MaxTokens >= 1000000:
		return fmt.Sprintf("%dM", m.MaxTokens/1000000)
	case m.MaxTokens >= 1000:
		return fmt.Sprintf("%dK", m.MaxTokens/1000)
	default:
		return fmt.Sprintf("%d", m.MaxTokens)
	}
}

// Source is a configured model provider.
type Source struct {
	ID     string `json:"id"`
	Vendor string `json:"vendor"`
	// ClientKey reports whether the user supplied their own API key.
	ClientKey bool `json:"clientKey"`
}

// =============================================================================
// CATALOG
// =============================================================================

// cloudCatalog lists the OpenRouter models offered when that source exists.
var cloudCatalog = []ModelInfo{
	{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", CostPer1K: 0.003, MaxTokens: 200000},
	{ID: "anthropic/claude-3-haiku", Name: "Claude 3 Haiku", CostPer1K: 0.00025, MaxTokens: 200000},
	{ID: "openai/gpt-4o", Name: "GPT-4o", CostPer1K: 0.0025, MaxTokens: 128000},
	{ID: "openai/gpt-4o-mini", Name: "GPT-4o Mini", CostPer1K: 0.00015, MaxTokens: 128000},
}

// localContext maps well-known Ollama model families to context sizes.
var localContext = map[string]int{
	"llama3":         8192,
	"llama3.1":       128000,
	"qwen2.5-coder":  32768,
	"codellama":      16384,
	"deepseek-coder": 16384,
	"mistral":        32768,
	"mixtral":        32768,
	"phi3":           4096,
	"gemma2":         8192,
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the set of sources and models available to the chat client.
type Registry struct {
	sources []Source
	models  []ModelInfo
	chatLLM string
	fastLLM string
}

// NewRegistry builds a registry from configuration. getenv supplies
// server-side API keys.
func NewRegistry(cfg *config.Config, getenv func(string) string) *Registry {
	r := &Registry{}
	caps := cfg.Capabilities(getenv)

	if cfg.Local.OllamaURL != "" {
		r.sources = append(r.sources, Source{ID: "ollama", Vendor: "ollama"})
		if m := cfg.Local.OllamaModel; m != "" {
			family, _, _ := strings.Cut(m, ":")
			r.models = append(r.models, ModelInfo{
				ID:        m,
				Name:      m,
				Source:    "ollama",
				MaxTokens: localContext[family],
			})
			r.fastLLM = m
		}
	}

	clientKey := cfg.Cloud.OpenRouterKey != ""
	if clientKey || caps.HasLlmOpenRouter {
		r.sources = append(r.sources, Source{ID: "openrouter", Vendor: "openrouter", ClientKey: clientKey})
		for _, m := range cloudCatalog {
			m.Source = "openrouter"
			r.models = append(r.models, m)
		}
		r.chatLLM = cfg.Cloud.DefaultModel
	}

	if r.chatLLM == "" {
		r.chatLLM = r.fastLLM
	}
	if r.fastLLM == "" {
		r.fastLLM = r.chatLLM
	}
	return r
}

// Sources returns the configured sources.
func (r *Registry) Sources() []Source {
	return append([]Source(nil), r.sources...)
}

// Models returns all models sorted by ID.
func (r *Registry) Models() []ModelInfo {
	out := append([]ModelInfo(nil), r.models...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup finds a model by ID.
func (r *Registry) Lookup(id string) (ModelInfo, bool) {
	for _, m := range r.models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// DebugInfo is the model section of the debug snapshot.
type DebugInfo struct {
	Sources []Source `json:"sources"`
	LLMs    []string `json:"llms"`
	ChatLLM string   `json:"chatLLM,omitempty"`
	FastLLM string   `json:"fastLLM,omitempty"`
}

// DebugInfo summarizes the registry without exposing keys.
func (r *Registry) DebugInfo() DebugInfo {
	info := DebugInfo{
		Sources: r.Sources(),
		LLMs:    []string{},
		ChatLLM: r.chatLLM,
		FastLLM: r.fastLLM,
	}
	if info.Sources == nil {
		info.Sources = []Source{}
	}
	for _, m := range r.Models() {
		info.LLMs = append(info.LLMs, m.Source+"/"+m.ID)
	}
	return info
}
