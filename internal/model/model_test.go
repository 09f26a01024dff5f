// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"

	"github.com/jeranaias/rigrun-debug/internal/config"
)

func noEnv(string) string { return "" }

func TestModelInfo_ContextString(t *testing.T) {
	tests := []struct {
		tokens int
		want   string
	}{
		{200000, "200K"},
		{1000000, "1M"},
		{512, "512"},
	}
	for _, tc := range tests {
		if got := (ModelInfo{MaxTokens: tc.tokens}).ContextString(); got != tc.want {
			t.Errorf("ContextString(%d) = %q, want %q", tc.tokens, got, tc.want)
		}
	}
}

func TestNewRegistry_LocalOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Local.OllamaModel = "llama3.1:8b"

	reg := NewRegistry(cfg, noEnv)

	if len(reg.Sources()) != 1 || reg.Sources()[0].ID != "ollama" {
		t.Fatalf("Sources() = %+v, want only ollama", reg.Sources())
	}
	m, ok := reg.Lookup("llama3.1:8b")
	if !ok {
		t.Fatal("configured local model missing")
	}
	if m.MaxTokens != 128000 {
		t.Errorf("MaxTokens = %d, want 128000", m.MaxTokens)
	}

	info := reg.DebugInfo()
	if info.ChatLLM != "llama3.1:8b" || info.FastLLM != "llama3.1:8b" {
		t.Errorf("ChatLLM/FastLLM = %q/%q", info.ChatLLM, info.FastLLM)
	}
	if len(info.LLMs) != 1 || info.LLMs[0] != "ollama/llama3.1:8b" {
		t.Errorf("LLMs = %v", info.LLMs)
	}
}

func TestNewRegistry_OpenRouterFromEnv(t *testing.T) {
	cfg := config.Default()
	env := func(k string) string {
		if k == "OPENROUTER_API_KEY" {
			return "sk"
		}
		return ""
	}

	reg := NewRegistry(cfg, env)
	info := reg.DebugInfo()

	if len(info.Sources) != 2 {
		t.Fatalf("Sources = %+v, want ollama and openrouter", info.Sources)
	}
	if info.Sources[1].ClientKey {
		t.Error("env key should not be reported as a client key")
	}
	if info.ChatLLM != cfg.Cloud.DefaultModel {
		t.Errorf("ChatLLM = %q, want %q", info.ChatLLM, cfg.Cloud.DefaultModel)
	}
	for _, id := range info.LLMs {
		if strings.Contains(id, "sk") && !strings.Contains(id, "/") {
			t.Errorf("debug info leaked a key: %q", id)
		}
	}
}

func TestNewRegistry_Empty(t *testing.T) {
	cfg := config.Default()
	cfg.Local.OllamaURL = ""

	info := NewRegistry(cfg, noEnv).DebugInfo()
	if info.Sources == nil || info.LLMs == nil {
		t.Error("empty registry should report empty, non-nil lists")
	}
	if info.ChatLLM != "" {
		t.Errorf("ChatLLM = %q, want empty", info.ChatLLM)
	}
}
