// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model describes the LLM sources and models rigrun can talk to.
//
// The registry is derived from configuration only; it never contacts a
// provider.
//
//	reg := model.NewRegistry(cfg, os.Getenv)
//	info := reg.DebugInfo()
package model
