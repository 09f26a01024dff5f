// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigrun.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (RIGRUN_*), including values from .env files
//   - explicit path (--config)
//   - ~/.rigrun/config.toml
//   - ~/.rigrun/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	caps := cfg.Capabilities(os.Getenv)
//
// Watch reports changes to the config file or the state database so the
// debug page can flag a stale snapshot.
package config
