// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect probes the machine rigrun runs on.
//
// It reports the client environment (platform, terminal, system language,
// clipboard and screen capture support) and the product capabilities that
// depend on it (speech recognition, ElevenLabs voice, text-to-image).
//
// Nothing here makes network calls; capability checks only look at
// configuration and binaries on PATH.
package detect
