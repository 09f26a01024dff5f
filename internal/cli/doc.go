// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the rigrun command-line interface.
//
// Commands are built with cobra. Every command that reads application state
// opens an Env, which loads the configuration and opens the state database
// and conversation store.
//
// # Commands Overview
//
//	rigrun debug                 interactive debug page
//	rigrun debug show            print the snapshot (--json, --plain)
//	rigrun debug export          write <brand>_debug_<timestamp>.json (--dir, --stdout)
//	rigrun language              pick the preferred language
//	rigrun language list|set
//	rigrun settings              language and generation settings page
//	rigrun labs list|enable|disable
//	rigrun chats list
//	rigrun config init|show
//	rigrun version
//
// # JSON Output
//
// Commands that accept --json print a JSONResponse envelope to stdout.
package cli
