// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package debugview provides the debug page of the rigrun TUI.
//
// The page shows the Client, AGI and Backend sections of a debug.Snapshot as
// cards and offers a download button. Downloading opens a save prompt
// prefilled with the generated file name; Esc closes it without saving.
package debugview
