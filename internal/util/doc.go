// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across rigrun packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - WriteFileExclusive: Atomic write that never replaces an existing file
//
// String Utilities:
//   - TruncateWidth, PadRight, StringWidth: display-width aware layout
//   - DropRunes: rune-safe prefix removal
//   - SanitizeFilename: portable file names
package util
