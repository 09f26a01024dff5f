// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for rigrun.
//
// Each conversation is a JSON file named <uuid>.json under
// ~/.rigrun/conversations/ (or the configured data dir).
//
//	store, err := storage.NewStore(dir)
//	id, err := store.Save(&storage.Conversation{Messages: msgs})
//	n, err := store.Count()
package storage
