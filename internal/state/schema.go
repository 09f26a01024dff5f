// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists small pieces of client state in SQLite: user
// preferences, labs flags, chat folders and the sherpa counters.
package state

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema is applied on every open; all statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Free-form user preferences (language, slider values, toggles)
CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
) WITHOUT ROWID;

-- Experimental feature flags
CREATE TABLE IF NOT EXISTS labs (
    name TEXT PRIMARY KEY,
    enabled INTEGER NOT NULL DEFAULT 0
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS folders (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- Onboarding counters
CREATE TABLE IF NOT EXISTS sherpa (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    last_seen_news INTEGER NOT NULL DEFAULT 0,
    usage_count INTEGER NOT NULL DEFAULT 0
);
`

// InitMetadata seeds rows that must always exist.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO sherpa (id, last_seen_news, usage_count) VALUES (1, 0, 0);
`
