// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownLab is returned when toggling a flag that is not in KnownLabs.
	ErrUnknownLab = errors.New("unknown labs flag")

	// ErrFolderNotFound is returned when a folder ID does not exist.
	ErrFolderNotFound = errors.New("folder not found")
)

// =============================================================================
// PREFERENCE KEYS
// =============================================================================

const (
	PrefLanguage       = "ui.language"
	PrefFoldersEnabled = "folders.enabled"
	PrefTemperature    = "llm.temperature"
	PrefResponseTokens = "llm.response_tokens"
	metaInstallID      = "install_id"
)

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite-backed state database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the state database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// InstallID returns a stable random identifier, created on first use.
func (s *Store) InstallID(ctx context.Context) (string, error) {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO metadata (key, value) VALUES (?, ?)",
		metaInstallID, uuid.NewString()); err != nil {
		return "", fmt.Errorf("failed to create install id: %w", err)
	}
	var id string
	if err := s.db.QueryRowContext(ctx,
		"SELECT value FROM metadata WHERE key = ?", metaInstallID).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to read install id: %w", err)
	}
	return id, nil
}

// =============================================================================
// PREFERENCES
// =============================================================================

// Preference returns the stored value for key and whether it was set.
func (s *Store) Preference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

// SetPreference stores value under key.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

// PreferredLanguage returns the stored locale code, or "" if none was chosen.
func (s *Store) PreferredLanguage(ctx context.Context) (string, error) {
	v, _, err := s.Preference(ctx, PrefLanguage)
	return v, err
}

// SetPreferredLanguage stores the chosen locale code.
func (s *Store) SetPreferredLanguage(ctx context.Context, code string) error {
	return s.SetPreference(ctx, PrefLanguage, code)
}

// Float returns a numeric preference, or def when unset or unparsable.
func (s *Store) Float(ctx context.Context, key string, def float64) (float64, error) {
	v, ok, err := s.Preference(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	f, perr := strconv.ParseFloat(v, 64)
	if perr != nil {
		return def, nil
	}
	return f, nil
}

// SetFloat stores a numeric preference.
func (s *Store) SetFloat(ctx context.Context, key string, v float64) error {
	return s.SetPreference(ctx, key, strconv.FormatFloat(v, 'f', -1, 64))
}

// =============================================================================
// LABS
// =============================================================================

// Lab describes an experimental feature flag.
type Lab struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// KnownLabs lists the flags users may toggle, in display order.
var KnownLabs = []Lab{
	{Name: "attachPrompts", Description: "Suggest prompts for attached files"},
	{Name: "cameraDesktop", Description: "Allow camera capture on desktop"},
	{Name: "chatBarAlt", Description: "Alternative chat title bar"},
	{Name: "highPerformance", Description: "Trade memory for faster rendering"},
	{Name: "screenCapture", Description: "Attach screen captures to messages"},
	{Name: "showCost", Description: "Show per-message token cost"},
}

func knownLab(name string) bool {
	for _, l := range KnownLabs {
		if l.Name == name {
			return true
		}
	}
	return false
}

// Labs returns every known flag with its current state.
func (s *Store) Labs(ctx context.Context) ([]Lab, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, enabled FROM labs")
	if err != nil {
		return nil, fmt.Errorf("failed to read labs: %w", err)
	}
	defer rows.Close()

	enabled := make(map[string]bool)
	for rows.Next() {
		var name string
		var on int
		if err := rows.Scan(&name, &on); err != nil {
			return nil, fmt.Errorf("failed to scan lab: %w", err)
		}
		enabled[name] = on != 0
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	labs := make([]Lab, len(KnownLabs))
	for i, l := range KnownLabs {
		l.Enabled = enabled[l.Name]
		labs[i] = l
	}
	return labs, nil
}

// ActiveLabs returns the names of enabled flags, sorted.
func (s *Store) ActiveLabs(ctx context.Context) ([]string, error) {
	labs, err := s.Labs(ctx)
	if err != nil {
		return nil, err
	}
	var active []string
	for _, l := range labs {
		if l.Enabled {
			active = append(active, l.Name)
		}
	}
	sort.Strings(active)
	return active, nil
}

// SetLab enables or disables a known flag.
func (s *Store) SetLab(ctx context.Context, name string, enabled bool) error {
	if !knownLab(name) {
		return fmt.Errorf("%w: %s", ErrUnknownLab, name)
	}
	on := 0
	if enabled {
		on = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO labs (name, enabled) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET enabled = excluded.enabled`, name, on)
	if err != nil {
		return fmt.Errorf("failed to update lab %s: %w", name, err)
	}
	return nil
}

// =============================================================================
// FOLDERS
// =============================================================================

// Folder groups conversations in the chat sidebar.
type Folder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateFolder adds a folder with a fresh UUID.
func (s *Store) CreateFolder(ctx context.Context, title string) (Folder, error) {
	f := Folder{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if f.Title == "" {
		f.Title = "New Folder"
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO folders (id, title, created_at) VALUES (?, ?, ?)",
		f.ID, f.Title, f.CreatedAt.Unix())
	if err != nil {
		return Folder{}, fmt.Errorf("failed to create folder: %w", err)
	}
	return f, nil
}

// Folders lists folders oldest first.
func (s *Store) Folders(ctx context.Context) ([]Folder, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, created_at FROM folders ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		var created int64
		if err := rows.Scan(&f.ID, &f.Title, &created); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		f.CreatedAt = time.Unix(created, 0).UTC()
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// FolderCount returns the number of folders.
func (s *Store) FolderCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM folders").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count folders: %w", err)
	}
	return n, nil
}

// DeleteFolder removes a folder by ID.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM folders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	return nil
}

// FoldersEnabled reports whether the folder sidebar is on. Defaults to false.
func (s *Store) FoldersEnabled(ctx context.Context) (bool, error) {
	v, _, err := s.Preference(ctx, PrefFoldersEnabled)
	if err != nil {
		return false, err
	}
	return v == "1" || strings.EqualFold(v, "true"), nil
}

// SetFoldersEnabled turns the folder sidebar on or off.
func (s *Store) SetFoldersEnabled(ctx context.Context, enabled bool) error {
	return s.SetPreference(ctx, PrefFoldersEnabled, strconv.FormatBool(enabled))
}

// =============================================================================
// SHERPA COUNTERS
// =============================================================================

// Sherpa holds onboarding counters.
type Sherpa struct {
	LastSeenNewsVersion int `json:"lastSeenNewsVersion"`
	UsageCount          int `json:"usageCount"`
}

// Sherpa returns the onboarding counters.
func (s *Store) Sherpa(ctx context.Context) (Sherpa, error) {
	var sh Sherpa
	err := s.db.QueryRowContext(ctx,
		"SELECT last_seen_news, usage_count FROM sherpa WHERE id = 1").
		Scan(&sh.LastSeenNewsVersion, &sh.UsageCount)
	if err != nil {
		return Sherpa{}, fmt.Errorf("failed to read sherpa counters: %w", err)
	}
	return sh, nil
}

// IncrementUsage bumps the launch counter and returns the new value.
func (s *Store) IncrementUsage(ctx context.Context) (int, error) {
	if _, err := s.db.ExecContext(ctx, "UPDATE sherpa SET usage_count = usage_count + 1 WHERE id = 1"); err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	sh, err := s.Sherpa(ctx)
	return sh.UsageCount, err
}

// MarkNewsSeen records version as seen. The stored value never decreases.
func (s *Store) MarkNewsSeen(ctx context.Context, version int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE sherpa SET last_seen_news = MAX(last_seen_news, ?) WHERE id = 1", version)
	if err != nil {
		return fmt.Errorf("failed to mark news seen: %w", err)
	}
	return nil
}
