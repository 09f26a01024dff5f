// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SetPreferredLanguage(ctx, "fr-FR"))
	id, err := s.InstallID(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	lang, err := s.PreferredLanguage(ctx)
	require.NoError(t, err)
	require.Equal(t, "fr-FR", lang)

	again, err := s.InstallID(ctx)
	require.NoError(t, err)
	require.Equal(t, id, again)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	lang, err := s.PreferredLanguage(ctx)
	require.NoError(t, err)
	require.Empty(t, lang)

	_, ok, err := s.Preference(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetPreferredLanguage(ctx, "en-US"))
	require.NoError(t, s.SetPreferredLanguage(ctx, "es-MX"))
	lang, err = s.PreferredLanguage(ctx)
	require.NoError(t, err)
	require.Equal(t, "es-MX", lang)
}

func TestFloat(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	v, err := s.Float(ctx, PrefTemperature, 0.5)
	require.NoError(t, err)
	require.Equal(t, 0.5, v)

	require.NoError(t, s.SetFloat(ctx, PrefTemperature, 1.3))
	v, err = s.Float(ctx, PrefTemperature, 0.5)
	require.NoError(t, err)
	require.Equal(t, 1.3, v)

	require.NoError(t, s.SetPreference(ctx, PrefResponseTokens, "lots"))
	v, err = s.Float(ctx, PrefResponseTokens, 1024)
	require.NoError(t, err)
	require.Equal(t, 1024.0, v)
}

func TestLabs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	active, err := s.ActiveLabs(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	require.NoError(t, s.SetLab(ctx, "showCost", true))
	require.NoError(t, s.SetLab(ctx, "chatBarAlt", true))
	require.NoError(t, s.SetLab(ctx, "highPerformance", true))
	require.NoError(t, s.SetLab(ctx, "highPerformance", false))

	active, err = s.ActiveLabs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"chatBarAlt", "showCost"}, active)

	labs, err := s.Labs(ctx)
	require.NoError(t, err)
	require.Len(t, labs, len(KnownLabs))

	err = s.SetLab(ctx, "teleport", true)
	if !errors.Is(err, ErrUnknownLab) {
		t.Errorf("SetLab(unknown) error = %v, want ErrUnknownLab", err)
	}
}

func TestFolders(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	n, err := s.FolderCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	enabled, err := s.FoldersEnabled(ctx)
	require.NoError(t, err)
	require.False(t, enabled)

	work, err := s.CreateFolder(ctx, "Work")
	require.NoError(t, err)
	untitled, err := s.CreateFolder(ctx, "   ")
	require.NoError(t, err)
	require.Equal(t, "New Folder", untitled.Title)
	require.NotEqual(t, work.ID, untitled.ID)

	folders, err := s.Folders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	require.Equal(t, "Work", folders[0].Title)

	require.NoError(t, s.DeleteFolder(ctx, work.ID))
	err = s.DeleteFolder(ctx, work.ID)
	require.ErrorIs(t, err, ErrFolderNotFound)

	n, err = s.FolderCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, s.SetFoldersEnabled(ctx, true))
	enabled, err = s.FoldersEnabled(ctx)
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestSherpa(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sh, err := s.Sherpa(ctx)
	require.NoError(t, err)
	require.Equal(t, Sherpa{}, sh)

	for i := 1; i <= 3; i++ {
		n, err := s.IncrementUsage(ctx)
		require.NoError(t, err)
		require.Equal(t, i, n)
	}

	require.NoError(t, s.MarkNewsSeen(ctx, 12))
	require.NoError(t, s.MarkNewsSeen(ctx, 7))

	sh, err = s.Sherpa(ctx)
	require.NoError(t, err)
	require.Equal(t, Sherpa{LastSeenNewsVersion: 12, UsageCount: 3}, sh)
}
