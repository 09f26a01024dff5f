// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-debug/internal/language"
	"github.com/jeranaias/rigrun-debug/internal/state"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func testOptions() []language.Option {
	return []language.Option{
		{Label: "English", Code: "en-US"},
		{Label: "Spanish (Spain)", Code: "es-ES"},
		{Label: "Spanish (Mexico)", Code: "es-MX"},
	}
}

func openStore(t *testing.T) *state.Store {
	t.Helper()
	st, err := state.Open(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestSettings_SelectLanguage(t *testing.T) {
	st := openStore(t)
	m := New(nil, Options{
		Selector: language.NewSelector(testOptions(), st, nil),
		Floats:   st,
	})

	m, cmd := send(t, m, keyDown, keyDown, keyEnter)
	require.Nil(t, cmd, "full settings page stays open")

	code, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "es-MX", code)
	require.Contains(t, m.View(), "Language set to es-MX")

	stored, err := st.PreferredLanguage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "es-MX", stored)
}

func TestSettings_StartsOnStoredLanguage(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SetPreferredLanguage(context.Background(), "es-ES"))

	m := New(nil, Options{Selector: language.NewSelector(testOptions(), st, nil)})
	require.Equal(t, 1, m.list.Cursor())
}

func TestSettings_FallsBackToSystemLanguage(t *testing.T) {
	st := openStore(t)
	m := New(nil, Options{
		Selector:       language.NewSelector(testOptions(), st, nil),
		SystemLanguage: "es-MX",
	})
	require.Equal(t, 2, m.list.Cursor())
}

func TestSettings_LanguageOnlyQuitsAfterSelect(t *testing.T) {
	st := openStore(t)
	m := New(nil, Options{
		Selector:     language.NewSelector(testOptions(), st, nil),
		LanguageOnly: true,
	})
	require.NotContains(t, m.View(), "Temperature")

	_, cmd := send(t, m, keyEnter)
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

type failingPrefs struct{}

func (failingPrefs) PreferredLanguage(context.Context) (string, error) { return "", nil }
func (failingPrefs) SetPreferredLanguage(context.Context, string) error {
	return errors.New("read-only")
}

func TestSettings_LanguageSaveFailure(t *testing.T) {
	m := New(nil, Options{
		Selector:     language.NewSelector(testOptions(), failingPrefs{}, nil),
		LanguageOnly: true,
	})

	m, cmd := send(t, m, keyEnter)
	require.Nil(t, cmd, "failed selection does not quit")
	_, ok := m.Selected()
	require.False(t, ok)
	require.Contains(t, m.View(), "Could not save language")
	require.NotContains(t, m.View(), "✓", "unsaved language is not marked current")
}

func TestSettings_SlidersPersist(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(nil, Options{
		Selector: language.NewSelector(testOptions(), st, nil),
		Floats:   st,
	})

	v, ok := m.Value(state.PrefTemperature)
	require.True(t, ok)
	require.Equal(t, 0.7, v)

	// Temperature: 0.7 -> 0.8
	m, _ = send(t, m, keyTab, keyRight)
	v, _ = m.Value(state.PrefTemperature)
	require.Equal(t, 0.8, v)

	stored, err := st.Float(ctx, state.PrefTemperature, 0)
	require.NoError(t, err)
	require.Equal(t, 0.8, stored)

	// Response tokens: 2048 -> 1792
	m, _ = send(t, m, keyTab, keyLeft)
	v, _ = m.Value(state.PrefResponseTokens)
	require.Equal(t, 1792.0, v)

	stored, err = st.Float(ctx, state.PrefResponseTokens, 0)
	require.NoError(t, err)
	require.Equal(t, 1792.0, stored)

	require.Contains(t, m.View(), "1792")
}

func TestSettings_LoadsStoredSliderValues(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SetFloat(context.Background(), state.PrefTemperature, 1.5))

	m := New(nil, Options{Floats: st})
	v, _ := m.Value(state.PrefTemperature)
	require.Equal(t, 1.5, v)
}

func TestSettings_SlidersDisabledWithoutStore(t *testing.T) {
	m := New(nil, Options{Selector: language.NewSelector(testOptions(), openStore(t), nil)})

	m, _ = send(t, m, keyTab, keyRight)
	v, _ := m.Value(state.PrefTemperature)
	require.Equal(t, 0.7, v)
}

func TestSettings_FocusWraps(t *testing.T) {
	m := New(nil, Options{})
	require.Equal(t, 0, m.focus)

	m, _ = send(t, m, keyTab, keyTab, keyTab)
	require.Equal(t, 0, m.focus)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 2, m.focus)
}

func TestSettings_Quit(t *testing.T) {
	m := New(nil, Options{})
	_, cmd := send(t, m, keyEsc)
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestSettings_View(t *testing.T) {
	m := New(nil, Options{Selector: language.NewSelector(testOptions(), openStore(t), nil)})
	view := m.View()
	for _, want := range []string{"Settings", "Language", "English", "Temperature", "Response tokens", "tokens"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
