// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-debug/internal/language"
)

func testOptions() []language.Option {
	return []language.Option{
		{Label: "English", Code: "en-US"},
		{Label: "Spanish (Spain)", Code: "es-ES"},
		{Label: "Spanish (Mexico)", Code: "es-MX"},
	}
}

func TestLanguageSelect_StartsOnCurrent(t *testing.T) {
	l := NewLanguageSelect(nil, testOptions(), "es-MX")
	require.Equal(t, 2, l.Cursor())

	l = NewLanguageSelect(nil, testOptions(), "fr-FR")
	require.Equal(t, 0, l.Cursor())
}

func TestLanguageSelect_Navigate(t *testing.T) {
	l := NewLanguageSelect(nil, testOptions(), "")

	require.True(t, l.HandleKey(keyMsg("up")))
	require.Equal(t, 0, l.Cursor())

	l.HandleKey(keyMsg("down"))
	l.HandleKey(keyMsg("j"))
	l.HandleKey(keyMsg("down"))
	require.Equal(t, 2, l.Cursor())

	l.HandleKey(keyMsg("g"))
	require.Equal(t, 0, l.Cursor())
	l.HandleKey(keyMsg("G"))
	require.Equal(t, 2, l.Cursor())

	require.False(t, l.HandleKey(keyMsg("x")))
}

func TestLanguageSelect_Choose(t *testing.T) {
	l := NewLanguageSelect(nil, testOptions(), "en-US")
	var chosen []string
	l.OnSelect = func(code string) error {
		chosen = append(chosen, code)
		return nil
	}

	l.HandleKey(keyMsg("down"))
	l.HandleKey(keyMsg("enter"))

	require.Equal(t, []string{"es-ES"}, chosen)
	require.Equal(t, "es-ES", l.Current)
}

func TestLanguageSelect_FailedChooseKeepsCurrent(t *testing.T) {
	l := NewLanguageSelect(nil, testOptions(), "en-US")
	l.OnSelect = func(string) error { return errors.New("read-only") }

	l.HandleKey(keyMsg("down"))
	require.True(t, l.HandleKey(keyMsg("enter")))

	require.Equal(t, "en-US", l.Current)
	for _, line := range strings.Split(l.View(), "\n") {
		if strings.Contains(line, "✓") && !strings.Contains(line, "English") {
			t.Errorf("View() marks an unsaved language:\n%s", line)
		}
	}
}

func TestLanguageSelect_Scrolls(t *testing.T) {
	l := NewLanguageSelect(nil, testOptions(), "")
	l.Height = 2

	l.HandleKey(keyMsg("end"))
	view := l.View()
	if strings.Contains(view, "English") {
		t.Errorf("View() should have scrolled past the first row:\n%s", view)
	}
	if !strings.Contains(view, "Spanish (Mexico)") {
		t.Errorf("View() missing highlighted row:\n%s", view)
	}
}

func TestLanguageSelect_ViewMarksCurrent(t *testing.T) {
	l := NewLanguageSelect(nil, testOptions(), "es-ES")
	lines := strings.Split(l.View(), "\n")
	require.Len(t, lines, 3)
	if !strings.Contains(lines[1], "✓") {
		t.Errorf("current row not marked: %q", lines[1])
	}
	if strings.Contains(lines[0], "✓") {
		t.Errorf("non-current row marked: %q", lines[0])
	}
}

func TestLanguageSelect_Empty(t *testing.T) {
	l := NewLanguageSelect(nil, nil, "")
	require.False(t, l.HandleKey(keyMsg("enter")))
	_, ok := l.Highlighted()
	require.False(t, ok)
	require.Contains(t, l.View(), "no languages")
}
