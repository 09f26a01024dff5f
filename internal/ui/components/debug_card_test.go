// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestHighlight_ASCIIPassesThrough(t *testing.T) {
	code := "a: 1\nb: two"
	if got := Highlight(code, "yaml", termenv.Ascii); got != code {
		t.Errorf("Highlight(ascii) = %q, want %q", got, code)
	}
}

func TestHighlight_ColorKeepsText(t *testing.T) {
	code := "name: rigrun"
	got := Highlight(code, "yaml", termenv.ANSI256)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Highlight(ansi256) has no escape codes: %q", got)
	}
	if !strings.Contains(got, "rigrun") {
		t.Errorf("Highlight(ansi256) lost text: %q", got)
	}
}

func TestFormatterFor(t *testing.T) {
	tests := []struct {
		profile termenv.Profile
		want    string
	}{
		{termenv.TrueColor, "terminal16m"},
		{termenv.ANSI256, "terminal256"},
		{termenv.ANSI, "terminal"},
		{termenv.Ascii, ""},
	}
	for _, tc := range tests {
		if got := formatterFor(tc.profile); got != tc.want {
			t.Errorf("formatterFor(%v) = %q, want %q", tc.profile, got, tc.want)
		}
	}
}

func TestDebugCard_Render(t *testing.T) {
	card := NewDebugCard(nil, "Client", "isTTY: true\ncolorProfile: ascii")
	card.Width = 60
	out := card.Render()

	for _, want := range []string{"Client", "isTTY", "colorProfile"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestCardWidth(t *testing.T) {
	if got := CardWidth(80); got != 78 {
		t.Errorf("CardWidth(80) = %d, want 78", got)
	}
	if got := CardWidth(300); got != 120 {
		t.Errorf("CardWidth(300) = %d, want 120", got)
	}
}
