// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the page-level bindings. List and slider keys live in
// their components.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("q/Esc", "quit"),
		),
	}
}

func (k KeyMap) helpLine(languageOnly bool) string {
	parts := []string{"up/down move", "Enter select"}
	if !languageOnly {
		parts = append(parts, "left/right adjust", k.Next.Help().Key+" "+k.Next.Help().Desc)
	}
	parts = append(parts, k.Quit.Help().Key+" "+k.Quit.Help().Desc)
	return strings.Join(parts, "  ")
}
