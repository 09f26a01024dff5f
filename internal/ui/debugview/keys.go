// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debugview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the debug page bindings.
type KeyMap struct {
	Download key.Binding
	Copy     key.Binding
	Refresh  key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default debug page bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Download: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d", "download JSON"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy JSON"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpLine renders the short help for the page.
func (k KeyMap) helpLine(prompting bool) string {
	bindings := []key.Binding{k.Download, k.Copy, k.Refresh, k.Quit}
	if prompting {
		bindings = []key.Binding{k.Confirm, k.Cancel}
	}
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
