// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/rigrun-debug/internal/language"
	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// =============================================================================
// LANGUAGE SELECT
// =============================================================================

// ListKeyMap defines list navigation bindings.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Choose key.Binding
}

// DefaultListKeyMap returns the default list bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("Enter", "select"),
		),
	}
}

// LanguageSelect is a scrolling list of language options. Choosing an entry
// calls OnSelect with its code; the selection itself is stored by the caller.
// Current only moves when OnSelect returns nil.
type LanguageSelect struct {
	Options  []language.Option
	Current  string
	OnSelect func(code string) error

	Height  int
	Focused bool
	Keys    ListKeyMap

	cursor int
	offset int
	theme  *styles.Theme
}

// NewLanguageSelect creates a list positioned on the current code, if any.
func NewLanguageSelect(theme *styles.Theme, options []language.Option, current string) *LanguageSelect {
	if theme == nil {
		theme = styles.Default
	}
	l := &LanguageSelect{
		Options: options,
		Current: current,
		Height:  10,
		Focused: true,
		Keys:    DefaultListKeyMap(),
		theme:   theme,
	}
	for i, opt := range options {
		if opt.Code == current {
			l.cursor = i
			break
		}
	}
	l.scroll()
	return l
}

// Cursor returns the highlighted index.
func (l *LanguageSelect) Cursor() int {
	return l.cursor
}

// Highlighted returns the option under the cursor.
func (l *LanguageSelect) Highlighted() (language.Option, bool) {
	if l.cursor < 0 || l.cursor >= len(l.Options) {
		return language.Option{}, false
	}
	return l.Options[l.cursor], true
}

// HandleKey moves the cursor or chooses the highlighted option. It reports
// whether the key was consumed.
func (l *LanguageSelect) HandleKey(msg tea.KeyMsg) bool {
	if len(l.Options) == 0 {
		return false
	}
	switch {
	case key.Matches(msg, l.Keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, l.Keys.Down):
		if l.cursor < len(l.Options)-1 {
			l.cursor++
		}
	case key.Matches(msg, l.Keys.Top):
		l.cursor = 0
	case key.Matches(msg, l.Keys.Bottom):
		l.cursor = len(l.Options) - 1
	case key.Matches(msg, l.Keys.Choose):
		opt := l.Options[l.cursor]
		if opt.Code == "" {
			return true
		}
		if l.OnSelect != nil {
			if err := l.OnSelect(opt.Code); err != nil {
				return true
			}
		}
		l.Current = opt.Code
	default:
		return false
	}
	l.scroll()
	return true
}

// scroll keeps the cursor inside the visible window.
func (l *LanguageSelect) scroll() {
	h := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+h {
		l.offset = l.cursor - h + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func (l *LanguageSelect) visibleRows() int {
	if l.Height <= 0 || l.Height > len(l.Options) {
		return len(l.Options)
	}
	return l.Height
}

// View renders the visible rows. The chosen language carries a check mark.
func (l *LanguageSelect) View() string {
	if len(l.Options) == 0 {
		return l.theme.Help.Render("  no languages available")
	}

	labelWidth := 0
	for _, opt := range l.Options {
		if w := runewidth.StringWidth(opt.Label); w > labelWidth {
			labelWidth = w
		}
	}

	end := l.offset + l.visibleRows()
	var b strings.Builder
	for i := l.offset; i < end; i++ {
		opt := l.Options[i]
		row := runewidth.FillRight(opt.Label, labelWidth) + "  " + l.theme.Help.Render(opt.Code)
		if opt.Code == l.Current {
			row += " " + l.theme.OptionCurrent.Render("✓")
		}
		if i == l.cursor && l.Focused {
			b.WriteString(l.theme.OptionSelected.Render(row))
		} else {
			b.WriteString(l.theme.Option.Render(row))
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
