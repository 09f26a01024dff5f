// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// =============================================================================
// DEBUG CARD
// =============================================================================

// DebugCard renders one titled section of the debug snapshot.
type DebugCard struct {
	Title string
	Body  string
	Width int

	theme *styles.Theme
}

// NewDebugCard creates a card for a prettified section body.
func NewDebugCard(theme *styles.Theme, title, body string) DebugCard {
	if theme == nil {
		theme = styles.Default
	}
	return DebugCard{
		Title: title,
		Body:  body,
		Width: 80,
		theme: theme,
	}
}

// Render draws the card. The body is highlighted as YAML, which the dense
// key: value form closely resembles.
func (c DebugCard) Render() string {
	body := Highlight(c.Body, "yaml", c.theme.ColorProfile)

	width := c.Width - 2
	if width < 20 {
		width = 20
	}

	content := c.theme.CardTitle.Render(c.Title) + "\n" + c.theme.CardBody.Render(body)
	return c.theme.Card.Width(width).Render(content)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// Highlight applies chroma highlighting matched to the terminal profile.
// The ASCII profile, and any lexer or formatter error, returns code as is.
func Highlight(code, lang string, profile termenv.Profile) string {
	formatterName := formatterFor(profile)
	if formatterName == "" || code == "" {
		return code
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// formatterFor picks the chroma terminal formatter for a color profile.
func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal"
	default:
		return ""
	}
}

// CardWidth fits a card into the terminal width.
func CardWidth(termWidth int) int {
	w := termWidth - 2
	if w > 120 {
		w = 120
	}
	return w
}

// JoinCards stacks rendered cards with one blank line between them.
func JoinCards(cards ...string) string {
	return strings.Join(cards, "\n\n")
}
