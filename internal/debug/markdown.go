// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debug

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders the snapshot as a markdown document with one fenced
// block per section.
func (s Snapshot) Markdown(title string, opts PrettyOptions) string {
	var sb strings.Builder
	sb.WriteString("# " + title + "\n")
	for _, sec := range s.Sections() {
		sb.WriteString("\n## " + sec.Title + "\n\n")
		sb.WriteString("```yaml\n")
		sb.WriteString(sec.Render(opts))
		sb.WriteString("\n```\n")
	}
	return sb.String()
}

// RenderTerminal renders the snapshot markdown for a terminal of the given
// width. style is a glamour style name; empty picks one from the terminal
// background.
func (s Snapshot) RenderTerminal(title string, opts PrettyOptions, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(s.Markdown(title, opts))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
