// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debugview

import "strings"

// View renders the page.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render(m.opts.Title))
	b.WriteByte('\n')
	b.WriteString(m.theme.Subtitle.Render("Information about this installation. Download it and attach it to bug reports."))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteByte('\n')

	b.WriteString(m.buttonView())
	b.WriteByte('\n')

	if m.prompting {
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}

	b.WriteString(m.statusView())
	b.WriteByte('\n')
	b.WriteString(m.theme.Help.Render(m.keys.helpLine(m.prompting)))

	return b.String()
}

// buttonView renders the download button; its style flips once saved.
func (m Model) buttonView() string {
	if m.saved {
		return m.theme.ButtonSaved.Render("✓ Download debug JSON")
	}
	if m.prompting {
		return m.theme.ButtonFocused.Render("Download debug JSON")
	}
	return m.theme.Button.Render("Download debug JSON")
}

func (m Model) statusView() string {
	if m.stale {
		return m.theme.Warning.Render("Configuration changed. Press r to refresh.")
	}
	switch m.statusKind {
	case statusSuccess:
		return m.theme.Success.Render(m.status)
	case statusWarning:
		return m.theme.Warning.Render(m.status)
	default:
		return m.theme.Help.Render(m.status)
	}
}
