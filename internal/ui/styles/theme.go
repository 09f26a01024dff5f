// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// PAGE STYLES
	// ==========================================================================

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style

	// ==========================================================================
	// CARD STYLES
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardBody  lipgloss.Style

	// ==========================================================================
	// BUTTON STYLES
	// ==========================================================================

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonSaved   lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	Label          lipgloss.Style
	Description    lipgloss.Style
	SliderFill     lipgloss.Style
	SliderTrack    lipgloss.Style
	SliderThumb    lipgloss.Style
	SliderValue    lipgloss.Style
	Disabled       lipgloss.Style
	Option         lipgloss.Style
	OptionSelected lipgloss.Style
	OptionCurrent  lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.CardBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Buttons: outlined neutral by default, soft success once saved
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 2).
		Width(30)

	t.ButtonFocused = t.Button.
		BorderForeground(Purple)

	t.ButtonSaved = t.Button.
		Foreground(Emerald).
		Background(EmeraldDeep).
		BorderForeground(Emerald)

	// Forms
	t.Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Description = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SliderFill = lipgloss.NewStyle().Foreground(Cyan)
	t.SliderTrack = lipgloss.NewStyle().Foreground(Overlay)
	t.SliderThumb = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.SliderValue = lipgloss.NewStyle().Foreground(Cyan)

	t.Disabled = lipgloss.NewStyle().
		Foreground(OverlayDim)

	t.Option = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.OptionSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Background(SelectionBg).
		Bold(true).
		PaddingLeft(2)

	t.OptionCurrent = lipgloss.NewStyle().
		Foreground(Emerald)

	// Status
	t.Success = lipgloss.NewStyle().Foreground(Emerald)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
}

// Default is the theme shared by components constructed without one.
var Default = NewTheme()
