// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// =============================================================================
// SLIDER
// =============================================================================

// ValueLabelDisplay controls when the numeric value is printed next to the
// track.
type ValueLabelDisplay int

const (
	// ValueLabelAuto shows the value while the slider is focused.
	ValueLabelAuto ValueLabelDisplay = iota
	// ValueLabelOn always shows the value.
	ValueLabelOn
	// ValueLabelOff never shows the value.
	ValueLabelOff
)

// String returns the display mode name.
func (d ValueLabelDisplay) String() string {
	switch d {
	case ValueLabelOn:
		return "on"
	case ValueLabelOff:
		return "off"
	default:
		return "auto"
	}
}

// SliderKeyMap defines the slider key bindings.
type SliderKeyMap struct {
	Decrease     key.Binding
	Increase     key.Binding
	DecreaseMore key.Binding
	IncreaseMore key.Binding
	Min          key.Binding
	Max          key.Binding
}

// DefaultSliderKeyMap returns the default slider bindings.
func DefaultSliderKeyMap() SliderKeyMap {
	return SliderKeyMap{
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "increase"),
		),
		DecreaseMore: key.NewBinding(
			key.WithKeys("pgdown", "H"),
			key.WithHelp("PgDn/H", "decrease x10"),
		),
		IncreaseMore: key.NewBinding(
			key.WithKeys("pgup", "L"),
			key.WithHelp("PgUp/L", "increase x10"),
		),
		Min: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "minimum"),
		),
		Max: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "maximum"),
		),
	}
}

// Slider is a labeled numeric range control. It is controlled: the parent
// owns the value, passes it in through Value and receives proposed values
// through OnChange. The slider never mutates Value itself.
type Slider struct {
	Title       string
	Description string

	Min          float64
	Max          float64
	Step         float64
	DefaultValue float64

	// Value is the controlled value; nil displays DefaultValue.
	Value    *float64
	OnChange func(value float64)

	Disabled     bool
	Focused      bool
	ValueLabel   ValueLabelDisplay
	EndAdornment string

	// Format renders the value label; nil uses the shortest decimal form.
	Format func(value float64) string

	TrackWidth int
	Keys       SliderKeyMap

	theme *styles.Theme
}

// NewSlider creates a slider over [min, max] moving by step.
func NewSlider(theme *styles.Theme, title string, min, max, step float64) *Slider {
	if theme == nil {
		theme = styles.Default
	}
	if max < min {
		min, max = max, min
	}
	return &Slider{
		Title:        title,
		Min:          min,
		Max:          max,
		Step:         step,
		DefaultValue: min,
		TrackWidth:   24,
		Keys:         DefaultSliderKeyMap(),
		theme:        theme,
	}
}

// Current returns the value the slider displays.
func (s *Slider) Current() float64 {
	v := s.DefaultValue
	if s.Value != nil {
		v = *s.Value
	}
	return s.clamp(v)
}

// HandleKey converts a key press into an OnChange call. It reports whether
// the key was consumed. Disabled sliders consume nothing.
func (s *Slider) HandleKey(msg tea.KeyMsg) bool {
	if s.Disabled {
		return false
	}

	step := s.Step
	if step <= 0 {
		step = (s.Max - s.Min) / 100
	}

	cur := s.Current()
	var next float64
	switch {
	case key.Matches(msg, s.Keys.Decrease):
		next = cur - step
	case key.Matches(msg, s.Keys.Increase):
		next = cur + step
	case key.Matches(msg, s.Keys.DecreaseMore):
		next = cur - 10*step
	case key.Matches(msg, s.Keys.IncreaseMore):
		next = cur + 10*step
	case key.Matches(msg, s.Keys.Min):
		next = s.Min
	case key.Matches(msg, s.Keys.Max):
		next = s.Max
	default:
		return false
	}

	next = s.Snap(next)
	if next != cur && s.OnChange != nil {
		s.OnChange(next)
	}
	return true
}

// Snap rounds v to the nearest step from Min and clamps it to the range.
func (s *Slider) Snap(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		// Remove float noise such as 0.30000000000000004.
		v = math.Round(v*1e9) / 1e9
	}
	return s.clamp(v)
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// FormatValue renders v for the value label.
func (s *Slider) FormatValue(v float64) string {
	if s.Format != nil {
		return s.Format(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// showValue reports whether the value label is visible.
func (s *Slider) showValue() bool {
	switch s.ValueLabel {
	case ValueLabelOn:
		return true
	case ValueLabelOff:
		return false
	default:
		return s.Focused
	}
}

// thumbIndex returns the track cell holding the thumb.
func (s *Slider) thumbIndex(width int) int {
	span := s.Max - s.Min
	if span <= 0 || width <= 1 {
		return 0
	}
	return int(math.Round((s.Current() - s.Min) / span * float64(width-1)))
}

// View renders the label block and the track on one row.
func (s *Slider) View() string {
	width := s.TrackWidth
	if width < 2 {
		width = 2
	}
	thumb := s.thumbIndex(width)

	fill := strings.Repeat("━", thumb)
	rest := strings.Repeat("─", width-thumb-1)

	var track string
	if s.Disabled {
		track = s.theme.Disabled.Render(fill + "○" + rest)
	} else {
		track = s.theme.SliderFill.Render(fill) +
			s.theme.SliderThumb.Render("●") +
			s.theme.SliderTrack.Render(rest)
	}

	parts := []string{track}
	if s.showValue() {
		parts = append(parts, " "+s.theme.SliderValue.Render(s.FormatValue(s.Current())))
	}
	if s.EndAdornment != "" {
		parts = append(parts, " "+s.EndAdornment)
	}
	control := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	labelStyle := s.theme.Label
	if s.Disabled {
		labelStyle = s.theme.Disabled
	}
	label := labelStyle.Render(s.Title)
	if s.Focused && !s.Disabled {
		label = s.theme.CardTitle.Render("› " + s.Title)
	}
	if s.Description != "" {
		label = lipgloss.JoinVertical(lipgloss.Left, label, s.theme.Description.Render(s.Description))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Width(28).Render(label),
		control,
	)
}
