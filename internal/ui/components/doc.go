// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the rigrun TUI application.

# Form Components

Slider (slider.go) - Controlled numeric range input. The parent owns the
value; key presses are turned into OnChange calls with snapped, clamped values.

LanguageSelect (language_select.go) - Scrolling list of language options.
Choosing an entry calls OnSelect with its locale code; the ✓ marker
only moves when the callback succeeds.

# Display Components

DebugCard (debug_card.go) - Titled card for one section of the debug
snapshot, highlighted with Chroma when the terminal supports color.

# Usage

	s := components.NewSlider(theme, "Temperature", 0, 2, 0.1)
	s.Value = &temperature
	s.OnChange = func(v float64) { temperature = v }
*/
package components
