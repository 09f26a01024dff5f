// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings provides the preferences page: the language list and the
// generation sliders.
package settings

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/rigrun-debug/internal/language"
	"github.com/jeranaias/rigrun-debug/internal/state"
	"github.com/jeranaias/rigrun-debug/internal/ui/components"
	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// FloatStore persists numeric preferences.
type FloatStore interface {
	Float(ctx context.Context, key string, def float64) (float64, error)
	SetFloat(ctx context.Context, key string, v float64) error
}

// Options configures the page.
type Options struct {
	Selector *language.Selector
	// SystemLanguage picks the initial row when no preference is stored.
	SystemLanguage string

	// Floats backs the sliders; nil disables them.
	Floats FloatStore

	// LanguageOnly hides the sliders and quits after a selection.
	LanguageOnly bool

	Context context.Context
	Logger  *zap.Logger
}

// SliderSpec describes one persisted slider.
type SliderSpec struct {
	Key         string
	Title       string
	Description string
	Min         float64
	Max         float64
	Step        float64
	Default     float64
	Unit        string
	Integer     bool
}

// DefaultSliders are the generation settings shown on the page.
var DefaultSliders = []SliderSpec{
	{
		Key:         state.PrefTemperature,
		Title:       "Temperature",
		Description: "Higher values give more varied answers",
		Min:         0,
		Max:         2,
		Step:        0.1,
		Default:     0.7,
	},
	{
		Key:         state.PrefResponseTokens,
		Title:       "Response tokens",
		Description: "Upper bound on reply length",
		Min:         256,
		Max:         8192,
		Step:        256,
		Default:     2048,
		Unit:        "tokens",
		Integer:     true,
	},
}

// field binds a slider to its persisted value.
type field struct {
	spec   SliderSpec
	value  float64
	slider *components.Slider
}

// selection records the last chosen language code.
type selection struct {
	code string
	err  error
	done bool
}

// Model is the settings page.
type Model struct {
	opts  Options
	ctx   context.Context
	theme *styles.Theme
	log   *zap.Logger
	keys  KeyMap

	list   *components.LanguageSelect
	fields []*field
	sel    *selection
	focus  int

	status string
	failed bool
}

// New builds the page and loads the stored values.
func New(theme *styles.Theme, opts Options) Model {
	if theme == nil {
		theme = styles.Default
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m := Model{
		opts:  opts,
		ctx:   ctx,
		theme: theme,
		log:   log,
		keys:  DefaultKeyMap(),
		sel:   &selection{},
	}

	var options []language.Option
	current := ""
	if opts.Selector != nil {
		options = opts.Selector.Options
		if opt, ok := opts.Selector.Current(ctx, opts.SystemLanguage); ok {
			current = opt.Code
		}
	}
	m.list = components.NewLanguageSelect(theme, options, current)
	m.list.OnSelect = m.selectLanguage

	if !opts.LanguageOnly {
		for _, spec := range DefaultSliders {
			m.fields = append(m.fields, m.newField(spec))
		}
	}
	m.applyFocus()
	return m
}

func (m Model) newField(spec SliderSpec) *field {
	f := &field{spec: spec, value: spec.Default}
	if m.opts.Floats != nil {
		v, err := m.opts.Floats.Float(m.ctx, spec.Key, spec.Default)
		if err != nil {
			m.log.Warn("failed to read setting", zap.String("key", spec.Key), zap.Error(err))
		} else {
			f.value = v
		}
	}

	s := components.NewSlider(m.theme, spec.Title, spec.Min, spec.Max, spec.Step)
	s.Description = spec.Description
	s.DefaultValue = spec.Default
	s.Value = &f.value
	s.ValueLabel = components.ValueLabelOn
	s.EndAdornment = spec.Unit
	s.Disabled = m.opts.Floats == nil
	if spec.Integer {
		s.Format = func(v float64) string { return strconv.Itoa(int(v)) }
	}

	floats, ctx, log := m.opts.Floats, m.ctx, m.log
	s.OnChange = func(v float64) {
		f.value = v
		if floats == nil {
			return
		}
		if err := floats.SetFloat(ctx, spec.Key, v); err != nil {
			log.Error("failed to save setting", zap.String("key", spec.Key), zap.Error(err))
		}
	}
	f.slider = s
	return f
}

// selectLanguage is the list's OnSelect callback.
func (m Model) selectLanguage(code string) error {
	m.sel.done = true
	m.sel.code = code
	m.sel.err = nil
	if m.opts.Selector == nil {
		return nil
	}
	if err := m.opts.Selector.Select(m.ctx, code); err != nil {
		m.log.Error("failed to select language", zap.Error(err))
		m.sel.err = err
		return err
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Value returns the current value of the slider stored under key.
func (m Model) Value(key string) (float64, bool) {
	for _, f := range m.fields {
		if f.spec.Key == key {
			return f.value, true
		}
	}
	return 0, false
}

// Selected returns the language chosen on this page, if any.
func (m Model) Selected() (string, bool) {
	return m.sel.code, m.sel.done && m.sel.err == nil
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.Next):
		m.focus = (m.focus + 1) % (len(m.fields) + 1)
		m.applyFocus()
		return m, nil
	case key.Matches(k, m.keys.Prev):
		m.focus = (m.focus + len(m.fields)) % (len(m.fields) + 1)
		m.applyFocus()
		return m, nil
	}

	if m.focus == 0 {
		m.sel.done = false
		if m.list.HandleKey(k) && m.sel.done {
			if m.sel.err != nil {
				m.status, m.failed = "Could not save language", true
				return m, nil
			}
			m.status, m.failed = "Language set to "+m.sel.code, false
			if m.opts.LanguageOnly {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.fields[m.focus-1].slider.HandleKey(k)
	return m, nil
}

func (m *Model) applyFocus() {
	m.list.Focused = m.focus == 0
	for i, f := range m.fields {
		f.slider.Focused = m.focus == i+1
	}
}

// View renders the page.
func (m Model) View() string {
	var b strings.Builder

	title := "Settings"
	if m.opts.LanguageOnly {
		title = "Language"
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")

	if !m.opts.LanguageOnly {
		b.WriteString(m.theme.Label.Render("Language"))
		b.WriteByte('\n')
	}
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	for _, f := range m.fields {
		b.WriteString(f.slider.View())
		b.WriteString("\n\n")
	}

	if m.status != "" {
		if m.failed {
			b.WriteString(m.theme.Error.Render(m.status))
		} else {
			b.WriteString(m.theme.Success.Render(m.status))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.theme.Help.Render(m.keys.helpLine(m.opts.LanguageOnly)))
	return b.String()
}
