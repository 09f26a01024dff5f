// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debugview

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/rigrun-debug/internal/debug"
	"github.com/jeranaias/rigrun-debug/internal/ui/components"
	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// Options configures the debug page.
type Options struct {
	// Title heads the page, e.g. "rigrun Debug".
	Title    string
	Sources  debug.Sources
	Exporter *debug.Exporter
	// ExportDir prefills the save prompt.
	ExportDir string
	Pretty    debug.PrettyOptions

	// Changes delivers paths of watched files that changed.
	Changes <-chan string
	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	Context context.Context
	Logger  *zap.Logger
}

// Model is the debug page.
type Model struct {
	opts  Options
	ctx   context.Context
	theme *styles.Theme
	keys  KeyMap
	log   *zap.Logger

	viewport viewport.Model
	input    textinput.Model

	snap   debug.Snapshot
	loaded bool

	// saved only affects the button style.
	saved     bool
	prompting bool
	pending   debug.SaveRequest

	status     string
	statusKind int
	stale      bool

	width  int
	height int
}

const (
	statusInfo = iota
	statusSuccess
	statusWarning
)

// New creates the debug page.
func New(theme *styles.Theme, opts Options) Model {
	if theme == nil {
		theme = styles.Default
	}
	if opts.Title == "" {
		opts.Title = "rigrun Debug"
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Pretty == (debug.PrettyOptions{}) {
		opts.Pretty = debug.DefaultPrettyOptions
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "Save as: "
	ti.CharLimit = 1024

	vp := viewport.New(80, 20)

	return Model{
		opts:     opts,
		ctx:      ctx,
		theme:    theme,
		keys:     DefaultKeyMap(),
		log:      log,
		viewport: vp,
		input:    ti,
		width:    80,
		height:   24,
	}
}

// Init assembles the first snapshot and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(assembleCmd(m.ctx, m.opts.Sources), listenCmd(m.opts.Changes))
}

// Saved reports whether a download succeeded.
func (m Model) Saved() bool {
	return m.saved
}

// Snapshot returns the snapshot on screen.
func (m Model) Snapshot() debug.Snapshot {
	return m.snap
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.loaded = true
		m.stale = false
		m.layout()
		return m, nil

	case savedMsg:
		return m.handleSaved(msg.outcome), nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn("clipboard copy failed", zap.Error(msg.err))
			m.setStatus(statusWarning, "Clipboard unavailable")
		} else {
			m.setStatus(statusSuccess, "Copied debug JSON to clipboard")
		}
		return m, nil

	case staleMsg:
		m.log.Debug("debug snapshot stale", zap.String("path", msg.path))
		m.stale = true
		return m, listenCmd(m.opts.Changes)

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.setStatus(statusInfo, "")
		return m, assembleCmd(m.ctx, m.opts.Sources)

	case key.Matches(msg, m.keys.Copy):
		data, err := m.snap.JSON()
		if err != nil {
			m.log.Error("failed to encode debug snapshot", zap.Error(err))
			return m, nil
		}
		return m, copyCmd(m.opts.Clipboard, data)

	case key.Matches(msg, m.keys.Download):
		return m.startDownload()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// startDownload encodes the snapshot and opens the save prompt.
func (m Model) startDownload() (tea.Model, tea.Cmd) {
	if m.opts.Exporter == nil || !m.loaded {
		return m, nil
	}
	req, err := m.opts.Exporter.Prepare(m.snap)
	if err != nil {
		m.log.Error("Error saving debug.json", zap.Error(err))
		return m, nil
	}
	m.pending = req
	m.prompting = true
	m.input.SetValue(filepath.Join(m.opts.ExportDir, req.Name))
	m.input.CursorEnd()
	m.input.Focus()
	m.layout()
	return m, textinput.Blink
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m.handleSaved(debug.Canceled()), nil

	case key.Matches(msg, m.keys.Confirm):
		target := strings.TrimSpace(m.input.Value())
		if target == "" {
			m.closePrompt()
			return m.handleSaved(debug.Canceled()), nil
		}
		req := m.pending
		req.Dir = filepath.Dir(target)
		req.Name = filepath.Base(target)
		m.closePrompt()
		return m, deliverCmd(m.ctx, m.opts.Exporter, req)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.pending = debug.SaveRequest{}
	m.input.Blur()
	m.input.SetValue("")
	m.layout()
}

// handleSaved applies an export outcome. Failures and cancels leave the
// page as it was; the exporter has already logged any failure.
func (m Model) handleSaved(out debug.Outcome) Model {
	if out.Saved {
		m.saved = true
		m.setStatus(statusSuccess, "Saved "+out.Path)
	}
	return m
}

func (m *Model) setStatus(kind int, text string) {
	m.statusKind = kind
	m.status = text
}

// layout sizes the viewport and refills it with the cards.
func (m *Model) layout() {
	footer := 5 // button (3), status, help
	if m.prompting {
		footer++
	}
	header := 3
	h := m.height - header - footer
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.input.Width = m.width - len(m.input.Prompt) - 2
	m.viewport.SetContent(m.cards())
}

// cards renders the three snapshot sections.
func (m Model) cards() string {
	if !m.loaded {
		return m.theme.Help.Render("Collecting debug information...")
	}
	var rendered []string
	for _, sec := range m.snap.Sections() {
		card := components.NewDebugCard(m.theme, sec.Title, sec.Render(m.opts.Pretty))
		card.Width = components.CardWidth(m.width)
		rendered = append(rendered, card.Render())
	}
	return components.JoinCards(rendered...)
}
