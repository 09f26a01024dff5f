// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debugview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-debug/internal/debug"
)

// snapshotMsg carries a freshly assembled snapshot.
type snapshotMsg struct {
	snap debug.Snapshot
}

// savedMsg reports the end of a save interaction.
type savedMsg struct {
	outcome debug.Outcome
}

// copiedMsg reports the end of a clipboard copy.
type copiedMsg struct {
	err error
}

// staleMsg reports that a watched file changed after the snapshot was taken.
type staleMsg struct {
	path string
}

func assembleCmd(ctx context.Context, src debug.Sources) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: debug.Assemble(ctx, src)}
	}
}

func deliverCmd(ctx context.Context, e *debug.Exporter, req debug.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{outcome: e.Deliver(ctx, req)}
	}
}

func copyCmd(write func(string) error, data []byte) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: write(string(data))}
	}
}

// listenCmd waits for the next change notification. A closed channel ends
// listening.
func listenCmd(changes <-chan string) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return staleMsg{path: path}
	}
}
