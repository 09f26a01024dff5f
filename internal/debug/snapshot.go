// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debug

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/rigrun-debug/internal/config"
	"github.com/jeranaias/rigrun-debug/internal/detect"
	"github.com/jeranaias/rigrun-debug/internal/model"
	"github.com/jeranaias/rigrun-debug/internal/release"
	"github.com/jeranaias/rigrun-debug/internal/state"
)

// =============================================================================
// SNAPSHOT TYPES
// =============================================================================

// Snapshot is the full debug report. It always has the three top-level keys
// client, agi and backend; fields whose accessor was absent or failed are
// left out.
type Snapshot struct {
	Client  Client  `json:"client"`
	AGI     AGI     `json:"agi"`
	Backend Backend `json:"backend"`
}

// Client wraps the client probe. A nil probe result encodes as {}.
type Client struct {
	*detect.Client
}

// AGI is the product section.
type AGI struct {
	Capabilities *detect.Capabilities `json:"capabilities,omitempty"`
	Models       *model.DebugInfo     `json:"models,omitempty"`
	State        State                `json:"state"`
	Release      Release              `json:"release"`
}

// State holds counters read from the chat, folder, labs and sherpa stores.
type State struct {
	ChatsCount     *int    `json:"chatsCount,omitempty"`
	FoldersCount   *int    `json:"foldersCount,omitempty"`
	FoldersEnabled *bool   `json:"foldersEnabled,omitempty"`
	NewsCurrent    *int    `json:"newsCurrent,omitempty"`
	NewsSeen       *int    `json:"newsSeen,omitempty"`
	LabsActive     *string `json:"labsActive,omitempty"`
	Reloads        *int    `json:"reloads,omitempty"`
}

// Release identifies the running build.
type Release struct {
	App   *release.AppInfo   `json:"app,omitempty"`
	Build *release.BuildInfo `json:"build,omitempty"`
}

// Backend is the backend section.
type Backend struct {
	Configuration *config.Capabilities `json:"configuration,omitempty"`
	Deployment    *Deployment          `json:"deployment,omitempty"`
}

// Deployment describes where this installation lives.
type Deployment struct {
	Home              string `json:"home"`
	HostName          string `json:"hostName"`
	MeasurementID     string `json:"measurementId,omitempty"`
	PlantUMLServerURL string `json:"plantUmlServerUrl"`
	ConfigFile        string `json:"configFile,omitempty"`
	DataDir           string `json:"dataDir"`
}

// =============================================================================
// SOURCES
// =============================================================================

// ChatCounter counts stored conversations.
type ChatCounter interface {
	Count() (int, error)
}

// FolderReader reads chat folder settings.
type FolderReader interface {
	FolderCount(ctx context.Context) (int, error)
	FoldersEnabled(ctx context.Context) (bool, error)
}

// LabsReader lists enabled experiment flags.
type LabsReader interface {
	ActiveLabs(ctx context.Context) ([]string, error)
}

// SherpaReader reads onboarding counters.
type SherpaReader interface {
	Sherpa(ctx context.Context) (state.Sherpa, error)
}

// ModelLister summarizes configured models.
type ModelLister interface {
	DebugInfo() model.DebugInfo
}

// Sources are the read-only accessors Assemble draws from. Any of them may
// be nil.
type Sources struct {
	Client       func() detect.Client
	Capabilities func() detect.Capabilities
	Models       ModelLister

	Chats   ChatCounter
	Folders FolderReader
	Labs    LabsReader
	Sherpa  SherpaReader

	NewsCurrent func() int
	App         func() release.AppInfo
	Build       func() release.BuildInfo

	Backend    func() config.Capabilities
	Deployment func() Deployment

	// Logger receives accessor failures at debug level.
	Logger *zap.Logger
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// Assemble gathers the current state into a Snapshot. It never fails: an
// accessor that is nil or returns an error leaves its field out.
func Assemble(ctx context.Context, src Sources) Snapshot {
	log := src.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := func(field string, err error) {
		log.Debug("debug snapshot field skipped", zap.String("field", field), zap.Error(err))
	}

	var snap Snapshot

	if src.Client != nil {
		c := src.Client()
		snap.Client = Client{&c}
	}

	// agi
	if src.Capabilities != nil {
		caps := src.Capabilities()
		if caps.TextToImage.Providers == nil {
			caps.TextToImage.Providers = []string{}
		}
		snap.AGI.Capabilities = &caps
	}
	if src.Models != nil {
		info := src.Models.DebugInfo()
		// Lists always encode as arrays, never null.
		if info.Sources == nil {
			info.Sources = []model.Source{}
		}
		if info.LLMs == nil {
			info.LLMs = []string{}
		}
		snap.AGI.Models = &info
	}

	st := &snap.AGI.State
	if src.Chats != nil {
		if n, err := src.Chats.Count(); err == nil {
			st.ChatsCount = &n
		} else {
			skip("chatsCount", err)
		}
	}
	if src.Folders != nil {
		if n, err := src.Folders.FolderCount(ctx); err == nil {
			st.FoldersCount = &n
		} else {
			skip("foldersCount", err)
		}
		if on, err := src.Folders.FoldersEnabled(ctx); err == nil {
			st.FoldersEnabled = &on
		} else {
			skip("foldersEnabled", err)
		}
	}
	if src.NewsCurrent != nil {
		v := src.NewsCurrent()
		st.NewsCurrent = &v
	}
	if src.Sherpa != nil {
		if sh, err := src.Sherpa.Sherpa(ctx); err == nil {
			st.NewsSeen = &sh.LastSeenNewsVersion
			st.Reloads = &sh.UsageCount
		} else {
			skip("sherpa", err)
		}
	}
	if src.Labs != nil {
		if active, err := src.Labs.ActiveLabs(ctx); err == nil {
			joined := strings.Join(active, ", ")
			st.LabsActive = &joined
		} else {
			skip("labsActive", err)
		}
	}

	if src.App != nil {
		app := src.App()
		snap.AGI.Release.App = &app
	}
	if src.Build != nil {
		build := src.Build()
		snap.AGI.Release.Build = &build
	}

	// backend
	if src.Backend != nil {
		caps := src.Backend()
		snap.Backend.Configuration = &caps
	}
	if src.Deployment != nil {
		d := src.Deployment()
		snap.Backend.Deployment = &d
	}

	return snap
}

// =============================================================================
// ENCODING
// =============================================================================

// marshalIndent encodes v with 2-space indentation and no HTML escaping.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// JSON returns the export encoding of the snapshot.
func (s Snapshot) JSON() ([]byte, error) {
	return marshalIndent(s)
}

// Section is one titled card of the debug page.
type Section struct {
	Title string
	Data  any
}

// Sections returns the Client, AGI and Backend cards in display order.
func (s Snapshot) Sections() []Section {
	return []Section{
		{Title: "Client", Data: s.Client},
		{Title: "AGI", Data: s.AGI},
		{Title: "Backend", Data: s.Backend},
	}
}

// Render returns the dense text form of a section's data.
func (sec Section) Render(opts PrettyOptions) string {
	data, err := marshalIndent(sec.Data)
	if err != nil {
		return ""
	}
	return Prettify(string(data), opts.DeleteChars, opts.StripQuotes, opts.StripTrailingComma)
}
