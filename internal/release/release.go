// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package release carries application and build identity for rigrun.
//
// Version, GitCommit and BuildDate are set at build time:
//
//	go build -ldflags "-X github.com/jeranaias/rigrun-debug/internal/release.Version=0.4.0"
package release

import (
	"runtime"
	"runtime/debug"
)

// Version information (set at build time)
var (
	Version   = "0.4.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewsVersion is bumped whenever the in-app "what's new" notes change.
// It only ever increases.
const NewsVersion = 12

// AppInfo identifies the application.
type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Channel string `json:"channel"`
}

// BuildInfo describes how this binary was produced.
type BuildInfo struct {
	Target    string `json:"target"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Module    string `json:"module,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// App returns the application identity.
func App() AppInfo {
	return AppInfo{
		Name:    "rigrun",
		Version: Version,
		Channel: channel(Version),
	}
}

// Build returns build information for the given target ("tui", "cli").
// Values missing from ldflags are filled from the embedded module info.
func Build(target string) BuildInfo {
	info := BuildInfo{
		Target:    target,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Module = bi.Main.Path
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func channel(version string) string {
	for i := 0; i < len(version); i++ {
		if version[i] == '-' {
			return "development"
		}
	}
	return "stable"
}
