// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package debug builds and exports the debug snapshot.
//
// Data flows one way: the accessors in Sources feed Assemble, and the
// resulting Snapshot goes either to an Exporter (JSON file) or to the
// presentation layer (Prettify, Markdown).
//
//	snap := debug.Assemble(ctx, sources)
//	out := debug.NewExporter(cfg.Brand.Name, debug.DiskWriter{Dir: dir}, log).Download(ctx, snap)
//	if out.Saved {
//	    fmt.Println(out.Path)
//	}
package debug
