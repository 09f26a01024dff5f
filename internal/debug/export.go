// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debug

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/rigrun-debug/internal/util"
)

// =============================================================================
// FILE WRITER
// =============================================================================

// SaveRequest is a file offered to the user.
type SaveRequest struct {
	// Dir overrides the writer's default directory when set.
	Dir        string
	Name       string
	Data       []byte
	MimeType   string
	Extensions []string
}

// SaveResult reports what a FileWriter did.
type SaveResult struct {
	Path         string
	BytesWritten int
	Canceled     bool
}

// FileWriter delivers bytes to the user. Returning Canceled with a nil
// error means the user declined.
type FileWriter interface {
	Save(ctx context.Context, req SaveRequest) (SaveResult, error)
}

// maxSuffix bounds the -N suffixes DiskWriter tries on a name collision.
const maxSuffix = 99

// DiskWriter saves into a directory and never overwrites an existing file.
type DiskWriter struct {
	// Dir is the default directory. Empty means the working directory.
	Dir  string
	Perm os.FileMode
}

// Save writes req.Data. If the name is taken, -1, -2, ... is inserted
// before the extension.
func (w DiskWriter) Save(ctx context.Context, req SaveRequest) (SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return SaveResult{}, err
	}
	dir := req.Dir
	if dir == "" {
		dir = w.Dir
	}
	if dir == "" {
		dir = "."
	}
	perm := w.Perm
	if perm == 0 {
		perm = 0644
	}

	ext := filepath.Ext(req.Name)
	stem := strings.TrimSuffix(req.Name, ext)
	for i := 0; i <= maxSuffix; i++ {
		name := req.Name
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, name)
		err := util.WriteFileExclusive(path, req.Data, perm)
		if errors.Is(err, util.ErrFileExists) {
			continue
		}
		if err != nil {
			return SaveResult{}, err
		}
		return SaveResult{Path: path, BytesWritten: len(req.Data)}, nil
	}
	return SaveResult{}, fmt.Errorf("no free file name for %s in %s", req.Name, dir)
}

// =============================================================================
// NAMER
// =============================================================================

// TimestampLayout formats export timestamps (YYYYMMDD-HHMMSS).
const TimestampLayout = "20060102-150405"

// Namer generates <brand>_debug_<timestamp>.json names. Two names requested
// within the same second differ by a -N suffix.
type Namer struct {
	Brand string
	Now   func() time.Time

	mu       sync.Mutex
	lastBase string
	seq      int
}

// Next returns a fresh file name.
func (n *Namer) Next() string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	base := fmt.Sprintf("%s_debug_%s", util.SanitizeFilename(n.Brand, "rigrun"), now().Format(TimestampLayout))

	n.mu.Lock()
	defer n.mu.Unlock()
	if base == n.lastBase {
		n.seq++
		return fmt.Sprintf("%s-%d.json", base, n.seq)
	}
	n.lastBase = base
	n.seq = 0
	return base + ".json"
}

// =============================================================================
// EXPORTER
// =============================================================================

// Outcome is the result of a download. Err is informational; Download
// never returns an error.
type Outcome struct {
	Saved    bool
	Canceled bool
	Path     string
	Bytes    int
	Err      error
}

// Exporter serializes snapshots and hands them to a FileWriter.
type Exporter struct {
	Writer FileWriter
	Namer  *Namer
	Logger *zap.Logger

	// SkipValidation disables the schema check before writing.
	SkipValidation bool
}

// NewExporter returns an Exporter writing through w with names for brand.
func NewExporter(brand string, w FileWriter, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		Writer: w,
		Namer:  &Namer{Brand: brand},
		Logger: logger,
	}
}

// Prepare encodes the snapshot and picks its file name.
func (e *Exporter) Prepare(snap Snapshot) (SaveRequest, error) {
	data, err := snap.JSON()
	if err != nil {
		return SaveRequest{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if !e.SkipValidation {
		if err := ValidateJSON(data); err != nil {
			return SaveRequest{}, err
		}
	}
	if e.Namer == nil {
		e.Namer = &Namer{}
	}
	return SaveRequest{
		Name:       e.Namer.Next(),
		Data:       data,
		MimeType:   "application/json",
		Extensions: []string{".json"},
	}, nil
}

// Deliver hands a prepared request to the writer. Failures are logged and
// reported in the Outcome; they never panic or propagate.
func (e *Exporter) Deliver(ctx context.Context, req SaveRequest) (out Outcome) {
	log := e.logger()
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: fmt.Errorf("file writer panicked: %v", r)}
			log.Error("Error saving debug.json", zap.String("name", req.Name), zap.Error(out.Err))
		}
	}()

	if e.Writer == nil {
		out.Err = errors.New("no file writer configured")
		log.Error("Error saving debug.json", zap.Error(out.Err))
		return out
	}

	res, err := e.Writer.Save(ctx, req)
	if err != nil {
		out.Err = err
		log.Error("Error saving debug.json", zap.String("name", req.Name), zap.Error(err))
		return out
	}
	if res.Canceled {
		log.Debug("debug export canceled", zap.String("name", req.Name))
		return Outcome{Canceled: true}
	}

	log.Info("debug snapshot saved", zap.String("path", res.Path), zap.Int("bytes", res.BytesWritten))
	return Outcome{Saved: true, Path: res.Path, Bytes: res.BytesWritten}
}

// Download serializes snap and saves it. It never returns an error; see
// Outcome.
func (e *Exporter) Download(ctx context.Context, snap Snapshot) Outcome {
	req, err := e.Prepare(snap)
	if err != nil {
		e.logger().Error("Error saving debug.json", zap.Error(err))
		return Outcome{Err: err}
	}
	return e.Deliver(ctx, req)
}

// Canceled is the Outcome of a save prompt the user closed.
func Canceled() Outcome {
	return Outcome{Canceled: true}
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
