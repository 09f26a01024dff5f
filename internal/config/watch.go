// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// =============================================================================
// FILE WATCHER
// =============================================================================

// DefaultDebounce is how long a file must be quiet before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a fixed set of files. Parent directories are
// watched so atomic renames and SQLite sidecar files (-wal, -shm) are seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	targets  map[string]struct{}
	debounce time.Duration
	limiter  *rate.Limiter
	onChange func(path string)
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// WatchOptions tunes a Watcher. Zero values pick defaults.
type WatchOptions struct {
	Debounce time.Duration
	// MinInterval is the minimum spacing between two onChange calls.
	MinInterval time.Duration
	Logger      *zap.Logger
}

// Watch starts watching paths and calls onChange, from a background
// goroutine, once per burst of changes to a given file. Empty paths are
// skipped. Close stops the watcher.
func Watch(ctx context.Context, paths []string, opts WatchOptions, onChange func(path string)) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		targets:  make(map[string]struct{}),
		debounce: opts.Debounce,
		limiter:  rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		onChange: onChange,
		logger:   opts.Logger,
		pending:  make(map[string]time.Time),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			// Missing directories are not fatal; the file may never exist.
			w.logger.Debug("watch skipped", zap.String("dir", dir), zap.Error(err))
		}
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(2)
	go w.processEvents(ctx)
	go w.processPending(ctx)

	return w, nil
}

// match maps an event name to the watched file it belongs to.
func (w *Watcher) match(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	if _, ok := w.targets[abs]; ok {
		return abs, true
	}
	for t := range w.targets {
		if strings.HasPrefix(abs, t+"-") {
			return t, true
		}
	}
	return "", false
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			target, ok := w.match(event.Name)
			if !ok {
				continue
			}
			w.mu.Lock()
			w.pending[target] = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// processPending fires onChange for files quiet longer than the debounce.
// A change held back by the limiter stays pending until the next tick.
func (w *Watcher) processPending(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var ready []string
			for path, changed := range w.pending {
				if now.Sub(changed) < w.debounce {
					continue
				}
				if !w.limiter.Allow() {
					break
				}
				ready = append(ready, path)
				delete(w.pending, path)
			}
			w.mu.Unlock()

			for _, path := range ready {
				if w.onChange != nil {
					w.onChange(path)
				}
			}
		}
	}
}

// Close stops watching and waits for the background goroutines to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
