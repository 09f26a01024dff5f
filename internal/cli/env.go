// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/rigrun-debug/internal/config"
	"github.com/jeranaias/rigrun-debug/internal/debug"
	"github.com/jeranaias/rigrun-debug/internal/detect"
	"github.com/jeranaias/rigrun-debug/internal/language"
	"github.com/jeranaias/rigrun-debug/internal/logging"
	"github.com/jeranaias/rigrun-debug/internal/model"
	"github.com/jeranaias/rigrun-debug/internal/release"
	"github.com/jeranaias/rigrun-debug/internal/state"
	"github.com/jeranaias/rigrun-debug/internal/storage"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Env is everything a command needs to read or change application state.
type Env struct {
	Config *config.Config
	Logger *zap.Logger
	State  *state.Store
	Chats  *storage.Store
	Models *model.Registry
	Probe  *detect.Probe

	getenv    func(string) string
	statePath string
}

// openEnv loads configuration and opens the stores. Interactive pages own
// the terminal, so their logs go to a file.
func (o *options) openEnv(ctx context.Context, interactive bool) (env *Env, err error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}

	logOpts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if interactive && logOpts.File == "" {
		if logOpts.File, err = cfg.LogPath(); err != nil {
			return nil, err
		}
	}
	if !interactive && logOpts.File == "" {
		// Keep stdout/stderr readable for piped output.
		logOpts.Level = "warn"
	}
	if o.verbose {
		logOpts.Level = "debug"
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	statePath, err := cfg.StatePath()
	if err != nil {
		return nil, err
	}
	st, err := state.Open(ctx, statePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			st.Close()
		}
	}()

	convDir, err := cfg.ConversationsDir()
	if err != nil {
		return nil, err
	}
	chats, err := storage.NewStore(convDir)
	if err != nil {
		return nil, err
	}

	getenv := o.getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	env = &Env{
		Config:    cfg,
		Logger:    logger,
		State:     st,
		Chats:     chats,
		Models:    model.NewRegistry(cfg, getenv),
		Probe:     detect.NewProbe(),
		getenv:    getenv,
		statePath: statePath,
	}

	// Every launch counts as one reload.
	if _, err := st.IncrementUsage(ctx); err != nil {
		logger.Warn("failed to record launch", zap.Error(err))
	}
	logger.Debug("environment ready",
		zap.String("config", cfg.Source),
		zap.String("state", statePath))
	return env, nil
}

// Close releases the stores and flushes the logger.
func (e *Env) Close() error {
	e.Logger.Sync()
	return e.State.Close()
}

// Sources wires the stores into the snapshot accessors. target names the
// surface in build info ("cli" or "tui").
func (e *Env) Sources(target string) debug.Sources {
	return debug.Sources{
		Client: e.Probe.Client,
		Capabilities: func() detect.Capabilities {
			return e.Probe.Capabilities(e.Config)
		},
		Models:      e.Models,
		Chats:       e.Chats,
		Folders:     e.State,
		Labs:        e.State,
		Sherpa:      e.State,
		NewsCurrent: func() int { return release.NewsVersion },
		App:         release.App,
		Build:       func() release.BuildInfo { return release.Build(target) },
		Backend: func() config.Capabilities {
			return e.Config.Capabilities(e.getenv)
		},
		Deployment: e.Deployment,
		Logger:     e.Logger,
	}
}

// Deployment describes where this installation lives.
func (e *Env) Deployment() debug.Deployment {
	dataDir, err := e.Config.DataDir()
	if err != nil {
		e.Logger.Debug("data dir unavailable", zap.Error(err))
	}
	return debug.Deployment{
		Home:              e.Config.Brand.HomeURL,
		HostName:          config.HostName(),
		MeasurementID:     e.Config.Telemetry.MeasurementID,
		PlantUMLServerURL: e.Config.Render.PlantUMLServerURL,
		ConfigFile:        e.Config.Source,
		DataDir:           dataDir,
	}
}

// PrettyOptions returns the configured dense rendering.
func (e *Env) PrettyOptions() debug.PrettyOptions {
	return debug.PrettyOptions{
		DeleteChars:        e.Config.Debug.IndentStrip,
		StripQuotes:        e.Config.Debug.StripQuotes,
		StripTrailingComma: e.Config.Debug.StripTrailingComma,
	}
}

// Exporter returns an exporter writing into dir, or the configured export
// directory when dir is empty.
func (e *Env) Exporter(dir string) *debug.Exporter {
	if dir == "" {
		dir = e.Config.Debug.ExportDir
	}
	return debug.NewExporter(e.Config.Brand.Name, debug.DiskWriter{Dir: dir}, e.Logger)
}

// WatchPaths lists files whose changes make a snapshot stale.
func (e *Env) WatchPaths() []string {
	paths := []string{e.statePath}
	if e.Config.Source != "" {
		paths = append(paths, e.Config.Source)
	} else if p, err := config.ConfigPathTOML(); err == nil {
		paths = append(paths, p)
	}
	return paths
}

// Languages returns a selector over the bundled language table.
func (e *Env) Languages() (*language.Selector, error) {
	table, err := language.Bundled()
	if err != nil {
		return nil, fmt.Errorf("failed to load language table: %w", err)
	}
	return language.NewSelector(table.Options(), e.State, e.Logger), nil
}

// withEnv opens an Env, runs fn and closes the Env.
func (o *options) withEnv(ctx context.Context, interactive bool, fn func(*Env) error) error {
	env, err := o.openEnv(ctx, interactive)
	if err != nil {
		return err
	}
	err = fn(env)
	if cerr := env.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}
