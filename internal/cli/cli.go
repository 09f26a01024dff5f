// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// options holds the persistent flags and the hooks tests replace.
type options struct {
	configPath string
	dataDir    string
	verbose    bool

	getenv func(string) string
	now    func() time.Time
	// runTUI runs an interactive page; tests stub it.
	runTUI func(operation string, m tea.Model) error
}

func defaultOptions() *options {
	return &options{
		getenv: os.Getenv,
		now:    time.Now,
		runTUI: runProgram,
	}
}

// NewRootCommand builds the rigrun command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultOptions())
}

func newRootCommand(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "rigrun",
		Short: "rigrun - local-first LLM chat client",
		Long: `rigrun is a terminal chat client for local and cloud LLMs.

These commands inspect and adjust an installation: the debug snapshot used
in bug reports, the preferred language, generation settings and experiment
flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Config file (default: ~/.rigrun/config.toml)")
	root.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "Data directory holding state.db and conversations")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newDebugCommand(o),
		newLanguageCommand(o),
		newSettingsCommand(o),
		newLabsCommand(o),
		newChatsCommand(o),
		newConfigCommand(o),
		newNewsCommand(o),
		newVersionCommand(o),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, NewRootCommand(), os.Args[1:], os.Stderr)
}

func execute(ctx context.Context, root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		DisplayError(stderr, err, false)
		return GetExitCode(err)
	}
	return ExitSuccess
}
