// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/rigrun-debug/internal/config"
	"github.com/jeranaias/rigrun-debug/internal/debug"
	"github.com/jeranaias/rigrun-debug/internal/ui/debugview"
	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// =============================================================================
// DEBUG COMMAND
// =============================================================================

func newDebugCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Show debug information about this installation",
		Long: `Opens the debug page: client, product and backend information grouped
into cards, with a button that downloads the full snapshot as JSON for bug
reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runDebugPage(cmd.Context())
		},
	}
	cmd.AddCommand(newDebugShowCommand(o), newDebugExportCommand(o))
	return cmd
}

func (o *options) runDebugPage(ctx context.Context) error {
	return o.withEnv(ctx, true, func(env *Env) error {
		changes := make(chan string, 1)
		w, err := config.Watch(ctx, env.WatchPaths(), config.WatchOptions{Logger: env.Logger}, func(path string) {
			select {
			case changes <- path:
			default:
			}
		})
		if err != nil {
			env.Logger.Warn("file watching unavailable", zap.Error(err))
		} else {
			defer w.Close()
		}

		exportDir := env.Config.Debug.ExportDir
		if exportDir == "" {
			if wd, err := os.Getwd(); err == nil {
				exportDir = wd
			}
		}

		page := debugview.New(styles.NewTheme(), debugview.Options{
			Title:     env.Config.Brand.Title + " Debug",
			Sources:   env.Sources("tui"),
			Exporter:  env.Exporter(exportDir),
			ExportDir: exportDir,
			Pretty:    env.PrettyOptions(),
			Changes:   changes,
			Context:   ctx,
			Logger:    env.Logger,
		})
		return o.runTUI("show the debug page", page)
	})
}

// =============================================================================
// DEBUG SHOW
// =============================================================================

func newDebugShowCommand(o *options) *cobra.Command {
	var jsonMode, plain bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the debug snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				snap := debug.Assemble(cmd.Context(), env.Sources("cli"))
				return OutputJSON(out, jsonMode, "debug show", func() (interface{}, error) {
					if jsonMode {
						return snap, nil
					}
					title := env.Config.Brand.Title + " Debug"
					if plain || !ColorsEnabled() {
						fmt.Fprintln(out, snap.Markdown(title, env.PrettyOptions()))
						return nil, nil
					}
					rendered, err := snap.RenderTerminal(title, env.PrettyOptions(), GetTerminalWidth(), "")
					if err != nil {
						return nil, err
					}
					fmt.Fprint(out, rendered)
					return nil, nil
				})
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output the snapshot in a JSON envelope")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print Markdown without terminal styling")
	return cmd
}

// =============================================================================
// DEBUG EXPORT
// =============================================================================

func newDebugExportCommand(o *options) *cobra.Command {
	var (
		dir      string
		toStdout bool
		jsonMode bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the debug snapshot to <brand>_debug_<timestamp>.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				snap := debug.Assemble(cmd.Context(), env.Sources("cli"))

				if toStdout {
					data, err := snap.JSON()
					if err != nil {
						return &CommandError{Command: "debug", Action: "export", Reason: "could not encode snapshot", Err: err}
					}
					_, err = fmt.Fprintf(out, "%s\n", data)
					return err
				}

				return OutputJSON(out, jsonMode, "debug export", func() (interface{}, error) {
					exporter := env.Exporter(dir)
					exporter.Namer.Now = o.now
					res := exporter.Download(cmd.Context(), snap)
					if !res.Saved {
						return nil, &CommandError{Command: "debug", Action: "export", Reason: "snapshot not saved", Err: res.Err}
					}
					if !jsonMode {
						fmt.Fprintf(out, "%s %s (%d bytes)\n", SuccessStyle.Render("Saved"), res.Path, res.Bytes)
					}
					return ExportData{Path: res.Path, Bytes: res.Bytes}, nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to write into (default: debug.export_dir or the working directory)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the JSON to stdout instead of a file")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output the result in a JSON envelope")
	return cmd
}
