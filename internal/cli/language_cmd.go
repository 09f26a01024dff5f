// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-debug/internal/ui/settings"
	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

// =============================================================================
// LANGUAGE COMMAND
// =============================================================================

func newLanguageCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "language",
		Aliases: []string{"lang"},
		Short:   "Choose the preferred language",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withEnv(cmd.Context(), true, func(env *Env) error {
				sel, err := env.Languages()
				if err != nil {
					return err
				}
				page := settings.New(styles.NewTheme(), settings.Options{
					Selector:       sel,
					SystemLanguage: env.Probe.SystemLanguage(),
					LanguageOnly:   true,
					Context:        cmd.Context(),
					Logger:         env.Logger,
				})
				return o.runTUI("choose a language", page)
			})
		},
	}
	cmd.AddCommand(newLanguageListCommand(o), newLanguageSetCommand(o))
	return cmd
}

func newLanguageListCommand(o *options) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				return OutputJSON(out, jsonMode, "language list", func() (interface{}, error) {
					sel, err := env.Languages()
					if err != nil {
						return nil, err
					}
					current := ""
					if opt, ok := sel.Current(cmd.Context(), env.Probe.SystemLanguage()); ok {
						current = opt.Code
					}

					data := LanguageData{Current: current}
					width := 0
					for _, opt := range sel.Options {
						data.Languages = append(data.Languages, LanguageOption{Label: opt.Label, Code: opt.Code})
						if w := runewidth.StringWidth(opt.Label); w > width {
							width = w
						}
					}
					if jsonMode {
						return data, nil
					}

					for _, opt := range data.Languages {
						marker := "  "
						if opt.Code == current {
							marker = SuccessStyle.Render("* ")
						}
						fmt.Fprintf(out, "%s%s  %s\n", marker, runewidth.FillRight(opt.Label, width), DimStyle.Render(opt.Code))
					}
					return data, nil
				})
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	return cmd
}

func newLanguageSetCommand(o *options) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "set <code>",
		Short: "Set the preferred language by locale code",
		Example: `  rigrun language set es-MX
  rigrun language set ja-JP`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				return OutputJSON(out, jsonMode, "language set", func() (interface{}, error) {
					sel, err := env.Languages()
					if err != nil {
						return nil, err
					}
					if err := sel.Select(cmd.Context(), args[0]); err != nil {
						return nil, err
					}
					if !jsonMode {
						fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("Language set to"), args[0])
					}
					return LanguageData{Current: args[0]}, nil
				})
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	return cmd
}
