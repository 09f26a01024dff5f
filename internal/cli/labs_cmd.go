// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-debug/internal/state"
)

// =============================================================================
// LABS COMMAND
// =============================================================================

func newLabsCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labs",
		Short: "List and toggle experimental features",
	}

	var jsonMode bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List experimental features and whether they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				return OutputJSON(out, jsonMode, "labs list", func() (interface{}, error) {
					labs, err := env.State.Labs(cmd.Context())
					if err != nil {
						return nil, err
					}
					if !jsonMode {
						for _, lab := range labs {
							fmt.Fprintf(out, "%s %s %s\n", RenderFlag(lab.Enabled), RenderLabel(lab.Name), DimStyle.Render(lab.Description))
						}
					}
					return labs, nil
				})
			})
		},
	}
	list.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")

	cmd.AddCommand(list, newLabToggleCommand(o, true), newLabToggleCommand(o, false))
	return cmd
}

func newLabToggleCommand(o *options, enable bool) *cobra.Command {
	use, verb := "disable", "Disable"
	if enable {
		use, verb = "enable", "Enable"
	}
	return &cobra.Command{
		Use:   use + " <name>...",
		Short: verb + " experimental features",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				for _, name := range args {
					if err := env.State.SetLab(cmd.Context(), name, enable); err != nil {
						return &CommandError{Command: "labs", Action: use, Reason: name, Err: err}
					}
					fmt.Fprintf(out, "%s %s\n", RenderFlag(enable), name)
				}
				return nil
			})
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			names := make([]string, 0, len(state.KnownLabs))
			for _, lab := range state.KnownLabs {
				names = append(names, lab.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
	}
}
