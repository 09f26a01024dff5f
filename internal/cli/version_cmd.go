// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-debug/internal/release"
)

func newVersionCommand(o *options) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return OutputJSON(out, jsonMode, "version", func() (interface{}, error) {
				app, build := release.App(), release.Build("cli")
				data := VersionData{
					Name:      app.Name,
					Version:   app.Version,
					Channel:   app.Channel,
					GitCommit: build.GitCommit,
					BuildDate: build.BuildDate,
					GoVersion: build.GoVersion,
				}
				if !jsonMode {
					fmt.Fprintf(out, "%s %s (%s)\n", TitleStyle.Render(data.Name), data.Version, data.Channel)
					fmt.Fprintf(out, "  %s%s\n", RenderLabel("Commit:"), data.GitCommit)
					fmt.Fprintf(out, "  %s%s\n", RenderLabel("Built:"), data.BuildDate)
					fmt.Fprintf(out, "  %s%s\n", RenderLabel("Go:"), data.GoVersion)
				}
				return data, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	return cmd
}

func newNewsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Show what changed in this release and mark it as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				sh, err := env.State.Sherpa(cmd.Context())
				if err != nil {
					return err
				}
				app := release.App()
				fmt.Fprintf(out, "%s %s\n", TitleStyle.Render("What's new in"), app.Name+" "+app.Version)
				if sh.LastSeenNewsVersion >= release.NewsVersion {
					fmt.Fprintln(out, DimStyle.Render("You are up to date."))
				} else {
					fmt.Fprintf(out, "Release notes: %s/releases\n", env.Config.Brand.HomeURL)
				}
				return env.State.MarkNewsSeen(cmd.Context(), release.NewsVersion)
			})
		},
	}
}
