// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-debug/internal/ui/settings"
	"github.com/jeranaias/rigrun-debug/internal/ui/styles"
)

func newSettingsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Adjust language and generation settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withEnv(cmd.Context(), true, func(env *Env) error {
				sel, err := env.Languages()
				if err != nil {
					return err
				}
				page := settings.New(styles.NewTheme(), settings.Options{
					Selector:       sel,
					SystemLanguage: env.Probe.SystemLanguage(),
					Floats:         env.State,
					Context:        cmd.Context(),
					Logger:         env.Logger,
				})
				return o.runTUI("edit settings", page)
			})
		},
	}
}
