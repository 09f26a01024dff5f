// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-debug/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func newConfigCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configPath
			if path == "" {
				p, err := config.ConfigPathTOML()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &CommandError{Command: "config", Action: "init", Reason: path + " already exists (use --force to overwrite)"}
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Wrote"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			if o.dataDir != "" {
				cfg.Storage.DataDir = o.dataDir
			}
			out := cmd.OutOrStdout()
			source := cfg.Source
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(out, "# source: %s\n", source)
			return toml.NewEncoder(out).Encode(maskSecrets(*cfg))
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}

// maskSecrets blanks API keys for display.
func maskSecrets(cfg config.Config) config.Config {
	for _, key := range []*string{
		&cfg.Cloud.OpenRouterKey,
		&cfg.Voice.ElevenLabsKey,
		&cfg.Imaging.OpenAIKey,
		&cfg.Imaging.ProdiaKey,
	} {
		if *key != "" {
			*key = "********"
		}
	}
	return cfg
}
