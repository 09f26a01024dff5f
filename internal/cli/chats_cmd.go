// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-debug/internal/util"
)

func newChatsCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Inspect saved conversations",
	}

	var jsonMode bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved conversations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return o.withEnv(cmd.Context(), false, func(env *Env) error {
				return OutputJSON(out, jsonMode, "chats list", func() (interface{}, error) {
					metas, err := env.Chats.List()
					if err != nil {
						return nil, err
					}
					if jsonMode {
						return metas, nil
					}
					if len(metas) == 0 {
						fmt.Fprintln(out, DimStyle.Render("No saved conversations."))
						return metas, nil
					}
					for _, m := range metas {
						fmt.Fprintf(out, "%s  %s  %s\n",
							DimStyle.Render(shortID(m.ID)),
							util.PadRight(util.TruncateWidth(m.Title, 50), 50),
							DimStyle.Render(fmt.Sprintf("%d msgs, %s", m.MessageCount, m.UpdatedAt.Format("2006-01-02 15:04"))))
					}
					return metas, nil
				})
			})
		},
	}
	list.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	cmd.AddCommand(list)
	return cmd
}

// shortID returns the first eight characters of a conversation ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
