// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// privacy_cmd.go - privacy command.

package cli

import (
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/offline"
)

func newPrivacyCmd(a *App) *cobra.Command {
	var verifyOnly bool
	cmd := &cobra.Command{
		Use:   "privacy",
		Short: "Explain the offline guarantee and how to verify it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md := offline.PrivacyMarkdown + "\n" + offline.VerifyMarkdown
			if verifyOnly {
				md = offline.VerifyMarkdown
			}
			data := map[string]string{"privacy": offline.PrivacyMarkdown, "verify": offline.VerifyMarkdown}
			return a.emit(cmd, output{Data: data, Text: renderMarkdown(md)})
		},
	}
	cmd.Flags().BoolVar(&verifyOnly, "verify", false, "Only show how to verify")
	return cmd
}

// renderMarkdown renders md for the terminal, or returns it unchanged when
// colors are off or rendering fails.
func renderMarkdown(md string) string {
	if !ColorsEnabled() {
		return md
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(GetTerminalWidth(), 100)),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
