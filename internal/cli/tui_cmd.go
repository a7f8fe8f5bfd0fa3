// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui_cmd.go - tui command, also the default when no command is given.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/ui/shell"
)

func newTUICmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell()
		},
	}
}

func (a *App) runShell() error {
	if a.JSON {
		return NewValidationError("--json", "", "the interactive shell has no JSON mode")
	}
	if err := shell.Run(a.Config, a.ConfigPath, a.Logger); err != nil {
		return &CommandError{Command: "tui", Reason: "shell exited", Err: err}
	}
	return nil
}
