// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// mcp_cmd.go - mcp command.

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/mcpserver"
)

func newMCPCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tools over the Model Context Protocol on stdio",
		Long: `Starts toolbench as an MCP server on stdin/stdout so editors and agents
can call the utilities as tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mcpserver.New(Version, a.Config, a.Logger)
			if err := srv.Serve(ctx, a.In, a.Out); err != nil && ctx.Err() == nil {
				return &CommandError{Command: "mcp", Reason: "server stopped", Err: err}
			}
			a.Logger.Info("mcp server stopped")
			return nil
		},
	}
}
