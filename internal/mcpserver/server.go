// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mcpserver

import (
	"context"
	"io"
	"log"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/offline"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "toolbench"

// PrivacyURI is the resource holding the offline guarantee.
const PrivacyURI = "toolbench://privacy"

// Server exposes the toolbench utilities as MCP tools.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// New creates a server. A nil cfg uses defaults; a nil logger discards.
func New(version string, cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		mcpServer: server.NewMCPServer(ServerName, version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks JSON-RPC over in and out until ctx is cancelled or in is
// closed. Nothing but protocol messages is written to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(slogWriter{s.logger}, "", 0))
	s.logger.Info("mcp server starting", "transport", "stdio", "offline", offline.IsEnforced())
	return stdio.Listen(ctx, in, out)
}

// slogWriter forwards the stdio server's log lines to slog.
type slogWriter struct{ logger *slog.Logger }

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Error("mcp transport", "msg", string(p))
	return len(p), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PrivacyURI, "Privacy Guarantee",
		mcp.WithResourceDescription("How toolbench keeps every input on this machine"),
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PrivacyURI,
				MIMEType: "text/markdown",
				Text:     offline.PrivacyMarkdown + "\n" + offline.VerifyMarkdown,
			},
		}, nil
	})
}
