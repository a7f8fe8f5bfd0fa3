// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mcpserver serves the toolbench utilities over the Model Context
// Protocol on stdio, so editors and agents can call them as tools.
//
// Tool failures are returned as error results rather than protocol
// errors. Successful calls carry both structured content and a short text
// rendering.
//
// # Usage
//
//	srv := mcpserver.New(version, cfg, logger)
//	err := srv.Serve(ctx, os.Stdin, os.Stdout)
package mcpserver
