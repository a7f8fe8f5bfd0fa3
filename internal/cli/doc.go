// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the toolbench command line.
//
// Every utility is a cobra subcommand that reads its input from arguments,
// --file or piped stdin, prints plain or colored text, and supports a
// --json envelope for scripting. Running toolbench with no command starts
// the interactive shell.
//
// # Key Types
//
//   - App: Streams, config and logger shared by all commands
//   - JSONResponse: The {success, data, error, command} envelope
//   - CommandError, ValidationError, ConfigError: Mapped to exit codes 1, 2, 3
//   - Repl: Line-oriented prompt that runs commands
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
//
// # Commands Overview
//
// Tools:
//   - encode, decode: base64, base64url, url, hex, unicode (decode --auto guesses)
//   - convert, pretty, minify, query: JSON, YAML and CSV
//   - diff: line or word diff, optionally unified
//   - jwt, epoch, date, cron, regex, schema
//
// Modes:
//   - tui: Interactive shell (default)
//   - repl: Line-oriented prompt
//   - mcp: Model Context Protocol server on stdio
//
// Housekeeping:
//   - config show|get|set|path, version, privacy
package cli
