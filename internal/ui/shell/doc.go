// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the full-screen interactive shell.
//
// The shell shows a collapsible sidebar of tools grouped by section, a
// tool panel with one text input per field and a row of options, and a
// status bar. Every tool re-runs on each keystroke; nothing typed is
// written to disk.
//
// # Key Types
//
//   - Model: Bubble Tea model holding the inputs and the last result
//   - KeyMap: key bindings, also used by the help overlay
//
// # Usage
//
//	if err := shell.Run(cfg, "", logger); err != nil {
//	    return err
//	}
//
// # Focus
//
// Tab cycles between the sidebar, each input and the option row. While an
// input has focus, printable keys are typed into it; only control keys
// act as shortcuts.
package shell
