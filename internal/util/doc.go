// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the config and ui packages.
//
// # Key Functions
//
// Display width (go-runewidth):
//   - StringWidth: terminal columns taken by a string
//   - TruncateWidth: column-aware truncation with ellipsis
//   - PadRight: column-aware padding
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	label := util.TruncateWidth(name, 20)
//	err := util.AtomicWriteFile(path, data, 0o600)
package util
