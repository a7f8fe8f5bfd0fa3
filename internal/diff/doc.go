// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides diff computation and formatting for text changes.
//
// Texts are tokenized into lines (each keeping its trailing newline) or into
// word and whitespace runs, then compared with a sequence matcher. The
// result is a flat list of changes that can be counted, reassembled, or
// rendered as a unified diff.
//
// # Key Types
//
//   - Change: Run of tokens that is unchanged, added, or removed
//   - Mode: Line or word tokenization
//   - Stats: Added and removed line or word counts
//   - DiffLine: Single numbered line in a line-mode diff
//   - DiffHunk: Group of related diff lines with line numbers
//
// # Usage
//
// Compute a diff between two strings:
//
//	changes := diff.ComputeLineDiff(oldText, newText)
//	fmt.Println(diff.Summary(diff.ComputeStats(changes, diff.ModeLines)))
//
// Render it as a unified diff:
//
//	fmt.Print(diff.Unified("a/main.go", "b/main.go", changes))
package diff
