// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package regex runs user-supplied patterns against text on a backtracking
// engine with JavaScript-style syntax and a per-match timeout.
//
// Global mode ("g") collects every non-overlapping match and always steps
// past empty matches, so patterns like "a*" terminate. Patterns with nested
// quantified groups get an advisory BacktrackWarning; the match still runs.
//
// # Usage
//
//	res := regex.Find(`(\w+)@(\w+)`, "gi", input)
//	for _, seg := range regex.Highlight(input, res.Matches) {
//		...
//	}
package regex
