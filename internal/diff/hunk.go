// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
)

// =============================================================================
// DIFF LINE TYPES
// =============================================================================

// DiffLineType represents the type of a diff line.
type DiffLineType int

const (
	// DiffLineContext represents unchanged context lines
	DiffLineContext DiffLineType = iota
	// DiffLineAdded represents added lines
	DiffLineAdded
	// DiffLineRemoved represents removed lines
	DiffLineRemoved
)

// String returns the string representation of a diff line type.
func (t DiffLineType) String() string {
	switch t {
	case DiffLineContext:
		return "context"
	case DiffLineAdded:
		return "added"
	case DiffLineRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Prefix returns the diff prefix character for this line type.
func (t DiffLineType) Prefix() string {
	switch t {
	case DiffLineAdded:
		return "+"
	case DiffLineRemoved:
		return "-"
	default:
		return " "
	}
}

// =============================================================================
// DIFF LINE
// =============================================================================

// DiffLine is a single line of a line-mode change list.
type DiffLine struct {
	Type      DiffLineType // Type of line (added, removed, context)
	Content   string       // Line content without its newline
	OldLine   int          // Line number in old text (0 if added)
	NewLine   int          // Line number in new text (0 if removed)
	NoNewline bool         // Last line of its text, with no trailing newline
}

// Lines expands line-mode changes into numbered lines.
func Lines(changes []Change) []DiffLine {
	var out []DiffLine
	oldNo, newNo := 0, 0
	for _, c := range changes {
		for _, line := range splitLines(c.Value) {
			dl := DiffLine{
				Content:   strings.TrimSuffix(line, "\n"),
				NoNewline: !strings.HasSuffix(line, "\n"),
			}
			switch {
			case c.Added:
				newNo++
				dl.Type = DiffLineAdded
				dl.NewLine = newNo
			case c.Removed:
				oldNo++
				dl.Type = DiffLineRemoved
				dl.OldLine = oldNo
			default:
				oldNo++
				newNo++
				dl.Type = DiffLineContext
				dl.OldLine = oldNo
				dl.NewLine = newNo
			}
			out = append(out, dl)
		}
	}
	return out
}

// =============================================================================
// DIFF HUNK
// =============================================================================

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// DiffHunk represents a contiguous section of changes.
type DiffHunk struct {
	OldStart int        // Starting line in old text
	OldCount int        // Number of lines in old text
	NewStart int        // Starting line in new text
	NewCount int        // Number of lines in new text
	Lines    []DiffLine // The actual diff lines
}

// Hunks groups line-mode changes into hunks with ContextLines of context.
// Changes separated by at most twice that many context lines share a hunk.
func Hunks(changes []Change) []DiffHunk {
	return groupIntoHunks(Lines(changes), ContextLines)
}

func groupIntoHunks(lines []DiffLine, context int) []DiffHunk {
	// [start, end) ranges of lines to include, merged when they touch
	type span struct{ start, end int }
	var spans []span
	for i, line := range lines {
		if line.Type == DiffLineContext {
			continue
		}
		start := max(0, i-context)
		end := min(len(lines), i+context+1)
		if n := len(spans); n > 0 && start <= spans[n-1].end {
			spans[n-1].end = max(spans[n-1].end, end)
			continue
		}
		spans = append(spans, span{start, end})
	}

	hunks := make([]DiffHunk, 0, len(spans))
	for _, s := range spans {
		hunk := DiffHunk{Lines: lines[s.start:s.end]}

		// Lines consumed on each side before the hunk starts.
		oldBefore, newBefore := 0, 0
		for _, line := range lines[:s.start] {
			if line.OldLine > 0 {
				oldBefore = line.OldLine
			}
			if line.NewLine > 0 {
				newBefore = line.NewLine
			}
		}

		for _, line := range hunk.Lines {
			if line.Type != DiffLineAdded {
				hunk.OldCount++
			}
			if line.Type != DiffLineRemoved {
				hunk.NewCount++
			}
		}

		hunk.OldStart = oldBefore
		if hunk.OldCount > 0 {
			hunk.OldStart++
		}
		hunk.NewStart = newBefore
		if hunk.NewCount > 0 {
			hunk.NewStart++
		}
		hunks = append(hunks, hunk)
	}
	return hunks
}

// =============================================================================
// UNIFIED DIFF FORMAT
// =============================================================================

// Unified renders line-mode changes in unified diff format. It returns ""
// when nothing changed.
func Unified(oldName, newName string, changes []Change) string {
	hunks := Hunks(changes)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("--- %s\n", oldName))
	sb.WriteString(fmt.Sprintf("+++ %s\n", newName))

	for _, hunk := range hunks {
		sb.WriteString(fmt.Sprintf("@@ -%s +%s @@\n",
			hunkRange(hunk.OldStart, hunk.OldCount),
			hunkRange(hunk.NewStart, hunk.NewCount)))

		for _, line := range hunk.Lines {
			sb.WriteString(line.Type.Prefix())
			sb.WriteString(line.Content)
			sb.WriteString("\n")
			if line.NoNewline {
				sb.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return sb.String()
}

// hunkRange omits the count when it is 1, as GNU diff does.
func hunkRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
