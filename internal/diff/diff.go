// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides diff computation and formatting for text changes.
package diff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// =============================================================================
// CHANGE
// =============================================================================

// Change is one run of tokens that is unchanged, added, or removed. At most
// one of Added and Removed is set.
//
// Concatenating the Value of every change that is not Added reproduces the
// old text; concatenating every change that is not Removed reproduces the
// new text.
type Change struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Mode selects how text is tokenized.
type Mode int

const (
	// ModeLines compares whole lines, each keeping its trailing newline.
	ModeLines Mode = iota
	// ModeWords compares maximal runs of whitespace or non-whitespace.
	ModeWords
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeLines:
		return "lines"
	case ModeWords:
		return "words"
	default:
		return "unknown"
	}
}

// ParseMode maps "lines"/"words" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "lines", "line":
		return ModeLines, nil
	case "words", "word":
		return ModeWords, nil
	}
	return ModeLines, fmt.Errorf("unknown diff mode %q", s)
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// ComputeLineDiff diffs two texts line by line.
func ComputeLineDiff(oldText, newText string) []Change {
	return computeChanges(splitLines(oldText), splitLines(newText))
}

// ComputeWordDiff diffs two texts word by word. Whitespace runs are tokens
// too, so spacing changes are reported.
func ComputeWordDiff(oldText, newText string) []Change {
	return computeChanges(splitWords(oldText), splitWords(newText))
}

// Compute dispatches on mode.
func Compute(oldText, newText string, mode Mode) []Change {
	if mode == ModeWords {
		return ComputeWordDiff(oldText, newText)
	}
	return ComputeLineDiff(oldText, newText)
}

// splitLines splits content into lines, each keeping its "\n". A final line
// without a newline is kept as is.
func splitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

var wordToken = regexp.MustCompile(`\s+|\S+`)

func splitWords(content string) []string {
	return wordToken.FindAllString(content, -1)
}

// computeChanges runs the sequence matcher over the token lists and folds
// its opcodes into changes. Replacements emit the removed run first.
func computeChanges(oldTokens, newTokens []string) []Change {
	var changes []Change
	emit := func(tokens []string, added, removed bool) {
		if len(tokens) == 0 {
			return
		}
		value := strings.Join(tokens, "")
		if n := len(changes); n > 0 && changes[n-1].Added == added && changes[n-1].Removed == removed {
			changes[n-1].Value += value
			return
		}
		changes = append(changes, Change{Value: value, Added: added, Removed: removed})
	}

	matcher := difflib.NewMatcherWithJunk(oldTokens, newTokens, false, nil)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(oldTokens[op.I1:op.I2], false, false)
		case 'd':
			emit(oldTokens[op.I1:op.I2], false, true)
		case 'i':
			emit(newTokens[op.J1:op.J2], true, false)
		case 'r':
			emit(oldTokens[op.I1:op.I2], false, true)
			emit(newTokens[op.J1:op.J2], true, false)
		}
	}
	return changes
}

// =============================================================================
// DIFF STATS
// =============================================================================

// Stats counts added and removed units (lines or words).
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// ComputeStats tallies added and removed lines or words.
func ComputeStats(changes []Change, mode Mode) Stats {
	var s Stats
	for _, c := range changes {
		if !c.Added && !c.Removed {
			continue
		}
		n := countUnits(c.Value, mode)
		if c.Added {
			s.Added += n
		} else {
			s.Removed += n
		}
	}
	return s
}

func countUnits(value string, mode Mode) int {
	if mode == ModeWords {
		return len(strings.Fields(value))
	}
	if value == "" {
		return 0
	}
	n := strings.Count(value, "\n")
	if !strings.HasSuffix(value, "\n") {
		n++
	}
	return n
}

// HasChanges reports whether any change is an addition or removal.
func HasChanges(changes []Change) bool {
	for _, c := range changes {
		if c.Added || c.Removed {
			return true
		}
	}
	return false
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary returns a short "+N -M" summary.
func Summary(s Stats) string {
	return fmt.Sprintf("+%d -%d", s.Added, s.Removed)
}

// OldText reassembles the old side of a change list.
func OldText(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		if !c.Added {
			sb.WriteString(c.Value)
		}
	}
	return sb.String()
}

// NewText reassembles the new side of a change list.
func NewText(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		if !c.Removed {
			sb.WriteString(c.Value)
		}
	}
	return sb.String()
}
