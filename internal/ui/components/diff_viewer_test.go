// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// plainTheme returns a theme whose output carries no escape codes.
func plainTheme(t *testing.T) *styles.Theme {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	return styles.NewTheme(styles.ModeDark)
}

func TestDiffViewer_NoChanges(t *testing.T) {
	changes := diff.Compute("same\n", "same\n", diff.ModeLines)
	viewer := NewDiffViewer(plainTheme(t), changes, diff.ModeLines)

	if got := viewer.View(); !strings.Contains(got, "No differences") {
		t.Errorf("Expected 'No differences', got %q", got)
	}
}

func TestDiffViewer_LineMode(t *testing.T) {
	changes := diff.Compute("a\nb\nc\n", "a\nB\nc\n", diff.ModeLines)
	viewer := NewDiffViewer(plainTheme(t), changes, diff.ModeLines)

	view := viewer.View()
	for _, want := range []string{"+1", "-1", "lines", "@@ -1,3 +1,3 @@", "-b", "+B", " a"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
	if s := viewer.Stats(); s.Added != 1 || s.Removed != 1 {
		t.Errorf("Expected +1 -1, got %+v", s)
	}
}

func TestDiffViewer_NoNewlineMarker(t *testing.T) {
	changes := diff.Compute("a\n", "a\nb", diff.ModeLines)
	viewer := NewDiffViewer(plainTheme(t), changes, diff.ModeLines)

	if view := viewer.View(); !strings.Contains(view, `\ No newline at end of file`) {
		t.Errorf("Expected no-newline marker, got:\n%s", view)
	}
}

func TestDiffViewer_WordMode(t *testing.T) {
	changes := diff.Compute("the quick fox", "the slow fox", diff.ModeWords)
	viewer := NewDiffViewer(plainTheme(t), changes, diff.ModeWords)

	view := viewer.View()
	for _, want := range []string{"words", "quick", "slow"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestDiffViewer_Scroll(t *testing.T) {
	var oldText, newText strings.Builder
	for i := 0; i < 40; i++ {
		oldText.WriteString("line\n")
		newText.WriteString("LINE\n")
	}
	changes := diff.Compute(oldText.String(), newText.String(), diff.ModeLines)
	viewer := NewDiffViewer(plainTheme(t), changes, diff.ModeLines)
	viewer.SetSize(80, 10)

	first := viewer.View()
	if !strings.Contains(first, "lines 1-8 of") {
		t.Errorf("Expected scroll indicator, got:\n%s", first)
	}

	viewer.ScrollDown(1000)
	last := viewer.View()
	if strings.Contains(last, "lines 1-8 of") {
		t.Error("Expected ScrollDown to move the window")
	}

	viewer.ScrollUp(1000)
	if viewer.scrollPos != 0 {
		t.Errorf("Expected scrollPos 0, got %d", viewer.scrollPos)
	}
}
