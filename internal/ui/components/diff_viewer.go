// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// =============================================================================
// DIFF VIEWER
// =============================================================================

// DiffViewer displays a change list as numbered hunks (line mode) or
// inline markup (word mode).
type DiffViewer struct {
	theme     *styles.Theme
	changes   []diff.Change
	mode      diff.Mode
	width     int
	height    int
	scrollPos int
}

// NewDiffViewer creates a viewer for changes computed in mode.
func NewDiffViewer(theme *styles.Theme, changes []diff.Change, mode diff.Mode) *DiffViewer {
	return &DiffViewer{
		theme:   theme,
		changes: changes,
		mode:    mode,
		width:   80,
		height:  24,
	}
}

// SetSize sets the viewer dimensions.
func (dv *DiffViewer) SetSize(width, height int) {
	dv.width = width
	dv.height = height
}

// ScrollUp scrolls the view up.
func (dv *DiffViewer) ScrollUp(lines int) {
	dv.scrollPos -= lines
	if dv.scrollPos < 0 {
		dv.scrollPos = 0
	}
}

// ScrollDown scrolls the view down. The position is clamped in View.
func (dv *DiffViewer) ScrollDown(lines int) {
	dv.scrollPos += lines
}

// Stats returns the added and removed counts for the viewer's mode.
func (dv *DiffViewer) Stats() diff.Stats {
	return diff.ComputeStats(dv.changes, dv.mode)
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the stats line followed by the visible body lines.
func (dv *DiffViewer) View() string {
	if !diff.HasChanges(dv.changes) {
		return dv.theme.Muted.Italic(true).Render("No differences")
	}

	var body []string
	if dv.mode == diff.ModeWords {
		body = strings.Split(dv.renderWords(), "\n")
	} else {
		body = dv.renderHunks()
	}

	visible := dv.height - 2
	if visible < 1 {
		visible = 1
	}
	maxScroll := len(body) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if dv.scrollPos > maxScroll {
		dv.scrollPos = maxScroll
	}
	end := dv.scrollPos + visible
	if end > len(body) {
		end = len(body)
	}

	var content strings.Builder
	content.WriteString(dv.renderStats())
	if maxScroll > 0 {
		content.WriteString(dv.theme.Muted.Render(fmt.Sprintf("  lines %d-%d of %d", dv.scrollPos+1, end, len(body))))
	}
	content.WriteString("\n\n")
	content.WriteString(strings.Join(body[dv.scrollPos:end], "\n"))
	return content.String()
}

// renderStats renders the "+N -M" summary in color.
func (dv *DiffViewer) renderStats() string {
	s := dv.Stats()
	unit := "lines"
	if dv.mode == diff.ModeWords {
		unit = "words"
	}
	return dv.theme.Added.Bold(true).Render("+"+toStr(s.Added)) + " " +
		dv.theme.Removed.Bold(true).Render("-"+toStr(s.Removed)) + " " +
		dv.theme.Muted.Render(unit)
}

// renderHunks renders each hunk with its header and numbered lines.
func (dv *DiffViewer) renderHunks() []string {
	hunkHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Background(styles.SurfaceDim).
		Bold(true).
		Padding(0, 1)

	var out []string
	for i, hunk := range diff.Hunks(dv.changes) {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, hunkHeaderStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)))
		for _, line := range hunk.Lines {
			out = append(out, dv.renderLine(line))
			if line.NoNewline {
				out = append(out, dv.theme.Muted.Render(`          \ No newline at end of file`))
			}
		}
	}
	return out
}

// renderLine renders a single diff line with old and new line numbers.
func (dv *DiffViewer) renderLine(line diff.DiffLine) string {
	var lineNumStr string
	var lineStyle lipgloss.Style

	switch line.Type {
	case diff.DiffLineAdded:
		lineStyle = dv.theme.Added.Background(styles.EmeraldDeep)
		lineNumStr = fmt.Sprintf("     %4d", line.NewLine)
	case diff.DiffLineRemoved:
		lineStyle = dv.theme.Removed.Background(styles.RoseDeep)
		lineNumStr = fmt.Sprintf("%4d     ", line.OldLine)
	default:
		lineStyle = dv.theme.Muted
		lineNumStr = fmt.Sprintf("%4d %4d", line.OldLine, line.NewLine)
	}

	content := line.Type.Prefix() + line.Content
	if room := dv.width - 11; room > 0 {
		content = truncate(content, room)
	}
	return dv.theme.Muted.Render(lineNumStr) + " " + lineStyle.Render(content)
}

// renderWords renders word changes inline, removed words struck through.
func (dv *DiffViewer) renderWords() string {
	var b strings.Builder
	for _, c := range dv.changes {
		switch {
		case c.Added:
			b.WriteString(dv.theme.Added.Background(styles.EmeraldDeep).Render(c.Value))
		case c.Removed:
			b.WriteString(dv.theme.Removed.Strikethrough(true).Render(c.Value))
		default:
			b.WriteString(c.Value)
		}
	}
	return lipgloss.NewStyle().Width(dv.width).Render(b.String())
}
