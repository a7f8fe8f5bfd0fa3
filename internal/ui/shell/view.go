// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/toolbench/internal/cron"
	"github.com/jeranaias/toolbench/internal/epoch"
	"github.com/jeranaias/toolbench/internal/ui/components"
	"github.com/jeranaias/toolbench/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the shell.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := m.viewMain()
	if sb := m.sidebar.View(); sb != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sb, body)
	}
	if m.showHelp {
		body = m.viewHelp()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.status.View())
}

// viewMain renders the selected tool or page.
func (m Model) viewMain() string {
	w := m.mainWidth()
	h := m.height - 1
	style := m.theme.Panel.Width(w).Height(h).MaxHeight(h)

	if _, ok := m.currentPage(); ok {
		return style.Render(m.page.View())
	}
	t := m.currentTool()
	if t == nil {
		return style.Render("")
	}

	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(m.theme.PanelSubtle.Render(t.Description))
	b.WriteString("\n\n")

	tas := m.inputs[t.ID]
	for i, f := range t.Fields {
		b.WriteString(m.theme.Label.Render(f.Label))
		b.WriteString("\n")
		box := m.theme.Input
		if m.focus == focusInput && m.field == i {
			box = m.theme.InputFocused
		}
		b.WriteString(box.Render(tas[i].View()))
		b.WriteString("\n")
	}
	if len(t.Options) > 0 {
		b.WriteString(m.viewOptions(t))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewResult(t))

	return style.Render(b.String())
}

// viewOptions renders the option row, e.g. "Format: json  Indent: 2".
func (m Model) viewOptions(t *tool) string {
	parts := make([]string, 0, len(t.Options))
	for i := range t.Options {
		o := &t.Options[i]
		value := o.Value()
		if value == "\t" {
			value = "tab"
		}
		st := m.theme.Option
		if m.focus == focusOptions && m.optIndex == i {
			st = m.theme.OptionActive
			value = "< " + value + " >"
		}
		parts = append(parts, m.theme.Muted.Render(o.Label+":")+st.Render(value))
	}
	return strings.Join(parts, " ")
}

// viewResult renders the output area for t.
func (m Model) viewResult(t *tool) string {
	r := m.result
	if r.IsDiff && m.diffView != nil {
		return m.diffView.View()
	}

	var lines []string
	if t.ID == "epoch" {
		conv := epoch.New()
		conv.Clock = m.env.now
		now := conv.Now()
		lines = append(lines, m.theme.Muted.Render("Now: ")+
			strconv.FormatInt(now.Seconds, 10)+m.theme.Muted.Render(" s  ")+
			strconv.FormatInt(now.Milliseconds, 10)+m.theme.Muted.Render(" ms"), "")
	}

	switch {
	case r.Error != "":
		lines = append(lines, m.theme.Error.Render("[X] "+r.Error))
	case r.Status == components.StatusReady && r.Output == "" && len(r.Pairs) == 0:
		lines = append(lines, m.emptyResult(t)...)
		return strings.Join(lines, "\n")
	}
	if r.Warning != "" {
		lines = append(lines, m.theme.Warning.Render("[!] "+r.Warning))
	}
	if r.Badge != "" {
		st := m.theme.Error
		if r.BadgeOK {
			st = m.theme.Success
		}
		lines = append(lines, st.Render(r.Badge))
	}

	if len(r.Segments) > 0 {
		lines = append(lines, "", m.theme.Label.Render("Highlighted"))
		lines = append(lines, strings.Split(m.renderSegments(r), "\n")...)
	}
	if len(r.Matches) > 0 {
		lines = append(lines, "", m.theme.Label.Render("Matches"))
		for i, mt := range r.Matches {
			lines = append(lines, m.renderMatch(i, mt.FullMatch, mt.Index, mt.Groups))
		}
	}
	if len(r.Pairs) > 0 {
		lines = append(lines, "")
		lines = append(lines, m.renderPairs(r.Pairs)...)
	}
	if r.Output != "" {
		cb := components.NewCodeBlock(r.Lang, r.Output)
		cb.MaxWidth = m.innerWidth()
		lines = append(lines, "")
		lines = append(lines, strings.Split(cb.Render(m.theme), "\n")...)
	}

	return strings.Join(m.window(lines), "\n")
}

// window applies the output scroll offset and height.
func (m Model) window(lines []string) []string {
	h := m.outputHeight()
	start := m.outScroll
	if last := len(lines) - h; start > last {
		start = last
	}
	if start < 0 {
		start = 0
	}
	end := start + h
	if end > len(lines) {
		end = len(lines)
	}
	out := lines[start:end]
	if len(lines) > h {
		out = append(out, m.theme.Muted.Render(fmt.Sprintf("lines %d-%d of %d, PgUp/PgDn to scroll", start+1, end, len(lines))))
	}
	return out
}

// emptyResult is shown before anything is typed.
func (m Model) emptyResult(t *tool) []string {
	lines := []string{m.theme.Muted.Italic(true).Render("Output appears here as you type.")}
	if t.ID == "cron" {
		lines = append(lines, "", m.theme.Label.Render("Examples"))
		for _, ex := range cron.Examples() {
			lines = append(lines, fmt.Sprintf("  %-16s %s", ex.Expression, m.theme.Muted.Render(ex.Description)))
		}
	}
	return lines
}

// renderSegments marks regex matches inside the test string.
func (m Model) renderSegments(r result) string {
	var b strings.Builder
	for _, seg := range r.Segments {
		if seg.IsMatch {
			b.WriteString(m.theme.Match.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func (m Model) renderMatch(i int, full string, index int, groups []string) string {
	line := m.theme.Muted.Render(fmt.Sprintf("#%d @%d ", i+1, index)) +
		m.theme.Match.Render(util.TruncateWidth(full, m.innerWidth()-12))
	for gi, g := range groups {
		line += m.theme.Muted.Render(fmt.Sprintf("  $%d=", gi+1)) + g
	}
	return line
}

// renderPairs aligns labels into a column.
func (m Model) renderPairs(pairs []pair) []string {
	labelWidth := 0
	for _, p := range pairs {
		if w := util.StringWidth(p.Label); w > labelWidth {
			labelWidth = w
		}
	}
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		value := p.Value
		if p.Bad {
			value = m.theme.Error.Render(value)
		}
		out = append(out, m.theme.Label.Render(util.PadRight(p.Label, labelWidth))+"  "+value)
	}
	return out
}

// viewHelp renders the key reference centered in the body area.
func (m Model) viewHelp() string {
	m.help.ShowAll = true
	content := m.theme.PanelTitle.Render("Keys") + "\n\n" + m.help.View(m.keys) +
		"\n\n" + m.theme.Muted.Render("Press any key to close")
	box := m.theme.Output.Render(content)
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
}
