// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		// Relative times drift; only the epoch tool shows them live
		if t := m.currentTool(); t != nil && t.ID == "epoch" {
			m.rerun()
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// handleKey dispatches a key press. Printable keys go to a focused input
// before any binding is considered.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	typing := m.focus == focusInput && m.currentTool() != nil

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if typing && isPlain(msg) {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebar.Toggle()
		m.userToggled = true
		m.prefsChanged = true
		if m.sidebar.Collapsed && m.focus == focusSidebar {
			m.focusContent()
		}
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Grow):
		m.resizeSidebar(2)
		return m, nil
	case key.Matches(msg, m.keys.Shrink):
		m.resizeSidebar(-2)
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyOutput()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.clearInputs()
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if !m.sidebar.Collapsed {
			m.setFocus(focusSidebar, 0)
		}
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.scrollOutput(-m.scrollStep())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.scrollOutput(m.scrollStep())
		return m, nil
	}

	switch m.focus {
	case focusSidebar:
		return m.handleSidebarKey(msg)
	case focusOptions:
		return m.handleOptionKey(msg)
	case focusInput:
		if key.Matches(msg, m.keys.Select) && m.currentField().SingleLine {
			m.cycleFocus(1)
			return m, nil
		}
	}
	return m.forward(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveUp()
		m.activate()
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveDown()
		m.activate()
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Right):
		m.focusContent()
	}
	return m, nil
}

func (m Model) handleOptionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.currentTool()
	if t == nil || len(t.Options) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.optIndex = (m.optIndex - 1 + len(t.Options)) % len(t.Options)
	case key.Matches(msg, m.keys.Down):
		m.optIndex = (m.optIndex + 1) % len(t.Options)
	case key.Matches(msg, m.keys.Left):
		t.Options[m.optIndex].Cycle(-1)
		m.rerun()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Select):
		t.Options[m.optIndex].Cycle(1)
		m.rerun()
	}
	return m, nil
}

// forward passes msg to the focused input or the page viewport. A changed
// input re-runs the tool.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == focusInput && m.currentTool() != nil:
		t := m.currentTool()
		tas := m.inputs[t.ID]
		if m.field >= len(tas) {
			return m, nil
		}
		before := tas[m.field].Value()
		tas[m.field], cmd = tas[m.field].Update(msg)
		if tas[m.field].Value() != before {
			m.rerun()
			m.layoutDiff()
			m.updateChars()
		}
	case m.focus == focusPage:
		m.page, cmd = m.page.Update(msg)
	}
	return m, cmd
}

func (m Model) currentField() field {
	t := m.currentTool()
	if t == nil || m.field >= len(t.Fields) {
		return field{}
	}
	return t.Fields[m.field]
}

// =============================================================================
// LAYOUT
// =============================================================================

// mainWidth is the width left for the tool panel.
func (m Model) mainWidth() int {
	w := m.width - m.sidebar.VisibleWidth()
	if w < 20 {
		w = 20
	}
	return w
}

// innerWidth is the tool panel width minus its padding and input borders.
func (m Model) innerWidth() int {
	return m.mainWidth() - 6
}

// layout sizes every component for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.theme.SetSize(m.width, m.height)
	if m.theme.GetLayoutMode() == styles.LayoutNarrow && !m.userToggled {
		m.sidebar.Collapsed = true
		if m.focus == focusSidebar {
			m.focusContent()
		}
	}
	m.sidebar.Height = m.height - 1
	m.status.Width = m.width
	m.help.Width = m.width - 4

	inner := m.innerWidth()
	for _, t := range m.tools {
		multi := 0
		for _, f := range t.Fields {
			if !f.SingleLine {
				multi++
			}
		}
		h := 3
		if multi > 0 {
			// Inputs take up to half of the rows, output the rest
			h = (m.height/2 - 4*len(t.Fields)) / multi
		}
		if h < 3 {
			h = 3
		}
		if h > 12 {
			h = 12
		}
		tas := m.inputs[t.ID]
		for i := range tas {
			tas[i].SetWidth(inner)
			if !t.Fields[i].SingleLine {
				tas[i].SetHeight(h)
			}
		}
	}

	m.page.Width = m.mainWidth() - 4
	m.page.Height = m.height - 3
	if p, ok := m.currentPage(); ok {
		m.loadPage(p)
	}
	m.layoutDiff()
}

// layoutDiff fits the diff viewer into the rows below the inputs.
func (m *Model) layoutDiff() {
	if m.diffView == nil {
		return
	}
	m.diffView.SetSize(m.innerWidth(), m.outputHeight())
}

// outputHeight is the number of rows left for the result.
func (m Model) outputHeight() int {
	used := 4 // title, description and spacing
	if t := m.currentTool(); t != nil {
		tas := m.inputs[t.ID]
		for i := range tas {
			used += tas[i].Height() + 3 // label and border
		}
		if len(t.Options) > 0 {
			used += 2
		}
	}
	h := m.height - 1 - used
	if h < 4 {
		h = 4
	}
	return h
}

func (m Model) scrollStep() int {
	step := m.outputHeight() / 2
	if step < 1 {
		step = 1
	}
	return step
}

// scrollOutput scrolls the diff viewer, the result or the page.
func (m *Model) scrollOutput(delta int) {
	switch {
	case m.focus == focusPage:
		if delta < 0 {
			m.page.LineUp(-delta)
		} else {
			m.page.LineDown(delta)
		}
	case m.diffView != nil:
		if delta < 0 {
			m.diffView.ScrollUp(-delta)
		} else {
			m.diffView.ScrollDown(delta)
		}
	default:
		m.outScroll += delta
		if m.outScroll < 0 {
			m.outScroll = 0
		}
	}
}

// resizeSidebar grows or shrinks the sidebar by delta columns.
func (m *Model) resizeSidebar(delta int) {
	if m.sidebar.Collapsed {
		return
	}
	before := m.sidebar.Width
	m.sidebar.Resize(delta)
	if m.sidebar.Width != before {
		m.layout()
	}
}
