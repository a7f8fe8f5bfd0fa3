// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/logging"
	"github.com/jeranaias/toolbench/internal/ui/components"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel(t *testing.T) (Model, *int) {
	t.Helper()
	m := New(config.Default(), logging.NewNop())
	renders := 0
	m.render = func(md string, width int, dark bool) (string, error) {
		renders++
		return md, nil
	}
	m.copyFn = func(string) error { return nil }
	m.env.now = func() time.Time { return fixedNow }
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40}), &renders
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		if r == '\n' {
			m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
			continue
		}
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openTool(t *testing.T, m Model, id string) Model {
	t.Helper()
	if !m.sidebar.Select(id) {
		t.Fatalf("no sidebar entry %q", id)
	}
	m.activate()
	m.focusContent()
	return m
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNew_SidebarEntries(t *testing.T) {
	m, _ := newTestModel(t)

	items := m.sidebar.Items
	if items[0].ID != pageHome {
		t.Errorf("Expected home first, got %s", items[0].ID)
	}
	if last := items[len(items)-1]; last.Section != sectionAbout {
		t.Errorf("Expected About pages last, got %s in %q", last.ID, last.Section)
	}
	if len(items) != len(m.tools)+len(pages()) {
		t.Errorf("Expected %d entries, got %d", len(m.tools)+len(pages()), len(items))
	}
	if m.focus != focusSidebar {
		t.Error("Expected sidebar focus on start")
	}
}

func TestShell_SidebarMovesAndOpens(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, keyMsg(tea.KeyDown))
	if m.sidebar.Current().ID != "diff" {
		t.Fatalf("Expected diff after down, got %s", m.sidebar.Current().ID)
	}
	if m.status.Tool != "Diff Checker" {
		t.Errorf("Expected status tool to follow selection, got %q", m.status.Tool)
	}

	m = send(m, keyMsg(tea.KeyEnter))
	if m.focus != focusInput || m.field != 0 {
		t.Errorf("Expected first input focused, got focus %d field %d", m.focus, m.field)
	}

	m = send(m, keyMsg(tea.KeyEsc))
	if m.focus != focusSidebar {
		t.Error("Expected Esc to return to the sidebar")
	}
}

func TestShell_TabCyclesFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "diff")

	want := []focusArea{focusInput, focusOptions, focusSidebar, focusInput}
	for i, w := range want {
		m = send(m, keyMsg(tea.KeyTab))
		if m.focus != w {
			t.Fatalf("Step %d: expected focus %d, got %d", i, w, m.focus)
		}
	}
	if m.field != 0 {
		t.Errorf("Expected wrap to the first input, got field %d", m.field)
	}

	m = send(m, keyMsg(tea.KeyShiftTab))
	if m.focus != focusSidebar {
		t.Errorf("Expected shift+tab back to the sidebar, got %d", m.focus)
	}
}

// =============================================================================
// INPUT
// =============================================================================

func TestShell_TypingRunsTool(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "decode")

	m = typeText(m, "SGVsbG8=")
	if m.result.Output != "Hello" {
		t.Errorf("Expected Hello, got %q", m.result.Output)
	}
	if m.status.Status != components.StatusOK {
		t.Errorf("Expected OK status, got %v", m.status.Status)
	}
	if m.status.Chars != 8 {
		t.Errorf("Expected 8 chars, got %d", m.status.Chars)
	}
}

func TestShell_PlainKeysGoToInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "regex")
	width := m.sidebar.Width

	m = typeText(m, "a?<")
	if m.showHelp {
		t.Error("Expected ? to be typed, not open help")
	}
	if m.sidebar.Width != width {
		t.Error("Expected < to be typed, not shrink the sidebar")
	}
	if got := m.inputs["regex"][0].Value(); got != "a?<" {
		t.Errorf("Expected pattern a?<, got %q", got)
	}
}

func TestShell_SingleLineEnterMovesOn(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "regex")

	m = typeText(m, `\d+`)
	m = send(m, keyMsg(tea.KeyEnter))
	if m.field != 1 {
		t.Fatalf("Expected enter to move to the test string, got field %d", m.field)
	}
	m = typeText(m, "a1\nb22")
	if m.status.Message != "2 matches" {
		t.Errorf("Expected 2 matches, got %q", m.status.Message)
	}
	if !strings.Contains(m.inputs["regex"][1].Value(), "\n") {
		t.Error("Expected enter to insert a newline in a multi-line input")
	}
}

func TestShell_OptionsCycle(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "prettify")
	m = typeText(m, `{"a":1}`)

	m.setFocus(focusOptions, 0)
	m = send(m, keyMsg(tea.KeyDown), keyMsg(tea.KeyRight))
	if got := m.currentTool().optionValues()["action"]; got != "minify" {
		t.Fatalf("Expected minify, got %q", got)
	}
	if m.result.Output != `{"a":1}` {
		t.Errorf("Expected minified output, got %q", m.result.Output)
	}
}

func TestShell_ClearInputs(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "decode")
	m = typeText(m, "aGk=")

	m = send(m, keyMsg(tea.KeyCtrlL))
	if v := m.inputs["decode"][0].Value(); v != "" {
		t.Errorf("Expected cleared input, got %q", v)
	}
	if m.result.Output != "" {
		t.Error("Expected cleared result")
	}
}

func TestShell_Copy(t *testing.T) {
	m, _ := newTestModel(t)
	var copied string
	m.copyFn = func(s string) error { copied = s; return nil }
	m = openTool(t, m, "decode")

	m = send(m, keyMsg(tea.KeyCtrlY))
	if m.status.Status != components.StatusWarning {
		t.Errorf("Expected warning with nothing to copy, got %v", m.status.Status)
	}

	m = typeText(m, "aGk=")
	m = send(m, keyMsg(tea.KeyCtrlY))
	if copied != "hi" {
		t.Errorf("Expected hi on the clipboard, got %q", copied)
	}

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m = send(m, keyMsg(tea.KeyCtrlY))
	if m.status.Message != "Clipboard unavailable" {
		t.Errorf("Expected clipboard error, got %q", m.status.Message)
	}
}

// =============================================================================
// LAYOUT AND PREFERENCES
// =============================================================================

func TestShell_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, runeMsg("?"))
	if !m.showHelp {
		t.Fatal("Expected help to open from the sidebar")
	}
	if !strings.Contains(m.View(), "Press any key to close") {
		t.Error("Expected help overlay in view")
	}
	m = send(m, runeMsg("x"))
	if m.showHelp {
		t.Error("Expected any key to close help")
	}
}

func TestShell_ToggleSidebar(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, keyMsg(tea.KeyCtrlB))
	if !m.sidebar.Collapsed {
		t.Fatal("Expected collapsed sidebar")
	}
	if m.focus == focusSidebar {
		t.Error("Expected focus to leave the hidden sidebar")
	}
	ui, changed := m.Preferences()
	if !changed || ui.SidebarOpen {
		t.Errorf("Expected sidebar_open=false to be saved, got %+v changed=%v", ui, changed)
	}
}

func TestShell_ResizeSidebar(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.sidebar.Width

	m = send(m, runeMsg(">"))
	if m.sidebar.Width != before+2 {
		t.Errorf("Expected width %d, got %d", before+2, m.sidebar.Width)
	}
	for i := 0; i < 50; i++ {
		m = send(m, runeMsg("<"))
	}
	if m.sidebar.Width != components.MinSidebarWidth {
		t.Errorf("Expected width clamped to %d, got %d", components.MinSidebarWidth, m.sidebar.Width)
	}
}

func TestShell_NarrowTerminalCollapsesSidebar(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, tea.WindowSizeMsg{Width: 50, Height: 20})
	if !m.sidebar.Collapsed {
		t.Error("Expected sidebar collapsed below 60 columns")
	}
	if _, changed := m.Preferences(); changed {
		t.Error("Expected automatic collapse not to be saved")
	}
}

func TestShell_ThemeToggle(t *testing.T) {
	m, _ := newTestModel(t)
	wasDark := m.theme.IsDark

	m = send(m, keyMsg(tea.KeyCtrlT))
	if m.theme.IsDark == wasDark {
		t.Error("Expected theme to flip")
	}
	ui, changed := m.Preferences()
	if !changed || ui.Theme != m.status.Theme {
		t.Errorf("Expected theme %q saved, got %q", m.status.Theme, ui.Theme)
	}
}

func TestShell_PageRenderCached(t *testing.T) {
	m, renders := newTestModel(t)
	start := *renders

	m = send(m, keyMsg(tea.KeyDown), keyMsg(tea.KeyUp))
	if *renders != start {
		t.Errorf("Expected cached home page, got %d extra renders", *renders-start)
	}
	if !strings.Contains(m.View(), "Diff Checker") {
		t.Error("Expected home page to list tools")
	}
}

func TestShell_ViewShowsPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	m = openTool(t, m, "cron")

	view := m.View()
	for _, want := range []string{"Cron Explainer", "Output appears here as you type.", "Examples"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestSavePreferences(t *testing.T) {
	cfg := config.Default()
	m, _ := newTestModel(t)
	m.cfg = cfg

	var saved *config.Config
	save := func(c *config.Config) error { saved = c; return nil }

	savePreferences(cfg, m, logging.NewNop(), save)
	if saved != nil {
		t.Fatal("Expected no save without changes")
	}

	m = send(m, runeMsg(">"))
	savePreferences(cfg, m, logging.NewNop(), save)
	if saved == nil {
		t.Fatal("Expected save after resize")
	}
	if saved.UI.SidebarWidth != cfg.UI.SidebarWidth+2 {
		t.Errorf("Expected width %d, got %d", cfg.UI.SidebarWidth+2, saved.UI.SidebarWidth)
	}
	if saved == cfg {
		t.Error("Expected a copy of the config, not the original")
	}
}

func TestHeldHandler_ReplaysAfterFlush(t *testing.T) {
	var buf strings.Builder
	held := newHeldHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(held).With("tool", "decode")

	logger.Info("copied")
	if buf.Len() != 0 {
		t.Fatalf("Expected nothing written before flush, got %q", buf.String())
	}
	held.flush()
	if !strings.Contains(buf.String(), "msg=copied tool=decode") {
		t.Errorf("Expected replayed record with attrs, got %q", buf.String())
	}
}
