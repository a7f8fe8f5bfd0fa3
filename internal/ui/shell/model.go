// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/offline"
	"github.com/jeranaias/toolbench/internal/regex"
	"github.com/jeranaias/toolbench/internal/ui/components"
	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// focusArea is the pane receiving keys.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusInput
	focusOptions
	focusPage
)

// tickMsg refreshes clocks shown in the shell.
type tickMsg time.Time

// Model is the Bubble Tea model of the shell. Inputs live in memory only.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger
	theme  *styles.Theme
	keys   KeyMap
	help   help.Model

	sidebar *components.Sidebar
	status  *components.StatusBar

	tools    []*tool
	toolByID map[string]*tool
	pageByID map[string]page
	inputs   map[string][]textarea.Model

	focus    focusArea
	field    int
	optIndex int
	result    result
	diffView  *components.DiffViewer
	outScroll int

	page      viewport.Model
	pageCache map[pageCacheKey]string

	width        int
	height       int
	showHelp     bool
	userToggled  bool
	prefsChanged bool

	env    *env
	copyFn func(string) error
	render markdownRenderer
}

// New creates the shell model. A nil cfg uses defaults; a nil logger discards.
func New(cfg *config.Config, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	mode, err := styles.ParseMode(cfg.UI.Theme)
	if err != nil {
		logger.Warn("unknown theme, using auto", "theme", cfg.UI.Theme)
		mode = styles.ModeAuto
	}
	theme := styles.NewTheme(mode)

	m := Model{
		cfg:       cfg,
		logger:    logger,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		status:    components.NewStatusBar(theme),
		toolByID:  map[string]*tool{},
		pageByID:  map[string]page{},
		inputs:    map[string][]textarea.Model{},
		pageCache: map[pageCacheKey]string{},
		page:      viewport.New(80, 20),
		env: &env{
			cfg:     cfg,
			now:     time.Now,
			matcher: regex.NewMatcher(time.Duration(cfg.Regex.TimeoutMS) * time.Millisecond),
		},
		copyFn: clipboard.WriteAll,
		render: glamourRender,
	}

	m.tools = newTools(cfg)
	var items []components.SidebarItem
	all := pages()
	// Home first, About pages last
	items = append(items, components.SidebarItem{ID: all[0].ID, Title: all[0].Title})
	for _, t := range m.tools {
		m.toolByID[t.ID] = t
		m.inputs[t.ID] = newInputs(t)
		items = append(items, components.SidebarItem{ID: t.ID, Title: t.Title, Section: t.Section})
	}
	for _, p := range all {
		m.pageByID[p.ID] = p
		if p.ID != pageHome {
			items = append(items, components.SidebarItem{ID: p.ID, Title: p.Title, Section: p.Section})
		}
	}

	m.sidebar = components.NewSidebar(theme, items, cfg.UI.SidebarWidth)
	m.sidebar.Collapsed = !cfg.UI.SidebarOpen
	m.sidebar.Focused = true
	m.status.Shortcuts = shortcuts(m.keys.ShortHelp())
	m.status.Theme = string(theme.Mode())
	m.status.Offline = offline.StatusIndicator()
	m.status.Tool = m.sidebar.Current().Title
	return m
}

func newInputs(t *tool) []textarea.Model {
	out := make([]textarea.Model, len(t.Fields))
	for i, f := range t.Fields {
		ta := textarea.New()
		ta.Placeholder = f.Placeholder
		ta.ShowLineNumbers = false
		ta.Prompt = ""
		ta.CharLimit = 0
		ta.MaxHeight = 0
		if f.SingleLine {
			ta.KeyMap.InsertNewline.SetEnabled(false)
			ta.SetHeight(1)
		}
		ta.Blur()
		out[i] = ta
	}
	return out
}

func shortcuts(bindings []key.Binding) []components.Shortcut {
	out := make([]components.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, components.Shortcut{Key: b.Help().Key, Desc: b.Help().Desc})
	}
	return out
}

// Init starts the cursor blink and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// currentTool returns the selected tool, or nil on a page.
func (m Model) currentTool() *tool {
	return m.toolByID[m.sidebar.Current().ID]
}

// currentPage returns the selected page and whether one is selected.
func (m Model) currentPage() (page, bool) {
	p, ok := m.pageByID[m.sidebar.Current().ID]
	return p, ok
}

// values returns the current tool's input values.
func (m Model) values(t *tool) []string {
	tas := m.inputs[t.ID]
	out := make([]string, len(tas))
	for i := range tas {
		out[i] = tas[i].Value()
	}
	return out
}

// rerun evaluates the current tool and refreshes the status bar.
func (m *Model) rerun() {
	t := m.currentTool()
	if t == nil {
		m.result = result{}
		m.diffView = nil
		return
	}
	m.result = t.Run(m.values(t), m.env)
	m.diffView = nil
	m.outScroll = 0
	if m.result.IsDiff {
		m.diffView = components.NewDiffViewer(m.theme, m.result.Changes, m.result.DiffMode)
		m.layoutDiff()
	}
	m.status.Status = m.result.Status
	m.status.Message = m.result.Message
}

// activate switches to the selected sidebar entry.
func (m *Model) activate() {
	m.field, m.optIndex = 0, 0
	m.status.Tool = m.sidebar.Current().Title
	if p, ok := m.currentPage(); ok {
		m.loadPage(p)
		m.result = result{}
		m.diffView = nil
		m.status.Status = components.StatusReady
		m.status.Message = ""
		return
	}
	m.rerun()
}

// stops lists the focus areas Tab cycles through for the current entry.
func (m Model) stops() []focusArea {
	var out []focusArea
	if !m.sidebar.Collapsed {
		out = append(out, focusSidebar)
	}
	t := m.currentTool()
	if t == nil {
		return append(out, focusPage)
	}
	for range t.Fields {
		out = append(out, focusInput)
	}
	if len(t.Options) > 0 {
		out = append(out, focusOptions)
	}
	return out
}

// stopIndex is the position of the current focus in stops.
func (m Model) stopIndex() int {
	stops := m.stops()
	offset := 0
	if !m.sidebar.Collapsed {
		offset = 1
	}
	switch m.focus {
	case focusSidebar:
		return 0
	case focusInput:
		return offset + m.field
	case focusOptions:
		return len(stops) - 1
	default:
		return offset
	}
}

// cycleFocus moves focus by delta stops, wrapping.
func (m *Model) cycleFocus(delta int) {
	stops := m.stops()
	if len(stops) == 0 {
		return
	}
	i := ((m.stopIndex()+delta)%len(stops) + len(stops)) % len(stops)
	offset := 0
	if !m.sidebar.Collapsed {
		offset = 1
	}
	switch stops[i] {
	case focusInput:
		m.setFocus(focusInput, i-offset)
	default:
		m.setFocus(stops[i], 0)
	}
}

// setFocus moves focus, blurring and focusing textareas as needed.
func (m *Model) setFocus(area focusArea, field int) {
	if t := m.currentTool(); t != nil {
		tas := m.inputs[t.ID]
		for i := range tas {
			tas[i].Blur()
		}
		if area == focusInput && field < len(tas) {
			tas[field].Focus()
		}
	}
	m.focus = area
	m.field = field
	m.sidebar.Focused = area == focusSidebar
	m.updateChars()
}

// focusContent focuses the first input of a tool, or the page.
func (m *Model) focusContent() {
	if t := m.currentTool(); t != nil && len(t.Fields) > 0 {
		m.setFocus(focusInput, 0)
		return
	}
	m.setFocus(focusPage, 0)
}

func (m *Model) updateChars() {
	m.status.Chars = 0
	if t := m.currentTool(); t != nil && m.focus == focusInput {
		m.status.Chars = utf8.RuneCountInString(m.inputs[t.ID][m.field].Value())
	}
}

// copyOutput puts the current result on the clipboard.
func (m *Model) copyOutput() {
	text := m.result.copyText()
	if text == "" {
		m.status.Status = components.StatusWarning
		m.status.Message = "Nothing to copy"
		return
	}
	if err := m.copyFn(text); err != nil {
		m.logger.Warn("clipboard unavailable", "err", err)
		m.status.Status = components.StatusError
		m.status.Message = "Clipboard unavailable"
		return
	}
	m.status.Status = components.StatusOK
	m.status.Message = "Copied " + strconv.Itoa(utf8.RuneCountInString(text)) + " chars"
}

// clearInputs empties the current tool's inputs.
func (m *Model) clearInputs() {
	t := m.currentTool()
	if t == nil {
		return
	}
	tas := m.inputs[t.ID]
	for i := range tas {
		tas[i].Reset()
	}
	m.rerun()
	m.updateChars()
}

// toggleTheme flips dark/light and drops cached renderings.
func (m *Model) toggleTheme() {
	m.theme.Toggle()
	m.status.Theme = string(m.theme.Mode())
	m.prefsChanged = true
	if p, ok := m.currentPage(); ok {
		m.loadPage(p)
	}
}

// loadPage renders p into the viewport, cached per width and theme.
func (m *Model) loadPage(p page) {
	width := m.page.Width
	k := pageCacheKey{id: p.ID, width: width, dark: m.theme.IsDark}
	content, ok := m.pageCache[k]
	if !ok {
		md := p.source(m.tools)
		out, err := m.render(md, width, m.theme.IsDark)
		if err != nil {
			m.logger.Warn("markdown render failed", "page", p.ID, "err", err)
			out = md
		}
		content = out
		m.pageCache[k] = content
	}
	m.page.SetContent(content)
	m.page.GotoTop()
}

// Preferences returns the UI settings as changed during the session and
// whether anything changed.
func (m Model) Preferences() (config.UIConfig, bool) {
	ui := m.cfg.UI
	ui.SidebarWidth = m.sidebar.Width
	ui.SidebarOpen = !m.sidebar.Collapsed
	if m.prefsChanged && m.theme != nil {
		ui.Theme = string(m.theme.Mode())
	}
	changed := m.prefsChanged ||
		ui.SidebarWidth != m.cfg.UI.SidebarWidth ||
		(ui.SidebarOpen != m.cfg.UI.SidebarOpen && m.userToggled)
	return ui, changed
}
