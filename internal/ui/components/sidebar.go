// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// =============================================================================
// SIDEBAR
// =============================================================================

// Width limits for the sidebar, shared with ui.sidebar_width validation.
const (
	MinSidebarWidth = config.MinSidebarWidth
	MaxSidebarWidth = config.MaxSidebarWidth
)

// SidebarItem is one navigable entry.
type SidebarItem struct {
	ID      string
	Title   string
	Section string // Entries with the same section are grouped under a heading
}

// Sidebar is the collapsible, resizable navigation list.
type Sidebar struct {
	Items     []SidebarItem
	Selected  int
	Width     int
	Collapsed bool
	Focused   bool
	Height    int
	theme     *styles.Theme
}

// NewSidebar creates a sidebar of width columns (clamped to the limits).
func NewSidebar(theme *styles.Theme, items []SidebarItem, width int) *Sidebar {
	s := &Sidebar{Items: items, theme: theme}
	s.SetWidth(width)
	return s
}

// SetTheme swaps the theme after a toggle.
func (s *Sidebar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetWidth sets the width, clamped to [MinSidebarWidth, MaxSidebarWidth].
func (s *Sidebar) SetWidth(width int) {
	if width < MinSidebarWidth {
		width = MinSidebarWidth
	}
	if width > MaxSidebarWidth {
		width = MaxSidebarWidth
	}
	s.Width = width
}

// Resize grows or shrinks the sidebar by delta columns.
func (s *Sidebar) Resize(delta int) {
	s.SetWidth(s.Width + delta)
}

// Toggle collapses or expands the sidebar.
func (s *Sidebar) Toggle() {
	s.Collapsed = !s.Collapsed
}

// VisibleWidth is the number of columns the sidebar occupies, border included.
func (s *Sidebar) VisibleWidth() int {
	if s.Collapsed {
		return 0
	}
	return s.Width
}

// MoveUp selects the previous item, wrapping to the end.
func (s *Sidebar) MoveUp() {
	if len(s.Items) == 0 {
		return
	}
	s.Selected = (s.Selected - 1 + len(s.Items)) % len(s.Items)
}

// MoveDown selects the next item, wrapping to the start.
func (s *Sidebar) MoveDown() {
	if len(s.Items) == 0 {
		return
	}
	s.Selected = (s.Selected + 1) % len(s.Items)
}

// Select selects the item with id. It reports whether the id exists.
func (s *Sidebar) Select(id string) bool {
	for i, it := range s.Items {
		if it.ID == id {
			s.Selected = i
			return true
		}
	}
	return false
}

// Current returns the selected item.
func (s *Sidebar) Current() SidebarItem {
	if len(s.Items) == 0 {
		return SidebarItem{}
	}
	return s.Items[s.Selected]
}

// View renders the sidebar, or "" when collapsed.
func (s *Sidebar) View() string {
	if s.Collapsed {
		return ""
	}
	// Padding (2) and right border (1)
	inner := s.Width - 3

	var lines []string
	lines = append(lines, s.theme.SidebarBrand.Render(truncate("toolbench", inner)))
	section := ""
	for i, it := range s.Items {
		if it.Section != section {
			section = it.Section
			if section != "" {
				lines = append(lines, s.theme.SidebarSection.Render(truncate(strings.ToUpper(section), inner)))
			}
		}
		// PaddingLeft(1) on every item style
		label := padRight(truncate(it.Title, inner-1), inner-1)
		switch {
		case i == s.Selected && s.Focused:
			lines = append(lines, s.theme.SidebarFocused.Render(label))
		case i == s.Selected:
			lines = append(lines, s.theme.SidebarSelected.Render(label))
		default:
			lines = append(lines, s.theme.SidebarItem.Render(label))
		}
	}

	style := s.theme.Sidebar.Width(s.Width - 1)
	if s.Height > 0 {
		style = style.Height(s.Height)
	}
	return style.Render(strings.Join(lines, "\n"))
}
