// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the state of the last tool run.
type Status int

const (
	StatusReady Status = iota
	StatusOK
	StatusWarning
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns the ASCII indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusOK:
		return styles.StatusIndicators.Success
	case StatusWarning:
		return styles.StatusIndicators.Warning
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return styles.StatusIndicators.Active
	}
}

// Shortcut is one key hint shown on the right.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom line of the shell.
type StatusBar struct {
	Tool      string // Active tool or page title
	Status    Status
	Message   string // Transient message, e.g. "Copied to clipboard"
	Chars     int    // Characters in the focused input
	Offline   string // Offline badge text, empty hides it
	Theme     string // "dark" or "light"
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetTheme swaps the theme after a toggle.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// View renders the bar at s.Width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders: [tool] icon message
func (s *StatusBar) viewNarrow() string {
	left := s.theme.StatusTool.Render(s.Tool) + " " + s.statusStyle().Render(s.Status.Icon())
	room := s.Width - lipgloss.Width(left) - 1
	if s.Message != "" && room > 3 {
		left += " " + s.statusStyle().Render(truncate(s.Message, room))
	}
	return s.theme.StatusBar.Width(s.Width).Render(left)
}

// viewWide renders: [tool] OFFLINE icon message ... chars theme shortcuts
func (s *StatusBar) viewWide() string {
	parts := []string{s.theme.StatusTool.Render(s.Tool)}
	if s.Offline != "" {
		parts = append(parts, s.theme.OfflineBadge.Render(s.Offline))
	}
	status := s.Status.Icon()
	if s.Message != "" {
		status += " " + s.Message
	}
	parts = append(parts, s.statusStyle().Render(status))
	left := strings.Join(parts, " ")

	var right []string
	if s.Chars > 0 {
		right = append(right, s.theme.ShortcutDesc.Render(fmtNumber(s.Chars)+" chars"))
	}
	if s.Theme != "" {
		right = append(right, s.theme.ShortcutDesc.Render(s.Theme))
	}
	if sc := s.renderShortcuts(); sc != "" {
		right = append(right, sc)
	}
	rightStr := strings.Join(right, s.theme.ShortcutDesc.Render(" | "))

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 1 {
		// Drop the hints before the message
		rightStr = ""
		gap = s.Width - lipgloss.Width(left)
		if gap < 0 {
			gap = 0
		}
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + rightStr)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	hints := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(hints, "  ")
}

func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusOK:
		return s.theme.StatusMessage
	case StatusWarning:
		return s.theme.Warning
	case StatusError:
		return s.theme.StatusError
	default:
		return s.theme.ShortcutDesc
	}
}
