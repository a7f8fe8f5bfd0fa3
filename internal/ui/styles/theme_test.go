// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// MODE TESTS
// =============================================================================

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"auto", ModeAuto, false},
		{"dark", ModeDark, false},
		{"LIGHT", ModeLight, false},
		{" dark ", ModeDark, false},
		{"", ModeAuto, false},
		{"solarized", "", true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme_ExplicitModes(t *testing.T) {
	dark := NewTheme(ModeDark)
	if !dark.IsDark {
		t.Error("NewTheme(ModeDark) should be dark")
	}
	if !lipgloss.HasDarkBackground() {
		t.Error("NewTheme(ModeDark) should pin the dark palette")
	}

	light := NewTheme(ModeLight)
	if light.IsDark {
		t.Error("NewTheme(ModeLight) should be light")
	}
	if lipgloss.HasDarkBackground() {
		t.Error("NewTheme(ModeLight) should pin the light palette")
	}
}

func TestThemeToggle(t *testing.T) {
	theme := NewTheme(ModeDark)

	theme.Toggle()
	if theme.IsDark || theme.Mode() != ModeLight {
		t.Errorf("Expected light after toggle, got %q", theme.Mode())
	}
	if theme.GlamourStyle() != "light" || theme.ChromaStyle() != "github" {
		t.Errorf("Expected light renderer styles, got %q/%q", theme.GlamourStyle(), theme.ChromaStyle())
	}

	theme.Toggle()
	if !theme.IsDark || theme.Mode() != ModeDark {
		t.Errorf("Expected dark after second toggle, got %q", theme.Mode())
	}
	if theme.GlamourStyle() != "dark" || theme.ChromaStyle() != "monokai" {
		t.Errorf("Expected dark renderer styles, got %q/%q", theme.GlamourStyle(), theme.ChromaStyle())
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ModeDark)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Sidebar", theme.Sidebar},
		{"SidebarSelected", theme.SidebarSelected},
		{"PanelTitle", theme.PanelTitle},
		{"Input", theme.Input},
		{"Output", theme.Output},
		{"StatusBar", theme.StatusBar},
		{"OfflineBadge", theme.OfflineBadge},
		{"Match", theme.Match},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); rendered == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

// =============================================================================
// THEME SIZE TESTS
// =============================================================================

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme(ModeDark)

	tests := []struct {
		width  int
		height int
	}{
		{80, 24},
		{120, 40},
		{40, 10},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, tc.height)
		if theme.Width != tc.width {
			t.Errorf("SetSize(%d, %d) Width = %d, want %d", tc.width, tc.height, theme.Width, tc.width)
		}
		if theme.Height != tc.height {
			t.Errorf("SetSize(%d, %d) Height = %d, want %d", tc.width, tc.height, theme.Height, tc.height)
		}
	}
}

func TestThemeGetLayoutMode(t *testing.T) {
	theme := NewTheme(ModeDark)

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("GetLayoutMode() with width %d = %v, want %v", tc.width, got, tc.want)
		}
	}
}
