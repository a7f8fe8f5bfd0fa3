// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/toolbench/internal/offline"
)

// =============================================================================
// STATIC PAGES
// =============================================================================

// Page identifiers in the sidebar.
const (
	pageHome    = "home"
	pagePrivacy = "privacy"
	pageVerify  = "verify"
)

const sectionAbout = "About"

// page is a sidebar entry rendered from markdown.
type page struct {
	ID      string
	Title   string
	Section string
	source  func(tools []*tool) string
}

func pages() []page {
	return []page{
		{ID: pageHome, Title: "Home", source: homeMarkdown},
		{ID: pagePrivacy, Title: "Privacy Guarantee", Section: sectionAbout, source: func([]*tool) string { return offline.PrivacyMarkdown }},
		{ID: pageVerify, Title: "How To Verify", Section: sectionAbout, source: func([]*tool) string { return offline.VerifyMarkdown }},
	}
}

// homeMarkdown lists the tools by section.
func homeMarkdown(tools []*tool) string {
	var b strings.Builder
	b.WriteString("# toolbench\n\n")
	b.WriteString("Everyday developer utilities. Everything runs on this machine: ")
	b.WriteString("nothing you paste is sent anywhere or written to disk.\n")
	section := ""
	for _, t := range tools {
		if t.Section != section {
			section = t.Section
			b.WriteString("\n## " + section + "\n\n")
		}
		b.WriteString("- **" + t.Title + "** - " + t.Description + "\n")
	}
	b.WriteString("\n## Keys\n\n")
	b.WriteString("- `Tab` moves between the sidebar, inputs and options\n")
	b.WriteString("- `Ctrl+Y` copies the output, `Ctrl+T` switches dark/light\n")
	b.WriteString("- `Ctrl+B` hides the sidebar, `Ctrl+Left`/`Ctrl+Right` resize it\n")
	b.WriteString("- `F1` shows every key, `Ctrl+C` quits\n")
	return b.String()
}

// markdownRenderer renders markdown for a terminal of width columns.
type markdownRenderer func(md string, width int, dark bool) (string, error)

// glamourRender renders with glamour's standard dark or light style.
func glamourRender(md string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// pageCacheKey identifies one rendering of a page.
type pageCacheKey struct {
	id    string
	width int
	dark  bool
}
