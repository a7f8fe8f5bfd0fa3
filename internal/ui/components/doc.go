// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the toolbench shell.

Each component is a plain struct with setters and a View method that
returns a string. None of them owns a Bubble Tea loop; the shell model
feeds them state and lays their views out.

# Key Types

  - Sidebar (sidebar.go) - Navigation list with sections. Collapsible and
    resizable between MinSidebarWidth and MaxSidebarWidth.
  - StatusBar (statusbar.go) - Bottom line with the active tool, the offline
    badge, the last result status and key hints.
  - CodeBlock (codeblock.go) - Chroma-highlighted output with line numbers.
  - DiffViewer (diff_viewer.go) - Numbered hunks for line diffs, inline
    markup for word diffs, with scrolling.

# Usage

All components take a *styles.Theme and must be given the new one after a
theme toggle:

	theme := styles.NewTheme(styles.ModeDark)
	bar := components.NewStatusBar(theme)
	bar.Width = 100
	bar.Tool = "Regex"
	view := bar.View()
*/
package components
