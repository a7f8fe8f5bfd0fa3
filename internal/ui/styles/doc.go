// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the toolbench shell.

Every color is a Lip Gloss AdaptiveColor, so one palette serves both dark and
light terminals. The Theme resolves which half of each pair is used and can
be flipped at runtime.

# Color System (colors.go)

  - Purple - Primary accent, selected sidebar item, focused borders
  - Cyan - Brand color, titles, regex match highlights
  - Emerald - Valid results, added diff lines, the offline badge
  - Amber - Warnings, expiry badges
  - Rose - Errors, removed diff lines

Surface and text colors layer the panels:

	Surface    - Main background
	SurfaceDim - Sidebar and status bar
	Overlay    - Borders and separators
	TextMuted  - Hints and placeholders

# Theme (theme.go)

	theme := styles.NewTheme(styles.ModeAuto)
	theme.SetSize(width, height)
	theme.Toggle() // dark <-> light

# Key Types

  - Mode: auto, dark or light, as stored in ui.theme
  - Theme: resolved styles for the sidebar, panels, inputs and status bar
  - LayoutMode: narrow, medium or wide, from the terminal width

# Accessibility

Status text always carries an ASCII indicator ([OK], [X], [!]) next to the
color, see StatusIndicators.
*/
package styles
