// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/toolbench/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock renders tool output (JSON, YAML, CSV) with syntax highlighting.
type CodeBlock struct {
	Language    string
	Code        string
	MaxWidth    int
	MaxLines    int
	LineNumbers bool
	Plain       bool // skip highlighting, e.g. when colors are off
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language:    language,
		Code:        code,
		MaxWidth:    80,
		LineNumbers: true,
	}
}

// Render renders the code block with theme's chroma style.
func (c CodeBlock) Render(theme *styles.Theme) string {
	code := strings.TrimRight(c.Code, "\n")

	var lines []string
	if c.Plain {
		lines = strings.Split(code, "\n")
	} else {
		lines = strings.Split(Highlight(code, c.Language, theme.ChromaStyle()), "\n")
	}

	hidden := 0
	if c.MaxLines > 0 && len(lines) > c.MaxLines {
		hidden = len(lines) - c.MaxLines
		lines = lines[:c.MaxLines]
	}

	rendered := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		if c.LineNumbers {
			// Line already carries chroma escapes, no extra styling
			line = theme.LineNum.Render(toStr(i+1)) + line
		}
		rendered = append(rendered, line)
	}
	if hidden > 0 {
		rendered = append(rendered, theme.Muted.Render("... "+fmtNumber(hidden)+" more lines"))
	}

	content := strings.Join(rendered, "\n")
	if c.Language != "" {
		content = theme.Badge.Render(c.Language) + "\n" + content
	}

	maxWidth := c.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}
	return theme.CodeBlock.MaxWidth(maxWidth).Render(content)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// Highlight applies chroma highlighting for a terminal. It returns code
// unchanged when tokenizing or formatting fails.
func Highlight(code, language, style string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	chromaStyle := chromaStyles.Get(style)
	if chromaStyle == nil {
		chromaStyle = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, chromaStyle, iterator); err != nil {
		return code
	}
	return buf.String()
}

// DetectLanguage guesses the chroma lexer name for code, or "" when unknown.
func DetectLanguage(code string) string {
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "json"
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return ""
}
