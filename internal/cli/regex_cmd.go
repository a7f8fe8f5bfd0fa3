// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// regex_cmd.go - regex command.

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/regex"
)

func newRegexCmd(a *App) *cobra.Command {
	var (
		f       ioFlags
		flags   string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "regex <pattern> [text...]",
		Short: "Test a regular expression against text",
		Example: `  toolbench regex '(\d+)-(\d+)' "call 555-1234 or 555-9876"
  toolbench regex --flags gi 'error' --file app.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]
			if !cmd.Flags().Changed("flags") {
				flags = a.Config.Regex.Flags
			}
			if _, err := regex.ParseFlags(flags); err != nil {
				return NewValidationErrorWithExample("--flags", flags, "use any of g, i, m, s", "--flags gi")
			}
			if timeout <= 0 {
				timeout = time.Duration(a.Config.Regex.TimeoutMS) * time.Millisecond
			}
			m := regex.NewMatcher(timeout)

			return a.runTool(cmd, args[1:], &f, "toolbench regex '\\d+' 'abc 123'", func(input string) (output, error) {
				res := m.Match(pattern, flags, input)
				if !res.Valid {
					reason := res.Error
					if res.Warning != "" {
						reason += ". " + res.Warning
					}
					return output{}, toolError(cmd, reason)
				}
				return output{Data: res, Text: renderMatches(input, res), Copy: joinMatches(res.Matches)}, nil
			})
		},
	}
	cmd.Flags().StringVar(&flags, "flags", "g", "Flags: g (global), i (ignore case), m (multiline), s (dot matches newline)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-match time limit (default from config)")
	addIOFlags(cmd, &f)
	return cmd
}

func renderMatches(text string, res regex.Result) string {
	var sb strings.Builder
	if res.Warning != "" {
		sb.WriteString(WarningStyle.Render(res.Warning))
		sb.WriteString("\n\n")
	}
	if len(res.Matches) == 0 {
		sb.WriteString(DimStyle.Render("No matches"))
		return sb.String()
	}

	for _, seg := range regex.Highlight(text, res.Matches) {
		if seg.IsMatch {
			sb.WriteString(MatchStyle.Render(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
	}
	sb.WriteString("\n\n")

	noun := "matches"
	if len(res.Matches) == 1 {
		noun = "match"
	}
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("%d %s", len(res.Matches), noun)))
	sb.WriteString("\n")
	for i, m := range res.Matches {
		fmt.Fprintf(&sb, "%d. %q at %d", i+1, m.FullMatch, m.Index)
		for g, group := range m.Groups {
			fmt.Fprintf(&sb, "\n   $%d = %q", g+1, group)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func joinMatches(matches []regex.Match) string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.FullMatch
	}
	return strings.Join(out, "\n")
}
