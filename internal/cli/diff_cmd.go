// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// diff_cmd.go - diff command.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/diff"
)

// diffData is the --json payload of the diff command.
type diffData struct {
	Mode    string        `json:"mode"`
	Changes []diff.Change `json:"changes"`
	Stats   diff.Stats    `json:"stats"`
	Unified string        `json:"unified,omitempty"`
}

func newDiffCmd(a *App) *cobra.Command {
	var (
		words   bool
		unified bool
		literal bool
		copyOut bool
	)
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two files (or two strings with --text)",
		Example: `  toolbench diff before.txt after.txt
  toolbench diff --unified a.conf b.conf
  toolbench diff --words --text "the quick fox" "the slow fox"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if words && unified {
				return NewValidationError("--unified", "", "cannot be combined with --words")
			}

			oldName, newName := args[0], args[1]
			oldText, newText := args[0], args[1]
			if literal {
				oldName, newName = "a", "b"
			} else {
				var err error
				if oldText, err = readFile(oldName); err != nil {
					return err
				}
				if newText, err = readFile(newName); err != nil {
					return err
				}
			}

			mode := diff.ModeLines
			if words {
				mode = diff.ModeWords
			}
			changes := diff.Compute(oldText, newText, mode)
			stats := diff.ComputeStats(changes, mode)
			a.Logger.Debug("diff computed", "mode", mode, "changes", len(changes))

			data := diffData{Mode: mode.String(), Changes: changes, Stats: stats}
			var text string
			switch {
			case !diff.HasChanges(changes):
				text = DimStyle.Render("No differences")
			case unified:
				data.Unified = diff.Unified(oldName, newName, changes)
				text = colorUnified(data.Unified)
			case words:
				text = renderWordDiff(changes) + "\n" + DimStyle.Render(diff.Summary(stats))
			default:
				text = renderLineDiff(changes) + DimStyle.Render(diff.Summary(stats))
			}

			if err := a.emit(cmd, output{Data: data, Text: text}); err != nil {
				return err
			}
			if copyOut {
				if data.Unified == "" {
					data.Unified = diff.Unified(oldName, newName, changes)
				}
				a.copyOutput(data.Unified)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&words, "words", false, "Compare word by word")
	cmd.Flags().BoolVarP(&unified, "unified", "u", false, "Print a unified diff")
	cmd.Flags().BoolVarP(&literal, "text", "t", false, "Treat the arguments as text instead of file paths")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the unified diff to the clipboard")
	return cmd
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// renderLineDiff prints every line with a +, - or space prefix.
func renderLineDiff(changes []diff.Change) string {
	var sb strings.Builder
	for _, line := range diff.Lines(changes) {
		text := line.Type.Prefix() + " " + line.Content
		switch line.Type {
		case diff.DiffLineAdded:
			text = AddedStyle.Render(text)
		case diff.DiffLineRemoved:
			text = RemovedStyle.Render(text)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderWordDiff prints the text inline with [-removed-] and {+added+}
// markers.
func renderWordDiff(changes []diff.Change) string {
	var sb strings.Builder
	for _, c := range changes {
		switch {
		case c.Added:
			sb.WriteString(AddedStyle.Render("{+" + c.Value + "+}"))
		case c.Removed:
			sb.WriteString(RemovedStyle.Render("[-" + c.Value + "-]"))
		default:
			sb.WriteString(c.Value)
		}
	}
	return sb.String()
}

func colorUnified(u string) string {
	lines := strings.Split(strings.TrimSuffix(u, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = TitleStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = DimStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = AddedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = RemovedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
