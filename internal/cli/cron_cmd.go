// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cron_cmd.go - cron command.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/cron"
)

func newCronCmd(a *App) *cobra.Command {
	var (
		f        ioFlags
		examples bool
	)
	cmd := &cobra.Command{
		Use:   "cron <expression>",
		Short: "Explain a cron expression in plain English",
		Example: `  toolbench cron "*/15 9-17 * * 1-5"
  toolbench cron 0 0 1 1 "*" 2030
  toolbench cron --examples`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if examples {
				return a.emit(cmd, cronExamples())
			}
			return a.runTool(cmd, args, &f, `toolbench cron "0 9 * * 1-5"`, func(input string) (output, error) {
				res := cron.Parse(input)
				if res.Error != nil {
					return output{}, toolError(cmd, *res.Error)
				}
				if !res.Valid {
					return output{}, ErrMissingInput(`toolbench cron "0 9 * * 1-5"`)
				}

				var sb strings.Builder
				sb.WriteString(*res.Explanation)
				sb.WriteString("\n\n")
				for i, part := range res.Parts {
					name := "Year"
					if i < len(cron.FieldNames) {
						name = cron.FieldNames[i]
					}
					fmt.Fprintf(&sb, "%s %s\n", RenderLabel(name), part)
				}
				return output{Data: res, Text: sb.String(), Copy: *res.Explanation}, nil
			})
		},
	}
	cmd.Flags().BoolVar(&examples, "examples", false, "List example expressions")
	addIOFlags(cmd, &f)
	return cmd
}

func cronExamples() output {
	list := cron.Examples()
	var sb strings.Builder
	for _, ex := range list {
		fmt.Fprintf(&sb, "%-16s %s\n", ex.Expression, DimStyle.Render(ex.Description))
	}
	return output{Data: list, Text: sb.String()}
}
