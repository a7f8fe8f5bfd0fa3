// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// schema_cmd.go - schema command.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/schema"
)

func newSchemaCmd(a *App) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:   "schema <schema-file> [data-file]",
		Short: "Validate JSON or YAML data against a JSON Schema",
		Long: `Validate JSON or YAML data against a JSON Schema.

Data comes from data-file, --file or stdin. A $ref may point within the
schema; refs to other documents are refused and nothing is ever fetched.`,
		Example: `  toolbench schema user.schema.json user.json
  cat user.yaml | toolbench schema user.schema.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaText, err := readFile(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				if f.File != "" {
					return NewValidationError("--file", f.File, "data-file was already given")
				}
				f.File = args[1]
			}
			return a.runTool(cmd, nil, &f, "toolbench schema schema.json data.json", func(input string) (output, error) {
				res := schema.Validate(input, schemaText)
				if res.Error != nil {
					return output{}, toolError(cmd, *res.Error)
				}
				if !res.Validated {
					return output{}, ErrMissingInput("toolbench schema schema.json data.json")
				}
				return output{Data: res, Text: renderSchemaResult(res)}, nil
			})
		},
	}
	addIOFlags(cmd, &f)
	return cmd
}

func renderSchemaResult(res schema.Result) string {
	if res.Valid {
		return RenderStatus("valid") + " " + fmt.Sprintf("%s data matches the %s schema", strings.ToUpper(res.DataFormat), strings.ToUpper(res.SchemaFormat))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d validation error(s)\n", RenderStatus("invalid"), len(res.Errors))
	for _, issue := range res.Errors {
		fmt.Fprintf(&sb, "  %s %s\n", TitleStyle.Render(issue.Path), issue.Message)
	}
	return sb.String()
}
