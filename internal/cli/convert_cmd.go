// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// convert_cmd.go - convert, pretty, minify and query commands.

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/convert"
)

// Conversion directions accepted by the convert command.
var conversions = []string{"json2yaml", "yaml2json", "csv2json", "json2csv"}

// formatFlags are the tunables shared by the conversion commands. Unset
// flags fall back to the config file.
type formatFlags struct {
	Indent    int
	Delimiter string
	NoHeader  bool
}

func addFormatFlags(cmd *cobra.Command, f *formatFlags, csv bool) {
	cmd.Flags().IntVar(&f.Indent, "indent", -1, "Indent width (JSON 0-10, YAML 2-9; default from config)")
	if csv {
		cmd.Flags().StringVar(&f.Delimiter, "delimiter", "", `CSV delimiter, one character or \t (default from config)`)
		cmd.Flags().BoolVar(&f.NoHeader, "no-header", false, "CSV has no header row / omit the header row")
	}
}

func (f formatFlags) jsonIndent(cfg *config.Config) int {
	if f.Indent >= 0 {
		return f.Indent
	}
	return cfg.Format.Indent
}

func (f formatFlags) yamlIndent(cfg *config.Config) int {
	if f.Indent >= 0 {
		return f.Indent
	}
	if cfg.Format.Indent < convert.MinYAMLIndent {
		return convert.DefaultIndent
	}
	return cfg.Format.Indent
}

func (f formatFlags) delimiter(cfg *config.Config) string {
	if f.Delimiter != "" {
		return f.Delimiter
	}
	return cfg.Format.CSVDelimiter
}

func (f formatFlags) header(cfg *config.Config) bool {
	if f.NoHeader {
		return false
	}
	return cfg.Format.CSVHeader
}

// convertResult turns a convert.Result into command output.
func convertResult(cmd *cobra.Command, res convert.Result) (output, error) {
	if !res.Success {
		return output{}, toolError(cmd, res.ErrorString())
	}
	return output{Data: res, Text: res.Output}, nil
}

// =============================================================================
// CONVERT
// =============================================================================

func newConvertCmd(a *App) *cobra.Command {
	var (
		f  ioFlags
		ff formatFlags
	)
	cmd := &cobra.Command{
		Use:   "convert <" + strings.Join(conversions, "|") + "> [input]",
		Short: "Convert between JSON, YAML and CSV",
		Example: `  toolbench convert json2yaml '{"a":[1,2]}'
  toolbench convert csv2json --file people.csv --delimiter ';'
  cat data.yaml | toolbench convert yaml2json --indent 4`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: conversions,
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := strings.ToLower(args[0])
			var run func(string) convert.Result
			switch direction {
			case "json2yaml":
				run = func(in string) convert.Result { return convert.JSONToYAML(in, ff.yamlIndent(a.Config)) }
			case "yaml2json":
				run = func(in string) convert.Result { return convert.YAMLToJSON(in, ff.jsonIndent(a.Config)) }
			case "csv2json":
				run = func(in string) convert.Result {
					return convert.CSVToJSON(in, ff.delimiter(a.Config), ff.header(a.Config))
				}
			case "json2csv":
				run = func(in string) convert.Result {
					return convert.JSONToCSV(in, ff.delimiter(a.Config), ff.header(a.Config))
				}
			default:
				return NewValidationErrorWithExample("conversion", args[0],
					"must be one of "+strings.Join(conversions, ", "), "toolbench convert json2yaml '{\"a\":1}'")
			}
			return a.runTool(cmd, args[1:], &f, "toolbench convert "+direction+" <input>", func(input string) (output, error) {
				return convertResult(cmd, run(input))
			})
		},
	}
	addIOFlags(cmd, &f)
	addFormatFlags(cmd, &ff, true)
	return cmd
}

// =============================================================================
// PRETTY / MINIFY
// =============================================================================

func newPrettyCmd(a *App) *cobra.Command {
	var (
		f  ioFlags
		ff formatFlags
	)
	cmd := &cobra.Command{
		Use:   "pretty <json|yaml> [input]",
		Short: "Re-indent JSON or YAML",
		Example: `  toolbench pretty json '{"b":1,"a":[true,null]}'
  toolbench pretty yaml --file config.yaml --indent 4`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"json", "yaml"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := convert.ParseFormat(strings.ToLower(args[0]))
			if err != nil || format == convert.FormatCSV {
				return NewValidationErrorWithExample("format", args[0], "must be json or yaml", "toolbench pretty json '{}'")
			}
			return a.runTool(cmd, args[1:], &f, "toolbench pretty "+string(format)+" <input>", func(input string) (output, error) {
				if format == convert.FormatYAML {
					return convertResult(cmd, convert.PrettifyYAML(input, ff.yamlIndent(a.Config)))
				}
				return convertResult(cmd, convert.PrettifyJSON(input, ff.jsonIndent(a.Config)))
			})
		},
	}
	addIOFlags(cmd, &f)
	addFormatFlags(cmd, &ff, false)
	return cmd
}

func newMinifyCmd(a *App) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:     "minify [json]",
		Short:   "Strip insignificant whitespace from JSON",
		Example: `  toolbench minify --file big.json --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTool(cmd, args, &f, "toolbench minify '{ \"a\": 1 }'", func(input string) (output, error) {
				return convertResult(cmd, convert.MinifyJSON(input))
			})
		},
	}
	addIOFlags(cmd, &f)
	return cmd
}

// =============================================================================
// QUERY
// =============================================================================

func newQueryCmd(a *App) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:   "query <expression> [input]",
		Short: "Run a JMESPath query over JSON or YAML",
		Example: `  toolbench query 'items[?price > ` + "`10`" + `].name' --file cart.json
  kubectl get pods -o yaml | toolbench query 'items[].metadata.name'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := args[0]
			return a.runTool(cmd, args[1:], &f, "toolbench query 'a.b' '{\"a\":{\"b\":1}}'", func(input string) (output, error) {
				return convertResult(cmd, convert.Query(input, expr))
			})
		},
	}
	addIOFlags(cmd, &f)
	return cmd
}
