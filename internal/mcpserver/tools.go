// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jeranaias/toolbench/internal/codec"
	"github.com/jeranaias/toolbench/internal/convert"
	"github.com/jeranaias/toolbench/internal/cron"
	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/epoch"
	"github.com/jeranaias/toolbench/internal/jwt"
	"github.com/jeranaias/toolbench/internal/regex"
	"github.com/jeranaias/toolbench/internal/schema"
)

// Tool names.
const (
	ToolEncode         = "encode"
	ToolDecode         = "decode"
	ToolConvert        = "convert"
	ToolDiff           = "diff"
	ToolJWTDecode      = "jwt_decode"
	ToolEpochToDate    = "epoch_to_date"
	ToolDateToEpoch    = "date_to_epoch"
	ToolCronExplain    = "cron_explain"
	ToolRegexMatch     = "regex_match"
	ToolSchemaValidate = "schema_validate"
)

// Conversion directions accepted by the convert tool.
var conversions = []string{"json2yaml", "yaml2json", "csv2json", "json2csv", "prettify_json", "prettify_yaml", "minify_json", "query"}

func (s *Server) registerTools() {
	codecs := codec.Names()

	s.mcpServer.AddTool(mcp.NewTool(ToolEncode,
		mcp.WithDescription("Encode text with base64, base64url, url, hex or unicode escapes."),
		mcp.WithString("codec", mcp.Required(), mcp.Enum(codecs...), mcp.Description("Encoding to apply")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Text to encode")),
	), s.handleEncode)

	s.mcpServer.AddTool(mcp.NewTool(ToolDecode,
		mcp.WithDescription("Decode text. Use codec \"auto\" to list every plausible decoding."),
		mcp.WithString("codec", mcp.Required(), mcp.Enum(append(codecs, "auto")...), mcp.Description("Encoding to reverse")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Encoded text")),
	), s.handleDecode)

	s.mcpServer.AddTool(mcp.NewTool(ToolConvert,
		mcp.WithDescription("Convert or reformat JSON, YAML and CSV, or run a JMESPath query."),
		mcp.WithString("conversion", mcp.Required(), mcp.Enum(conversions...), mcp.Description("What to do with the input")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Source document")),
		mcp.WithNumber("indent", mcp.Description("Indent width; JSON 0-10, YAML 2-9")),
		mcp.WithString("delimiter", mcp.Description(`CSV delimiter, one character or \t`)),
		mcp.WithBoolean("header", mcp.Description("CSV has (or should get) a header row")),
		mcp.WithString("expression", mcp.Description("JMESPath expression for the query conversion")),
	), s.handleConvert)

	s.mcpServer.AddTool(mcp.NewTool(ToolDiff,
		mcp.WithDescription("Compare two texts line by line or word by word."),
		mcp.WithString("old", mcp.Required(), mcp.Description("Original text")),
		mcp.WithString("new", mcp.Required(), mcp.Description("Changed text")),
		mcp.WithString("mode", mcp.Enum("lines", "words"), mcp.Description("Tokenization, default lines")),
		mcp.WithBoolean("unified", mcp.Description("Also return a unified diff (lines mode only)")),
	), s.handleDiff)

	s.mcpServer.AddTool(mcp.NewTool(ToolJWTDecode,
		mcp.WithDescription("Decode a JWT header and payload. The signature is never verified."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Compact JWT")),
	), s.handleJWT)

	s.mcpServer.AddTool(mcp.NewTool(ToolEpochToDate,
		mcp.WithDescription("Convert a Unix timestamp to local, UTC and ISO 8601 dates."),
		mcp.WithNumber("timestamp", mcp.Required(), mcp.Description("Seconds or milliseconds since 1970")),
		mcp.WithString("unit", mcp.Enum("auto", "seconds", "milliseconds"), mcp.Description("Default auto")),
		mcp.WithString("timezone", mcp.Description("IANA zone for the local rendering")),
	), s.handleEpochToDate)

	s.mcpServer.AddTool(mcp.NewTool(ToolDateToEpoch,
		mcp.WithDescription("Parse a date string into Unix seconds and milliseconds."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in almost any common format")),
		mcp.WithString("timezone", mcp.Description("IANA zone for dates without an offset")),
	), s.handleDateToEpoch)

	s.mcpServer.AddTool(mcp.NewTool(ToolCronExplain,
		mcp.WithDescription("Explain a 5 or 6 field cron expression in English."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("minute hour day-of-month month day-of-week [year]")),
	), s.handleCron)

	s.mcpServer.AddTool(mcp.NewTool(ToolRegexMatch,
		mcp.WithDescription("Run a regular expression over text and list the matches."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Regular expression")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to search")),
		mcp.WithString("flags", mcp.Description("Any of g, i, m, s")),
	), s.handleRegex)

	s.mcpServer.AddTool(mcp.NewTool(ToolSchemaValidate,
		mcp.WithDescription("Validate JSON or YAML data against a JSON Schema. Only refs within the schema resolve."),
		mcp.WithString("data", mcp.Required(), mcp.Description("Document to validate")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("JSON Schema as JSON or YAML")),
	), s.handleSchema)
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleEncode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("codec")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, ok := codec.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown codec %q", name)), nil
	}
	out := c.Encode(input)
	return mcp.NewToolResultStructured(codec.Result{Success: true, Output: out}, out), nil
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("codec")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if name == "auto" {
		candidates := codec.Detect(input)
		if len(candidates) == 0 {
			return mcp.NewToolResultError("no known encoding decodes this input"), nil
		}
		return mcp.NewToolResultStructured(map[string]any{"candidates": candidates}, candidates[0].Output), nil
	}

	c, ok := codec.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown codec %q", name)), nil
	}
	res := c.Decode(input)
	if !res.Success {
		return mcp.NewToolResultError(res.Error), nil
	}
	return mcp.NewToolResultStructured(res, res.Output), nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversion, err := request.RequireString("conversion")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	indent := int(request.GetFloat("indent", float64(s.cfg.Format.Indent)))
	yamlIndent := indent
	if yamlIndent < convert.MinYAMLIndent {
		yamlIndent = convert.DefaultIndent
	}
	delimiter := request.GetString("delimiter", s.cfg.Format.CSVDelimiter)
	header := request.GetBool("header", s.cfg.Format.CSVHeader)

	var res convert.Result
	switch conversion {
	case "json2yaml":
		res = convert.JSONToYAML(input, yamlIndent)
	case "yaml2json":
		res = convert.YAMLToJSON(input, indent)
	case "csv2json":
		res = convert.CSVToJSON(input, delimiter, header)
	case "json2csv":
		res = convert.JSONToCSV(input, delimiter, header)
	case "prettify_json":
		res = convert.PrettifyJSON(input, indent)
	case "prettify_yaml":
		res = convert.PrettifyYAML(input, yamlIndent)
	case "minify_json":
		res = convert.MinifyJSON(input)
	case "query":
		res = convert.Query(input, request.GetString("expression", ""))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown conversion %q, expected one of %s",
			conversion, strings.Join(conversions, ", "))), nil
	}

	s.logger.Debug("convert", "conversion", conversion, "success", res.Success)
	if !res.Success {
		return mcp.NewToolResultError(res.ErrorString()), nil
	}
	return mcp.NewToolResultStructured(res, res.Output), nil
}

// DiffResult is the structured output of the diff tool.
type DiffResult struct {
	Changes []diff.Change `json:"changes"`
	Stats   diff.Stats    `json:"stats"`
	Unified string        `json:"unified,omitempty"`
}

func (s *Server) handleDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	oldText, okOld := args["old"].(string)
	newText, okNew := args["new"].(string)
	if !okOld || !okNew {
		return mcp.NewToolResultError("old and new are required strings"), nil
	}
	mode, err := diff.ParseMode(request.GetString("mode", "lines"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	changes := diff.Compute(oldText, newText, mode)
	res := DiffResult{Changes: changes, Stats: diff.ComputeStats(changes, mode)}
	text := diff.Summary(res.Stats)
	if mode == diff.ModeLines && request.GetBool("unified", false) {
		res.Unified = diff.Unified("a", "b", changes)
		text = res.Unified
	}
	return mcp.NewToolResultStructured(res, text), nil
}

func (s *Server) handleJWT(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := request.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := jwt.Decode(token)
	if res.Error != nil {
		return mcp.NewToolResultError(*res.Error), nil
	}
	if !res.Valid {
		return mcp.NewToolResultError("token is empty"), nil
	}
	now := time.Now()
	out := map[string]any{
		"header":    res.Decoded.Header,
		"payload":   res.Decoded.Payload,
		"signature": res.Decoded.Signature,
		"expired":   jwt.IsExpired(res.Decoded.Payload, now),
		"claims":    jwt.ClaimTimes(res.Decoded.Payload, now),
	}
	return mcp.NewToolResultStructured(out, res.Decoded.PayloadJSON), nil
}

func (s *Server) converter(request mcp.CallToolRequest) (*epoch.Converter, error) {
	c := epoch.New()
	if tz := request.GetString("timezone", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q", tz)
		}
		c.Location = loc
	}
	return c, nil
}

func (s *Server) handleEpochToDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireFloat("timestamp")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := epoch.ParseUnit(request.GetString("unit", s.cfg.Format.EpochUnit), value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.converter(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := c.EpochToDate(value, unit)
	if !res.Valid {
		return mcp.NewToolResultError(res.Error), nil
	}
	return mcp.NewToolResultStructured(res, res.ISO), nil
}

func (s *Server) handleDateToEpoch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.converter(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := c.DateToEpoch(date)
	if !res.Valid {
		return mcp.NewToolResultError(res.Error), nil
	}
	return mcp.NewToolResultStructured(res, fmt.Sprintf("%d", res.Seconds)), nil
}

func (s *Server) handleCron(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := cron.Parse(expr)
	if res.Error != nil {
		return mcp.NewToolResultError(*res.Error), nil
	}
	if !res.Valid {
		return mcp.NewToolResultError("expression is empty"), nil
	}
	return mcp.NewToolResultStructured(res, *res.Explanation), nil
}

func (s *Server) handleRegex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := request.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text is a required string"), nil
	}

	m := regex.NewMatcher(time.Duration(s.cfg.Regex.TimeoutMS) * time.Millisecond)
	res := m.Match(pattern, request.GetString("flags", s.cfg.Regex.Flags), text)
	if !res.Valid {
		return mcp.NewToolResultError(res.Error), nil
	}
	return mcp.NewToolResultStructured(res, fmt.Sprintf("%d match(es)", len(res.Matches))), nil
}

func (s *Server) handleSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := request.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sch, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := schema.Validate(data, sch)
	if res.Error != nil {
		return mcp.NewToolResultError(*res.Error), nil
	}
	text := "valid"
	if !res.Valid {
		text = fmt.Sprintf("%d validation error(s)", len(res.Errors))
	}
	return mcp.NewToolResultStructured(res, text), nil
}
