// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/toolbench/internal/codec"
	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/convert"
	"github.com/jeranaias/toolbench/internal/cron"
	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/epoch"
	"github.com/jeranaias/toolbench/internal/jwt"
	"github.com/jeranaias/toolbench/internal/regex"
	"github.com/jeranaias/toolbench/internal/schema"
	"github.com/jeranaias/toolbench/internal/ui/components"
)

// =============================================================================
// TOOL DEFINITIONS
// =============================================================================

// field is one text input of a tool.
type field struct {
	Label       string
	Placeholder string
	SingleLine  bool
}

// option is a small set of values cycled with left/right.
type option struct {
	Key    string
	Label  string
	Values []string
	index  int
}

func newOption(key, label string, values []string, def string) option {
	o := option{Key: key, Label: label, Values: values}
	for i, v := range values {
		if v == def {
			o.index = i
		}
	}
	return o
}

// Value returns the selected value.
func (o *option) Value() string {
	return o.Values[o.index]
}

// Cycle moves the selection by delta, wrapping.
func (o *option) Cycle(delta int) {
	n := len(o.Values)
	o.index = ((o.index+delta)%n + n) % n
}

// env is what tools may read besides their inputs.
type env struct {
	cfg     *config.Config
	now     func() time.Time
	matcher *regex.Matcher
}

// tool is one sidebar entry with inputs.
type tool struct {
	ID          string
	Title       string
	Section     string
	Description string
	Fields      []field
	Options     []option
	run         func(in []string, opts map[string]string, e *env) result
}

// optionValues maps option keys to their selected values.
func (t *tool) optionValues() map[string]string {
	out := make(map[string]string, len(t.Options))
	for i := range t.Options {
		out[t.Options[i].Key] = t.Options[i].Value()
	}
	return out
}

// Run evaluates the tool on in. Empty inputs give an empty result.
func (t *tool) Run(in []string, e *env) result {
	empty := true
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			empty = false
		}
	}
	if empty {
		return result{}
	}
	return t.run(in, t.optionValues(), e)
}

// =============================================================================
// RESULTS
// =============================================================================

// pair is a labelled value in the result panel.
type pair struct {
	Label string
	Value string
	Bad   bool
}

// result is everything the output panel can show for one run.
type result struct {
	Status  components.Status
	Message string // status bar summary
	Error   string
	Warning string
	Badge   string
	BadgeOK bool

	Output string // highlighted block, also the copy target
	Lang   string
	Copy   string // overrides Output as the copy target
	Pairs  []pair

	Changes  []diff.Change
	DiffMode diff.Mode
	IsDiff   bool

	Segments []regex.Segment
	Matches  []regex.Match
}

// copyText is what ctrl+y puts on the clipboard.
func (r result) copyText() string {
	if r.Copy != "" {
		return r.Copy
	}
	return r.Output
}

func failed(msg string) result {
	return result{Status: components.StatusError, Error: msg, Message: msg}
}

func fromConvert(res convert.Result, lang string) result {
	if !res.Success {
		return failed(res.ErrorString())
	}
	return result{Status: components.StatusOK, Output: res.Output, Lang: lang, Message: "Converted"}
}

// =============================================================================
// TOOL CATALOG
// =============================================================================

// Section names, in sidebar order.
const (
	sectionText       = "Text Tools"
	sectionFormatters = "Formatters"
	sectionDecoders   = "Decoders"
	sectionConverters = "Converters"
	sectionTime       = "Date & Time"
)

// newTools builds the tool catalog with defaults from cfg.
func newTools(cfg *config.Config) []*tool {
	indent := strconv.Itoa(cfg.Format.Indent)
	indents := []string{"2", "4", "8"}
	if cfg.Format.Indent != 2 && cfg.Format.Indent != 4 && cfg.Format.Indent != 8 {
		indents = append(indents, indent)
	}
	delim := cfg.Format.CSVDelimiter
	if delim == "\t" {
		delim = "tab"
	}
	delims := []string{",", ";", "tab", "|"}
	if !contains(delims, delim) {
		delims = append(delims, delim)
	}
	header := "on"
	if !cfg.Format.CSVHeader {
		header = "off"
	}
	unit := cfg.Format.EpochUnit
	if unit == "" || unit == "auto" {
		unit = "seconds"
	}
	flags := cfg.Regex.Flags
	flagSet := []string{"g", "gi", "gm", "gim", "gs", "none"}
	if flags == "" {
		flags = "none"
	}
	if !contains(flagSet, flags) {
		flagSet = append(flagSet, flags)
	}

	return []*tool{
		{
			ID: "diff", Title: "Diff Checker", Section: sectionText,
			Description: "Compare two texts and highlight differences",
			Fields: []field{
				{Label: "Original", Placeholder: "Paste the original text"},
				{Label: "Modified", Placeholder: "Paste the modified text"},
			},
			Options: []option{newOption("mode", "Compare", []string{"lines", "words"}, "lines")},
			run:     runDiff,
		},
		{
			ID: "regex", Title: "Regex Tester", Section: sectionText,
			Description: "Test regular expressions with real-time matching",
			Fields: []field{
				{Label: "Pattern", Placeholder: `\b\w+@\w+\.\w+\b`, SingleLine: true},
				{Label: "Test string", Placeholder: "Text to search"},
			},
			Options: []option{newOption("flags", "Flags", flagSet, flags)},
			run:     runRegex,
		},
		{
			ID: "prettify", Title: "JSON/YAML Prettifier", Section: sectionFormatters,
			Description: "Format and beautify JSON or YAML data",
			Fields:      []field{{Label: "Input", Placeholder: `{"name": "toolbench"}`}},
			Options: []option{
				newOption("format", "Format", []string{"json", "yaml"}, "json"),
				newOption("action", "Action", []string{"prettify", "minify"}, "prettify"),
				newOption("indent", "Indent", indents, indent),
			},
			run: runPrettify,
		},
		{
			ID: "query", Title: "JSON Query", Section: sectionFormatters,
			Description: "Run a JMESPath expression against JSON or YAML",
			Fields: []field{
				{Label: "Expression", Placeholder: "items[?active].name", SingleLine: true},
				{Label: "Input", Placeholder: `{"items": []}`},
			},
			run: runQuery,
		},
		{
			ID: "schema", Title: "Schema Validator", Section: sectionFormatters,
			Description: "Validate JSON/YAML against schemas",
			Fields: []field{
				{Label: "Schema", Placeholder: `{"type": "object", "required": ["name"]}`},
				{Label: "Data", Placeholder: `{"name": "toolbench"}`},
			},
			run: runSchema,
		},
		{
			ID: "jwt", Title: "JWT Decoder", Section: sectionDecoders,
			Description: "Decode and inspect JWT tokens",
			Fields:      []field{{Label: "Token", Placeholder: "eyJhbGciOi..."}},
			run:         runJWT,
		},
		{
			ID: "decode", Title: "String Decoder", Section: sectionDecoders,
			Description: "Decode Base64, URL, Hex, and more",
			Fields:      []field{{Label: "Input", Placeholder: "SGVsbG8gV29ybGQ="}},
			Options: []option{
				newOption("mode", "Mode", []string{"decode", "encode"}, "decode"),
				newOption("codec", "Encoding", codec.Names(), "base64"),
			},
			run: runCodec,
		},
		{
			ID: "convert", Title: "JSON/YAML Converter", Section: sectionConverters,
			Description: "Convert between JSON and YAML formats",
			Fields:      []field{{Label: "Input", Placeholder: `{"name": "toolbench"}`}},
			Options: []option{
				newOption("direction", "Direction", []string{"json2yaml", "yaml2json"}, "json2yaml"),
				newOption("indent", "Indent", indents, indent),
			},
			run: runConvert,
		},
		{
			ID: "csv", Title: "CSV/JSON Converter", Section: sectionConverters,
			Description: "Convert between CSV and JSON formats",
			Fields:      []field{{Label: "Input", Placeholder: "name,age\nAda,36"}},
			Options: []option{
				newOption("direction", "Direction", []string{"csv2json", "json2csv"}, "csv2json"),
				newOption("delimiter", "Delimiter", delims, delim),
				newOption("header", "Header", []string{"on", "off"}, header),
			},
			run: runCSV,
		},
		{
			ID: "epoch", Title: "Epoch Converter", Section: sectionTime,
			Description: "Convert timestamps to human-readable dates",
			Fields: []field{
				{Label: "Epoch timestamp", Placeholder: "1700000000", SingleLine: true},
				{Label: "Date", Placeholder: "2024-01-15 10:30", SingleLine: true},
			},
			Options: []option{newOption("unit", "Unit", []string{"seconds", "milliseconds"}, unit)},
			run:     runEpoch,
		},
		{
			ID: "cron", Title: "Cron Explainer", Section: sectionTime,
			Description: "Understand cron expressions in plain English",
			Fields:      []field{{Label: "Expression", Placeholder: "*/15 9-17 * * 1-5", SingleLine: true}},
			run:         runCron,
		},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// TOOL RUNNERS
// =============================================================================

func runDiff(in []string, opts map[string]string, _ *env) result {
	mode, err := diff.ParseMode(opts["mode"])
	if err != nil {
		return failed(err.Error())
	}
	changes := diff.Compute(in[0], in[1], mode)
	stats := diff.ComputeStats(changes, mode)
	r := result{
		Status:   components.StatusOK,
		IsDiff:   true,
		Changes:  changes,
		DiffMode: mode,
		Message:  diff.Summary(stats),
	}
	if !diff.HasChanges(changes) {
		r.Message = "No differences"
	}
	if mode == diff.ModeLines {
		r.Copy = diff.Unified("original", "modified", changes)
	}
	return r
}

func runRegex(in []string, opts map[string]string, e *env) result {
	pattern, text := in[0], in[1]
	if pattern == "" {
		return result{}
	}
	flags := opts["flags"]
	if flags == "none" {
		flags = ""
	}
	res := e.matcher.Match(pattern, flags, text)
	if !res.Valid {
		r := failed(res.Error)
		r.Warning = res.Warning
		return r
	}
	r := result{
		Status:   components.StatusOK,
		Warning:  res.Warning,
		Matches:  res.Matches,
		Segments: regex.Highlight(text, res.Matches),
	}
	if res.Warning != "" {
		r.Status = components.StatusWarning
	}
	switch len(res.Matches) {
	case 0:
		r.Message = "No matches"
	case 1:
		r.Message = "1 match"
	default:
		r.Message = fmt.Sprintf("%d matches", len(res.Matches))
	}
	var all []string
	for _, m := range res.Matches {
		all = append(all, m.FullMatch)
	}
	r.Copy = strings.Join(all, "\n")
	return r
}

func runPrettify(in []string, opts map[string]string, _ *env) result {
	indent, _ := strconv.Atoi(opts["indent"])
	switch {
	case opts["format"] == "yaml" && opts["action"] == "minify":
		// Minified YAML is flow-style JSON
		return fromConvert(convert.YAMLToJSON(in[0], 0), "json")
	case opts["format"] == "yaml":
		if indent < convert.MinYAMLIndent {
			indent = convert.DefaultIndent
		}
		return fromConvert(convert.PrettifyYAML(in[0], indent), "yaml")
	case opts["action"] == "minify":
		return fromConvert(convert.MinifyJSON(in[0]), "json")
	default:
		return fromConvert(convert.PrettifyJSON(in[0], indent), "json")
	}
}

func runQuery(in []string, _ map[string]string, _ *env) result {
	if strings.TrimSpace(in[0]) == "" || strings.TrimSpace(in[1]) == "" {
		return result{}
	}
	return fromConvert(convert.Query(in[1], in[0]), "json")
}

func runSchema(in []string, _ map[string]string, _ *env) result {
	res := schema.Validate(in[1], in[0])
	if res.Error != nil {
		return failed(*res.Error)
	}
	if !res.Validated {
		return result{}
	}
	desc := strings.ToUpper(res.DataFormat) + " data matches the " + strings.ToUpper(res.SchemaFormat) + " schema"
	if res.Valid {
		return result{Status: components.StatusOK, Badge: "VALID", BadgeOK: true, Message: desc}
	}
	r := result{
		Status:  components.StatusError,
		Badge:   "INVALID",
		Message: fmt.Sprintf("%d validation error(s)", len(res.Errors)),
	}
	var lines []string
	for _, issue := range res.Errors {
		r.Pairs = append(r.Pairs, pair{Label: issue.Path, Value: issue.Message, Bad: true})
		lines = append(lines, issue.Path+": "+issue.Message)
	}
	r.Copy = strings.Join(lines, "\n")
	return r
}

func runJWT(in []string, _ map[string]string, e *env) result {
	res := jwt.Decode(in[0])
	if res.Error != nil {
		return failed(*res.Error)
	}
	if !res.Valid {
		return result{}
	}
	d := res.Decoded
	now := e.now()
	conv := epoch.New()
	conv.Clock = e.now

	r := result{
		Status:  components.StatusOK,
		Output:  "// header\n" + prettyOrRaw(d.HeaderJSON) + "\n// payload\n" + prettyOrRaw(d.PayloadJSON),
		Lang:    "js",
		Copy:    prettyOrRaw(d.PayloadJSON),
		Badge:   "VALID",
		BadgeOK: true,
		Message: "Decoded",
	}
	if jwt.IsExpired(d.Payload, now) {
		r.Badge, r.BadgeOK = "EXPIRED", false
		r.Status = components.StatusWarning
		r.Message = "Token is expired"
	}
	for _, ct := range jwt.ClaimTimes(d.Payload, now) {
		r.Pairs = append(r.Pairs, pair{
			Label: ct.Claim,
			Value: ct.Time.Format(time.RFC1123) + " (" + conv.RelativeTime(float64(ct.Time.UnixMilli())) + ")",
			Bad:   ct.Expired,
		})
	}
	r.Pairs = append(r.Pairs, pair{Label: "signature", Value: d.Signature + "  (not verified)"})
	return r
}

func prettyOrRaw(raw string) string {
	if res := convert.PrettifyJSON(raw, convert.DefaultIndent); res.Success {
		return res.Output
	}
	return raw
}

func runCodec(in []string, opts map[string]string, _ *env) result {
	c, ok := codec.Get(opts["codec"])
	if !ok {
		return failed("unknown encoding " + opts["codec"])
	}
	if opts["mode"] == "encode" {
		return result{Status: components.StatusOK, Output: c.Encode(in[0]), Message: "Encoded as " + c.Name()}
	}

	// Decode tries every codec, like a decoder table.
	r := result{Status: components.StatusOK}
	for _, name := range codec.Names() {
		cc, _ := codec.Get(name)
		res := cc.Decode(strings.TrimSpace(in[0]))
		if res.Success {
			r.Pairs = append(r.Pairs, pair{Label: name, Value: res.Output})
		} else {
			r.Pairs = append(r.Pairs, pair{Label: name, Value: res.Error, Bad: true})
		}
		if name == c.Name() {
			if res.Success {
				r.Output = res.Output
			} else {
				r.Error = res.Error
				r.Status = components.StatusError
			}
		}
	}
	if cands := codec.Detect(in[0]); len(cands) > 0 {
		best := cands[0]
		r.Message = fmt.Sprintf("Looks like %s (%.0f%%)", best.Codec, best.Confidence*100)
	} else {
		r.Message = "No encoding detected"
	}
	return r
}

func runConvert(in []string, opts map[string]string, _ *env) result {
	indent, _ := strconv.Atoi(opts["indent"])
	if opts["direction"] == "yaml2json" {
		return fromConvert(convert.YAMLToJSON(in[0], indent), "json")
	}
	if indent < convert.MinYAMLIndent {
		indent = convert.DefaultIndent
	}
	return fromConvert(convert.JSONToYAML(in[0], indent), "yaml")
}

func runCSV(in []string, opts map[string]string, _ *env) result {
	delim := opts["delimiter"]
	if delim == "tab" {
		delim = "\t"
	}
	header := opts["header"] == "on"
	if opts["direction"] == "json2csv" {
		return fromConvert(convert.JSONToCSV(in[0], delim, header), "csv")
	}
	return fromConvert(convert.CSVToJSON(in[0], delim, header), "json")
}

func runEpoch(in []string, opts map[string]string, e *env) result {
	conv := epoch.New()
	conv.Clock = e.now
	r := result{Status: components.StatusOK}

	if ts := strings.TrimSpace(in[0]); ts != "" {
		value, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return failed("Timestamp must be a number")
		}
		res := conv.EpochToDate(value, epoch.Unit(opts["unit"]))
		if !res.Valid {
			return failed(res.Error)
		}
		r.Pairs = append(r.Pairs,
			pair{Label: "Local", Value: res.Local + " (" + res.Timezone + ")"},
			pair{Label: "UTC", Value: res.UTC},
			pair{Label: "ISO 8601", Value: res.ISO},
			pair{Label: "Relative", Value: res.Relative},
		)
		r.Copy = res.ISO
		r.Message = res.Relative
	}
	if ds := strings.TrimSpace(in[1]); ds != "" {
		res := conv.DateToEpoch(ds)
		if !res.Valid {
			return failed(res.Error)
		}
		r.Pairs = append(r.Pairs,
			pair{Label: "Seconds", Value: strconv.FormatInt(res.Seconds, 10)},
			pair{Label: "Milliseconds", Value: strconv.FormatInt(res.Milliseconds, 10)},
		)
		if r.Copy == "" {
			r.Copy = strconv.FormatInt(res.Seconds, 10)
			r.Message = "Converted"
		}
	}
	return r
}

func runCron(in []string, _ map[string]string, _ *env) result {
	res := cron.Parse(in[0])
	if !res.Valid {
		if res.Error == nil {
			return result{}
		}
		return failed(*res.Error)
	}
	r := result{Status: components.StatusOK, Message: *res.Explanation, Copy: *res.Explanation}
	r.Pairs = append(r.Pairs, pair{Label: "Explanation", Value: *res.Explanation})
	for i, part := range res.Parts {
		label := "Year"
		if i < len(cron.FieldNames) {
			label = cron.FieldNames[i]
		}
		r.Pairs = append(r.Pairs, pair{Label: label, Value: part})
	}
	return r
}
