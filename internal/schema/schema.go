// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeranaias/toolbench/internal/convert"
)

// =============================================================================
// TYPES
// =============================================================================

// Issue is one validation failure. Path is a JSON pointer into the data,
// "/" for the root.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the outcome of Validate. Validated is false when either input
// is empty or could not be parsed; Error explains the latter.
type Result struct {
	Validated    bool    `json:"validated"`
	Valid        bool    `json:"valid"`
	DataFormat   string  `json:"dataFormat,omitempty"`
	SchemaFormat string  `json:"schemaFormat,omitempty"`
	Errors       []Issue `json:"errors"`
	Error        *string `json:"error"`
}

// Error prefixes.
const (
	PrefixData       = "Data parse error: "
	PrefixSchema     = "Schema parse error: "
	PrefixValidation = "Validation error: "
)

// ErrRemoteRef rejects schemas whose $ref points outside the document.
var ErrRemoteRef = errors.New("remote $ref is not supported: schemas are never fetched")

// ErrNotObject rejects schemas that are not a JSON object.
var ErrNotObject = errors.New("schema must be an object")

// schemaURL names the in-memory schema resource. Relative refs resolve
// against it and end up at the offline loader.
const schemaURL = "mem://toolbench/schema.json"

var printer = message.NewPrinter(language.English)

// =============================================================================
// VALIDATION
// =============================================================================

// Validate parses data and schema as JSON or YAML and checks data against
// schema, reporting every failure.
func Validate(data, schema string) (res Result) {
	res.Errors = []Issue{}
	if strings.TrimSpace(data) == "" || strings.TrimSpace(schema) == "" {
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res = failure(PrefixValidation+fmt.Sprint(r), "", "")
		}
	}()

	doc, err := convert.Detect(data)
	if err != nil {
		return failure(PrefixData+err.Error(), "", "")
	}
	value, err := load(doc)
	if err != nil {
		return failure(PrefixData+err.Error(), "", "")
	}

	schemaDoc, err := convert.Detect(schema)
	if err != nil {
		return failure(PrefixSchema+err.Error(), string(doc.Format), "")
	}

	sch, err := compile(schemaDoc)
	if err != nil {
		return failure(PrefixValidation+err.Error(), "", "")
	}

	issues := Issues(sch.Validate(value))
	return Result{
		Validated:    true,
		Valid:        len(issues) == 0,
		DataFormat:   string(doc.Format),
		SchemaFormat: string(schemaDoc.Format),
		Errors:       issues,
	}
}

func failure(msg, dataFormat, schemaFormat string) Result {
	return Result{
		Errors:       []Issue{},
		Error:        &msg,
		DataFormat:   dataFormat,
		SchemaFormat: schemaFormat,
	}
}

// compile turns a detected document into a draft-07 schema with format
// assertion on. Local refs resolve within the document; any ref that would
// need loading is refused.
func compile(doc *convert.Detected) (*jsonschema.Schema, error) {
	raw, err := load(doc)
	if err != nil {
		return nil, err
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, ErrNotObject
	}

	loader := &offlineLoader{}
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	c.AssertFormat()
	c.UseLoader(loader)
	if err := c.AddResource(schemaURL, raw); err != nil {
		return nil, err
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		if len(loader.refused) > 0 {
			return nil, fmt.Errorf("%w (%s)", ErrRemoteRef, loader.refused[0])
		}
		return nil, err
	}
	return sch, nil
}

// load re-reads a detected document the way the validator expects its
// values, with numbers kept as json.Number.
func load(doc *convert.Detected) (any, error) {
	text, err := doc.JSON(0)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(strings.NewReader(text))
}

// offlineLoader refuses every URL and records what was asked for.
type offlineLoader struct {
	refused []string
}

func (l *offlineLoader) Load(url string) (any, error) {
	l.refused = append(l.refused, url)
	return nil, ErrRemoteRef
}

// =============================================================================
// ERROR FLATTENING
// =============================================================================

// Issues flattens a validator error into issues. nil yields an empty list.
func Issues(err error) []Issue {
	issues := []Issue{}
	collect(err, &issues)
	return issues
}

// collect walks the error tree. Grouping nodes only carry causes; every
// other node is reported, then its causes, so a failed anyOf shows both
// the keyword and what each branch rejected.
func collect(err error, out *[]Issue) {
	if err == nil {
		return
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		*out = append(*out, Issue{Path: "/", Message: err.Error()})
		return
	}
	walk(ve, out)
}

func walk(ve *jsonschema.ValidationError, out *[]Issue) {
	switch ve.ErrorKind.(type) {
	case *kind.Schema, *kind.Group, *kind.Reference:
	default:
		*out = append(*out, Issue{
			Path:    pointer(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(printer),
		})
	}
	for _, cause := range ve.Causes {
		walk(cause, out)
	}
}

func pointer(parts []string) string {
	if len(parts) == 0 {
		return "/"
	}
	escaped := make([]string, len(parts))
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~", "~0")
		escaped[i] = strings.ReplaceAll(p, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}
