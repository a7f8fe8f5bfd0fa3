// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import "fmt"

// =============================================================================
// JSON <-> YAML
// =============================================================================

// JSONToYAML parses strict JSON and emits block-style YAML with the given
// indent, preserving key order.
func JSONToYAML(input string, indent int) (res Result) {
	defer guard(&res)

	if err := checkYAMLIndent(indent); err != nil {
		return fail(err)
	}
	node, err := parseJSON(input)
	if err != nil {
		return fail(err)
	}
	out, err := renderYAML(node, indent)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

// YAMLToJSON parses a single YAML document, resolving anchors and merge
// keys, and emits JSON with the given indent.
func YAMLToJSON(input string, indent int) (res Result) {
	defer guard(&res)

	if err := checkJSONIndent(indent); err != nil {
		return fail(err)
	}
	node, err := parseYAML(input)
	if err != nil {
		return fail(err)
	}
	out, err := renderJSON(node, indent)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

// =============================================================================
// PRETTIFY / MINIFY
// =============================================================================

// PrettifyJSON re-indents JSON without reordering keys.
func PrettifyJSON(input string, indent int) (res Result) {
	defer guard(&res)

	if err := checkJSONIndent(indent); err != nil {
		return fail(err)
	}
	node, err := parseJSON(input)
	if err != nil {
		return fail(err)
	}
	out, err := renderJSON(node, indent)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

// MinifyJSON removes all insignificant whitespace.
func MinifyJSON(input string) (res Result) {
	defer guard(&res)

	node, err := parseJSON(input)
	if err != nil {
		return fail(err)
	}
	out, err := renderJSON(node, 0)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

// PrettifyYAML re-emits YAML in block style with the given indent. Anchors
// are expanded and comments are dropped.
func PrettifyYAML(input string, indent int) (res Result) {
	defer guard(&res)

	if err := checkYAMLIndent(indent); err != nil {
		return fail(err)
	}
	node, err := parseYAML(input)
	if err != nil {
		return fail(err)
	}
	out, err := renderYAML(node, indent)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

// =============================================================================
// DISPATCH
// =============================================================================

// Convert runs the conversion from one format to another. Same-format
// conversions prettify.
func Convert(from, to Format, input string, opts Options) Result {
	opts = opts.withDefaults()
	switch {
	case from == FormatJSON && to == FormatYAML:
		return JSONToYAML(input, opts.Indent)
	case from == FormatYAML && to == FormatJSON:
		return YAMLToJSON(input, opts.Indent)
	case from == FormatCSV && to == FormatJSON:
		return CSVToJSON(input, opts.Delimiter, opts.Header)
	case from == FormatJSON && to == FormatCSV:
		return JSONToCSV(input, opts.Delimiter, opts.Header)
	case from == FormatJSON && to == FormatJSON:
		return PrettifyJSON(input, opts.Indent)
	case from == FormatYAML && to == FormatYAML:
		return PrettifyYAML(input, opts.Indent)
	}
	return failMsg(fmt.Sprintf("unsupported conversion: %s to %s", from, to))
}

// Options carries the tunables shared by the conversions.
type Options struct {
	Indent    int
	Delimiter string
	Header    bool
}

// DefaultOptions returns indent 2, comma delimiter, header on.
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent, Delimiter: ",", Header: true}
}

func (o Options) withDefaults() Options {
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}
	if o.Delimiter == "" {
		o.Delimiter = ","
	}
	return o
}

// ParseFormat maps a user-facing name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}
