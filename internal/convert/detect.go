// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// FORMAT DETECTION
// =============================================================================

// Detected is an input parsed by whichever format accepted it.
type Detected struct {
	Format Format
	Node   *yaml.Node
}

// Detect tries strict JSON first and falls back to YAML. When both fail the
// JSON error is returned.
func Detect(input string) (*Detected, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	node, jsonErr := parseJSON(trimmed)
	if jsonErr == nil {
		return &Detected{Format: FormatJSON, Node: node}, nil
	}
	node, yamlErr := parseYAML(trimmed)
	if yamlErr == nil {
		return &Detected{Format: FormatYAML, Node: node}, nil
	}
	return nil, jsonErr
}

// Value returns the detected document as plain Go values.
func (d *Detected) Value() (any, error) {
	return toValue(d.Node)
}

// JSON renders the detected document as JSON with the given indent.
func (d *Detected) JSON(indent int) (string, error) {
	return renderJSON(d.Node, indent)
}

// =============================================================================
// QUERY
// =============================================================================

// Query evaluates a JMESPath expression against JSON or YAML input and
// returns the result as JSON indented by 2.
func Query(input, expression string) (res Result) {
	defer guard(&res)

	if strings.TrimSpace(expression) == "" {
		return failMsg("query expression is empty")
	}
	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return fail(fmt.Errorf("invalid query: %w", err))
	}

	doc, err := Detect(input)
	if err != nil {
		return fail(err)
	}
	data, err := doc.Value()
	if err != nil {
		return fail(err)
	}

	result, err := compiled.Search(data)
	if err != nil {
		return fail(fmt.Errorf("query failed: %w", err))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fail(err)
	}
	return ok(strings.TrimSuffix(buf.String(), "\n"))
}
