// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"
	"fmt"
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of a conversion. On success Error is nil; on failure
// Output is empty.
type Result struct {
	Success bool    `json:"success"`
	Output  string  `json:"output"`
	Error   *string `json:"error"`
}

func ok(output string) Result {
	return Result{Success: true, Output: output}
}

func fail(err error) Result {
	msg := err.Error()
	return Result{Success: false, Output: "", Error: &msg}
}

func failMsg(msg string) Result {
	return Result{Success: false, Output: "", Error: &msg}
}

// ErrorString returns the error message or "" when the conversion succeeded.
func (r Result) ErrorString() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// guard converts a panic escaping a parser or emitter into a failed Result.
func guard(res *Result) {
	if r := recover(); r != nil {
		*res = failMsg(fmt.Sprintf("internal error: %v", r))
	}
}

// =============================================================================
// FORMATS
// =============================================================================

// Format names a structured-data format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned when there is nothing to parse.
	ErrEmptyInput = errors.New("empty input")

	// ErrMultipleDocuments is returned for YAML streams with more than one document.
	ErrMultipleDocuments = errors.New("expected a single document in the stream, but found more")

	// ErrNotArray is returned when CSV export is given a non-array value.
	ErrNotArray = errors.New("JSON must be an array of objects or arrays")

	// ErrTooLarge is returned when alias expansion exceeds the node budget.
	ErrTooLarge = errors.New("document expands to too many nodes")

	// ErrBadDelimiter is returned for delimiters that are not a single usable character.
	ErrBadDelimiter = errors.New("delimiter must be a single character other than a quote or newline")

	// ErrBadIndent is returned for indent widths outside the supported range.
	ErrBadIndent = errors.New("indent out of range")
)

// Indent limits. YAML emitters only support 2-9 spaces.
const (
	DefaultIndent = 2
	MaxJSONIndent = 10
	MinYAMLIndent = 2
	MaxYAMLIndent = 9
)

func checkJSONIndent(indent int) error {
	if indent < 0 || indent > MaxJSONIndent {
		return fmt.Errorf("%w: JSON indent must be between 0 and %d", ErrBadIndent, MaxJSONIndent)
	}
	return nil
}

func checkYAMLIndent(indent int) error {
	if indent < MinYAMLIndent || indent > MaxYAMLIndent {
		return fmt.Errorf("%w: YAML indent must be between %d and %d", ErrBadIndent, MinYAMLIndent, MaxYAMLIndent)
	}
	return nil
}
