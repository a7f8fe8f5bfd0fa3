// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// maxSafeInteger is 2^53 - 1. Numeric fields beyond it stay strings.
const maxSafeInteger = 9007199254740991

var floatLiteral = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// =============================================================================
// CSV -> JSON
// =============================================================================

// CSVToJSON parses delimited text and emits JSON indented by 2. With
// hasHeader the first row supplies record keys; otherwise rows become
// arrays. Any malformed row fails the whole conversion.
func CSVToJSON(input, delimiter string, hasHeader bool) (res Result) {
	defer guard(&res)

	comma, err := parseDelimiter(delimiter)
	if err != nil {
		return fail(err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(input, "\uFEFF")))
	r.Comma = comma
	r.FieldsPerRecord = -1

	root := sequenceNode()
	var header []string
	row := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return fail(fmt.Errorf("Row %d: %s", row, capitalize(pe.Err.Error())))
			}
			return fail(fmt.Errorf("Row %d: %w", row, err))
		}

		if !hasHeader {
			seq := sequenceNode()
			for _, field := range record {
				seq.Content = append(seq.Content, coerceField(field))
			}
			root.Content = append(root.Content, seq)
			continue
		}

		if header == nil {
			header = record
			continue
		}
		if len(record) != len(header) {
			qualifier := "few"
			if len(record) > len(header) {
				qualifier = "many"
			}
			return fail(fmt.Errorf("Row %d: Too %s fields: expected %d fields but parsed %d",
				row, qualifier, len(header), len(record)))
		}
		obj := &orderedMap{node: mappingNode(), index: make(map[string]int)}
		for i, key := range header {
			obj.set(key, coerceField(record[i]))
		}
		root.Content = append(root.Content, obj.node)
	}

	out, err := renderJSON(root, DefaultIndent)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

// coerceField applies the dynamic typing rules: booleans, numbers within
// the safe-integer range, otherwise the string itself.
func coerceField(field string) *yaml.Node {
	switch field {
	case "true", "TRUE":
		return boolNode(true)
	case "false", "FALSE":
		return boolNode(false)
	}
	if floatLiteral.MatchString(field) {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err == nil && math.Abs(f) < maxSafeInteger {
			return numberNode(f)
		}
	}
	return stringNode(field)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

func parseDelimiter(delimiter string) (rune, error) {
	if delimiter == "" {
		return ',', nil
	}
	if delimiter == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(delimiter)
	if size != len(delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, ErrBadDelimiter
	}
	return r, nil
}

// =============================================================================
// JSON -> CSV
// =============================================================================

// JSONToCSV emits one CSV row per array element. When the first element is
// an object its keys become the columns (and the header row when
// includeHeader); otherwise rows are positional and no header is written.
func JSONToCSV(input, delimiter string, includeHeader bool) (res Result) {
	defer guard(&res)

	comma, err := parseDelimiter(delimiter)
	if err != nil {
		return fail(err)
	}
	root, err := parseJSON(input)
	if err != nil {
		return fail(err)
	}
	if root.Kind != yaml.SequenceNode {
		return fail(ErrNotArray)
	}
	if len(root.Content) == 0 {
		return ok("")
	}

	var rows []string
	write := func(fields []string) error {
		line, err := csvLine(fields, comma)
		if err != nil {
			return err
		}
		rows = append(rows, line)
		return nil
	}

	first := root.Content[0]
	if first.Kind == yaml.MappingNode {
		var columns []string
		for i := 0; i+1 < len(first.Content); i += 2 {
			columns = append(columns, first.Content[i].Value)
		}
		if includeHeader {
			if err := write(columns); err != nil {
				return fail(err)
			}
		}
		for _, elem := range root.Content {
			fields, err := recordFields(elem, columns)
			if err != nil {
				return fail(err)
			}
			if err := write(fields); err != nil {
				return fail(err)
			}
		}
	} else {
		for _, elem := range root.Content {
			fields, err := positionalFields(elem)
			if err != nil {
				return fail(err)
			}
			if err := write(fields); err != nil {
				return fail(err)
			}
		}
	}

	return ok(strings.Join(rows, "\r\n"))
}

// csvLine encodes one record without its terminator. Rows are joined with
// CRLF by the caller so newlines inside quoted fields are left untouched.
func csvLine(fields []string, comma rune) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma
	if err := w.Write(fields); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func recordFields(elem *yaml.Node, columns []string) ([]string, error) {
	if elem.Kind != yaml.MappingNode {
		return positionalFields(elem)
	}
	values := make(map[string]*yaml.Node, len(elem.Content)/2)
	for i := 0; i+1 < len(elem.Content); i += 2 {
		values[elem.Content[i].Value] = elem.Content[i+1]
	}
	fields := make([]string, len(columns))
	for i, col := range columns {
		v, ok := values[col]
		if !ok {
			continue
		}
		s, err := fieldText(v)
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}
	return fields, nil
}

func positionalFields(elem *yaml.Node) ([]string, error) {
	var items []*yaml.Node
	switch elem.Kind {
	case yaml.SequenceNode:
		items = elem.Content
	case yaml.MappingNode:
		for i := 1; i < len(elem.Content); i += 2 {
			items = append(items, elem.Content[i])
		}
	default:
		items = []*yaml.Node{elem}
	}
	fields := make([]string, len(items))
	for i, item := range items {
		s, err := fieldText(item)
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}
	return fields, nil
}

// fieldText renders one cell: strings verbatim, null empty, nested values
// as compact JSON.
func fieldText(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return renderJSON(n, 0)
	}
	switch n.ShortTag() {
	case tagNull:
		return "", nil
	case tagStr:
		return n.Value, nil
	}
	return scalarJSON(n)
}
