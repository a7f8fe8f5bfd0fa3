// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Values are held as *yaml.Node trees so that mapping key order survives
// every conversion. Scalars carry a resolved short tag (!!str, !!int, ...).

const (
	tagNull      = "!!null"
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagStr       = "!!str"
	tagMap       = "!!map"
	tagSeq       = "!!seq"
	tagMerge     = "!!merge"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
)

// maxNodes bounds alias expansion ("billion laughs" documents).
const maxNodes = 1 << 20

// =============================================================================
// NODE CONSTRUCTORS
// =============================================================================

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: strconv.FormatBool(b)}
}

// stringNode emits multi-line strings as literal blocks. A line starting
// with a tab cannot open a block scalar, so those keep the emitter's choice.
func stringNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: s}
	if strings.Contains(s, "\n") && !tabIndented(s) {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func tabIndented(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "\t") {
			return true
		}
	}
	return false
}

// numberNode leaves the tag empty so the emitter and ShortTag resolve it
// from the formatted text.
func numberNode(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return &yaml.Node{Kind: yaml.ScalarNode, Value: ".nan"}
	case math.IsInf(f, 1):
		return &yaml.Node{Kind: yaml.ScalarNode, Value: ".inf"}
	case math.IsInf(f, -1):
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "-.inf"}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: formatNumber(f)}
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}
}

// formatNumber renders f the way ECMAScript Number#toString does for the
// values JSON can carry: shortest round-trip digits, exponent form below
// 1e-6 and from 1e21, and no negative zero.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// e-07 -> e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

// =============================================================================
// JSON PARSING
// =============================================================================

// parseJSON parses strict JSON into an ordered tree. Duplicate object keys
// keep their first position and take the last value.
func parseJSON(input string) (*yaml.Node, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("unexpected end of JSON input")
	}
	data := []byte(input)
	if !json.Valid(data) {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, err
		}
		return nil, errors.New("invalid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeJSONValue(dec)
}

func decodeJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected end of JSON input")
		}
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node := mappingNode()
			index := make(map[string]int)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				if pos, seen := index[key]; seen {
					node.Content[pos+1] = val
					continue
				}
				index[key] = len(node.Content)
				node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: key}, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '[':
			node := sequenceNode()
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return stringNode(v), nil
	case json.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		return numberNode(f), nil
	case bool:
		return boolNode(v), nil
	case nil:
		return nullNode(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// =============================================================================
// YAML PARSING
// =============================================================================

// parseYAML parses a single YAML document and returns an alias-free tree.
// An empty stream is the null value.
func parseYAML(input string) (*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nullNode(), nil
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, ErrMultipleDocuments
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	return expand(&doc)
}

// expand returns a copy of n with aliases and merge keys resolved, anchors,
// comments and presentation styles dropped, and every scalar tagged.
func expand(n *yaml.Node) (*yaml.Node, error) {
	e := &expander{budget: maxNodes, active: make(map[*yaml.Node]bool)}
	return e.expand(n)
}

type expander struct {
	budget int
	active map[*yaml.Node]bool
}

func (e *expander) expand(n *yaml.Node) (*yaml.Node, error) {
	e.budget--
	if e.budget < 0 {
		return nil, ErrTooLarge
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nullNode(), nil
		}
		return e.expand(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if e.active[n.Alias] {
			return nil, fmt.Errorf("line %d: alias %q refers to itself", n.Line, n.Value)
		}
		e.active[n.Alias] = true
		out, err := e.expand(n.Alias)
		delete(e.active, n.Alias)
		return out, err

	case yaml.ScalarNode:
		return scalarCopy(n), nil

	case yaml.SequenceNode:
		out := sequenceNode()
		for _, c := range n.Content {
			ec, err := e.expand(c)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, ec)
		}
		return out, nil

	case yaml.MappingNode:
		return e.mapping(n)
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func scalarCopy(n *yaml.Node) *yaml.Node {
	tag := n.ShortTag()
	switch tag {
	case tagNull, tagBool, tagInt, tagFloat, tagTimestamp, tagBinary:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.Value}
	}
	return stringNode(n.Value)
}

// orderedMap accumulates mapping entries in first-insertion order.
type orderedMap struct {
	node  *yaml.Node
	index map[string]int
}

func (m *orderedMap) has(key string) bool {
	_, ok := m.index[key]
	return ok
}

func (m *orderedMap) set(key string, val *yaml.Node) {
	if pos, ok := m.index[key]; ok {
		m.node.Content[pos+1] = val
		return
	}
	m.index[key] = len(m.node.Content)
	m.node.Content = append(m.node.Content, stringNode(key), val)
}

func (e *expander) mapping(n *yaml.Node) (*yaml.Node, error) {
	out := &orderedMap{node: mappingNode(), index: make(map[string]int)}
	explicit := make(map[string]bool)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == tagMerge {
			if err := e.merge(out, v); err != nil {
				return nil, err
			}
			continue
		}

		ek, err := e.expand(k)
		if err != nil {
			return nil, err
		}
		key, err := keyString(ek)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", k.Line, err)
		}
		if explicit[key] {
			return nil, fmt.Errorf("line %d: duplicated mapping key %q", k.Line, key)
		}
		explicit[key] = true

		ev, err := e.expand(v)
		if err != nil {
			return nil, err
		}
		out.set(key, ev)
	}
	return out.node, nil
}

// merge applies a "<<" value. Keys already present win, and among several
// sources the earlier one wins.
func (e *expander) merge(out *orderedMap, v *yaml.Node) error {
	var sources []*yaml.Node
	switch target := resolveAlias(v); target.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{v}
	case yaml.SequenceNode:
		sources = target.Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", v.Line)
	}

	for _, src := range sources {
		if resolveAlias(src).Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: cannot merge a non-mapping value", src.Line)
		}
		expanded, err := e.expand(src)
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(expanded.Content); i += 2 {
			key := expanded.Content[i].Value
			if !out.has(key) {
				out.set(key, expanded.Content[i+1])
			}
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// keyString renders a scalar mapping key as the string a JSON object uses.
func keyString(k *yaml.Node) (string, error) {
	if k.Kind != yaml.ScalarNode {
		return "", errors.New("mapping keys must be scalars")
	}
	if k.ShortTag() == tagStr {
		return k.Value, nil
	}
	lit, err := scalarJSON(k)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(lit, `"`) {
		return k.Value, nil
	}
	return lit, nil
}

// =============================================================================
// JSON RENDERING
// =============================================================================

// renderJSON serializes an alias-free tree. indent 0 is compact output.
func renderJSON(n *yaml.Node, indent int) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return "", err
	}
	if indent == 0 {
		return buf.String(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return "", err
	}
	return out.String(), nil
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, n.Content[0])

	case yaml.AliasNode:
		return errors.New("unresolved alias")

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := keyString(n.Content[i])
			if err != nil {
				return err
			}
			buf.WriteString(quoteJSON(key))
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		lit, err := scalarJSON(n)
		if err != nil {
			return err
		}
		buf.WriteString(lit)
		return nil
	}
	return fmt.Errorf("unsupported node kind %d", n.Kind)
}

// scalarJSON returns the JSON literal for a scalar node.
func scalarJSON(n *yaml.Node) (string, error) {
	switch n.ShortTag() {
	case tagNull:
		return "null", nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case tagInt, tagFloat:
		var v any
		if err := n.Decode(&v); err != nil {
			return "", err
		}
		f, ok := toFloat(v)
		if !ok {
			return quoteJSON(n.Value), nil
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "null", nil
		}
		return formatNumber(f), nil
	}
	return quoteJSON(n.Value), nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// =============================================================================
// YAML RENDERING
// =============================================================================

func renderYAML(n *yaml.Node, indent int) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// =============================================================================
// GENERIC VALUES
// =============================================================================

// toValue converts a tree to plain Go values (map[string]any, []any,
// float64, string, bool, nil) for libraries that consume them.
func toValue(n *yaml.Node) (any, error) {
	compact, err := renderJSON(n, 0)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal([]byte(compact), &v); err != nil {
		return nil, err
	}
	return v, nil
}
