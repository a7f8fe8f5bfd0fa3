// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestEncodeDecode(t *testing.T) {
	s := New("test", nil, nil)

	res := call(t, s.handleEncode, map[string]any{"codec": "base64", "input": "hello"})
	assert.False(t, res.IsError)
	assert.Equal(t, "aGVsbG8=", text(t, res))

	res = call(t, s.handleDecode, map[string]any{"codec": "hex", "input": "68656c6c6f"})
	assert.False(t, res.IsError)
	assert.Equal(t, "hello", text(t, res))
}

func TestDecodeErrors(t *testing.T) {
	s := New("test", nil, nil)

	res := call(t, s.handleDecode, map[string]any{"codec": "base64", "input": "%%%"})
	assert.True(t, res.IsError)

	res = call(t, s.handleDecode, map[string]any{"codec": "rot13", "input": "x"})
	assert.True(t, res.IsError)

	res = call(t, s.handleDecode, map[string]any{"codec": "base64"})
	assert.True(t, res.IsError)
}

func TestDecodeAuto(t *testing.T) {
	s := New("test", nil, nil)
	res := call(t, s.handleDecode, map[string]any{"codec": "auto", "input": "aGVsbG8gd29ybGQ="})
	assert.False(t, res.IsError)
	assert.Equal(t, "hello world", text(t, res))
}

func TestConvert(t *testing.T) {
	s := New("test", nil, nil)

	res := call(t, s.handleConvert, map[string]any{"conversion": "json2yaml", "input": `{"a":1}`})
	assert.False(t, res.IsError)
	assert.Equal(t, "a: 1\n", text(t, res))

	res = call(t, s.handleConvert, map[string]any{"conversion": "yaml2json", "input": "a: 1", "indent": float64(0)})
	assert.False(t, res.IsError)
	assert.Equal(t, `{"a":1}`, text(t, res))

	res = call(t, s.handleConvert, map[string]any{"conversion": "query", "input": `{"a":{"b":[1,2]}}`, "expression": "a.b[1]"})
	assert.False(t, res.IsError)
	assert.Equal(t, "2", text(t, res))

	res = call(t, s.handleConvert, map[string]any{"conversion": "json2yaml", "input": `{`})
	assert.True(t, res.IsError)

	res = call(t, s.handleConvert, map[string]any{"conversion": "xml2json", "input": `<a/>`})
	assert.True(t, res.IsError)
}

func TestDiff(t *testing.T) {
	s := New("test", nil, nil)
	res := call(t, s.handleDiff, map[string]any{"old": "a\nb\n", "new": "a\nc\n", "unified": true})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "-b")
	assert.Contains(t, text(t, res), "+c")

	res = call(t, s.handleDiff, map[string]any{"old": "x"})
	assert.True(t, res.IsError)
}

func TestJWT(t *testing.T) {
	s := New("test", nil, nil)
	token := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjMifQ.sig"

	res := call(t, s.handleJWT, map[string]any{"token": token})
	assert.False(t, res.IsError)
	assert.Equal(t, `{"sub":"123"}`, text(t, res))

	res = call(t, s.handleJWT, map[string]any{"token": "a.b"})
	assert.True(t, res.IsError)
}

func TestEpoch(t *testing.T) {
	s := New("test", nil, nil)

	res := call(t, s.handleEpochToDate, map[string]any{"timestamp": float64(0), "timezone": "UTC"})
	assert.False(t, res.IsError)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", text(t, res))

	res = call(t, s.handleEpochToDate, map[string]any{"timestamp": float64(-5)})
	assert.True(t, res.IsError)

	res = call(t, s.handleEpochToDate, map[string]any{"timestamp": float64(0), "timezone": "Mars/Olympus"})
	assert.True(t, res.IsError)

	res = call(t, s.handleDateToEpoch, map[string]any{"date": "2024-01-15"})
	assert.False(t, res.IsError)
	assert.Equal(t, "1705276800", text(t, res))
}

func TestCron(t *testing.T) {
	s := New("test", nil, nil)

	res := call(t, s.handleCron, map[string]any{"expression": "0 0 * * *"})
	assert.False(t, res.IsError)
	assert.NotEmpty(t, text(t, res))

	res = call(t, s.handleCron, map[string]any{"expression": "0 0 *"})
	assert.True(t, res.IsError)
}

func TestRegex(t *testing.T) {
	s := New("test", nil, nil)

	res := call(t, s.handleRegex, map[string]any{"pattern": `\d+`, "text": "a1b22", "flags": "g"})
	assert.False(t, res.IsError)
	assert.Equal(t, "2 match(es)", text(t, res))

	res = call(t, s.handleRegex, map[string]any{"pattern": `(`, "text": "x"})
	assert.True(t, res.IsError)
}

func TestSchema(t *testing.T) {
	s := New("test", nil, nil)
	sch := `{"type":"object","required":["name"]}`

	res := call(t, s.handleSchema, map[string]any{"data": `{"name":"x"}`, "schema": sch})
	assert.False(t, res.IsError)
	assert.Equal(t, "valid", text(t, res))

	res = call(t, s.handleSchema, map[string]any{"data": `{}`, "schema": sch})
	assert.False(t, res.IsError)
	assert.Equal(t, "1 validation error(s)", text(t, res))

	res = call(t, s.handleSchema, map[string]any{"data": `{}`, "schema": `{"$ref":"http://example.com/s.json"}`})
	assert.True(t, res.IsError)
}

func TestToolsList(t *testing.T) {
	s := New("test", nil, nil)
	msg := s.MCP().HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{
		ToolEncode, ToolDecode, ToolConvert, ToolDiff, ToolJWTDecode,
		ToolEpochToDate, ToolDateToEpoch, ToolCronExplain, ToolRegexMatch, ToolSchemaValidate,
	} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
