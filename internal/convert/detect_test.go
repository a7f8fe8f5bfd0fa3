// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	doc, err := Detect(`  {"a": [1, 2]}  `)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format)

	doc, err = Detect("a:\n  - 1\n  - 2\n")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format)

	out, err := doc.JSON(0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2]}`, out)
}

func TestDetect_Value(t *testing.T) {
	doc, err := Detect("name: test\ncount: 3\ntags: [x]\n")
	require.NoError(t, err)

	v, err := doc.Value()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "test",
		"count": float64(3),
		"tags":  []any{"x"},
	}, v)
}

func TestDetect_Errors(t *testing.T) {
	_, err := Detect("   \n ")
	assert.True(t, errors.Is(err, ErrEmptyInput))

	// Invalid as both; the JSON error wins.
	_, err = Detect("{a: [1, 2}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestQuery(t *testing.T) {
	input := `{"items":[{"name":"a","price":5},{"name":"b","price":20}]}`

	res := Query(input, "items[?price > `10`].name")
	require.True(t, res.Success, res.ErrorString())
	assert.Equal(t, "[\n  \"b\"\n]", res.Output)

	res = Query("items:\n  - name: a\n", "items[0].name")
	require.True(t, res.Success, res.ErrorString())
	assert.Equal(t, `"a"`, res.Output)

	res = Query(input, "missing")
	require.True(t, res.Success)
	assert.Equal(t, "null", res.Output)
}

func TestQuery_Errors(t *testing.T) {
	assert.False(t, Query(`{}`, "").Success)
	assert.False(t, Query(`{}`, "items[?").Success)
	assert.False(t, Query("", "a").Success)
}
