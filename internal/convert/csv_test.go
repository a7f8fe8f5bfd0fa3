// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"strings"
	"testing"
)

// compact re-minifies converter output so expectations stay readable.
func compact(t *testing.T, res Result) string {
	t.Helper()
	if !res.Success {
		t.Fatalf("Expected success, got error %q", res.ErrorString())
	}
	min := MinifyJSON(res.Output)
	if !min.Success {
		t.Fatalf("Output is not valid JSON: %q", res.Output)
	}
	return min.Output
}

// =============================================================================
// CSV -> JSON
// =============================================================================

func TestCSVToJSON_Header(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim string
		want  string
	}{
		{"typed values", "name,age,active\nAlice,30,true\nBob,25,FALSE",
			",", `[{"name":"Alice","age":30,"active":true},{"name":"Bob","age":25,"active":false}]`},
		{"quoting", "a,b\n\"x,y\",\"say \"\"hi\"\"\"",
			",", `[{"a":"x,y","b":"say \"hi\""}]`},
		{"quoted newline", "a,b\n\"one\ntwo\",2",
			",", `[{"a":"one\ntwo","b":2}]`},
		{"semicolon", "a;b\n1.5;x",
			";", `[{"a":1.5,"b":"x"}]`},
		{"tab", "a\tb\n1\t2",
			"\t", `[{"a":1,"b":2}]`},
		{"empty lines skipped", "a\n\n1\n\n2\n",
			",", `[{"a":1},{"a":2}]`},
		{"empty field stays string", "a,b\n,1",
			",", `[{"a":"","b":1}]`},
		{"beyond safe integer stays string", "n\n12345678901234567890",
			",", `[{"n":"12345678901234567890"}]`},
		{"header only", "a,b",
			",", `[]`},
		{"crlf", "a,b\r\n1,2\r\n",
			",", `[{"a":1,"b":2}]`},
		{"mixed case boolean stays string", "a\nTrue",
			",", `[{"a":"True"}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := compact(t, CSVToJSON(tc.input, tc.delim, true))
			if got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCSVToJSON_NoHeader(t *testing.T) {
	got := compact(t, CSVToJSON("1,2\n3,x\n4", ",", false))
	want := `[[1,2],[3,"x"],[4]]`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestCSVToJSON_OutputIndent(t *testing.T) {
	res := CSVToJSON("a\n1", ",", true)
	want := "[\n  {\n    \"a\": 1\n  }\n]"
	if res.Output != want {
		t.Errorf("Expected %q, got %q", want, res.Output)
	}
}

func TestCSVToJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		delim   string
		wantErr []string
	}{
		{"too few fields", "a,b,c\n1,2,3\n4,5", ",", []string{"Row 3", "Too few fields: expected 3 fields but parsed 2"}},
		{"too many fields", "a\n1,2", ",", []string{"Row 2", "Too many fields"}},
		{"bare quote", "a,b\n1,x\"y", ",", []string{"Row 2"}},
		{"unterminated quote", "a\n\"open", ",", []string{"Row 2"}},
		{"bad delimiter", "a", "ab", []string{"delimiter"}},
		{"quote delimiter", "a", `"`, []string{"delimiter"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := CSVToJSON(tc.input, tc.delim, true)
			if res.Success {
				t.Fatalf("Expected failure, got %q", res.Output)
			}
			if res.Output != "" {
				t.Errorf("Expected no partial output, got %q", res.Output)
			}
			for _, want := range tc.wantErr {
				if !strings.Contains(res.ErrorString(), want) {
					t.Errorf("Expected error containing %q, got %q", want, res.ErrorString())
				}
			}
		})
	}
}

// =============================================================================
// JSON -> CSV
// =============================================================================

func TestJSONToCSV(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		header bool
		want   string
	}{
		{"records with header", `[{"name":"Alice","age":30},{"name":"Bob","age":25}]`, true,
			"name,age\r\nAlice,30\r\nBob,25"},
		{"records without header", `[{"name":"Alice","age":30}]`, false,
			"Alice,30"},
		{"missing keys empty", `[{"a":1,"b":2},{"b":3}]`, true,
			"a,b\r\n1,2\r\n,3"},
		{"extra keys ignored", `[{"a":1},{"a":2,"z":9}]`, true,
			"a\r\n1\r\n2"},
		{"quoting", `[["x,y","say \"hi\"","line\nbreak"]]`, true,
			"\"x,y\",\"say \"\"hi\"\"\",\"line\nbreak\""},
		{"nested and null", `[{"a":{"x":1},"b":null,"c":[1,2]}]`, true,
			"a,b,c\r\n\"{\"\"x\"\":1}\",,\"[1,2]\""},
		{"positional arrays ignore header", `[[1,true],[2,false]]`, true,
			"1,true\r\n2,false"},
		{"primitives", `[1,"two",null]`, true,
			"1\r\ntwo\r\n"},
		{"empty array", `[]`, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := JSONToCSV(tc.input, ",", tc.header)
			if !res.Success {
				t.Fatalf("Expected success, got %q", res.ErrorString())
			}
			if res.Output != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, res.Output)
			}
		})
	}
}

func TestJSONToCSV_Delimiter(t *testing.T) {
	res := JSONToCSV(`[{"a":"x;y","b":2}]`, ";", true)
	want := "a;b\r\n\"x;y\";2"
	if res.Output != want {
		t.Errorf("Expected %q, got %q", want, res.Output)
	}
}

func TestJSONToCSV_Errors(t *testing.T) {
	for _, input := range []string{`{"a":1}`, `"text"`, `42`} {
		res := JSONToCSV(input, ",", true)
		if res.Success {
			t.Errorf("Expected failure for %s", input)
			continue
		}
		if !strings.Contains(res.ErrorString(), "array") {
			t.Errorf("Expected error mentioning array, got %q", res.ErrorString())
		}
	}

	if res := JSONToCSV("{broken", ",", true); res.Success {
		t.Error("Expected parse failure")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	input := `[{"name":"Alice","note":"a, b","score":9.5},{"name":"Bob","note":"","score":7}]`
	csvRes := JSONToCSV(input, ",", true)
	if !csvRes.Success {
		t.Fatalf("JSONToCSV failed: %s", csvRes.ErrorString())
	}
	got := compact(t, CSVToJSON(csvRes.Output, ",", true))
	if got != input {
		t.Errorf("Expected %s, got %s", input, got)
	}
}
