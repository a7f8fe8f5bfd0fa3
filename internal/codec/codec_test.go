// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"strings"
	"testing"
)

// =============================================================================
// BASE64 TESTS
// =============================================================================

func TestDecodeBase64(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"padded", "SGVsbG8gV29ybGQ=", "Hello World", false},
		{"utf8", "w6nDqMOgw7w=", "éèàü", false},
		{"unpadded", "SGVsbG8", "Hello", false},
		{"whitespace ignored", "SGVs\nbG8g V29y\tbGQ=", "Hello World", false},
		{"invalid bytes fall back to latin1", "/w==", "ÿ", false},
		{"empty", "", "", false},
		{"invalid alphabet", "not-valid-base64!!!", "", true},
		{"remainder of one", "SGVsb", "", true},
		{"padding in the middle", "SG=sbG8=", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := DecodeBase64(tc.input)
			if tc.wantErr {
				if res.Success {
					t.Errorf("Expected failure for %q, got output %q", tc.input, res.Output)
				}
				if res.Error == "" {
					t.Error("Expected an error message")
				}
				if res.Output != "" {
					t.Errorf("Expected empty output on failure, got %q", res.Output)
				}
				return
			}
			if !res.Success {
				t.Fatalf("Expected success for %q, got error %q", tc.input, res.Error)
			}
			if res.Output != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, res.Output)
			}
		})
	}
}

func TestEncodeBase64(t *testing.T) {
	if got := EncodeBase64("Hello World"); got != "SGVsbG8gV29ybGQ=" {
		t.Errorf("Expected SGVsbG8gV29ybGQ=, got %s", got)
	}
}

func TestBase64URL(t *testing.T) {
	if res := DecodeBase64URL("SGVsbG8gV29ybGQ"); res.Output != "Hello World" {
		t.Errorf("Expected Hello World, got %q (%s)", res.Output, res.Error)
	}
	if res := DecodeBase64URL("SGVsbG8"); res.Output != "Hello" {
		t.Errorf("Expected Hello, got %q (%s)", res.Output, res.Error)
	}

	encoded := EncodeBase64URL("test?data+here>>>")
	if strings.ContainsAny(encoded, "+/=") {
		t.Errorf("Expected URL-safe output, got %s", encoded)
	}
	if res := DecodeBase64URL(encoded); res.Output != "test?data+here>>>" {
		t.Errorf("Expected round trip, got %q", res.Output)
	}
}

// =============================================================================
// URL TESTS
// =============================================================================

func TestDecodeURL(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Hello%20World", "Hello World", false},
		{"%3Fquery%3Dvalue%26other%3D123", "?query=value&other=123", false},
		{"a+b", "a+b", false},
		{"%C3%A9t%C3%A9", "été", false},
		{"%ZZ", "", true},
		{"%4", "", true},
		{"%C3", "", true},
	}

	for _, tc := range tests {
		res := DecodeURL(tc.input)
		if tc.wantErr {
			if res.Success {
				t.Errorf("DecodeURL(%q) expected failure, got %q", tc.input, res.Output)
			}
			continue
		}
		if res.Output != tc.want {
			t.Errorf("DecodeURL(%q) = %q, want %q", tc.input, res.Output, tc.want)
		}
	}
}

func TestEncodeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello world", "hello%20world"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a/b?c=d&e", "a%2Fb%3Fc%3Dd%26e"},
		{"é", "%C3%A9"},
		{"+", "%2B"},
	}

	for _, tc := range tests {
		if got := EncodeURL(tc.input); got != tc.want {
			t.Errorf("EncodeURL(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// HEX TESTS
// =============================================================================

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"plain", "48656c6c6f", "Hello", ""},
		{"prefix and spaces", "0x48 65 6C 6c 6f", "Hello", ""},
		{"upper prefix", "0X4869", "Hi", ""},
		{"invalid utf8 replaced", "ff", "\uFFFD", ""},
		{"bom stripped", "efbbbf4869", "Hi", ""},
		{"empty", "", "", ""},
		{"odd length", "123", "", "even length"},
		{"bad characters", "GHIJ", "", "Invalid hex"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := DecodeHex(tc.input)
			if tc.wantErr != "" {
				if res.Success {
					t.Fatalf("Expected failure, got %q", res.Output)
				}
				if !strings.Contains(res.Error, tc.wantErr) {
					t.Errorf("Expected error containing %q, got %q", tc.wantErr, res.Error)
				}
				return
			}
			if !res.Success || res.Output != tc.want {
				t.Errorf("Expected %q, got %q (error %q)", tc.want, res.Output, res.Error)
			}
		})
	}
}

func TestEncodeHex(t *testing.T) {
	if got := EncodeHex("Hello"); got != "48656c6c6f" {
		t.Errorf("Expected 48656c6c6f, got %s", got)
	}
}

// =============================================================================
// UNICODE TESTS
// =============================================================================

func TestDecodeUnicode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"four digit", `\u0048\u0069`, "Hi", false},
		{"code point", `\u{1F600}`, "😀", false},
		{"decimal entity", "&#65;&#66;", "AB", false},
		{"hex entity", "&#x43;", "C", false},
		{"surrogate pair", `\ud83d\ude00`, "😀", false},
		{"lone high surrogate", `\ud83dx`, "\uFFFDx", false},
		{"lone low surrogate", `\ude00`, "\uFFFD", false},
		{"mixed text", `caf\u00e9 &amp; more`, "café &amp; more", false},
		{"no escapes", "plain text", "plain text", false},
		{"out of range", `\u{110000}`, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := DecodeUnicode(tc.input)
			if tc.wantErr {
				if res.Success {
					t.Errorf("Expected failure, got %q", res.Output)
				}
				return
			}
			if res.Output != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, res.Output)
			}
		})
	}
}

func TestEncodeUnicode(t *testing.T) {
	if got := EncodeUnicode("Aé"); got != `\u0041\u00e9` {
		t.Errorf(`Expected \u0041\u00e9, got %s`, got)
	}
	if got := EncodeUnicode("😀"); got != `\u{1f600}` {
		t.Errorf(`Expected \u{1f600}, got %s`, got)
	}
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestRoundTrip(t *testing.T) {
	var ascii strings.Builder
	for c := byte(0x20); c < 0x7F; c++ {
		ascii.WriteByte(c)
	}

	inputs := []string{
		"",
		"Hello World",
		ascii.String(),
		"Test string with special chars: éèà!@#$%",
		"日本語のテキスト",
		"emoji 😀 party 🎉",
		"line one\nline two\ttabbed",
	}

	for _, name := range Names() {
		c, _ := Get(name)
		for _, input := range inputs {
			res := c.Decode(c.Encode(input))
			if !res.Success {
				t.Errorf("%s: decode(encode(%q)) failed: %s", name, input, res.Error)
				continue
			}
			if res.Output != input {
				t.Errorf("%s: round trip of %q produced %q", name, input, res.Output)
			}
		}
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

func TestRegistry(t *testing.T) {
	want := []string{"base64", "base64url", "hex", "unicode", "url"}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if _, ok := Get("rot13"); ok {
		t.Error("Expected unknown codec lookup to fail")
	}

	c, _ := Get(NameHex)
	if err := Register(c); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
}
