// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// errNotCorrectlyEncoded matches the message browsers use for atob failures.
const errNotCorrectlyEncoded = "The string to be decoded is not correctly encoded."

// =============================================================================
// BASE64
// =============================================================================

// EncodeBase64 encodes the UTF-8 bytes of input with the standard padded alphabet.
func EncodeBase64(input string) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// DecodeBase64 decodes standard Base64. Decoded bytes that are not valid
// UTF-8 are returned as a byte-string, one Latin-1 code point per byte.
func DecodeBase64(input string) Result {
	raw, ok := forgivingDecode(input)
	if !ok {
		return failure(errNotCorrectlyEncoded)
	}
	if utf8.Valid(raw) {
		return success(string(raw))
	}
	latin, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return success(string(raw))
	}
	return success(string(latin))
}

// forgivingDecode follows the forgiving-base64 decode algorithm: ASCII
// whitespace is ignored and padding is optional.
func forgivingDecode(input string) ([]byte, bool) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, input)

	if len(s)%4 == 0 {
		if strings.HasSuffix(s, "==") {
			s = s[:len(s)-2]
		} else if strings.HasSuffix(s, "=") {
			s = s[:len(s)-1]
		}
	}
	if len(s)%4 == 1 {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		if !isBase64Char(s[i]) {
			return nil, false
		}
	}

	raw, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return raw, true
}

func isBase64Char(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '+' || c == '/'
}

// =============================================================================
// BASE64URL
// =============================================================================

// EncodeBase64URL encodes with the URL-safe alphabet and no padding.
func EncodeBase64URL(input string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(input))
}

// DecodeBase64URL maps the URL-safe alphabet back to the standard one,
// restores padding, and decodes as Base64.
func DecodeBase64URL(input string) Result {
	s := strings.NewReplacer("-", "+", "_", "/").Replace(input)
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return DecodeBase64(s)
}
