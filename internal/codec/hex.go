// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"encoding/hex"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
)

const (
	errInvalidHexChars = "Invalid hex characters"
	errOddHexLength    = "Hex string must have even length"
)

// EncodeHex returns the lowercase hex form of the UTF-8 bytes of input.
func EncodeHex(input string) string {
	return hex.EncodeToString([]byte(input))
}

// DecodeHex decodes hex digits after removing an optional 0x prefix and all
// whitespace. Malformed UTF-8 in the decoded bytes is replaced with U+FFFD.
func DecodeHex(input string) Result {
	cleaned := input
	if len(cleaned) >= 2 && cleaned[0] == '0' && (cleaned[1] == 'x' || cleaned[1] == 'X') {
		cleaned = cleaned[2:]
	}
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)

	for i := 0; i < len(cleaned); i++ {
		if !isHexDigit(cleaned[i]) {
			return failure(errInvalidHexChars)
		}
	}
	if len(cleaned)%2 != 0 {
		return failure(errOddHexLength)
	}

	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return failure(errInvalidHexChars)
	}

	text, err := xunicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return success(strings.ToValidUTF8(string(raw), "\uFFFD"))
	}
	return success(string(text))
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
