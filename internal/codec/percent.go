// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const errURIMalformed = "URI malformed"

const upperHex = "0123456789ABCDEF"

// EncodeURL percent-encodes every UTF-8 byte except the URI component
// unreserved set: A-Z a-z 0-9 - _ . ! ~ * ' ( )
func EncodeURL(input string) string {
	var sb strings.Builder
	sb.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isUnreservedComponent(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[c>>4])
		sb.WriteByte(upperHex[c&0x0F])
	}
	return sb.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// DecodeURL decodes percent-encoded UTF-8. A '+' is left as is.
func DecodeURL(input string) Result {
	decoded, err := url.PathUnescape(input)
	if err != nil {
		return failure(errURIMalformed)
	}
	if !utf8.ValidString(decoded) {
		return failure(errURIMalformed)
	}
	return success(decoded)
}
