// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// escapePattern recognises, in priority order: \u{H+}, \uHHHH, &#D+; and &#xH+;
var escapePattern = regexp.MustCompile(`\\u\{([0-9a-fA-F]+)\}|\\u([0-9a-fA-F]{4})|&#([0-9]+);|&#x([0-9a-fA-F]+);`)

// EncodeUnicode escapes every rune: BMP runes as \uhhhh, others as \u{h+}.
func EncodeUnicode(input string) string {
	var sb strings.Builder
	sb.Grow(len(input) * 6)
	for _, r := range input {
		if r > 0xFFFF {
			fmt.Fprintf(&sb, `\u{%x}`, r)
		} else {
			fmt.Fprintf(&sb, `\u%04x`, r)
		}
	}
	return sb.String()
}

// DecodeUnicode replaces escape sequences in a single left-to-right pass.
// Text outside an escape passes through unchanged. Consecutive \uHHHH
// escapes forming a UTF-16 surrogate pair decode to one rune.
func DecodeUnicode(input string) Result {
	matches := escapePattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return success(input)
	}

	var sb strings.Builder
	sb.Grow(len(input))
	last := 0
	pendingHigh := rune(-1)
	pendingEnd := -1

	flushPending := func() {
		if pendingHigh >= 0 {
			sb.WriteRune(utf8.RuneError)
			pendingHigh = -1
		}
	}

	for _, m := range matches {
		start, end := m[0], m[1]
		if start != pendingEnd {
			flushPending()
		}
		sb.WriteString(input[last:start])
		last = end

		isUTF16Unit := m[4] >= 0
		cp, err := escapeCodePoint(input, m)
		if err != nil {
			return failure(err.Error())
		}

		if isUTF16Unit && utf16.IsSurrogate(cp) {
			if cp < 0xDC00 {
				flushPending()
				pendingHigh = cp
				pendingEnd = end
				continue
			}
			if pendingHigh >= 0 {
				sb.WriteRune(utf16.DecodeRune(pendingHigh, cp))
				pendingHigh = -1
				continue
			}
		}
		flushPending()
		if utf16.IsSurrogate(cp) {
			sb.WriteRune(utf8.RuneError)
			continue
		}
		sb.WriteRune(cp)
	}
	flushPending()
	sb.WriteString(input[last:])

	return success(sb.String())
}

// escapeCodePoint extracts the code point from whichever alternative matched.
func escapeCodePoint(input string, m []int) (rune, error) {
	var digits string
	base := 16
	switch {
	case m[2] >= 0:
		digits = input[m[2]:m[3]]
	case m[4] >= 0:
		digits = input[m[4]:m[5]]
	case m[6] >= 0:
		digits = input[m[6]:m[7]]
		base = 10
	default:
		digits = input[m[8]:m[9]]
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, fmt.Errorf("Invalid code point %s", digits)
	}
	return rune(v), nil
}
