// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jwt decodes the structure of JSON Web Tokens without verifying
// their signatures.
package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// TYPES
// =============================================================================

// Decoded holds the parsed header and payload of a token. The signature is
// kept verbatim and never checked.
type Decoded struct {
	Header    map[string]any `json:"header"`
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`

	// Raw JSON text of the header and payload, in source key order.
	HeaderJSON  string `json:"-"`
	PayloadJSON string `json:"-"`
}

// Result is the outcome of Decode. Valid false with a nil Error means there
// was no input yet.
type Result struct {
	Valid   bool     `json:"valid"`
	Decoded *Decoded `json:"decoded"`
	Error   *string  `json:"error"`
}

// Messages returned in Result.Error.
const (
	MsgBadFormat    = "Invalid JWT format. Expected 3 parts separated by dots."
	msgDecodePrefix = "Failed to decode: "
)

var (
	errMalformedBase64 = errors.New("The string to be decoded is not correctly encoded.")
	errMalformedUTF8   = errors.New("URI malformed")
)

// =============================================================================
// DECODE
// =============================================================================

// Decode splits a token into its three segments and decodes the header and
// payload. Whitespace anywhere in the token is ignored.
func Decode(token string) Result {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, token)
	if compact == "" {
		return Result{}
	}

	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return failure(MsgBadFormat)
	}

	headerJSON, err := decodeSegment(parts[0])
	if err != nil {
		return failure(msgDecodePrefix + err.Error())
	}
	header, err := parseObject(headerJSON)
	if err != nil {
		return failure(msgDecodePrefix + err.Error())
	}

	payloadJSON, err := decodeSegment(parts[1])
	if err != nil {
		return failure(msgDecodePrefix + err.Error())
	}
	payload, err := parseObject(payloadJSON)
	if err != nil {
		return failure(msgDecodePrefix + err.Error())
	}

	return Result{
		Valid: true,
		Decoded: &Decoded{
			Header:      header,
			Payload:     payload,
			Signature:   parts[2],
			HeaderJSON:  headerJSON,
			PayloadJSON: payloadJSON,
		},
	}
}

func failure(msg string) Result {
	return Result{Error: &msg}
}

// standardAlphabet maps the standard base64 alphabet onto the URL-safe one
// so segments encoded with either decode.
var standardAlphabet = strings.NewReplacer("+", "-", "/", "_")

// decodeSegment base64url-decodes a segment and requires UTF-8 text.
// Padding is optional.
func decodeSegment(segment string) (string, error) {
	segment = standardAlphabet.Replace(strings.TrimRight(segment, "="))
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return "", errMalformedBase64
	}
	if !utf8.Valid(raw) {
		return "", errMalformedUTF8
	}
	return string(raw), nil
}

func parseObject(text string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("segment is JSON but not an object")
	}
	return obj, nil
}

// =============================================================================
// CLAIMS
// =============================================================================

// IsExpired reports whether the exp claim lies before now. A missing or
// non-numeric exp is never expired.
func IsExpired(payload map[string]any, now time.Time) bool {
	exp, ok := payload["exp"].(float64)
	if !ok {
		return false
	}
	return exp*1000 < float64(now.UnixMilli())
}

// timeClaims are the registered claims rendered as times, in display order.
var timeClaims = []string{"exp", "iat", "nbf", "auth_time"}

// ClaimTime is a numeric date claim converted for display.
type ClaimTime struct {
	Claim   string    `json:"claim"`
	Time    time.Time `json:"time"`
	Expired bool      `json:"expired,omitempty"`
}

// ClaimTimes converts the numeric date claims present in payload. Values
// above 9999999999 are read as milliseconds, others as seconds.
func ClaimTimes(payload map[string]any, now time.Time) []ClaimTime {
	var out []ClaimTime
	for _, claim := range timeClaims {
		v, ok := payload[claim].(float64)
		if !ok {
			continue
		}
		var t time.Time
		if v > 9999999999 {
			t = time.UnixMilli(int64(v))
		} else {
			t = time.UnixMilli(int64(v * 1000))
		}
		out = append(out, ClaimTime{
			Claim:   claim,
			Time:    t,
			Expired: claim == "exp" && IsExpired(payload, now),
		})
	}
	return out
}
