// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// ENCODING DETECTION
// =============================================================================

// Candidate is one plausible decoding of an input.
type Candidate struct {
	Codec      string  `json:"codec"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Output     string  `json:"output"`
}

var (
	base64Shape    = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
	base64URLShape = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	hexShape       = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F\s]+$`)
	percentEscape  = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
)

// Detect returns the encodings that decode input successfully, most likely
// first. Candidates whose output equals the input are dropped.
func Detect(input string) []Candidate {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}

	var out []Candidate
	add := func(name string, confidence float64, reason string) {
		c, ok := Get(name)
		if !ok {
			return
		}
		res := c.Decode(s)
		if !res.Success || res.Output == s {
			return
		}
		if printableRatio(res.Output) < 0.9 {
			confidence -= 0.3
			reason += ", output is mostly non-printable"
		}
		if confidence <= 0 {
			return
		}
		out = append(out, Candidate{
			Codec:      name,
			Confidence: math.Round(confidence*100) / 100,
			Reason:     reason,
			Output:     res.Output,
		})
	}

	if escapePattern.MatchString(s) {
		add(NameUnicode, 0.9, "contains unicode escape sequences")
	}

	if n := len(percentEscape.FindAllString(s, -1)); n > 0 {
		density := float64(n*3) / float64(len(s))
		add(NameURL, math.Min(0.5+density, 0.95), "contains percent-encoded bytes")
	}

	if hexShape.MatchString(s) {
		if strings.HasPrefix(strings.ToLower(s), "0x") {
			add(NameHex, 0.9, "hex digits with 0x prefix")
		} else if len(s) >= 4 {
			add(NameHex, 0.6, "only hex digits")
		}
	}

	if len(s) >= 4 && base64Shape.MatchString(s) {
		confidence := 0.6
		reason := "base64 alphabet"
		if len(s)%4 == 0 {
			confidence = 0.8
			reason = "base64 alphabet with valid length"
		}
		add(NameBase64, confidence, reason)
	}

	if len(s) >= 4 && base64URLShape.MatchString(s) && strings.ContainsAny(s, "-_") {
		add(NameBase64URL, 0.85, "url-safe base64 alphabet")
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Codec < out[j].Codec
	})
	return out
}

// printableRatio is the fraction of runes that are graphic or whitespace.
func printableRatio(s string) float64 {
	total, printable := 0, 0
	for _, r := range s {
		total++
		if unicode.IsGraphic(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(printable) / float64(total)
}
