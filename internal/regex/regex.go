// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package regex

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// =============================================================================
// TYPES
// =============================================================================

// Match is one hit. Index counts runes from the start of the text.
type Match struct {
	FullMatch string   `json:"fullMatch"`
	Groups    []string `json:"groups"`
	Index     int      `json:"index"`
}

// End returns the rune offset just past the match.
func (m Match) End() int {
	return m.Index + len([]rune(m.FullMatch))
}

// Result is the outcome of Find. Warning is advisory; a timed-out match
// carries it alongside Error.
type Result struct {
	Valid   bool    `json:"valid"`
	Matches []Match `json:"matches"`
	Warning string  `json:"warning,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// BacktrackWarning is attached to patterns with nested quantified groups.
const BacktrackWarning = "Warning: This pattern may cause catastrophic backtracking on certain inputs."

// DefaultTimeout bounds a single match attempt.
const DefaultTimeout = 2 * time.Second

// ErrTimeout is reported when matching exceeds the configured timeout.
var ErrTimeout = errors.New("match timed out")

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\([^)]*\+\)[^)]*\+`), // (a+)+
	regexp.MustCompile(`\([^)]*\*\)[^)]*\*`), // (a*)*
	regexp.MustCompile(`\([^)]*\+\)[^)]*\*`), // (a+)*
	regexp.MustCompile(`\([^)]*\*\)[^)]*\+`), // (a*)+
}

// =============================================================================
// FLAGS
// =============================================================================

// Flags are the single-letter modifiers: g (global), i (ignore case),
// m (multiline) and s (dot matches newline).
type Flags struct {
	Global     bool
	IgnoreCase bool
	Multiline  bool
	DotAll     bool
}

// ParseFlags reads a flag string such as "gi". Unknown or repeated
// letters are rejected.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	seen := make(map[rune]bool, len(s))
	for _, r := range s {
		if seen[r] {
			return Flags{}, fmt.Errorf("Invalid flags supplied to RegExp constructor '%s'", s)
		}
		seen[r] = true
		switch r {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		default:
			return Flags{}, fmt.Errorf("Invalid flags supplied to RegExp constructor '%s'", s)
		}
	}
	return f, nil
}

// String renders the flags in canonical gims order.
func (f Flags) String() string {
	var b strings.Builder
	if f.Global {
		b.WriteByte('g')
	}
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.DotAll {
		b.WriteByte('s')
	}
	return b.String()
}

// options maps flags to engine options. ECMAScript syntax is used unless
// dot-all is requested, which that mode does not support.
func (f Flags) options() regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	if f.DotAll {
		opts |= regexp2.Singleline
	} else {
		opts |= regexp2.ECMAScript
	}
	return opts
}

// =============================================================================
// MATCHER
// =============================================================================

// Matcher runs patterns with a per-attempt timeout.
type Matcher struct {
	Timeout time.Duration
}

// NewMatcher returns a matcher with the given timeout; zero or negative
// selects DefaultTimeout.
func NewMatcher(timeout time.Duration) *Matcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Matcher{Timeout: timeout}
}

// Match compiles pattern with flags and searches text. In global mode it
// collects every non-overlapping match, stepping one rune past empty
// matches. An empty pattern yields a valid result with no matches.
func (m *Matcher) Match(pattern, flags, text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Matches: []Match{}, Error: fmt.Sprintf("%v", r)}
		}
	}()

	if pattern == "" {
		return Result{Valid: true, Matches: []Match{}}
	}

	f, err := ParseFlags(flags)
	if err != nil {
		return Result{Matches: []Match{}, Error: err.Error()}
	}

	re, err := regexp2.Compile(pattern, f.options())
	if err != nil {
		return Result{Matches: []Match{}, Error: err.Error()}
	}
	re.MatchTimeout = m.timeout()

	matches, err := collect(re, []rune(text), f.Global)
	if err != nil {
		res = Result{Matches: []Match{}, Error: err.Error()}
		if errors.Is(err, ErrTimeout) {
			res.Warning = Warn(pattern)
		}
		return res
	}
	return Result{Valid: true, Matches: matches, Warning: Warn(pattern)}
}

func (m *Matcher) timeout() time.Duration {
	if m == nil || m.Timeout <= 0 {
		return DefaultTimeout
	}
	return m.Timeout
}

func collect(re *regexp2.Regexp, runes []rune, global bool) ([]Match, error) {
	matches := []Match{}
	start := 0
	for start <= len(runes) {
		hit, err := re.FindRunesMatchStartingAt(runes, start)
		if err != nil {
			if strings.Contains(err.Error(), "timeout") {
				return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
			}
			return nil, err
		}
		if hit == nil {
			break
		}
		matches = append(matches, toMatch(hit))
		if !global {
			break
		}
		next := hit.Index + hit.Length
		if hit.Length == 0 {
			next++
		}
		start = next
	}
	return matches, nil
}

func toMatch(hit *regexp2.Match) Match {
	groups := hit.Groups()
	captured := make([]string, 0, len(groups))
	for _, g := range groups[1:] {
		captured = append(captured, g.String())
	}
	return Match{
		FullMatch: hit.String(),
		Groups:    captured,
		Index:     hit.Index,
	}
}

// Warn returns BacktrackWarning when pattern contains a quantified group
// that is itself quantified, or "" otherwise.
func Warn(pattern string) string {
	for _, dp := range dangerousPatterns {
		if dp.MatchString(pattern) {
			return BacktrackWarning
		}
	}
	return ""
}

// Find runs pattern on a matcher with DefaultTimeout.
func Find(pattern, flags, text string) Result {
	return NewMatcher(DefaultTimeout).Match(pattern, flags, text)
}

// =============================================================================
// HIGHLIGHT
// =============================================================================

// Segment is a run of text that is either a match or the gap between two.
// MatchIndex is -1 for gaps.
type Segment struct {
	Text       string `json:"text"`
	IsMatch    bool   `json:"isMatch"`
	MatchIndex int    `json:"matchIndex"`
}

// Highlight splits text into alternating gap and match segments. Matches
// must be ordered and non-overlapping, as Find returns them. Empty
// matches produce empty match segments.
func Highlight(text string, matches []Match) []Segment {
	if text == "" || len(matches) == 0 {
		return nil
	}

	runes := []rune(text)
	var parts []Segment
	last := 0
	for i, m := range matches {
		if m.Index > last {
			parts = append(parts, Segment{Text: string(runes[last:m.Index]), MatchIndex: -1})
		}
		parts = append(parts, Segment{Text: m.FullMatch, IsMatch: true, MatchIndex: i})
		if end := m.End(); end > last {
			last = end
		}
	}
	if last < len(runes) {
		parts = append(parts, Segment{Text: string(runes[last:]), MatchIndex: -1})
	}
	return parts
}
