// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package epoch

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// =============================================================================
// UNITS
// =============================================================================

// Unit is the resolution of a numeric timestamp.
type Unit string

const (
	UnitSeconds      Unit = "seconds"
	UnitMilliseconds Unit = "milliseconds"
)

// msThreshold is the largest value still read as seconds.
const msThreshold = 9999999999

// DetectUnit guesses the unit of a timestamp: values above 9999999999 are
// milliseconds.
func DetectUnit(value float64) Unit {
	if value > msThreshold {
		return UnitMilliseconds
	}
	return UnitSeconds
}

// ParseUnit accepts "seconds", "milliseconds" (or s/ms). "auto" and "" pick
// a unit from value.
func ParseUnit(name string, value float64) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return DetectUnit(value), nil
	case "s", "sec", "seconds":
		return UnitSeconds, nil
	case "ms", "millis", "milliseconds":
		return UnitMilliseconds, nil
	}
	return "", fmt.Errorf("unknown unit %q", name)
}

// =============================================================================
// RESULTS
// =============================================================================

// DateResult is the outcome of EpochToDate.
type DateResult struct {
	Valid    bool   `json:"valid"`
	Local    string `json:"local,omitempty"`
	UTC      string `json:"utc,omitempty"`
	ISO      string `json:"iso,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Relative string `json:"relative,omitempty"`
	Error    string `json:"error,omitempty"`
}

// EpochResult is the outcome of DateToEpoch.
type EpochResult struct {
	Valid        bool   `json:"valid"`
	Seconds      int64  `json:"seconds"`
	Milliseconds int64  `json:"milliseconds"`
	Error        string `json:"error,omitempty"`
}

// NowResult is the current time in both units.
type NowResult struct {
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
}

// Error messages.
const (
	MsgOutOfRange  = "Timestamp out of reasonable range (1970-2100)"
	MsgInvalidDate = "Invalid date format"
)

// Output layouts.
const (
	LayoutLocal = "1/2/2006, 3:04:05 PM"
	LayoutUTC   = "Mon, 02 Jan 2006 15:04:05 GMT"
	LayoutISO   = "2006-01-02T15:04:05.000Z"
)

var (
	minMillis = float64(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
	maxMillis = float64(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())

	dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// =============================================================================
// CONVERTER
// =============================================================================

// Converter converts between timestamps and dates relative to a clock and a
// display location.
type Converter struct {
	Clock    func() time.Time
	Location *time.Location
}

// New returns a converter on the system clock and local zone.
func New() *Converter {
	return &Converter{Clock: time.Now, Location: time.Local}
}

func (c *Converter) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func (c *Converter) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// EpochToDate renders a timestamp in local, UTC and ISO forms. Only
// instants from 1970-01-01 to 2100-01-01 (inclusive) are accepted.
func (c *Converter) EpochToDate(value float64, unit Unit) DateResult {
	ms := value
	if unit == UnitSeconds {
		ms = value * 1000
	}
	if math.IsNaN(ms) || ms < minMillis || ms > maxMillis {
		return DateResult{Error: MsgOutOfRange}
	}

	t := time.UnixMilli(int64(math.Trunc(ms)))
	return DateResult{
		Valid:    true,
		Local:    t.In(c.location()).Format(LayoutLocal),
		UTC:      t.UTC().Format(LayoutUTC),
		ISO:      t.UTC().Format(LayoutISO),
		Timezone: ZoneName(c.location()),
		Relative: c.RelativeTime(ms),
	}
}

// DateToEpoch parses a free-form date. Date-only ISO strings are midnight
// UTC; other strings without a zone are read in the converter's location.
func (c *Converter) DateToEpoch(s string) EpochResult {
	s = strings.TrimSpace(s)
	if s == "" {
		return EpochResult{Error: MsgInvalidDate}
	}

	loc := c.location()
	if dateOnly.MatchString(s) {
		loc = time.UTC
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return EpochResult{Error: MsgInvalidDate}
	}

	ms := t.UnixMilli()
	return EpochResult{
		Valid:        true,
		Seconds:      floorDiv(ms, 1000),
		Milliseconds: ms,
	}
}

// RelativeTime phrases an absolute millisecond timestamp relative to now:
// "in 3 days", "2 hours ago" or "now".
func (c *Converter) RelativeTime(ms float64) string {
	diff := ms - float64(c.now().UnixMilli())
	abs := math.Abs(diff)

	seconds := math.Floor(abs / 1000)
	minutes := math.Floor(seconds / 60)
	hours := math.Floor(minutes / 60)
	days := math.Floor(hours / 24)
	years := math.Floor(days / 365)

	var value float64
	var unit string
	switch {
	case years > 0:
		value, unit = years, "year"
	case days > 0:
		value, unit = days, "day"
	case hours > 0:
		value, unit = hours, "hour"
	case minutes > 0:
		value, unit = minutes, "minute"
	default:
		value, unit = seconds, "second"
	}
	if value != 1 {
		unit += "s"
	}

	switch {
	case diff > 0:
		return fmt.Sprintf("in %.0f %s", value, unit)
	case diff < 0:
		return fmt.Sprintf("%.0f %s ago", value, unit)
	default:
		return "now"
	}
}

// Now returns the converter's current time in seconds and milliseconds.
func (c *Converter) Now() NowResult {
	ms := c.now().UnixMilli()
	return NowResult{Seconds: floorDiv(ms, 1000), Milliseconds: ms}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ZoneName returns the IANA name of loc. For the process-local zone it
// consults $TZ and the /etc/localtime link before falling back to the
// abbreviation.
func ZoneName(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	if name := loc.String(); name != "Local" {
		return name
	}
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if i := strings.Index(target, "zoneinfo/"); i >= 0 {
			return target[i+len("zoneinfo/"):]
		}
	}
	abbr, _ := time.Now().In(loc).Zone()
	return abbr
}

// =============================================================================
// DEFAULT CONVERTER
// =============================================================================

var std = New()

// EpochToDate converts using the system clock and local zone.
func EpochToDate(value float64, unit Unit) DateResult {
	return std.EpochToDate(value, unit)
}

// DateToEpoch parses using the local zone.
func DateToEpoch(s string) EpochResult {
	return std.DateToEpoch(s)
}

// RelativeTime phrases ms relative to the system clock.
func RelativeTime(ms float64) string {
	return std.RelativeTime(ms)
}
