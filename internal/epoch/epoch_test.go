// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package epoch

import (
	"strings"
	"testing"
	"time"
)

// fixedConverter pins the clock to 2024-06-15T12:00:00Z and displays UTC.
func fixedConverter() *Converter {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	return &Converter{
		Clock:    func() time.Time { return now },
		Location: time.UTC,
	}
}

// =============================================================================
// EPOCH -> DATE
// =============================================================================

func TestEpochToDate(t *testing.T) {
	c := fixedConverter()

	res := c.EpochToDate(1704067200, UnitSeconds)
	if !res.Valid {
		t.Fatalf("Expected valid result, got error %q", res.Error)
	}
	if res.ISO != "2024-01-01T00:00:00.000Z" {
		t.Errorf("Expected ISO 2024-01-01T00:00:00.000Z, got %s", res.ISO)
	}
	if res.UTC != "Mon, 01 Jan 2024 00:00:00 GMT" {
		t.Errorf("Expected RFC 1123 UTC string, got %s", res.UTC)
	}
	if res.Local != "1/1/2024, 12:00:00 AM" {
		t.Errorf("Expected local 1/1/2024, 12:00:00 AM, got %s", res.Local)
	}
	if res.Timezone != "UTC" {
		t.Errorf("Expected timezone UTC, got %s", res.Timezone)
	}
	if res.Relative != "166 days ago" {
		t.Errorf("Expected 166 days ago, got %s", res.Relative)
	}
}

func TestEpochToDate_Milliseconds(t *testing.T) {
	res := fixedConverter().EpochToDate(1704067200123, UnitMilliseconds)
	if res.ISO != "2024-01-01T00:00:00.123Z" {
		t.Errorf("Expected millisecond precision, got %s", res.ISO)
	}
}

func TestEpochToDate_Location(t *testing.T) {
	c := fixedConverter()
	c.Location = time.FixedZone("UTC+2", 2*60*60)
	res := c.EpochToDate(1704067200, UnitSeconds)
	if res.Local != "1/1/2024, 2:00:00 AM" {
		t.Errorf("Expected shifted local time, got %s", res.Local)
	}
	if res.Timezone != "UTC+2" {
		t.Errorf("Expected zone name UTC+2, got %s", res.Timezone)
	}
}

func TestEpochToDate_Range(t *testing.T) {
	c := fixedConverter()

	tests := []struct {
		name  string
		value float64
		unit  Unit
		valid bool
	}{
		{"before 1970", -1000000, UnitSeconds, false},
		{"after 2100", 5000000000, UnitSeconds, false},
		{"lower bound", 0, UnitSeconds, true},
		{"upper bound", 4102444800, UnitSeconds, true},
		{"just past upper bound", 4102444800001, UnitMilliseconds, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := c.EpochToDate(tc.value, tc.unit)
			if res.Valid != tc.valid {
				t.Errorf("Expected valid=%v, got %v (%s)", tc.valid, res.Valid, res.Error)
			}
			if !tc.valid && !strings.Contains(res.Error, "range") {
				t.Errorf("Expected range error, got %q", res.Error)
			}
		})
	}
}

// =============================================================================
// DATE -> EPOCH
// =============================================================================

func TestDateToEpoch(t *testing.T) {
	c := fixedConverter()

	tests := []struct {
		name    string
		input   string
		seconds int64
	}{
		{"iso with zone", "2024-01-01T00:00:00Z", 1704067200},
		{"date only is utc", "2024-01-01", 1704067200},
		{"whitespace", "  2024-01-01  ", 1704067200},
		{"natural", "Jan 1, 2024", 1704067200},
		{"rfc 2822", "Mon, 01 Jan 2024 00:00:00 GMT", 1704067200},
		{"offset", "2024-01-01T02:00:00+02:00", 1704067200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := c.DateToEpoch(tc.input)
			if !res.Valid {
				t.Fatalf("Expected valid result for %q, got %q", tc.input, res.Error)
			}
			if res.Seconds != tc.seconds {
				t.Errorf("Expected %d seconds, got %d", tc.seconds, res.Seconds)
			}
		})
	}
}

func TestDateToEpoch_Millis(t *testing.T) {
	res := fixedConverter().DateToEpoch("2024-01-01T00:00:00Z")
	if res.Milliseconds != 1704067200000 {
		t.Errorf("Expected 1704067200000, got %d", res.Milliseconds)
	}
}

func TestDateToEpoch_Invalid(t *testing.T) {
	for _, input := range []string{"not a date", "", "   "} {
		res := fixedConverter().DateToEpoch(input)
		if res.Valid {
			t.Errorf("Expected %q to be invalid", input)
		}
		if !strings.Contains(res.Error, "Invalid date") {
			t.Errorf("Expected Invalid date error, got %q", res.Error)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	c := fixedConverter()
	toDate := c.EpochToDate(1704067200, UnitSeconds)
	back := c.DateToEpoch(toDate.ISO)
	if !back.Valid || back.Seconds != 1704067200 {
		t.Errorf("Expected round trip to 1704067200, got %+v", back)
	}
}

// =============================================================================
// RELATIVE TIME
// =============================================================================

func TestRelativeTime(t *testing.T) {
	c := fixedConverter()
	now := float64(c.Clock().UnixMilli())

	tests := []struct {
		offset float64
		want   string
	}{
		{0, "now"},
		{-30000, "30 seconds ago"},
		{30000, "in 30 seconds"},
		{-1000, "1 second ago"},
		{-500, "0 seconds ago"},
		{-120000, "2 minutes ago"},
		{-7200000, "2 hours ago"},
		{-172800000, "2 days ago"},
		{-86400000, "1 day ago"},
		{-63072000000, "2 years ago"},
		{31536000000, "in 1 year"},
	}

	for _, tc := range tests {
		if got := c.RelativeTime(now + tc.offset); got != tc.want {
			t.Errorf("RelativeTime(now%+.0f) = %q, want %q", tc.offset, got, tc.want)
		}
	}
}

// =============================================================================
// UNITS
// =============================================================================

func TestDetectUnit(t *testing.T) {
	tests := []struct {
		value float64
		want  Unit
	}{
		{1704067200, UnitSeconds},
		{1704067200000, UnitMilliseconds},
		{9999999999, UnitSeconds},
		{10000000000, UnitMilliseconds},
	}

	for _, tc := range tests {
		if got := DetectUnit(tc.value); got != tc.want {
			t.Errorf("DetectUnit(%.0f) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	if u, err := ParseUnit("auto", 1704067200000); err != nil || u != UnitMilliseconds {
		t.Errorf("Expected auto to detect milliseconds, got %s (%v)", u, err)
	}
	if u, err := ParseUnit("s", 1704067200000); err != nil || u != UnitSeconds {
		t.Errorf("Expected explicit seconds, got %s (%v)", u, err)
	}
	if _, err := ParseUnit("fortnights", 1); err == nil {
		t.Error("Expected unknown unit error")
	}
}

func TestNow(t *testing.T) {
	n := fixedConverter().Now()
	if n.Seconds != 1718452800 || n.Milliseconds != 1718452800000 {
		t.Errorf("Unexpected now: %+v", n)
	}
}

func TestZoneName(t *testing.T) {
	if got := ZoneName(time.UTC); got != "UTC" {
		t.Errorf("Expected UTC, got %s", got)
	}
	if got := ZoneName(nil); got != "UTC" {
		t.Errorf("Expected UTC for nil, got %s", got)
	}
	t.Setenv("TZ", "America/New_York")
	if got := ZoneName(time.Local); got != "America/New_York" {
		t.Errorf("Expected TZ override, got %s", got)
	}
}
