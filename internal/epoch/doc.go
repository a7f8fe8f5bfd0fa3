// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package epoch converts between Unix timestamps and human-readable dates.
//
// A Converter carries its own clock and display location so results are
// reproducible in tests. Timestamps are accepted only between 1970 and
// 2100; free-form date strings are parsed with dateparse.
//
// # Key Types
//
//   - Converter: Clock and Location used for conversions
//   - DateResult: Local, UTC, ISO, Timezone and Relative renderings
//   - EpochResult: Seconds and Milliseconds since the epoch
//   - Unit: seconds or milliseconds
//
// # Usage
//
//	c := epoch.New()
//	res := c.EpochToDate(1704067200, epoch.UnitSeconds)
//	fmt.Println(res.ISO) // 2024-01-01T00:00:00.000Z
//
//	back := c.DateToEpoch("Jan 1, 2024")
package epoch
