// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package explorer holds the display derivations for a summary result:
// duration and rate formatting, tool truncation, span name deduplication,
// section visibility and the per-trace expansion set. Nothing here depends
// on a rendering framework.
package explorer

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatDuration renders a duration in milliseconds.
// Below one second it is whole milliseconds ("450ms"), otherwise seconds
// with two decimals ("1.50s"). Negative and non-finite values render as "0ms".
func FormatDuration(ms float64) string {
	if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		ms = 0
	}
	if ms < 1000 {
		return strconv.FormatInt(int64(ms), 10) + "ms"
	}
	return fmt.Sprintf("%.2fs", ms/1000)
}

// FormatSuccessRate renders a 0-100 rate with one decimal ("87.5%").
func FormatSuccessRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// SuccessFill returns how many of width cells a bar for rate should fill.
// The mapping is linear; out-of-range rates are clamped to the bar.
func SuccessFill(rate float64, width int) int {
	if width <= 0 || math.IsNaN(rate) {
		return 0
	}
	rate = math.Max(0, math.Min(100, rate))
	return int(math.Round(rate / 100 * float64(width)))
}

// timestampLayouts are tried in order. Naive timestamps (no offset) are
// interpreted in the target location, matching how browsers treat them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 trace timestamp.
func ParseTimestamp(iso string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, iso, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: %w", iso, lastErr)
}

// FormatTimestamp renders an ISO-8601 timestamp in loc (nil means local time).
// Unparseable input is returned unchanged so the row still shows something.
func FormatTimestamp(iso string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, err := ParseTimestamp(iso, loc)
	if err != nil {
		if iso == "" {
			return "-"
		}
		return iso
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}
