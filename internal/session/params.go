// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package session

import "strings"

// Trace count bounds.
const (
	MinCount     = 1
	MaxCount     = 100
	DefaultCount = 10
)

// ClampCount forces n into [MinCount, MaxCount].
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// ParseCount turns the raw text of the count field into a valid count.
// It reads the leading integer the way a number input does: surrounding
// junk is ignored, and text without digits (or a zero) becomes 1.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n <= MaxCount {
			n = n*10 + int(r-'0')
		}
	}
	if digits == 0 || n == 0 {
		return MinCount
	}
	if neg {
		n = -n
	}
	return ClampCount(n)
}
