// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PadLeft pads a string to the left to reach the specified width
func PadLeft(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-w) + s
}

// TruncateWithEllipsis truncates a string to maxLen cells, adding "..." if truncated
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "...")
}

// PadOrTruncate ensures a string is exactly the given width, padding with spaces or truncating
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = TruncateWithEllipsis(s, width)
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}

// singleLine collapses line breaks so a value fits one row.
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
