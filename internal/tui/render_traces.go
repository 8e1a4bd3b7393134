// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elastic/tracecat/internal/explorer"
	"github.com/elastic/tracecat/internal/summarize"
)

// Column widths for trace rows.
const (
	markerWidth    = 2
	iconWidth      = 2
	timestampWidth = 19
	durationWidth  = 10
)

// renderTraceList renders the trace rows, expanded details included,
// windowed to height lines around the cursor.
func (m Model) renderTraceList(height int) string {
	traces := m.traces()
	header := SectionTitleStyle.Render(fmt.Sprintf("Individual Traces (%d)", explorer.TraceCount(m.session.Result())))
	if len(traces) == 0 {
		return header + "\n" + DetailMutedStyle.Render("  No traces returned")
	}

	var lines []string
	cursorStart, cursorEnd := 0, 0
	for i, t := range traces {
		if i == m.UI.Cursor {
			cursorStart = len(lines)
		}
		lines = append(lines, m.renderTraceRow(t, i == m.UI.Cursor))
		if m.session.IsExpanded(t.TraceID) {
			lines = append(lines, m.renderTraceDetail(t)...)
		}
		if i == m.UI.Cursor {
			cursorEnd = len(lines) - 1
		}
	}

	visible := max(height-1, 1)
	start := 0
	if cursorEnd >= visible {
		start = cursorEnd - visible + 1
	}
	if cursorStart < start {
		start = cursorStart
	}
	end := min(start+visible, len(lines))

	return header + "\n" + strings.Join(lines[start:end], "\n")
}

// renderTraceRow renders the one-line header of a trace.
func (m Model) renderTraceRow(t summarize.Trace, selected bool) string {
	marker := "▸ "
	if m.session.IsExpanded(t.TraceID) {
		marker = "▾ "
	}

	ok := explorer.IsOK(t.Status)
	icon := "✗ "
	if ok {
		icon = "✓ "
	}

	ts := explorer.FormatTimestamp(t.Timestamp, m.location)
	badge := explorer.FormatDuration(t.DurationMs)

	titleWidth := max(m.UI.Width-4-markerWidth-iconWidth-timestampWidth-durationWidth-4, 8)
	title := PadOrTruncate(singleLine(explorer.TraceTitle(t)), titleWidth)

	if selected && m.UI.Focus == focusList {
		plain := marker + icon + title + "  " + PadOrTruncate(ts, timestampWidth) + "  " + PadLeft(badge, durationWidth-2)
		return SelectedRowStyle.Render(plain)
	}

	return marker +
		TraceStatusStyle(ok).Render(icon) +
		TraceTitleStyle.Render(title) + "  " +
		TimestampStyle.Render(PadOrTruncate(ts, timestampWidth)) + "  " +
		DurationBadgeStyle.Render(badge)
}

// renderTraceDetail renders the expanded lines of a trace.
func (m Model) renderTraceDetail(t summarize.Trace) []string {
	const indent = "    "
	status := t.Status
	if status == "" {
		status = "-"
	}

	lines := []string{
		indent + DetailKeyStyle.Render("Trace ID: ") + DetailValueStyle.Render(t.TraceID),
		indent + DetailKeyStyle.Render("Status: ") + TraceStatusStyle(explorer.IsOK(t.Status)).Render(status),
		indent + DetailKeyStyle.Render("Spans: ") + DetailValueStyle.Render(fmt.Sprintf("%d", explorer.SpanCount(t))),
	}

	names := explorer.DistinctSpanNames(t.Spans)
	if len(names) > 0 {
		chips := make([]string, 0, len(names))
		for _, n := range names {
			chips = append(chips, SpanNameStyle.Render(singleLine(n)))
		}
		row := lipgloss.NewStyle().Width(max(m.UI.Width-4-len(indent), 10)).Render(strings.Join(chips, " "))
		for _, l := range strings.Split(row, "\n") {
			lines = append(lines, indent+l)
		}
	}
	return lines
}
