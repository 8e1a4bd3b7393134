// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/elastic/tracecat/internal/explorer"
	"github.com/elastic/tracecat/internal/summarize"
)

const (
	reportBarWidth = 20
	minReportWidth = 40
)

// reportRenderer prints a summary result as plain text.
type reportRenderer struct {
	w        io.Writer
	width    int
	location *time.Location
	expanded func(traceID string) bool
}

func newReportRenderer(w io.Writer, expanded func(string) bool) *reportRenderer {
	if expanded == nil {
		expanded = func(string) bool { return false }
	}
	return &reportRenderer{
		w:        w,
		width:    max(detectTerminalWidth(), minReportWidth),
		expanded: expanded,
	}
}

func detectTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if env := os.Getenv("COLUMNS"); env != "" {
		if val, err := strconv.Atoi(env); err == nil && val > 0 {
			return val
		}
	}
	return 80
}

// Render writes every visible summary section followed by the trace list.
func (r *reportRenderer) Render(result *summarize.Result) {
	s := result.Summary
	for _, sec := range explorer.Sections(s) {
		r.renderSection(sec, s)
		fmt.Fprintln(r.w)
	}
	r.renderTraces(explorer.TraceCount(result), result.Traces)
}

func (r *reportRenderer) renderSection(sec explorer.Section, s summarize.Summary) {
	fmt.Fprintln(r.w, sec.String())
	switch sec {
	case explorer.SectionNarrative:
		for _, line := range wrapText(strings.TrimSpace(s.SummaryText), r.width-2) {
			fmt.Fprintln(r.w, "  "+line)
		}
	case explorer.SectionSuccessRate:
		fill := explorer.SuccessFill(s.SuccessRate, reportBarWidth)
		bar := strings.Repeat("█", fill) + strings.Repeat("░", reportBarWidth-fill)
		fmt.Fprintf(r.w, "  %s %s\n", bar, explorer.FormatSuccessRate(s.SuccessRate))
	case explorer.SectionThemes:
		r.renderBullets(s.Themes)
	case explorer.SectionErrors:
		r.renderBullets(s.Errors)
	case explorer.SectionTools:
		for _, tool := range explorer.TopTools(s.ToolsUsed) {
			fmt.Fprintf(r.w, "  %s (%d)\n", r.fit(tool.Tool, 4), tool.Count)
		}
	}
}

func (r *reportRenderer) renderBullets(items []string) {
	for _, item := range items {
		fmt.Fprintln(r.w, "  • "+r.fit(item, 4))
	}
}

func (r *reportRenderer) renderTraces(count int, traces []summarize.Trace) {
	fmt.Fprintf(r.w, "Individual Traces (%d)\n", count)
	if len(traces) == 0 {
		fmt.Fprintln(r.w, "  (none)")
		return
	}
	for _, t := range traces {
		icon := "✓"
		if !explorer.IsOK(t.Status) {
			icon = "✗"
		}
		meta := fmt.Sprintf("  %s  %s", explorer.FormatTimestamp(t.Timestamp, r.location), explorer.FormatDuration(t.DurationMs))
		title := r.fit(explorer.TraceTitle(t), 4+ansi.StringWidth(meta))
		fmt.Fprintf(r.w, "  %s %s%s\n", icon, title, meta)

		if r.expanded(t.TraceID) {
			r.renderTraceDetail(t)
		}
	}
}

func (r *reportRenderer) renderTraceDetail(t summarize.Trace) {
	fmt.Fprintf(r.w, "      Trace ID: %s\n", t.TraceID)
	fmt.Fprintf(r.w, "      Status:   %s\n", t.Status)
	fmt.Fprintf(r.w, "      Spans: %d\n", explorer.SpanCount(t))
	if names := explorer.DistinctSpanNames(t.Spans); len(names) > 0 {
		fmt.Fprintf(r.w, "      %s\n", r.fit(strings.Join(names, ", "), 6))
	}
}

// fit truncates s so that it fits next to indent columns of other content.
func (r *reportRenderer) fit(s string, indent int) string {
	limit := r.width - indent
	if limit < 1 {
		limit = 1
	}
	return ansi.Truncate(s, limit, "…")
}

// wrapText breaks s on spaces into lines of at most width cells.
func wrapText(s string, width int) []string {
	if s == "" {
		return nil
	}
	return strings.Split(ansi.Wordwrap(s, max(width, 1), ""), "\n")
}
