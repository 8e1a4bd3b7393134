// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/elastic/tracecat/internal/summarize"
)

func sampleReportResult() *summarize.Result {
	return &summarize.Result{
		Summary: summarize.Summary{
			SummaryText: "Most traces completed. One request timed out while fetching.",
			Themes:      []string{"Retrieval", "Parsing"},
			ToolsUsed: []summarize.ToolUsage{
				{Tool: "fetch", Count: 9}, {Tool: "parse", Count: 7}, {Tool: "rank", Count: 5},
				{Tool: "store", Count: 4}, {Tool: "notify", Count: 3}, {Tool: "cache", Count: 2},
				{Tool: "audit", Count: 1},
			},
			SuccessRate: 87.5,
		},
		Traces: []summarize.Trace{
			{
				TraceID:    "t1",
				Timestamp:  "2026-01-02T10:00:00Z",
				Status:     "OK",
				DurationMs: 450,
				Spans:      []summarize.Span{{Name: "fetch"}, {Name: "parse"}, {Name: "fetch"}},
			},
			{
				TraceID:    "t2",
				Timestamp:  "2026-01-02T10:05:00Z",
				Status:     "ERROR",
				DurationMs: 1500,
			},
		},
		TraceCount: 2,
	}
}

func renderReport(t *testing.T, result *summarize.Result, expanded ...string) string {
	t.Helper()
	t.Setenv("COLUMNS", "100")

	var buf bytes.Buffer
	r := newReportRenderer(&buf, func(id string) bool {
		for _, e := range expanded {
			if e == id {
				return true
			}
		}
		return false
	})
	r.location = time.UTC
	r.Render(result)
	return buf.String()
}

func TestReportSections(t *testing.T) {
	out := renderReport(t, sampleReportResult())

	for _, want := range []string{"Summary", "Success Rate", "87.5%", "Common Themes", "• Retrieval", "Most Used Tools", "Individual Traces (2)", "450ms", "1.50s"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Error Patterns") {
		t.Errorf("empty errors should not render a section:\n%s", out)
	}
	if !strings.Contains(out, "cache (2)") {
		t.Errorf("sixth tool should be listed:\n%s", out)
	}
	if strings.Contains(out, "audit") {
		t.Errorf("seventh tool should be cut:\n%s", out)
	}
}

func TestReportStatusIcons(t *testing.T) {
	out := renderReport(t, sampleReportResult())

	if !strings.Contains(out, "✓ t1") {
		t.Errorf("expected OK icon for t1:\n%s", out)
	}
	if !strings.Contains(out, "✗ t2") {
		t.Errorf("expected failure icon for t2:\n%s", out)
	}
}

func TestReportExpandedTrace(t *testing.T) {
	collapsed := renderReport(t, sampleReportResult())
	if strings.Contains(collapsed, "Spans:") {
		t.Errorf("collapsed traces should hide details:\n%s", collapsed)
	}

	out := renderReport(t, sampleReportResult(), "t1")
	if !strings.Contains(out, "Spans: 3") {
		t.Errorf("expected raw span count:\n%s", out)
	}
	if !strings.Contains(out, "fetch, parse\n") {
		t.Errorf("expected distinct span names in first-seen order:\n%s", out)
	}
	if strings.Count(out, "Trace ID:") != 1 {
		t.Errorf("only t1 should be expanded:\n%s", out)
	}
}

func TestReportErrorsSection(t *testing.T) {
	result := sampleReportResult()
	result.Summary.Errors = []string{"1 failed traces"}

	out := renderReport(t, result)
	if !strings.Contains(out, "Error Patterns") || !strings.Contains(out, "• 1 failed traces") {
		t.Errorf("expected errors section:\n%s", out)
	}
}

func TestReportHeaderUsesTraceCount(t *testing.T) {
	result := sampleReportResult()
	result.TraceCount = 25

	out := renderReport(t, result)
	if !strings.Contains(out, "Individual Traces (25)") {
		t.Errorf("header should show the reported trace count:\n%s", out)
	}
}

func TestReportNoTraces(t *testing.T) {
	result := &summarize.Result{Summary: summarize.Summary{SuccessRate: 0}}

	out := renderReport(t, result)
	if !strings.Contains(out, "Individual Traces (0)") || !strings.Contains(out, "(none)") {
		t.Errorf("expected empty trace list:\n%s", out)
	}
	if strings.HasPrefix(out, "Summary") {
		t.Errorf("blank narrative should be omitted:\n%s", out)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("alpha beta gamma delta", 11)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	for _, l := range lines {
		if len(strings.TrimRight(l, " ")) > 11 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}

func TestDetectTerminalWidthFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	if got := detectTerminalWidth(); got != 132 {
		t.Errorf("detectTerminalWidth() = %d, want 132", got)
	}

	t.Setenv("COLUMNS", "nope")
	if got := detectTerminalWidth(); got != 80 {
		t.Errorf("detectTerminalWidth() = %d, want 80 fallback", got)
	}
}
