// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package explorer

import (
	"reflect"
	"testing"

	"github.com/elastic/tracecat/internal/summarize"
)

func TestTopTools_TruncatesWithoutReordering(t *testing.T) {
	tools := []summarize.ToolUsage{
		{Tool: "a", Count: 1},
		{Tool: "b", Count: 9},
		{Tool: "c", Count: 3},
		{Tool: "d", Count: 7},
		{Tool: "e", Count: 2},
		{Tool: "f", Count: 8},
		{Tool: "g", Count: 50},
		{Tool: "h", Count: 4},
	}

	got := TopTools(tools)
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	for i := range got {
		if got[i] != tools[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], tools[i])
		}
	}
}

func TestTopTools_Short(t *testing.T) {
	tools := []summarize.ToolUsage{{Tool: "search", Count: 4}}
	if got := TopTools(tools); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
	if got := TopTools(nil); len(got) != 0 {
		t.Errorf("nil input should stay empty, got %v", got)
	}
}

func TestSections(t *testing.T) {
	tests := []struct {
		name     string
		summary  summarize.Summary
		expected []Section
	}{
		{
			name:     "all empty",
			summary:  summarize.Summary{},
			expected: []Section{SectionSuccessRate},
		},
		{
			name: "everything",
			summary: summarize.Summary{
				SummaryText: "ok",
				Themes:      []string{"retrieval"},
				Errors:      []string{"1 failed traces"},
				ToolsUsed:   []summarize.ToolUsage{{Tool: "search", Count: 4}},
			},
			expected: []Section{SectionNarrative, SectionSuccessRate, SectionThemes, SectionErrors, SectionTools},
		},
		{
			name: "no errors",
			summary: summarize.Summary{
				SummaryText: "...",
				Themes:      []string{"retrieval"},
				Errors:      []string{},
				ToolsUsed:   []summarize.ToolUsage{{Tool: "search", Count: 4}},
			},
			expected: []Section{SectionNarrative, SectionSuccessRate, SectionThemes, SectionTools},
		},
		{
			name:     "blank narrative",
			summary:  summarize.Summary{SummaryText: "  \n"},
			expected: []Section{SectionSuccessRate},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sections(tc.summary)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Sections() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestHasSection_ErrorsAbsentWhenEmpty(t *testing.T) {
	s := summarize.Summary{Errors: []string{}}
	if HasSection(s, SectionErrors) {
		t.Error("error patterns section should be absent for empty errors")
	}
}

func TestDistinctSpanNames(t *testing.T) {
	spans := []summarize.Span{{Name: "fetch"}, {Name: "fetch"}, {Name: "parse"}}
	got := DistinctSpanNames(spans)
	if !reflect.DeepEqual(got, []string{"fetch", "parse"}) {
		t.Errorf("DistinctSpanNames() = %v", got)
	}

	trace := summarize.Trace{Spans: spans}
	if SpanCount(trace) != 3 {
		t.Errorf("SpanCount = %d, want 3", SpanCount(trace))
	}
}

func TestDistinctSpanNames_Cap(t *testing.T) {
	var spans []summarize.Span
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "a"} {
		spans = append(spans, summarize.Span{Name: n})
	}
	got := DistinctSpanNames(spans)
	if len(got) != MaxSpanNames {
		t.Fatalf("len = %d, want %d", len(got), MaxSpanNames)
	}
	if got[0] != "a" || got[9] != "j" {
		t.Errorf("unexpected names %v", got)
	}
}

func TestDistinctSpanNames_Absent(t *testing.T) {
	if got := DistinctSpanNames(nil); len(got) != 0 {
		t.Errorf("expected no names, got %v", got)
	}
	if SpanCount(summarize.Trace{}) != 0 {
		t.Error("absent spans should count as zero")
	}
}

func TestTraceTitle(t *testing.T) {
	if got := TraceTitle(summarize.Trace{TraceID: "t1"}); got != "t1" {
		t.Errorf("got %q", got)
	}
	if got := TraceTitle(summarize.Trace{TraceID: "t1", TraceName: "agent"}); got != "agent" {
		t.Errorf("got %q", got)
	}
	if got := TraceTitle(summarize.Trace{}); got != "(no trace id)" {
		t.Errorf("got %q", got)
	}
}

func TestIsOK(t *testing.T) {
	if !IsOK("OK") {
		t.Error("OK should be ok")
	}
	for _, s := range []string{"ERROR", "FAILED", "ok", ""} {
		if IsOK(s) {
			t.Errorf("%q should not be ok", s)
		}
	}
}

func TestTraceCount(t *testing.T) {
	traces := []summarize.Trace{{TraceID: "a"}, {TraceID: "b"}}
	tests := []struct {
		name     string
		result   *summarize.Result
		expected int
	}{
		{"nil result", nil, 0},
		{"reported count wins", &summarize.Result{TraceCount: 5, Traces: traces}, 5},
		{"missing count falls back", &summarize.Result{Traces: traces}, 2},
		{"empty", &summarize.Result{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TraceCount(tt.result); got != tt.expected {
				t.Errorf("TraceCount() = %d, want %d", got, tt.expected)
			}
		})
	}
}
