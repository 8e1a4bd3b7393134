// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package mockserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elastic/tracecat/internal/summarize"
)

func TestFallbackSummary_AllOK(t *testing.T) {
	traces := []summarize.Trace{
		{Status: "OK", Spans: []summarize.Span{{Name: "fetch"}}},
		{Status: "IN_PROGRESS"},
	}
	s := FallbackSummary(traces)

	assert.Equal(t, "Analyzed 2 traces. Success rate: 2/2", s.SummaryText)
	assert.Equal(t, []string{"Automated trace analysis"}, s.Themes)
	assert.Empty(t, s.Errors)
	assert.NotNil(t, s.Errors)
	assert.InDelta(t, 100.0, s.SuccessRate, 0.001)
}

func TestFallbackSummary_WithFailures(t *testing.T) {
	traces := []summarize.Trace{
		{Status: "OK"},
		{Status: "FAILED"},
		{Status: "FAILED"},
		{Status: "ERROR"},
	}
	s := FallbackSummary(traces)

	assert.Equal(t, []string{"Automated trace analysis", "Error detection"}, s.Themes)
	assert.Equal(t, []string{"2 failed traces"}, s.Errors)
	assert.InDelta(t, 50.0, s.SuccessRate, 0.001)
	assert.Equal(t, "Analyzed 4 traces. Success rate: 2/4", s.SummaryText)
}

func TestFallbackSummary_Empty(t *testing.T) {
	s := FallbackSummary(nil)
	assert.Zero(t, s.SuccessRate)
	assert.Empty(t, s.ToolsUsed)
}

func TestRankTools(t *testing.T) {
	traces := []summarize.Trace{
		{Spans: []summarize.Span{{Name: "a"}, {Name: "b"}, {Name: ""}}},
		{Spans: []summarize.Span{{Name: "b"}, {Name: "c"}, {Name: "c"}}},
	}
	got := RankTools(traces, 10)
	require.Len(t, got, 3)
	assert.Equal(t, summarize.ToolUsage{Tool: "b", Count: 2}, got[0])
	assert.Equal(t, summarize.ToolUsage{Tool: "c", Count: 2}, got[1])
	assert.Equal(t, summarize.ToolUsage{Tool: "a", Count: 1}, got[2])

	assert.Len(t, RankTools(traces, 2), 2)
}

func TestSynthesize_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Synthesize(25, 42, now)
	b := Synthesize(25, 42, now)

	require.Len(t, a, 25)
	assert.Equal(t, a, b)

	for i, tr := range a {
		assert.NotEmpty(t, tr.TraceID)
		assert.NotEmpty(t, tr.Spans)
		assert.Contains(t, []string{"OK", "FAILED"}, tr.Status)
		if i > 0 {
			assert.Less(t, tr.TimestampMs, a[i-1].TimestampMs, "traces should be newest first")
		}
	}
}

func TestParseFixture(t *testing.T) {
	yamlDoc := []byte(`
traces:
  - trace_id: t1
    timestamp: "2026-01-02T10:00:00"
    timestamp_ms: 1767348000000
    status: OK
    duration_ms: 450
    spans:
      - name: fetch
      - name: parse
`)
	traces, err := ParseFixture(yamlDoc)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "t1", traces[0].TraceID)
	assert.Equal(t, 450.0, traces[0].DurationMs)
	assert.Len(t, traces[0].Spans, 2)

	jsonDoc := []byte(`[{"trace_id":"t2","status":"FAILED","duration_ms":1500,"spans":[]}]`)
	traces, err = ParseFixture(jsonDoc)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "FAILED", traces[0].Status)

	_, err = ParseFixture([]byte("traces: [unclosed"))
	assert.Error(t, err)
}
