// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package summarize

// SummarizePath is the logical path of the summarization endpoint.
const SummarizePath = "/api/traces/summarize"

// Request is the body sent to the summarization endpoint.
type Request struct {
	Count int `json:"count"`
}

// ToolUsage is one ranked entry of the summary's tool usage list.
type ToolUsage struct {
	Tool  string `json:"tool"`
	Count int    `json:"count"`
}

// Summary is the model-generated aggregate over a batch of traces.
type Summary struct {
	SummaryText string      `json:"summary_text"`
	Themes      []string    `json:"themes"`
	Errors      []string    `json:"errors"`
	ToolsUsed   []ToolUsage `json:"tools_used"`
	SuccessRate float64     `json:"success_rate"` // 0-100
}

// Span is a named sub-operation within a trace.
// Only Name is relied upon; the rest is shown when present.
type Span struct {
	Name        string  `json:"name"`
	SpanType    string  `json:"span_type,omitempty"`
	Status      string  `json:"status,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	StartTimeNs int64   `json:"start_time_ns,omitempty"`
	EndTimeNs   int64   `json:"end_time_ns,omitempty"`
}

// Trace is one recorded execution unit returned alongside the summary.
type Trace struct {
	TraceID     string  `json:"trace_id"`
	TraceName   string  `json:"trace_name,omitempty"`
	Timestamp   string  `json:"timestamp"` // ISO-8601
	TimestampMs int64   `json:"timestamp_ms,omitempty"`
	Status      string  `json:"status"` // "OK" or anything else
	DurationMs  float64 `json:"duration_ms"`
	Spans       []Span  `json:"spans,omitempty"`
}

// Result is the successful response of the summarization endpoint.
type Result struct {
	Summary    Summary `json:"summary"`
	Traces     []Trace `json:"traces"`
	TraceCount int     `json:"trace_count"`
}
