// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package explorer

import (
	"strings"

	"github.com/elastic/tracecat/internal/summarize"
)

// Display limits.
const (
	MaxTools     = 6  // tool usage entries shown
	MaxSpanNames = 10 // distinct span names shown per expanded trace
)

// StatusOK is the trace status treated as success.
const StatusOK = "OK"

// Section identifies one block of the rendered summary.
type Section int

const (
	SectionNarrative Section = iota
	SectionSuccessRate
	SectionThemes
	SectionErrors
	SectionTools
)

func (s Section) String() string {
	switch s {
	case SectionNarrative:
		return "Summary"
	case SectionSuccessRate:
		return "Success Rate"
	case SectionThemes:
		return "Common Themes"
	case SectionErrors:
		return "Error Patterns"
	case SectionTools:
		return "Most Used Tools"
	default:
		return "Unknown"
	}
}

// Sections returns the summary blocks to render, in display order.
// Collection sections with nothing in them are left out entirely.
func Sections(s summarize.Summary) []Section {
	var out []Section
	if strings.TrimSpace(s.SummaryText) != "" {
		out = append(out, SectionNarrative)
	}
	out = append(out, SectionSuccessRate)
	if len(s.Themes) > 0 {
		out = append(out, SectionThemes)
	}
	if len(s.Errors) > 0 {
		out = append(out, SectionErrors)
	}
	if len(s.ToolsUsed) > 0 {
		out = append(out, SectionTools)
	}
	return out
}

// HasSection reports whether sec is part of Sections(s).
func HasSection(s summarize.Summary, sec Section) bool {
	for _, got := range Sections(s) {
		if got == sec {
			return true
		}
	}
	return false
}

// TopTools returns at most MaxTools entries in the order the server ranked them.
func TopTools(tools []summarize.ToolUsage) []summarize.ToolUsage {
	if len(tools) > MaxTools {
		return tools[:MaxTools]
	}
	return tools
}

// DistinctSpanNames returns the distinct span names of spans in first-seen
// order, capped at MaxSpanNames.
func DistinctSpanNames(spans []summarize.Span) []string {
	seen := make(map[string]struct{}, len(spans))
	var names []string
	for _, sp := range spans {
		if _, ok := seen[sp.Name]; ok {
			continue
		}
		seen[sp.Name] = struct{}{}
		names = append(names, sp.Name)
		if len(names) == MaxSpanNames {
			break
		}
	}
	return names
}

// SpanCount is the raw number of spans, duplicates included.
func SpanCount(t summarize.Trace) int {
	return len(t.Spans)
}

// TraceCount is the number of traces the backend reports analyzing, shown
// in the list header. A missing trace_count falls back to the traces sent.
func TraceCount(r *summarize.Result) int {
	if r == nil {
		return 0
	}
	if r.TraceCount == 0 {
		return len(r.Traces)
	}
	return r.TraceCount
}

// IsOK reports whether a trace finished successfully.
func IsOK(status string) bool {
	return status == StatusOK
}

// TraceTitle is the label used for a trace row.
func TraceTitle(t summarize.Trace) string {
	if t.TraceName != "" {
		return t.TraceName
	}
	if t.TraceID == "" {
		return "(no trace id)"
	}
	return t.TraceID
}
