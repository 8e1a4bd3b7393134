// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package mockserver

import (
	"fmt"
	"sort"

	"github.com/elastic/tracecat/internal/summarize"
)

// FailedStatus is the only trace status counted as a failure.
const FailedStatus = "FAILED"

// MaxSummaryTools caps the ranked tool list in a fallback summary.
const MaxSummaryTools = 10

// FallbackSummary builds the deterministic summary used when no model
// is available.
func FallbackSummary(traces []summarize.Trace) summarize.Summary {
	total := len(traces)
	ok := 0
	for _, t := range traces {
		if t.Status != FailedStatus {
			ok++
		}
	}
	failed := total - ok

	themes := []string{"Automated trace analysis"}
	errs := []string{}
	if failed > 0 {
		themes = append(themes, "Error detection")
		errs = append(errs, fmt.Sprintf("%d failed traces", failed))
	}

	var rate float64
	if total > 0 {
		rate = float64(ok) / float64(total) * 100
	}

	return summarize.Summary{
		SummaryText: fmt.Sprintf("Analyzed %d traces. Success rate: %d/%d", total, ok, total),
		Themes:      themes,
		Errors:      errs,
		ToolsUsed:   RankTools(traces, MaxSummaryTools),
		SuccessRate: rate,
	}
}

// RankTools counts span names across traces and returns the top limit by
// frequency. Ties keep first-seen order.
func RankTools(traces []summarize.Trace, limit int) []summarize.ToolUsage {
	counts := make(map[string]int)
	var order []string
	for _, t := range traces {
		for _, s := range t.Spans {
			if s.Name == "" {
				continue
			}
			if _, seen := counts[s.Name]; !seen {
				order = append(order, s.Name)
			}
			counts[s.Name]++
		}
	}

	tools := make([]summarize.ToolUsage, 0, len(order))
	for _, name := range order {
		tools = append(tools, summarize.ToolUsage{Tool: name, Count: counts[name]})
	}
	sort.SliceStable(tools, func(i, j int) bool {
		return tools[i].Count > tools[j].Count
	})
	if len(tools) > limit {
		tools = tools[:limit]
	}
	return tools
}
