// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package mockserver

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elastic/tracecat/internal/summarize"
)

// fixtureFile is the on-disk layout. A bare list of traces is also accepted.
type fixtureFile struct {
	Traces []map[string]any `yaml:"traces"`
}

// LoadFixture reads traces from a YAML or JSON file.
func LoadFixture(path string) ([]summarize.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture bytes. JSON is valid YAML, so one decoder
// serves both; records are then mapped onto the wire types through their
// JSON tags.
func ParseFixture(data []byte) ([]summarize.Trace, error) {
	var raw []map[string]any
	var list []map[string]any
	if err := yaml.Unmarshal(data, &list); err == nil {
		raw = list
	} else {
		var file fixtureFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse fixture: %w", err)
		}
		raw = file.Traces
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert fixture: %w", err)
	}
	var traces []summarize.Trace
	if err := json.Unmarshal(buf, &traces); err != nil {
		return nil, fmt.Errorf("decode fixture traces: %w", err)
	}
	return traces, nil
}

var syntheticTools = []string{
	"retrieve_documents",
	"llm_call",
	"web_search",
	"parse_response",
	"rerank",
	"fetch",
	"embed_query",
	"sql_query",
}

// Synthesize returns n deterministic traces ending at now, newest first.
// Roughly one in seven traces fails.
func Synthesize(n int, seed uint64, now time.Time) []summarize.Trace {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	traces := make([]summarize.Trace, 0, n)
	at := now
	for i := 0; i < n; i++ {
		at = at.Add(-time.Duration(5+rng.IntN(120)) * time.Second)

		status := "OK"
		if rng.IntN(7) == 0 {
			status = "FAILED"
		}

		spanCount := 1 + rng.IntN(5)
		spans := make([]summarize.Span, 0, spanCount)
		startNs := at.UnixNano()
		var total time.Duration
		for s := 0; s < spanCount; s++ {
			d := time.Duration(20+rng.IntN(900)) * time.Millisecond
			spanStatus := "OK"
			if status == "FAILED" && s == spanCount-1 {
				spanStatus = "ERROR"
			}
			spans = append(spans, summarize.Span{
				Name:        syntheticTools[rng.IntN(len(syntheticTools))],
				SpanType:    "TOOL",
				Status:      spanStatus,
				StartTimeNs: startNs + int64(total),
				EndTimeNs:   startNs + int64(total+d),
			})
			total += d
		}

		traces = append(traces, summarize.Trace{
			TraceID:     fmt.Sprintf("tr-%016x", rng.Uint64()),
			Timestamp:   at.Format("2006-01-02T15:04:05.000000"),
			TimestampMs: at.UnixMilli(),
			Status:      status,
			DurationMs:  float64(total.Milliseconds()),
			Spans:       spans,
		})
	}
	return traces
}

// newestFirst returns a copy ordered by TimestampMs descending. Ties keep
// their input order.
func newestFirst(traces []summarize.Trace) []summarize.Trace {
	out := append([]summarize.Trace(nil), traces...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs > out[j].TimestampMs
	})
	return out
}
