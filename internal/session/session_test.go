// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elastic/tracecat/internal/explorer"
	"github.com/elastic/tracecat/internal/summarize"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

// stubSummarizer returns a fixed outcome and records calls.
type stubSummarizer struct {
	mu     sync.Mutex
	result *summarize.Result
	err    error
	counts []int
}

func (s *stubSummarizer) Summarize(_ context.Context, count int) (*summarize.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, count)
	return s.result, s.err
}

func (s *stubSummarizer) calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.counts...)
}

// blockingSummarizer waits until released or canceled.
type blockingSummarizer struct {
	release chan struct{}
	result  *summarize.Result
}

func (b *blockingSummarizer) Summarize(ctx context.Context, _ int) (*summarize.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.release:
		return b.result, nil
	}
}

type recordingObserver struct {
	started, succeeded, failed int
}

func (r *recordingObserver) RequestStarted(context.Context, int) { r.started++ }

func (r *recordingObserver) RequestSucceeded(context.Context, int, *summarize.Result, time.Duration) {
	r.succeeded++
}

func (r *recordingObserver) RequestFailed(context.Context, int, error, time.Duration) { r.failed++ }

func sampleResult() *summarize.Result {
	return &summarize.Result{
		Summary: summarize.Summary{
			SummaryText: "...",
			SuccessRate: 87.5,
			Themes:      []string{"retrieval"},
			Errors:      []string{},
			ToolsUsed:   []summarize.ToolUsage{{Tool: "search", Count: 4}},
		},
		TraceCount: 2,
		Traces: []summarize.Trace{
			{TraceID: "t1", Timestamp: "2024-01-01T00:00:00Z", DurationMs: 450, Status: "OK",
				Spans: []summarize.Span{{Name: "fetch"}, {Name: "fetch"}, {Name: "parse"}}},
			{TraceID: "t2", Timestamp: "2024-01-01T00:01:00Z", DurationMs: 1500, Status: "ERROR",
				Spans: []summarize.Span{}},
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(context.Background(), Options{})
	defer s.Close()

	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase())
	}
	if s.Count() != DefaultCount {
		t.Errorf("count = %d, want %d", s.Count(), DefaultCount)
	}
	if s.CanSubmit() {
		t.Error("a session without a summarizer cannot submit")
	}

	s2 := New(context.Background(), Options{Count: 500})
	defer s2.Close()
	if s2.Count() != MaxCount {
		t.Errorf("initial count should be clamped, got %d", s2.Count())
	}
}

func TestSetCountClampsAtEdit(t *testing.T) {
	s := New(context.Background(), Options{Summarizer: &stubSummarizer{result: sampleResult()}})
	defer s.Close()

	if got := s.SetCount(0); got != 1 {
		t.Errorf("SetCount(0) = %d", got)
	}
	if got := s.SetCountText("250"); got != 100 {
		t.Errorf("SetCountText(250) = %d", got)
	}
	if s.Count() != 100 {
		t.Errorf("Count = %d, want 100", s.Count())
	}
}

func TestSubmit_EndToEndAgainstStubBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":{"success_rate":87.5,"themes":["retrieval"],"errors":[],
"tools_used":[{"tool":"search","count":4}],"summary_text":"..."},"trace_count":2,
"traces":[{"trace_id":"t1","timestamp":"2024-01-01T00:00:00Z","duration_ms":450,"status":"OK",
"spans":[{"name":"fetch"},{"name":"fetch"},{"name":"parse"}]},
{"trace_id":"t2","timestamp":"2024-01-01T00:01:00Z","duration_ms":1500,"status":"ERROR","spans":[]}]}`))
	}))
	defer server.Close()

	client := summarize.NewClient(summarize.ClientOptions{BaseURL: server.URL})
	defer client.CloseIdleConnections()

	s := New(context.Background(), Options{Summarizer: client, Count: 10})
	defer s.Close()

	snap := s.Submit()
	if snap.Phase != PhaseSuccess {
		t.Fatalf("phase = %v (err %q), want success", snap.Phase, snap.Err)
	}

	res := snap.Result
	if got := explorer.FormatSuccessRate(res.Summary.SuccessRate); got != "87.5%" {
		t.Errorf("success label = %q", got)
	}
	if got := explorer.FormatDuration(res.Traces[0].DurationMs); got != "450ms" {
		t.Errorf("t1 badge = %q", got)
	}
	if got := explorer.FormatDuration(res.Traces[1].DurationMs); got != "1.50s" {
		t.Errorf("t2 badge = %q", got)
	}
	if explorer.HasSection(res.Summary, explorer.SectionErrors) {
		t.Error("error patterns section should be absent")
	}

	if !s.Toggle("t1") {
		t.Fatal("t1 should expand")
	}
	t1 := res.Traces[0]
	if explorer.SpanCount(t1) != 3 {
		t.Errorf("span count = %d, want 3", explorer.SpanCount(t1))
	}
	names := explorer.DistinctSpanNames(t1.Spans)
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	if len(names) != 2 || !set["fetch"] || !set["parse"] {
		t.Errorf("distinct names = %v, want {fetch, parse}", names)
	}
	if s.IsExpanded("t2") {
		t.Error("expanding t1 must not expand t2")
	}
}

func TestSubmit_ClearsPreviousStateAtBegin(t *testing.T) {
	stub := &stubSummarizer{result: sampleResult()}
	s := New(context.Background(), Options{Summarizer: stub})
	defer s.Close()

	s.Submit()
	s.Toggle("t1")

	ticket, ok := s.Begin()
	if !ok {
		t.Fatal("Begin should succeed from success")
	}
	if s.Phase() != PhaseLoading {
		t.Errorf("phase = %v, want loading", s.Phase())
	}
	if s.Result() != nil {
		t.Error("result must be cleared while loading")
	}
	if s.Err() != "" {
		t.Error("error must be cleared while loading")
	}

	s.Complete(ticket.Run())
	if s.IsExpanded("t1") {
		t.Error("expansion set should reset on a new result")
	}
}

func TestBegin_WhileLoadingIsNoop(t *testing.T) {
	stub := &stubSummarizer{result: sampleResult()}
	s := New(context.Background(), Options{Summarizer: stub})
	defer s.Close()

	first, ok := s.Begin()
	if !ok {
		t.Fatal("first Begin should succeed")
	}
	if s.CanSubmit() {
		t.Error("trigger should be disabled while loading")
	}
	if _, ok := s.Begin(); ok {
		t.Fatal("second Begin while loading should be refused")
	}
	snap := s.Submit()
	if snap.Phase != PhaseLoading {
		t.Errorf("Submit while loading changed phase to %v", snap.Phase)
	}
	if n := len(stub.calls()); n != 0 {
		t.Errorf("no request should have been issued yet, got %d", n)
	}

	s.Complete(first.Run())
	if n := len(stub.calls()); n != 1 {
		t.Errorf("exactly one request expected, got %d", n)
	}
}

func TestSubmit_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"message passthrough", errors.New("timeout"), "timeout"},
		{"empty message", errors.New(""), FallbackErrorMessage},
		{"blank message", errors.New("   "), FallbackErrorMessage},
		{"api error", &summarize.APIError{StatusCode: 404, Detail: "No traces found in the experiment"}, "No traces found in the experiment"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(context.Background(), Options{Summarizer: &stubSummarizer{err: tc.err}})
			defer s.Close()

			snap := s.Submit()
			if snap.Phase != PhaseError {
				t.Fatalf("phase = %v, want error", snap.Phase)
			}
			if snap.Err != tc.expected {
				t.Errorf("error = %q, want %q", snap.Err, tc.expected)
			}
			if snap.Result != nil {
				t.Error("result must stay cleared on error")
			}
			if !s.CanSubmit() {
				t.Error("trigger should be available for retry")
			}
		})
	}
}

func TestSubmit_NilResultIsError(t *testing.T) {
	s := New(context.Background(), Options{Summarizer: &stubSummarizer{}})
	defer s.Close()

	snap := s.Submit()
	if snap.Phase != PhaseError || snap.Err == "" {
		t.Errorf("nil result should surface as an error, got %v %q", snap.Phase, snap.Err)
	}
}

func TestStateMachine_Reentrant(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("boom")}
	obs := &recordingObserver{}
	s := New(context.Background(), Options{Summarizer: stub, Observer: obs})
	defer s.Close()

	if s.Submit().Phase != PhaseError {
		t.Fatal("expected error")
	}

	stub.mu.Lock()
	stub.err, stub.result = nil, sampleResult()
	stub.mu.Unlock()

	if s.Submit().Phase != PhaseSuccess {
		t.Fatal("expected success after retry")
	}
	if s.Submit().Phase != PhaseSuccess {
		t.Fatal("expected success on re-submit")
	}

	if obs.started != 3 || obs.failed != 1 || obs.succeeded != 2 {
		t.Errorf("observer counts = %+v", obs)
	}
}

func TestToggle_OnlyWithResult(t *testing.T) {
	s := New(context.Background(), Options{Summarizer: &stubSummarizer{result: sampleResult()}})
	defer s.Close()

	if s.Toggle("t1") {
		t.Error("toggle should be ignored before a result exists")
	}
	s.Submit()
	s.Toggle("t1")
	s.Toggle("t2")
	s.CollapseAll()
	if len(s.Snapshot().Expanded) != 0 {
		t.Error("CollapseAll should empty the set")
	}
}

func TestClose_DropsInFlightCompletion(t *testing.T) {
	blocker := &blockingSummarizer{release: make(chan struct{}), result: sampleResult()}
	s := New(context.Background(), Options{Summarizer: blocker})

	ticket, ok := s.Begin()
	if !ok {
		t.Fatal("Begin failed")
	}

	done := make(chan Completion, 1)
	go func() { done <- ticket.Run() }()

	s.Close()

	select {
	case c := <-done:
		if !errors.Is(c.Err, context.Canceled) {
			t.Errorf("in-flight request should be canceled, got %v", c.Err)
		}
		if s.Complete(c) {
			t.Error("completion after Close must not mutate state")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request was not canceled by Close")
	}

	if s.Phase() != PhaseLoading {
		t.Errorf("phase changed after close: %v", s.Phase())
	}
	if s.CanSubmit() {
		t.Error("closed session must refuse submits")
	}
	s.Close()
}

func TestComplete_DropsStaleTicket(t *testing.T) {
	s := New(context.Background(), Options{Summarizer: &stubSummarizer{result: sampleResult()}})
	defer s.Close()

	old, _ := s.Begin()
	s.Complete(Completion{Ticket: old, Err: errors.New("first")})

	current, _ := s.Begin()
	if s.Complete(Completion{Ticket: old, Result: sampleResult()}) {
		t.Error("stale completion should be ignored")
	}
	if !s.Complete(current.Run()) {
		t.Error("current completion should apply")
	}
}

func TestSetSummarizer_InFlightKeepsOriginal(t *testing.T) {
	first := &stubSummarizer{result: sampleResult()}
	second := &stubSummarizer{result: sampleResult()}
	s := New(context.Background(), Options{Summarizer: first})
	defer s.Close()

	ticket, _ := s.Begin()
	s.SetSummarizer(second)
	s.Complete(ticket.Run())
	s.Submit()

	if len(first.calls()) != 1 || len(second.calls()) != 1 {
		t.Errorf("calls first=%v second=%v", first.calls(), second.calls())
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseIdle: "idle", PhaseLoading: "loading", PhaseError: "error", PhaseSuccess: "success", Phase(42): "unknown",
	} {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, p.String(), want)
		}
	}
}
