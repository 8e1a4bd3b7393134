// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the state of one trace-summary screen: the requested
// trace count, the outcome of the last summarize call and the set of
// expanded traces. It drives the idle -> loading -> success/error lifecycle
// and guarantees a single outstanding request.
//
// A Session is not safe for concurrent use. Mutating methods must be called
// from one goroutine (the UI update loop); only Ticket.Run may execute
// elsewhere, and it touches no session state.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/elastic/tracecat/internal/explorer"
	"github.com/elastic/tracecat/internal/summarize"
)

// FallbackErrorMessage is shown when a failure carries no message of its own.
const FallbackErrorMessage = "Failed to fetch traces"

// errEmptyResult is reported when a summarizer returns neither a result nor an error.
var errEmptyResult = errors.New("summarize returned no result")

// Phase is the screen state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Summarizer performs the remote summarize call.
// *summarize.Client satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, count int) (*summarize.Result, error)
}

var _ Summarizer = (*summarize.Client)(nil)

// Options configures a Session.
type Options struct {
	Summarizer Summarizer
	Count      int // initial count, clamped; 0 means DefaultCount
	Logger     *slog.Logger
	Observer   Observer
}

// Session is the screen-scoped state bundle.
type Session struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   Summarizer
	logger   *slog.Logger
	observer Observer

	count    int
	phase    Phase
	result   *summarize.Result
	errMsg   string
	expanded *explorer.ExpansionSet

	seq    uint64 // id of the latest ticket
	closed bool
}

// New creates an idle session. Requests run under a context derived from
// parent and are canceled by Close.
func New(parent context.Context, opts Options) *Session {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	count := opts.Count
	if count == 0 {
		count = DefaultCount
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Session{
		ctx:      ctx,
		cancel:   cancel,
		client:   opts.Summarizer,
		logger:   logger,
		observer: observer,
		count:    ClampCount(count),
		expanded: explorer.NewExpansionSet(),
	}
}

// SetSummarizer swaps the backend used by later submits.
// A request already in flight keeps the summarizer it started with.
func (s *Session) SetSummarizer(client Summarizer) {
	s.client = client
}

// Summarizer returns the backend later submits will use.
func (s *Session) Summarizer() Summarizer { return s.client }

// SetCount clamps n and stores it as the next request's count.
func (s *Session) SetCount(n int) int {
	s.count = ClampCount(n)
	return s.count
}

// SetCountText applies an edit of the count field and returns the corrected value.
func (s *Session) SetCountText(raw string) int {
	s.count = ParseCount(raw)
	return s.count
}

// Count is the count the next submit will send.
func (s *Session) Count() int { return s.count }

// Phase is the current screen state.
func (s *Session) Phase() Phase { return s.phase }

// Loading reports whether a request is outstanding.
func (s *Session) Loading() bool { return s.phase == PhaseLoading }

// CanSubmit reports whether the submit trigger is enabled.
func (s *Session) CanSubmit() bool {
	return !s.closed && s.phase != PhaseLoading && s.client != nil
}

// Result is the last successful result, or nil outside PhaseSuccess.
func (s *Session) Result() *summarize.Result { return s.result }

// Err is the error message, empty outside PhaseError.
func (s *Session) Err() string { return s.errMsg }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Ticket identifies one submitted request.
type Ticket struct {
	ID      uint64
	Count   int
	Started time.Time

	ctx    context.Context
	client Summarizer
}

// Completion is the outcome of running a Ticket.
type Completion struct {
	Ticket  Ticket
	Result  *summarize.Result
	Err     error
	Elapsed time.Duration
}

// Begin moves the session into loading and returns the request to run.
// It returns false, changing nothing, while a request is outstanding or
// after Close.
func (s *Session) Begin() (Ticket, bool) {
	if !s.CanSubmit() {
		return Ticket{}, false
	}

	s.seq++
	s.phase = PhaseLoading
	s.errMsg = ""
	s.result = nil

	t := Ticket{
		ID:      s.seq,
		Count:   s.count,
		Started: time.Now(),
		ctx:     s.ctx,
		client:  s.client,
	}
	s.logger.Debug("summarize submitted", "ticket", t.ID, "count", t.Count)
	s.observer.RequestStarted(s.ctx, t.Count)
	return t, true
}

// Run performs the remote call for t. It blocks and may run on any goroutine.
func (t Ticket) Run() Completion {
	result, err := t.client.Summarize(t.ctx, t.Count)
	if err == nil && result == nil {
		err = errEmptyResult
	}
	return Completion{
		Ticket:  t,
		Result:  result,
		Err:     err,
		Elapsed: time.Since(t.Started),
	}
}

// Complete applies c and reports whether it changed the session.
// Completions that arrive after Close, or for a ticket that is no longer
// current, are dropped.
func (s *Session) Complete(c Completion) bool {
	if s.closed {
		s.logger.Debug("dropping completion after close", "ticket", c.Ticket.ID)
		return false
	}
	if c.Ticket.ID != s.seq || s.phase != PhaseLoading {
		s.logger.Debug("dropping stale completion", "ticket", c.Ticket.ID, "current", s.seq)
		return false
	}

	if c.Err != nil {
		s.phase = PhaseError
		s.errMsg = ErrorMessage(c.Err)
		s.logger.Warn("summarize failed", "count", c.Ticket.Count, "error", c.Err, "elapsed", c.Elapsed)
		s.observer.RequestFailed(s.ctx, c.Ticket.Count, c.Err, c.Elapsed)
		return true
	}

	s.phase = PhaseSuccess
	s.result = c.Result
	s.expanded.Reset()
	s.logger.Info("summarize succeeded",
		"count", c.Ticket.Count,
		"traces", len(c.Result.Traces),
		"success_rate", c.Result.Summary.SuccessRate,
		"elapsed", c.Elapsed)
	s.observer.RequestSucceeded(s.ctx, c.Ticket.Count, c.Result, c.Elapsed)
	return true
}

// Submit runs a whole request synchronously. While loading it is a no-op.
func (s *Session) Submit() Snapshot {
	t, ok := s.Begin()
	if !ok {
		return s.Snapshot()
	}
	s.Complete(t.Run())
	return s.Snapshot()
}

// Toggle flips the expansion of a trace. Only meaningful with a result.
func (s *Session) Toggle(traceID string) bool {
	if s.phase != PhaseSuccess {
		return false
	}
	return s.expanded.Toggle(traceID)
}

// IsExpanded reports whether the trace detail is shown.
func (s *Session) IsExpanded(traceID string) bool {
	return s.expanded.Has(traceID)
}

// CollapseAll clears the expansion set.
func (s *Session) CollapseAll() {
	s.expanded.Reset()
}

// Close tears the session down. The in-flight request, if any, is canceled
// and its completion will be ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Phase    Phase
	Count    int
	Result   *summarize.Result
	Err      string
	Expanded []string
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:    s.phase,
		Count:    s.count,
		Result:   s.result,
		Err:      s.errMsg,
		Expanded: s.expanded.IDs(),
	}
}

// ErrorMessage converts a failure into the single line shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return FallbackErrorMessage
	}
	return msg
}
