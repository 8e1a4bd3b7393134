// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package mockserver implements a development backend for the trace
// summarization API. It serves fixture or synthetic traces and answers
// with a deterministic fallback summary.
package mockserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/elastic/tracecat/internal/summarize"
)

// DefaultCount applies when a request omits count.
const DefaultCount = 20

// Count bounds accepted by the endpoint.
const (
	MinCount = 1
	MaxCount = 100
)

// NoTracesDetail is the 404 detail when no traces are available.
const NoTracesDetail = "No traces found in the experiment"

// Options configures a Handler.
type Options struct {
	Traces  []summarize.Trace
	Latency time.Duration // Artificial delay before answering summarize calls
	Logger  *slog.Logger  // Defaults to slog.Default()
}

// Handler holds the server dependencies.
type Handler struct {
	traces  []summarize.Trace
	latency time.Duration
	logger  *slog.Logger
}

// NewHandler creates a new handler over a fixed trace set.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		traces:  newestFirst(opts.Traces),
		latency: opts.Latency,
		logger:  logger,
	}
}

// NewRouter creates and configures the HTTP router.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Logging(h.logger))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(summarize.SummarizePath, h.HandleSummarize)
	r.Get("/health", h.HandleHealth)
}

// HandleSummarize answers with the most recent count traces and a fallback summary.
func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Failed to read request body"})
		return
	}
	defer r.Body.Close()

	count, violation := parseCount(body)
	if violation != nil {
		h.logger.Debug("rejected summarize request", "type", violation.Type, "msg", violation.Msg)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []summarize.FieldViolation{*violation}})
		return
	}

	if h.latency > 0 {
		select {
		case <-time.After(h.latency):
		case <-r.Context().Done():
			return
		}
	}

	if len(h.traces) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": NoTracesDetail})
		return
	}

	n := min(count, len(h.traces))
	traces := append([]summarize.Trace(nil), h.traces[:n]...)

	writeJSON(w, http.StatusOK, summarize.Result{
		Summary:    FallbackSummary(traces),
		Traces:     traces,
		TraceCount: len(traces),
	})
}

// HandleHealth returns health status.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"traces":    len(h.traces),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

var countLoc = []any{"body", "count"}

// parseCount validates the request body the way the real backend does:
// count is optional, must be an integer, and must lie in [MinCount, MaxCount].
func parseCount(body []byte) (int, *summarize.FieldViolation) {
	if len(bytes.TrimSpace(body)) == 0 {
		return DefaultCount, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return 0, &summarize.FieldViolation{
			Loc:  []any{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}
	}
	raw, ok := fields["count"]
	if !ok || string(raw) == "null" {
		return DefaultCount, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, &summarize.FieldViolation{
			Loc:  countLoc,
			Msg:  "Input should be a valid integer",
			Type: "int_type",
		}
	}
	switch {
	case f < MinCount:
		return 0, &summarize.FieldViolation{
			Loc:  countLoc,
			Msg:  "Input should be greater than or equal to 1",
			Type: "greater_than_equal",
		}
	case f > MaxCount:
		return 0, &summarize.FieldViolation{
			Loc:  countLoc,
			Msg:  "Input should be less than or equal to 100",
			Type: "less_than_equal",
		}
	}
	return int(f), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
