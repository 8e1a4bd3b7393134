// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package mockserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elastic/tracecat/internal/summarize"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTraces() []summarize.Trace {
	return []summarize.Trace{
		{TraceID: "old", TimestampMs: 1000, Status: "OK", DurationMs: 10, Spans: []summarize.Span{{Name: "fetch"}}},
		{TraceID: "new", TimestampMs: 3000, Status: "FAILED", DurationMs: 20, Spans: []summarize.Span{{Name: "fetch"}, {Name: "parse"}}},
		{TraceID: "mid", TimestampMs: 2000, Status: "OK", DurationMs: 30, Spans: []summarize.Span{{Name: "llm"}}},
	}
}

func post(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, summarize.SummarizePath, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSummarize(t *testing.T) {
	router := NewRouter(NewHandler(Options{Traces: sampleTraces(), Logger: quietLogger()}))

	w := post(t, router, `{"count": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result summarize.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, 2, result.TraceCount)
	require.Len(t, result.Traces, 2)
	assert.Equal(t, "new", result.Traces[0].TraceID)
	assert.Equal(t, "mid", result.Traces[1].TraceID)
	assert.Equal(t, "Analyzed 2 traces. Success rate: 1/2", result.Summary.SummaryText)
	assert.InDelta(t, 50.0, result.Summary.SuccessRate, 0.001)
	assert.Equal(t, []string{"1 failed traces"}, result.Summary.Errors)
}

func TestHandleSummarize_DefaultCount(t *testing.T) {
	traces := Synthesize(30, 1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	router := NewRouter(NewHandler(Options{Traces: traces, Logger: quietLogger()}))

	for _, body := range []string{``, `{}`, `{"count": null}`} {
		w := post(t, router, body)
		require.Equal(t, http.StatusOK, w.Code, "body %q", body)

		var result summarize.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, DefaultCount, result.TraceCount, "body %q", body)
	}
}

func TestHandleSummarize_CountLargerThanStore(t *testing.T) {
	router := NewRouter(NewHandler(Options{Traces: sampleTraces(), Logger: quietLogger()}))

	w := post(t, router, `{"count": 100}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result summarize.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 3, result.TraceCount)
}

func TestHandleSummarize_Validation(t *testing.T) {
	router := NewRouter(NewHandler(Options{Traces: sampleTraces(), Logger: quietLogger()}))

	tests := []struct {
		name     string
		body     string
		wantType string
	}{
		{"too large", `{"count": 101}`, "less_than_equal"},
		{"zero", `{"count": 0}`, "greater_than_equal"},
		{"negative", `{"count": -3}`, "greater_than_equal"},
		{"fractional", `{"count": 2.5}`, "int_type"},
		{"string", `{"count": "ten"}`, "int_type"},
		{"malformed", `{"count":`, "json_invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var payload struct {
				Detail []summarize.FieldViolation `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			require.Len(t, payload.Detail, 1)
			assert.Equal(t, tt.wantType, payload.Detail[0].Type)
		})
	}
}

func TestHandleSummarize_NoTraces(t *testing.T) {
	router := NewRouter(NewHandler(Options{Logger: quietLogger()}))

	w := post(t, router, `{"count": 5}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"No traces found in the experiment"}`, w.Body.String())
}

func TestHandleHealth(t *testing.T) {
	router := NewRouter(NewHandler(Options{Traces: sampleTraces(), Logger: quietLogger()}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 3, body["traces"])
}

// The summarize client should understand every response the mock produces.
func TestMockServer_ClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(NewRouter(NewHandler(Options{Traces: sampleTraces(), Logger: quietLogger()})))
	defer srv.Close()

	client := summarize.NewClient(summarize.ClientOptions{BaseURL: srv.URL, Logger: quietLogger()})
	defer client.CloseIdleConnections()

	result, err := client.Summarize(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TraceCount)

	_, err = client.Summarize(context.Background(), 500)
	require.Error(t, err)
	assert.True(t, summarize.IsValidationError(err))
	assert.Equal(t, "Validation Error: body.count: Input should be less than or equal to 100", err.Error())
}

func TestHandleSummarize_LatencyHonorsCancel(t *testing.T) {
	router := NewRouter(NewHandler(Options{Traces: sampleTraces(), Latency: time.Hour, Logger: quietLogger()}))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, summarize.SummarizePath, bytes.NewBufferString(`{}`)).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(w, req)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after cancellation")
	}
}
