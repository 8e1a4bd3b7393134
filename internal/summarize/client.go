// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package summarize provides a client for the trace summarization API.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single summarize call when no timeout is configured.
// Summaries involve a model call on the backend, so this is generous.
const DefaultTimeout = 120 * time.Second

// Client handles communication with the trace summarization API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOptions holds configuration for creating a new Client.
type ClientOptions struct {
	BaseURL string        // Backend URL; SummarizePath is appended
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout
	Logger  *slog.Logger  // Defaults to slog.Default()
}

// NewClient creates a new Client from options.
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		token:   opts.Token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Summarize asks the backend to summarize the most recent count traces.
// The count is sent as given; range enforcement is the caller's job so
// that backend validation errors stay observable.
func (c *Client) Summarize(ctx context.Context, count int) (*Result, error) {
	body, err := json.Marshal(Request{Count: count})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SummarizePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger := c.logger.With("request_id", requestID, "count", count)
	logger.Debug("sending summarize request", "url", httpReq.URL.String())
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("summarize request failed", "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("summarize response", "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}
