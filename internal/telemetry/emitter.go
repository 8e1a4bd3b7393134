// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry exports summarize request lifecycle events as OTLP logs.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/elastic/tracecat/internal/session"
	"github.com/elastic/tracecat/internal/summarize"
)

// ScopeName is the instrumentation scope of emitted records.
const ScopeName = "github.com/elastic/tracecat"

// Config holds OTLP emitter configuration.
type Config struct {
	Endpoint       string // OTLP HTTP endpoint (default: localhost:4318)
	Insecure       bool   // Use HTTP instead of HTTPS
	ServiceName    string // Defaults to "tracecat"
	ServiceVersion string
}

// Emitter sends one log record per request lifecycle transition.
type Emitter struct {
	provider *sdklog.LoggerProvider
	logger   log.Logger
	endpoint string
}

var _ session.Observer = (*Emitter)(nil)

// New creates an Emitter exporting over OTLP/HTTP with batching.
func New(ctx context.Context, cfg Config) (*Emitter, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4318"
	}

	opts := []otlploghttp.Option{
		otlploghttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}

	exporter, err := otlploghttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	e := newEmitter(sdklog.NewBatchProcessor(exporter), cfg)
	e.endpoint = cfg.Endpoint
	return e, nil
}

func newEmitter(processor sdklog.Processor, cfg Config) *Emitter {
	name := cfg.ServiceName
	if name == "" {
		name = "tracecat"
	}
	attrs := []attribute.KeyValue{semconv.ServiceName(name)}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	res := resource.NewWithAttributes(semconv.SchemaURL, attrs...)

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(processor),
		sdklog.WithResource(res),
	)

	return &Emitter{
		provider: provider,
		logger:   provider.Logger(ScopeName),
	}
}

// Endpoint returns the configured OTLP endpoint.
func (e *Emitter) Endpoint() string {
	return e.endpoint
}

// RequestStarted records a submitted summarize request.
func (e *Emitter) RequestStarted(ctx context.Context, count int) {
	e.emit(ctx, log.SeverityInfo, "INFO", "summarize request started",
		log.Int("tracecat.count", count),
	)
}

// RequestSucceeded records a completed summarize request.
func (e *Emitter) RequestSucceeded(ctx context.Context, count int, result *summarize.Result, elapsed time.Duration) {
	attrs := []log.KeyValue{
		log.Int("tracecat.count", count),
		log.Float64("tracecat.elapsed_ms", float64(elapsed.Microseconds())/1000),
	}
	if result != nil {
		attrs = append(attrs,
			log.Int("tracecat.trace_count", result.TraceCount),
			log.Float64("tracecat.success_rate", result.Summary.SuccessRate),
			log.Int("tracecat.error_count", len(result.Summary.Errors)),
		)
	}
	e.emit(ctx, log.SeverityInfo, "INFO", "summarize request succeeded", attrs...)
}

// RequestFailed records a failed summarize request.
func (e *Emitter) RequestFailed(ctx context.Context, count int, err error, elapsed time.Duration) {
	attrs := []log.KeyValue{
		log.Int("tracecat.count", count),
		log.Float64("tracecat.elapsed_ms", float64(elapsed.Microseconds())/1000),
		log.String("error.message", session.ErrorMessage(err)),
	}
	var apiErr *summarize.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, log.Int("http.response.status_code", apiErr.StatusCode))
	}
	e.emit(ctx, log.SeverityError, "ERROR", "summarize request failed", attrs...)
}

func (e *Emitter) emit(ctx context.Context, sev log.Severity, sevText, body string, attrs ...log.KeyValue) {
	// The session context is canceled on teardown; export must not depend on it.
	ctx = context.WithoutCancel(ctx)

	var record log.Record
	now := time.Now()
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(sev)
	record.SetSeverityText(sevText)
	record.SetBody(log.StringValue(body))
	record.AddAttributes(attrs...)

	e.logger.Emit(ctx, record)
}

// Close flushes pending records and shuts down the provider.
func (e *Emitter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
