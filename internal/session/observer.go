// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"time"

	"github.com/elastic/tracecat/internal/summarize"
)

// Observer is notified of request lifecycle transitions.
type Observer interface {
	RequestStarted(ctx context.Context, count int)
	RequestSucceeded(ctx context.Context, count int, result *summarize.Result, elapsed time.Duration)
	RequestFailed(ctx context.Context, count int, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) RequestStarted(context.Context, int) {}

func (nopObserver) RequestSucceeded(context.Context, int, *summarize.Result, time.Duration) {}

func (nopObserver) RequestFailed(context.Context, int, error, time.Duration) {}
