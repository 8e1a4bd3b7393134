// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the slog loggers used across tracecat.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Sink selects where log lines go when no file is configured.
type Sink int

const (
	// SinkStderr writes to stderr. Used by non-interactive commands.
	SinkStderr Sink = iota
	// SinkDiscard drops output. Used by the TUI, which owns the terminal.
	SinkDiscard
)

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New returns a text logger at level. When file is set, output is appended
// there and the returned closer releases it; otherwise fallback decides.
func New(level, file string, fallback Sink) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case fallback == SinkDiscard:
		w = io.Discard
	default:
		w = os.Stderr
	}

	return NewWithWriter(w, lvl), closer, nil
}

// NewWithWriter returns a text logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
