// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/elastic/tracecat/internal/session"
)

// summarizeDoneMsg carries a finished request back to the update loop.
type summarizeDoneMsg struct {
	Completion session.Completion
}

// profileChangedMsg is sent when the profile file was written.
type profileChangedMsg struct {
	Path string
}

// profileWatchErrorMsg is sent when the watcher stops with an error.
type profileWatchErrorMsg struct {
	Err error
}

// backendReloadedMsg carries the outcome of rebuilding the backend client.
type backendReloadedMsg struct {
	Backend Backend
	Err     error
}

// submitMsg asks the update loop to submit, so auto submit goes through
// the same path as a key press.
type submitMsg struct{}
