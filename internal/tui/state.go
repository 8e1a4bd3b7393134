// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// focusArea is the part of the screen receiving keys.
type focusArea int

const (
	focusInput focusArea = iota // count field
	focusList                   // trace list
)

func (f focusArea) String() string {
	if f == focusInput {
		return "count"
	}
	return "traces"
}

// UIState holds layout and presentation state.
type UIState struct {
	Focus    focusArea
	Width    int
	Height   int
	Cursor   int // selected trace index
	ShowHelp bool

	StatusMessage string
	StatusTime    time.Time
}

// WatchState tracks the profile file watcher.
type WatchState struct {
	Path        string // profile file; empty disables watching
	ProfileName string // profile in effect, for the status bar
	BackendURL  string
	Reloads     int
}

// UIComponents holds the Bubbles components.
type UIComponents struct {
	CountInput textinput.Model
	Spinner    spinner.Model
}
