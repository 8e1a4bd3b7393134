// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/tracecat/internal/session"
)

// Backend is a summarizer plus the labels shown for it.
type Backend struct {
	Summarizer  session.Summarizer
	URL         string
	ProfileName string
}

// ReloadFunc rebuilds the backend after the profile file changes.
type ReloadFunc func() (Backend, error)

// Options configures NewModel.
type Options struct {
	Backend    Backend
	Count      int  // initial count; 0 means session.DefaultCount
	AutoSubmit bool // submit once on Init

	WatchPath string     // profile file to watch; empty disables hot reload
	Reload    ReloadFunc // required when WatchPath is set

	Logger    *slog.Logger
	Observer  session.Observer
	Location  *time.Location // timestamp rendering; nil means local time
	Clipboard Clipboard      // nil means the system clipboard
}

// Model is the main TUI model.
//
// State is organized into embedded structs:
//   - Core: ctx, session, collaborators
//   - UI: focus, dimensions, cursor, status line
//   - Watch: profile hot reload
//   - Components: text input and spinner
type Model struct {
	// === Core ===
	ctx        context.Context
	session    *session.Session
	reload     ReloadFunc
	logger     *slog.Logger
	location   *time.Location
	clipboard  Clipboard
	autoSubmit bool

	// === Embedded State ===
	UI         UIState
	Watch      WatchState
	Components UIComponents
}

// NewModel creates a new TUI model. Requests run under ctx; canceling it
// or quitting tears the session down.
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}

	sess := session.New(ctx, session.Options{
		Summarizer: opts.Backend.Summarizer,
		Count:      opts.Count,
		Logger:     logger,
		Observer:   opts.Observer,
	})

	ci := textinput.New()
	ci.Prompt = ""
	ci.Placeholder = strconv.Itoa(session.DefaultCount)
	ci.CharLimit = 4
	ci.Width = 5
	ci.SetValue(strconv.Itoa(sess.Count()))
	ci.CursorEnd()
	ci.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(LoadingStyle))

	return Model{
		ctx:        ctx,
		session:    sess,
		reload:     opts.Reload,
		logger:     logger,
		location:   opts.Location,
		clipboard:  clip,
		autoSubmit: opts.AutoSubmit,
		UI: UIState{
			Focus:  focusInput,
			Width:  80,
			Height: 24,
		},
		Watch: WatchState{
			Path:        opts.WatchPath,
			ProfileName: opts.Backend.ProfileName,
			BackendURL:  opts.Backend.URL,
		},
		Components: UIComponents{
			CountInput: ci,
			Spinner:    sp,
		},
	}
}

// Session exposes the state bundle driving the screen.
func (m Model) Session() *session.Session {
	return m.session
}

// Init starts the cursor blink, the profile watcher and, when configured,
// the first request.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.Watch.Path != "" && m.reload != nil {
		cmds = append(cmds, watchProfiles(m.ctx, m.Watch.Path))
	}
	if m.autoSubmit {
		cmds = append(cmds, func() tea.Msg { return submitMsg{} })
	}
	return tea.Batch(cmds...)
}

// setStatus shows a transient message in the status line.
func (m *Model) setStatus(msg string) {
	m.UI.StatusMessage = msg
	m.UI.StatusTime = time.Now()
}
