// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/tracecat/internal/session"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UI.Width = msg.Width
		m.UI.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitMsg:
		return m.submit()

	case summarizeDoneMsg:
		return m.handleSummarizeDone(msg)

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Components.Spinner, cmd = m.Components.Spinner.Update(msg)
		return m, cmd

	case profileChangedMsg:
		return m, m.reloadBackend()

	case backendReloadedMsg:
		return m.handleBackendReloaded(msg)

	case profileWatchErrorMsg:
		m.logger.Warn("profile watcher stopped", "error", msg.Err)
		m.setStatus("Profile watch stopped: " + msg.Err.Error())
		return m, nil
	}

	if m.UI.Focus == focusInput {
		var cmd tea.Cmd
		m.Components.CountInput, cmd = m.Components.CountInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press to the help overlay, the count field or the list.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}
	m.UI.StatusMessage = ""

	if m.UI.ShowHelp {
		switch GetAction(key) {
		case ActionHelp, ActionBack:
			m.UI.ShowHelp = false
		case ActionQuit:
			return m.quit()
		}
		return m, nil
	}

	if m.UI.Focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleTracesKey(msg)
}

// submit starts a request with the current count. While a request is
// outstanding it only reports that the trigger is disabled.
func (m Model) submit() (Model, tea.Cmd) {
	m.syncCountInput(m.session.Count())

	ticket, ok := m.session.Begin()
	if !ok {
		switch {
		case m.session.Loading():
			m.setStatus("A summary is already being generated")
		case m.session.Closed():
		default:
			m.setStatus("No backend configured")
		}
		return m, nil
	}

	m.UI.Cursor = 0
	run := func() tea.Msg {
		return summarizeDoneMsg{Completion: ticket.Run()}
	}
	return m, tea.Batch(m.Components.Spinner.Tick, run)
}

// handleSummarizeDone applies a finished request on the update loop.
func (m Model) handleSummarizeDone(msg summarizeDoneMsg) (Model, tea.Cmd) {
	if !m.session.Complete(msg.Completion) {
		return m, nil
	}
	m.UI.Cursor = 0
	if m.session.Phase() == session.PhaseSuccess && m.hasTraces() && m.UI.Focus == focusInput {
		m.focus(focusList)
	}
	return m, nil
}

// quit tears the session down before leaving so a late response is ignored.
func (m Model) quit() (Model, tea.Cmd) {
	m.session.Close()
	return m, tea.Quit
}
