// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/tracecat/internal/summarize"
)

// handleTracesKey handles keys while the trace list has focus.
func (m Model) handleTracesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	action := GetAction(key)

	if IsListNavAction(action) {
		if pos := listNav(m.UI.Cursor, len(m.traces()), key); pos >= 0 {
			m.UI.Cursor = pos
		}
		return m, nil
	}

	switch action {
	case ActionToggle:
		if t, ok := m.selectedTrace(); ok {
			m.session.Toggle(t.TraceID)
		}
	case ActionSubmit:
		return m.submit()
	case ActionFocus, ActionEditCount:
		m.focus(focusInput)
	case ActionIncrement:
		m.adjustCount(1)
	case ActionDecrement:
		m.adjustCount(-1)
	case ActionCollapseAll:
		m.session.CollapseAll()
	case ActionCopy:
		if t, ok := m.selectedTrace(); ok {
			m.copyToClipboard(t.TraceID, "Trace ID copied to clipboard!")
		}
	case ActionCopySummary:
		if r := m.session.Result(); r != nil {
			m.copyToClipboard(r.Summary.SummaryText, "Summary copied to clipboard!")
		}
	case ActionHelp:
		m.UI.ShowHelp = true
	case ActionQuit:
		return m.quit()
	}
	return m, nil
}

// traces returns the traces of the current result.
func (m Model) traces() []summarize.Trace {
	if r := m.session.Result(); r != nil {
		return r.Traces
	}
	return nil
}

func (m Model) hasTraces() bool {
	return len(m.traces()) > 0
}

// selectedTrace returns the trace under the cursor.
func (m Model) selectedTrace() (summarize.Trace, bool) {
	traces := m.traces()
	if m.UI.Cursor < 0 || m.UI.Cursor >= len(traces) {
		return summarize.Trace{}, false
	}
	return traces[m.UI.Cursor], true
}
