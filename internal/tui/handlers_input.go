// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// handleInputKey handles keys while the count field has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab", "shift+tab", "esc":
		m.focus(focusList)
		return m, nil
	case "up", "+":
		m.adjustCount(1)
		return m, nil
	case "down", "-":
		m.adjustCount(-1)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.Components.CountInput.Value()
	m.Components.CountInput, cmd = m.Components.CountInput.Update(msg)
	if m.Components.CountInput.Value() != before {
		m.applyCountText()
	}
	return m, cmd
}

// applyCountText clamps the edited field and writes the corrected value back.
// An emptied field stays empty while editing so a new number can be typed;
// the session already holds the clamped value.
func (m *Model) applyCountText() {
	raw := m.Components.CountInput.Value()
	n := m.session.SetCountText(raw)
	if raw == "" {
		return
	}
	m.syncCountInput(n)
}

// adjustCount moves the count by delta within range.
func (m *Model) adjustCount(delta int) {
	n := m.session.SetCount(m.session.Count() + delta)
	m.syncCountInput(n)
}

func (m *Model) syncCountInput(n int) {
	text := strconv.Itoa(n)
	if m.Components.CountInput.Value() != text {
		m.Components.CountInput.SetValue(text)
		m.Components.CountInput.CursorEnd()
	}
}

// focus moves keyboard focus, keeping the text input's cursor in step.
func (m *Model) focus(area focusArea) {
	m.UI.Focus = area
	m.syncCountInput(m.session.Count())
	if area == focusInput {
		m.Components.CountInput.Focus()
		m.Components.CountInput.CursorEnd()
	} else {
		m.Components.CountInput.Blur()
	}
}
