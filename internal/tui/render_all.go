// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elastic/tracecat/internal/session"
)

// minListHeight keeps a few trace rows visible under a tall summary.
const minListHeight = 3

// View renders the screen.
func (m Model) View() string {
	if m.UI.ShowHelp {
		return AppStyle.Render(m.renderHelpOverlay())
	}

	var b strings.Builder
	b.WriteString(m.renderTitleHeader())
	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")

	switch m.session.Phase() {
	case session.PhaseError:
		b.WriteString(m.renderErrorPanel())
		b.WriteString("\n")
	case session.PhaseSuccess:
		b.WriteString(m.renderSummaryPanel())
		b.WriteString("\n")
	}

	footer := m.renderFooter()
	if m.session.Phase() == session.PhaseSuccess {
		used := lipgloss.Height(b.String()) + lipgloss.Height(footer)
		b.WriteString(m.renderTraceList(max(m.UI.Height-used-1, minListHeight)))
		b.WriteString("\n")
	}

	b.WriteString(footer)
	return AppStyle.Render(b.String())
}

// renderTitleHeader renders the application title.
func (m Model) renderTitleHeader() string {
	return TitleHeaderStyle.Render("tracecat") + DetailMutedStyle.Render("· trace summary")
}

// renderControls renders the count field, the submit trigger and the loading indicator.
func (m Model) renderControls() string {
	box := CountBoxStyle
	if m.UI.Focus == focusInput {
		box = CountBoxFocusedStyle
	}
	field := box.Render(m.Components.CountInput.View())

	var trigger string
	switch {
	case m.session.Loading():
		trigger = ButtonDisabledStyle.Render("Summarizing...") + " " +
			m.Components.Spinner.View() + LoadingStyle.Render(fmt.Sprintf(" analyzing %d traces", m.session.Count()))
	case m.session.CanSubmit():
		trigger = ButtonStyle.Render("Summarize")
	default:
		trigger = ButtonDisabledStyle.Render("Summarize")
	}

	label := DetailKeyStyle.Render("Traces to analyze") + DetailMutedStyle.Render(fmt.Sprintf(" (%d-%d)", session.MinCount, session.MaxCount))
	return lipgloss.JoinHorizontal(lipgloss.Center, label, " ", field, "  ", trigger)
}

// renderErrorPanel renders the failure message.
func (m Model) renderErrorPanel() string {
	width := max(m.UI.Width-4, 20)
	body := ErrorStyle.Render("Error: ") + DetailValueStyle.Render(m.session.Err())
	return ErrorPanelStyle.Width(width).Render(body)
}

// renderFooter renders the status line, status bar and help bar.
func (m Model) renderFooter() string {
	var parts []string
	if m.UI.StatusMessage != "" {
		parts = append(parts, LoadingStyle.Render(m.UI.StatusMessage))
	}
	parts = append(parts, m.renderStatusBar(), m.renderHelpBar())
	return strings.Join(parts, "\n")
}
