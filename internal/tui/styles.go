// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#5A5A5A")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFCC00")
	errorColor     = lipgloss.Color("#FF5F56")
	infoColor      = lipgloss.Color("#61AFEF")
	fgColor        = lipgloss.Color("#E0E0E0")
	mutedColor     = lipgloss.Color("#6C757D")
)

// Styles
var (
	// App frame
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TitleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				Padding(0, 1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	StatusValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	// Count field
	CountBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	CountBoxFocusedStyle = CountBoxStyle.
				BorderForeground(primaryColor)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Bold(true).
			Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Background(lipgloss.Color("#333333")).
				Padding(0, 2)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	ErrorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Detail lines
	DetailKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	DetailMutedStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Trace rows
	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#4A4A7A")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	TraceTitleStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Bold(true)

	DurationBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#000000")).
				Background(warningColor).
				Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	StatusFailStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	SpanNameStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(lipgloss.Color("#3A3A3A")).
			Padding(0, 1)

	// Success rate bar
	BarFilledStyle = lipgloss.NewStyle().
			Foreground(successColor)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(1, 2)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Loading style
	LoadingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// TraceStatusStyle returns the icon style for a trace status.
func TraceStatusStyle(ok bool) lipgloss.Style {
	if ok {
		return StatusOKStyle
	}
	return StatusFailStyle
}
