// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/elastic/tracecat/internal/explorer"
	"github.com/elastic/tracecat/internal/summarize"
)

// successBarWidth is the cell width of the success rate bar.
const successBarWidth = 20

// renderSummaryPanel renders the aggregate view. Sections with no content
// are left out entirely.
func (m Model) renderSummaryPanel() string {
	result := m.session.Result()
	if result == nil {
		return ""
	}
	width := max(m.UI.Width-4, 20)
	inner := max(width-4, 10)

	var blocks []string
	for _, sec := range explorer.Sections(result.Summary) {
		blocks = append(blocks, renderSection(sec, result.Summary, inner))
	}
	return PanelStyle.Width(width).Render(strings.Join(blocks, "\n"))
}

func renderSection(sec explorer.Section, s summarize.Summary, width int) string {
	title := SectionTitleStyle.Render(sec.String())
	switch sec {
	case explorer.SectionNarrative:
		return title + "\n" + DetailValueStyle.Width(width).Render(s.SummaryText)
	case explorer.SectionSuccessRate:
		return title + " " + renderSuccessBar(s.SuccessRate, successBarWidth) + " " +
			DetailValueStyle.Render(explorer.FormatSuccessRate(s.SuccessRate))
	case explorer.SectionThemes:
		return title + "\n" + bulletList(s.Themes, width, DetailValueStyle.Render)
	case explorer.SectionErrors:
		return title + "\n" + bulletList(s.Errors, width, ErrorStyle.Render)
	case explorer.SectionTools:
		return title + "\n" + renderTools(explorer.TopTools(s.ToolsUsed))
	}
	return ""
}

// renderSuccessBar draws a proportional bar for a 0-100 rate.
func renderSuccessBar(rate float64, width int) string {
	filled := explorer.SuccessFill(rate, width)
	return BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func bulletList(items []string, width int, render func(...string) string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "  • "+render(TruncateWithEllipsis(singleLine(item), max(width-4, 1))))
	}
	return strings.Join(lines, "\n")
}

func renderTools(tools []summarize.ToolUsage) string {
	chips := make([]string, 0, len(tools))
	for _, t := range tools {
		chips = append(chips, SpanNameStyle.Render(fmt.Sprintf("%s (%d)", t.Tool, t.Count)))
	}
	return "  " + strings.Join(chips, " ")
}
