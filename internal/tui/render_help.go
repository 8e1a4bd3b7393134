// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
)

// renderHelpOverlay lists every binding of the current view, grouped.
func (m Model) renderHelpOverlay() string {
	var (
		order  []string
		groups = make(map[string][]KeyBinding)
	)
	for _, b := range m.FullBindings() {
		if _, ok := groups[b.Group]; !ok {
			order = append(order, b.Group)
		}
		groups[b.Group] = append(groups[b.Group], b)
	}

	var sb strings.Builder
	sb.WriteString(SectionTitleStyle.Render("Keyboard shortcuts"))
	sb.WriteString("\n")
	for _, g := range order {
		sb.WriteString("\n")
		sb.WriteString(DetailKeyStyle.Render(g))
		sb.WriteString("\n")
		for _, b := range groups[g] {
			sb.WriteString("  ")
			sb.WriteString(HelpKeyStyle.Render(PadOrTruncate(strings.Join(b.Keys, "/"), 10)))
			sb.WriteString(HelpDescStyle.Render(b.Label))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(DetailMutedStyle.Render("? or esc to close"))
	return HelpOverlayStyle.Render(sb.String())
}
