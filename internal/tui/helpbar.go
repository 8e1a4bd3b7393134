// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import "strings"

// renderHelpBar renders the quick bindings for the focused area.
func (m Model) renderHelpBar() string {
	bindings := m.QuickBindings()
	keys := make([]string, 0, len(bindings))
	for _, b := range bindings {
		keys = append(keys, HelpKeyStyle.Render(strings.Join(b.Keys, "/"))+HelpDescStyle.Render(" "+b.Label))
	}
	return HelpStyle.Render(strings.Join(keys, "  "))
}
