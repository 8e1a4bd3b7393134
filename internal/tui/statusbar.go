// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
)

// renderStatusBar renders the status bar showing backend, count and phase
func (m Model) renderStatusBar() string {
	var parts []string

	profile := m.Watch.ProfileName
	if profile == "" {
		profile = "-"
	}
	parts = append(parts, StatusKeyStyle.Render("Profile: ")+StatusValueStyle.Render(profile))

	if m.Watch.BackendURL != "" {
		parts = append(parts, StatusKeyStyle.Render("API: ")+StatusValueStyle.Render(TruncateWithEllipsis(m.Watch.BackendURL, 40)))
	}

	parts = append(parts, StatusKeyStyle.Render("Count: ")+StatusValueStyle.Render(fmt.Sprintf("%d", m.session.Count())))

	if r := m.session.Result(); r != nil {
		parts = append(parts, StatusKeyStyle.Render("Traces: ")+StatusValueStyle.Render(fmt.Sprintf("%d", len(r.Traces))))
	}

	parts = append(parts, StatusKeyStyle.Render("Focus: ")+StatusValueStyle.Render(m.UI.Focus.String()))

	if m.session.Loading() {
		parts = append(parts, LoadingStyle.Render("loading..."))
	}

	return StatusBarStyle.Width(max(m.UI.Width-2, 0)).Render(strings.Join(parts, "  │  "))
}
