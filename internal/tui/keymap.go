// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

// KeyKind indicates whether a binding is part of the quick (always shown) or full (overlay) set.
type KeyKind int

const (
	KeyKindQuick KeyKind = iota
	KeyKindFull
)

// KeyBinding represents a key (or set of keys) and its label/group.
type KeyBinding struct {
	Keys  []string
	Label string
	Kind  KeyKind
	Group string
}

// ViewKeymap returns the bindings for the focused area.
func (m Model) ViewKeymap() []KeyBinding {
	if m.UI.Focus == focusInput {
		return []KeyBinding{
			ActionBindingWithLabel(ActionToggle, "summarize", KeyKindQuick, "Count"),
			CombinedBinding(ScrollDisplayKeys, "adjust", KeyKindQuick, "Count"),
			ActionBindingWithLabel(ActionFocus, "traces", KeyKindQuick, "Navigation"),
			CombinedBinding([]string{"ctrl+c"}, "quit", KeyKindQuick, "System"),
			ActionBindingWithLabel(ActionBack, "leave field", KeyKindFull, "Navigation"),
		}
	}

	bindings := []KeyBinding{
		ActionBinding(ActionSubmit, KeyKindQuick, "Request"),
		ActionBindingWithLabel(ActionEditCount, "count", KeyKindQuick, "Request"),
		ActionBinding(ActionIncrement, KeyKindFull, "Request"),
		ActionBinding(ActionDecrement, KeyKindFull, "Request"),
	}
	if m.hasTraces() {
		bindings = append(bindings,
			ScrollBinding(KeyKindQuick),
			ActionBinding(ActionToggle, KeyKindQuick, "Traces"),
			ActionBinding(ActionCopy, KeyKindQuick, "Clipboard"),
			ActionBinding(ActionCollapseAll, KeyKindFull, "Traces"),
			ActionBinding(ActionGoTop, KeyKindFull, "Navigation"),
			ActionBinding(ActionGoBottom, KeyKindFull, "Navigation"),
			ActionBinding(ActionPageUp, KeyKindFull, "Navigation"),
			ActionBinding(ActionPageDown, KeyKindFull, "Navigation"),
		)
	}
	if m.session.Result() != nil {
		bindings = append(bindings, ActionBinding(ActionCopySummary, KeyKindFull, "Clipboard"))
	}
	bindings = append(bindings, ActionBinding(ActionQuit, KeyKindQuick, "System"))
	return bindings
}

// HelpEnabled returns true if this view should show the help overlay.
// The count field takes "?" as input, so help is list-only.
func (m Model) HelpEnabled() bool {
	return m.UI.Focus == focusList
}

// QuickBindings returns the bindings to show in the help bar (max quickLimit, prepend help when enabled).
func (m Model) QuickBindings() []KeyBinding {
	const quickLimit = 7
	bindings := filterByKind(m.ViewKeymap(), KeyKindQuick)

	if m.HelpEnabled() {
		bindings = append([]KeyBinding{ActionBinding(ActionHelp, KeyKindQuick, "Help")}, bindings...)
	}

	if len(bindings) > quickLimit {
		return bindings[:quickLimit]
	}
	return bindings
}

// FullBindings returns the full set of bindings for the view.
func (m Model) FullBindings() []KeyBinding {
	return m.ViewKeymap()
}

func filterByKind(bindings []KeyBinding, kind KeyKind) []KeyBinding {
	var out []KeyBinding
	for _, b := range bindings {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
