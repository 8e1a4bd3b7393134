// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

// Action represents a user action that can be triggered by one or more keys
type Action int

const (
	ActionNone Action = iota

	// Navigation - list/cursor movement
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionGoTop
	ActionGoBottom

	// Common actions
	ActionToggle        // enter, space - expand/collapse trace
	ActionSubmit        // s, r - summarize with the current count
	ActionFocus         // tab - switch between count field and list
	ActionEditCount     // / - jump to the count field
	ActionIncrement     // + - raise count
	ActionDecrement     // - - lower count
	ActionCollapseAll   // c - collapse every trace
	ActionCopy          // y - copy trace id
	ActionCopySummary   // Y - copy summary text
	ActionBack          // esc - leave field / close help
	ActionQuit          // q - quit app
	ActionHelp          // ? - show help overlay
)

// DefaultKeyBindings maps keys to their primary action in the trace list.
// The count field handles its own keys.
var DefaultKeyBindings = map[string]Action{
	// Navigation - includes vim keys (j/k) for list scrolling
	"up":     ActionScrollUp,
	"k":      ActionScrollUp,
	"down":   ActionScrollDown,
	"j":      ActionScrollDown,
	"pgup":   ActionPageUp,
	"pgdown": ActionPageDown,
	"home":   ActionGoTop,
	"g":      ActionGoTop,
	"end":    ActionGoBottom,
	"G":      ActionGoBottom,

	// Common actions
	"enter":     ActionToggle,
	" ":         ActionToggle,
	"space":     ActionToggle,
	"s":         ActionSubmit,
	"r":         ActionSubmit,
	"tab":       ActionFocus,
	"shift+tab": ActionFocus,
	"/":         ActionEditCount,
	"+":         ActionIncrement,
	"=":         ActionIncrement,
	"-":         ActionDecrement,
	"c":         ActionCollapseAll,
	"y":         ActionCopy,
	"Y":         ActionCopySummary,
	"esc":       ActionBack,
	"q":         ActionQuit,
	"ctrl+c":    ActionQuit,
	"?":         ActionHelp,
}

// GetAction returns the action for a key from the default bindings.
// Returns ActionNone if the key is not bound.
func GetAction(key string) Action {
	if action, ok := DefaultKeyBindings[key]; ok {
		return action
	}
	return ActionNone
}

// IsListNavAction returns true if the action is for list navigation (up/down/page/home/end)
func IsListNavAction(action Action) bool {
	return action >= ActionScrollUp && action <= ActionGoBottom
}

// ActionInfo provides display information for an action
type ActionInfo struct {
	DisplayKeys []string // Keys to show in help bar (e.g., ["↑", "↓"])
	Label       string   // Label for the action (e.g., "scroll")
}

// ActionDisplay maps actions to their display information
var ActionDisplay = map[Action]ActionInfo{
	ActionScrollUp:    {DisplayKeys: []string{"↑"}, Label: "up"},
	ActionScrollDown:  {DisplayKeys: []string{"↓"}, Label: "down"},
	ActionPageUp:      {DisplayKeys: []string{"pgup"}, Label: "page up"},
	ActionPageDown:    {DisplayKeys: []string{"pgdown"}, Label: "page down"},
	ActionGoTop:       {DisplayKeys: []string{"g"}, Label: "top"},
	ActionGoBottom:    {DisplayKeys: []string{"G"}, Label: "bottom"},
	ActionToggle:      {DisplayKeys: []string{"enter"}, Label: "expand"},
	ActionSubmit:      {DisplayKeys: []string{"s"}, Label: "summarize"},
	ActionFocus:       {DisplayKeys: []string{"tab"}, Label: "focus"},
	ActionEditCount:   {DisplayKeys: []string{"/"}, Label: "edit count"},
	ActionIncrement:   {DisplayKeys: []string{"+"}, Label: "more"},
	ActionDecrement:   {DisplayKeys: []string{"-"}, Label: "fewer"},
	ActionCollapseAll: {DisplayKeys: []string{"c"}, Label: "collapse all"},
	ActionCopy:        {DisplayKeys: []string{"y"}, Label: "copy id"},
	ActionCopySummary: {DisplayKeys: []string{"Y"}, Label: "copy summary"},
	ActionBack:        {DisplayKeys: []string{"esc"}, Label: "back"},
	ActionQuit:        {DisplayKeys: []string{"q"}, Label: "quit"},
	ActionHelp:        {DisplayKeys: []string{"?"}, Label: "help"},
}

// ScrollDisplayKeys returns the combined display for scroll up/down
var ScrollDisplayKeys = []string{"↑", "↓"}

// ActionBinding creates a KeyBinding from an action
func ActionBinding(action Action, kind KeyKind, group string) KeyBinding {
	info := ActionDisplay[action]
	return KeyBinding{
		Keys:  info.DisplayKeys,
		Label: info.Label,
		Kind:  kind,
		Group: group,
	}
}

// ActionBindingWithLabel creates a KeyBinding from an action with a custom label
func ActionBindingWithLabel(action Action, label string, kind KeyKind, group string) KeyBinding {
	info := ActionDisplay[action]
	return KeyBinding{
		Keys:  info.DisplayKeys,
		Label: label,
		Kind:  kind,
		Group: group,
	}
}

// CombinedBinding creates a KeyBinding from multiple keys with a custom label
func CombinedBinding(keys []string, label string, kind KeyKind, group string) KeyBinding {
	return KeyBinding{
		Keys:  keys,
		Label: label,
		Kind:  kind,
		Group: group,
	}
}

// ScrollBinding returns a standard scroll up/down binding
func ScrollBinding(kind KeyKind) KeyBinding {
	return CombinedBinding(ScrollDisplayKeys, "scroll", kind, "Navigation")
}
