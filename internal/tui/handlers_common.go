// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"

	"golang.design/x/clipboard"
)

const pageSize = 10

// listNav handles standard list navigation, returning the new cursor position.
// cursor: current position, listLen: total items, key: the pressed key.
// Returns -1 if the key is not a navigation key.
func listNav(cursor, listLen int, key string) int {
	switch GetAction(key) {
	case ActionScrollUp:
		if cursor > 0 {
			return cursor - 1
		}
		return cursor
	case ActionScrollDown:
		if cursor < listLen-1 {
			return cursor + 1
		}
		return cursor
	case ActionGoTop:
		return 0
	case ActionGoBottom:
		if listLen > 0 {
			return listLen - 1
		}
		return 0
	case ActionPageUp:
		return max(cursor-pageSize, 0)
	case ActionPageDown:
		return max(min(cursor+pageSize, listLen-1), 0)
	}
	return -1
}

// Clipboard receives copied text.
type Clipboard interface {
	Write(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// copyToClipboard copies text and reports the outcome in the status line.
func (m *Model) copyToClipboard(text, successMsg string) {
	if err := m.clipboard.Write(text); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	m.setStatus(successMsg)
}
