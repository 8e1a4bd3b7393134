// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package explorer

import "sort"

// ExpansionSet tracks which trace ids have their detail shown.
// Each id is toggled independently. The zero value is an empty set.
type ExpansionSet struct {
	ids map[string]struct{}
}

// NewExpansionSet returns an empty set.
func NewExpansionSet() *ExpansionSet {
	return &ExpansionSet{ids: make(map[string]struct{})}
}

// Toggle flips membership of id and reports whether it is now expanded.
func (e *ExpansionSet) Toggle(id string) bool {
	if e.ids == nil {
		e.ids = make(map[string]struct{})
	}
	if _, ok := e.ids[id]; ok {
		delete(e.ids, id)
		return false
	}
	e.ids[id] = struct{}{}
	return true
}

// Has reports whether id is expanded.
func (e *ExpansionSet) Has(id string) bool {
	if e == nil {
		return false
	}
	_, ok := e.ids[id]
	return ok
}

// Len is the number of expanded ids.
func (e *ExpansionSet) Len() int {
	if e == nil {
		return 0
	}
	return len(e.ids)
}

// Reset collapses everything.
func (e *ExpansionSet) Reset() {
	e.ids = make(map[string]struct{})
}

// IDs returns the expanded ids, sorted.
func (e *ExpansionSet) IDs() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.ids))
	for id := range e.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
