// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// profileSettle groups the burst of events an editor save produces.
const profileSettle = 100 * time.Millisecond

// watchProfiles waits for the profile file to change. The parent directory
// is watched because editors often replace the file instead of writing it.
// It returns nil when ctx ends or the directory does not exist yet.
func watchProfiles(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		path = filepath.Clean(path)
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return profileWatchErrorMsg{Err: fmt.Errorf("create watcher: %w", err)}
		}
		defer watcher.Close()

		if err := watcher.Add(dir); err != nil {
			return profileWatchErrorMsg{Err: fmt.Errorf("watch directory: %w", err)}
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return profileWatchErrorMsg{Err: fmt.Errorf("watcher closed")}
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				settle(ctx, watcher)
				return profileChangedMsg{Path: path}
			case err, ok := <-watcher.Errors:
				if !ok {
					return profileWatchErrorMsg{Err: fmt.Errorf("watcher closed")}
				}
				return profileWatchErrorMsg{Err: err}
			}
		}
	}
}

// settle drains events until the directory is quiet for profileSettle.
func settle(ctx context.Context, watcher *fsnotify.Watcher) {
	timer := time.NewTimer(profileSettle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case _, ok := <-watcher.Events:
			if !ok {
				return
			}
			timer.Reset(profileSettle)
		}
	}
}

// reloadBackend rebuilds the backend from the changed profile file.
func (m Model) reloadBackend() tea.Cmd {
	reload := m.reload
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		b, err := reload()
		return backendReloadedMsg{Backend: b, Err: err}
	}
}

// idleCloser is implemented by summarizers that pool connections.
type idleCloser interface {
	CloseIdleConnections()
}

// handleBackendReloaded swaps the summarizer used by later submits and
// re-arms the watcher. A request in flight finishes on the old backend.
func (m Model) handleBackendReloaded(msg backendReloadedMsg) (Model, tea.Cmd) {
	var rearm tea.Cmd
	if m.Watch.Path != "" {
		rearm = watchProfiles(m.ctx, m.Watch.Path)
	}

	if msg.Err != nil {
		m.logger.Warn("profile reload failed", "path", m.Watch.Path, "error", msg.Err)
		m.setStatus("Profile reload failed: " + msg.Err.Error())
		return m, rearm
	}

	if old, ok := m.session.Summarizer().(idleCloser); ok && !m.session.Loading() {
		old.CloseIdleConnections()
	}
	m.session.SetSummarizer(msg.Backend.Summarizer)
	m.Watch.ProfileName = msg.Backend.ProfileName
	m.Watch.BackendURL = msg.Backend.URL
	m.Watch.Reloads++

	name := msg.Backend.ProfileName
	if name == "" {
		name = "defaults"
	}
	m.logger.Info("backend reloaded", "profile", name, "url", msg.Backend.URL)
	m.setStatus(fmt.Sprintf("Reloaded profile %s (%s)", name, msg.Backend.URL))
	return m, rearm
}
