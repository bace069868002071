/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package autosave periodically writes the working state to the cache
// directory so a crash loses at most a few seconds of edits.
package autosave

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	applog "photobook/internal/log"
	"photobook/internal/project"
)

// FileName is the snapshot file inside the cache directory.
const FileName = "auto_save.rpb"

// DefaultInterval is the minimum spacing between two snapshots.
const DefaultInterval = 5 * time.Second

var (
	// ErrSaveTaskInProgress is returned while a previous snapshot is
	// still being written.
	ErrSaveTaskInProgress = errors.New("auto-save already in progress")

	// ErrNoCachePath is returned when the manager was built without a
	// cache directory.
	ErrNoCachePath = errors.New("no cache path configured")
)

// Manager throttles and serializes auto-save snapshots. At most one
// write task runs at a time; a save dispatched while another is running
// is rejected rather than queued.
type Manager struct {
	mu       sync.Mutex
	path     string
	interval time.Duration
	now      func() time.Time
	lastSave time.Time
	inFlight bool
}

// NewManager builds a manager writing to cacheDir. An empty cacheDir
// yields a manager whose saves fail with ErrNoCachePath.
func NewManager(cacheDir string) *Manager {
	path := ""
	if cacheDir != "" {
		path = filepath.Join(cacheDir, FileName)
	}
	return &Manager{path: path, interval: DefaultInterval, now: time.Now}
}

// Path returns the snapshot location, or "" when none is configured.
func (m *Manager) Path() string { return m.path }

// InProgress reports whether a snapshot write is currently running.
func (m *Manager) InProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// AutoSaveIfNeeded dispatches a snapshot if the last one was dispatched
// at least the configured interval ago. Calls inside the interval are a
// no-op and return nil.
func (m *Manager) AutoSaveIfNeeded(activeProject string, scene *project.Scene) error {
	m.mu.Lock()
	if !m.lastSave.IsZero() && m.now().Sub(m.lastSave) < m.interval {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()
	return m.AutoSave(activeProject, scene)
}

// AutoSave snapshots the scene on the caller's goroutine, then writes
// the file in the background. The last-save time advances when the task
// is dispatched, not when it finishes, so a slow disk does not cause a
// burst of snapshots afterwards. Write failures are logged, never
// propagated.
func (m *Manager) AutoSave(activeProject string, scene *project.Scene) error {
	if m.path == "" {
		return ErrNoCachePath
	}

	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrSaveTaskInProgress
	}
	m.inFlight = true
	m.lastSave = m.now()
	m.mu.Unlock()

	// Snapshot before handing off: the scene keeps mutating on the
	// caller's side.
	a := &project.AutoSaveFile{
		ActiveProject: activeProject,
		Project:       *project.FromScene(scene),
	}

	go func() {
		start := time.Now()
		err := project.SaveAutoSave(m.path, a)

		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()

		logger := applog.WithComponent("autosave")
		if err != nil {
			logger.Warn("auto-save failed", "path", m.path, "error", err)
			return
		}
		logger.Debug("auto-save written", "path", m.path, "took", time.Since(start))
	}()
	return nil
}

// Load reads the last snapshot, if any. A missing file and a broken
// file both yield nil; broken files are logged and removed so they do
// not fail every startup.
func (m *Manager) Load() *project.AutoSaveFile {
	if m.path == "" {
		return nil
	}
	a, err := project.LoadAutoSave(m.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			applog.WithComponent("autosave").Warn("discarding unreadable auto-save", "path", m.path, "error", err)
			_ = os.Remove(m.path)
		}
		return nil
	}
	return a
}

// Discard removes the snapshot, typically after a successful manual
// save made it redundant.
func (m *Manager) Discard() {
	if m.path == "" {
		return
	}
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		applog.WithComponent("autosave").Warn("removing auto-save failed", "path", m.path, "error", err)
	}
}
