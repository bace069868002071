/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package photo

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	applog "photobook/internal/log"
)

// Entry is a photo slot in the manager. Pending entries hold only the path;
// Ready entries carry full metadata; Error entries record why decoding
// failed and are skipped in navigation.
type Entry struct {
	State State
	Photo Photo
	Err   error
}

type loadResult struct {
	path string
	meta Metadata
	err  error
}

// Manager owns the photo collection. Metadata extraction runs on background
// goroutines; completions land in a mailbox that the owner applies by
// calling Drain once per frame. All methods are safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*Entry
	results chan loadResult
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]*Entry),
		results: make(chan loadResult, 128),
	}
}

// LoadDirectory walks root recursively, inserts a Pending entry for every
// supported photo file, and schedules metadata extraction. It returns the
// number of files scheduled. Files already present keep their entry.
func (m *Manager) LoadDirectory(root string) (int, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && SupportedFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", root, err)
	}

	scheduled := 0
	for _, p := range paths {
		if m.schedule(p) {
			scheduled++
		}
	}
	applog.WithComponent("photo").Info("directory scheduled",
		slog.String("root", root), slog.Int("files", scheduled))
	return scheduled, nil
}

// AddPhoto inserts a single file and schedules its metadata extraction.
// Unsupported or already-present paths are ignored.
func (m *Manager) AddPhoto(path string) bool {
	if !SupportedFile(path) {
		return false
	}
	return m.schedule(path)
}

func (m *Manager) schedule(path string) bool {
	m.mu.Lock()
	if _, exists := m.entries[path]; exists {
		m.mu.Unlock()
		return false
	}
	m.entries[path] = &Entry{State: StatePending, Photo: Photo{Path: path}}
	m.order = append(m.order, path)
	m.mu.Unlock()

	go func() {
		meta, err := ReadMetadata(path)
		m.results <- loadResult{path: path, meta: meta, err: err}
	}()
	return true
}

// Drain applies all completed background loads without blocking and returns
// how many entries changed state. Results for entries removed in the
// meantime are dropped.
func (m *Manager) Drain() int {
	applied := 0
	for {
		select {
		case res := <-m.results:
			if m.apply(res) {
				applied++
			}
		default:
			return applied
		}
	}
}

func (m *Manager) apply(res loadResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[res.path]
	if !ok {
		return false
	}
	if res.err != nil {
		e.State = StateError
		e.Err = res.err
		applog.WithComponent("photo").Warn("photo load failed",
			slog.String("path", res.path), slog.Any("err", res.err))
		return true
	}
	e.State = StateReady
	e.Photo.Meta = res.meta
	return true
}

// Len returns the number of entries, in any state.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// PendingCount returns how many entries are still waiting for their
// background load.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.State == StatePending {
			n++
		}
	}
	return n
}

// Paths returns the photo paths in insertion order.
func (m *Manager) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// EntryAt returns the entry at index i in insertion order.
func (m *Manager) EntryAt(i int) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.order) {
		return Entry{}, false
	}
	return *m.entries[m.order[i]], true
}

// PhotoByPath returns the photo for path when its entry is Ready.
func (m *Manager) PhotoByPath(path string) (Photo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[path]
	if !ok || e.State != StateReady {
		return Photo{}, false
	}
	return e.Photo, true
}

// ReadyPhotos returns all Ready photos in insertion order.
func (m *Manager) ReadyPhotos() []Photo {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Photo
	for _, p := range m.order {
		if e := m.entries[p]; e.State == StateReady {
			out = append(out, e.Photo)
		}
	}
	return out
}

// NextPhoto returns the first Ready photo after index i, wrapping around.
// ok is false when no entry is Ready.
func (m *Manager) NextPhoto(i int) (Photo, int, bool) {
	return m.navigate(i, 1)
}

// PreviousPhoto returns the first Ready photo before index i, wrapping
// around. ok is false when no entry is Ready.
func (m *Manager) PreviousPhoto(i int) (Photo, int, bool) {
	return m.navigate(i, -1)
}

func (m *Manager) navigate(from, step int) (Photo, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.order)
	if n == 0 {
		return Photo{}, 0, false
	}
	idx := from
	for range n {
		idx = ((idx+step)%n + n) % n
		if e := m.entries[m.order[idx]]; e.State == StateReady {
			return e.Photo, idx, true
		}
	}
	return Photo{}, 0, false
}

// SetRating stores a 0..5 rating on the photo at path.
func (m *Manager) SetRating(path string, rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating out of range: %d", rating)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[path]
	if !ok {
		return fmt.Errorf("unknown photo: %s", path)
	}
	e.Photo.Rating = rating
	return nil
}

// RotatePhoto advances the photo's rotation by a quarter turn. The transform
// is metadata only.
func (m *Manager) RotatePhoto(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[path]
	if !ok {
		return fmt.Errorf("unknown photo: %s", path)
	}
	e.Photo.Meta.Rotation = e.Photo.Meta.Rotation.Next()
	return nil
}

// Clear drops every entry. In-flight background loads for dropped entries
// are discarded when their results arrive.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.entries = make(map[string]*Entry)
}
