/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package autosave

import (
	"errors"
	"os"
	"testing"
	"time"

	"photobook/internal/canvas"
	"photobook/internal/id"
	"photobook/internal/model"
	"photobook/internal/photo"
	"photobook/internal/project"
)

func testScene(t *testing.T) *project.Scene {
	t.Helper()
	page, err := model.NewPage(8, 8, 300, model.UnitInches)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	c := canvas.New(id.NewAllocator(), page)
	c.AddPhotoLayer(photo.Photo{Path: "/p/a.jpg", Meta: photo.Metadata{Width: 10, Height: 10}})
	return &project.Scene{Pages: []*canvas.State{c}}
}

func waitIdle(t *testing.T, m *Manager) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for m.InProgress() {
		if time.Now().After(deadline) {
			t.Fatalf("auto-save task did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAutoSaveRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.AutoSave("/projects/book.rpb", testScene(t)); err != nil {
		t.Fatalf("AutoSave: %v", err)
	}
	waitIdle(t, m)

	a := m.Load()
	if a == nil {
		t.Fatalf("no snapshot after save")
	}
	if a.ActiveProject != "/projects/book.rpb" {
		t.Fatalf("active project %q", a.ActiveProject)
	}
	if len(a.Project.Pages) != 1 {
		t.Fatalf("snapshot has %d pages", len(a.Project.Pages))
	}
}

func TestAutoSaveIfNeededThrottles(t *testing.T) {
	m := NewManager(t.TempDir())
	base := time.Unix(1000, 0)
	clock := base
	m.now = func() time.Time { return clock }

	scene := testScene(t)
	if err := m.AutoSaveIfNeeded("", scene); err != nil {
		t.Fatalf("first save: %v", err)
	}
	waitIdle(t, m)
	first, err := os.Stat(m.Path())
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}

	clock = base.Add(2 * time.Second)
	if err := m.AutoSaveIfNeeded("", scene); err != nil {
		t.Fatalf("throttled save: %v", err)
	}
	waitIdle(t, m)
	second, err := os.Stat(m.Path())
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	if !second.ModTime().Equal(first.ModTime()) {
		t.Fatalf("save dispatched inside the interval")
	}

	clock = base.Add(6 * time.Second)
	if err := m.AutoSaveIfNeeded("", scene); err != nil {
		t.Fatalf("due save: %v", err)
	}
	waitIdle(t, m)
}

func TestAutoSaveRejectsConcurrentTask(t *testing.T) {
	m := NewManager(t.TempDir())
	m.mu.Lock()
	m.inFlight = true
	m.mu.Unlock()

	err := m.AutoSave("", testScene(t))
	if !errors.Is(err, ErrSaveTaskInProgress) {
		t.Fatalf("expected in-progress error, got %v", err)
	}
}

func TestAutoSaveWithoutCachePath(t *testing.T) {
	m := NewManager("")
	if err := m.AutoSave("", testScene(t)); !errors.Is(err, ErrNoCachePath) {
		t.Fatalf("expected no-cache-path error, got %v", err)
	}
	if m.Load() != nil {
		t.Fatalf("load without path returned a snapshot")
	}
}

func TestLoadDiscardsBrokenSnapshot(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := os.WriteFile(m.Path(), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if a := m.Load(); a != nil {
		t.Fatalf("broken snapshot loaded: %+v", a)
	}
	if _, err := os.Stat(m.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("broken snapshot not removed: %v", err)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	m := NewManager(t.TempDir())
	if a := m.Load(); a != nil {
		t.Fatalf("missing snapshot loaded: %+v", a)
	}
}

func TestDiscardRemovesSnapshot(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.AutoSave("", testScene(t)); err != nil {
		t.Fatalf("AutoSave: %v", err)
	}
	waitIdle(t, m)
	m.Discard()
	if _, err := os.Stat(m.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("snapshot still present: %v", err)
	}
	m.Discard()
}
