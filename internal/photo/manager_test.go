/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package photo

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func drainAll(t *testing.T, m *Manager) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for m.PendingCount() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("background loads did not finish, %d pending", m.PendingCount())
		}
		m.Drain()
		time.Sleep(5 * time.Millisecond)
	}
	m.Drain()
}

func TestSupportedFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPG", true},
		{"b.jpeg", true},
		{"c.png", true},
		{"c.PNG", true},
		{"d.gif", false},
		{"e.txt", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := SupportedFile(c.path); got != c.want {
			t.Fatalf("SupportedFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestLoadDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 40, 30)
	writePNG(t, filepath.Join(dir, "sub", "b.png"), 10, 20)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	m := NewManager()
	n, err := m.LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 scheduled files, got %d", n)
	}
	drainAll(t, m)

	p, ok := m.PhotoByPath(filepath.Join(dir, "a.png"))
	if !ok {
		t.Fatalf("a.png not ready")
	}
	if w, h := p.Size(); w != 40 || h != 30 {
		t.Fatalf("a.png dims %dx%d", w, h)
	}
	if got := len(m.ReadyPhotos()); got != 2 {
		t.Fatalf("expected 2 ready photos, got %d", got)
	}
}

func TestNavigationSkipsFailedAndWraps(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.png")
	bad := filepath.Join(dir, "b.jpg")
	good2 := filepath.Join(dir, "c.png")
	writePNG(t, good1, 8, 8)
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}
	writePNG(t, good2, 8, 8)

	m := NewManager()
	for _, p := range []string{good1, bad, good2} {
		if !m.AddPhoto(p) {
			t.Fatalf("AddPhoto(%s) refused", p)
		}
	}
	drainAll(t, m)

	if e, _ := m.EntryAt(1); e.State != StateError {
		t.Fatalf("corrupt file should be in error state, got %v", e.State)
	}

	// Forward from the first photo skips the failed entry.
	p, idx, ok := m.NextPhoto(0)
	if !ok || idx != 2 || p.Path != good2 {
		t.Fatalf("NextPhoto(0) = %v %d %v", p.Path, idx, ok)
	}
	// Forward from the last wraps to the first.
	p, idx, ok = m.NextPhoto(2)
	if !ok || idx != 0 || p.Path != good1 {
		t.Fatalf("NextPhoto(2) = %v %d %v", p.Path, idx, ok)
	}
	// Backward from the first wraps to the last, skipping the failure.
	p, idx, ok = m.PreviousPhoto(0)
	if !ok || idx != 2 || p.Path != good2 {
		t.Fatalf("PreviousPhoto(0) = %v %d %v", p.Path, idx, ok)
	}
}

func TestNavigationNoReadyEntries(t *testing.T) {
	m := NewManager()
	if _, _, ok := m.NextPhoto(0); ok {
		t.Fatalf("empty manager should have no next photo")
	}
	bad := filepath.Join(t.TempDir(), "x.jpg")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m.AddPhoto(bad)
	drainAll(t, m)
	if _, _, ok := m.NextPhoto(0); ok {
		t.Fatalf("manager with only failed entries should have no next photo")
	}
}

func TestSetRatingAndRotate(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.png")
	writePNG(t, p, 30, 10)
	m := NewManager()
	m.AddPhoto(p)
	drainAll(t, m)

	if err := m.SetRating(p, 4); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	if err := m.SetRating(p, 9); err == nil {
		t.Fatalf("out-of-range rating accepted")
	}
	if err := m.RotatePhoto(p); err != nil {
		t.Fatalf("RotatePhoto: %v", err)
	}
	got, _ := m.PhotoByPath(p)
	if got.Rating != 4 {
		t.Fatalf("rating = %d", got.Rating)
	}
	if got.Meta.Rotation != Rotate90 {
		t.Fatalf("rotation = %v", got.Meta.Rotation)
	}
	if w, h := got.Size(); w != 10 || h != 30 {
		t.Fatalf("rotated dims %dx%d, want 10x30", w, h)
	}
}

func TestClearDropsStaleResults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.png")
	writePNG(t, p, 4, 4)
	m := NewManager()
	m.AddPhoto(p)
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("clear left %d entries", m.Len())
	}
	// Result for the removed entry arrives later and must be discarded.
	time.Sleep(50 * time.Millisecond)
	if applied := m.Drain(); applied != 0 {
		t.Fatalf("stale result applied, %d", applied)
	}
}
