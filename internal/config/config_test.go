/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(cfg.RecentProjects) != 0 || cfg.LastProject != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Config{
		RecentProjects: []string{"/a.rpb", "/b.rpb"},
		LastProject:    "/a.rpb",
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.LastProject != "/a.rpb" || len(got.RecentProjects) != 2 || got.RecentProjects[1] != "/b.rpb" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("recent_projects = not-a-list"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("corrupt config accepted")
	}
}

func TestAddRecentProjectDedupesAndFronts(t *testing.T) {
	var cfg Config
	cfg.AddRecentProject("/a.rpb")
	cfg.AddRecentProject("/b.rpb")
	cfg.AddRecentProject("/a.rpb")
	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("dedupe failed: %v", cfg.RecentProjects)
	}
	if cfg.RecentProjects[0] != "/a.rpb" || cfg.RecentProjects[1] != "/b.rpb" {
		t.Fatalf("order wrong: %v", cfg.RecentProjects)
	}
}

func TestAddRecentProjectCaps(t *testing.T) {
	var cfg Config
	for i := 0; i < maxRecentProjects+5; i++ {
		cfg.AddRecentProject(fmt.Sprintf("/p%d.rpb", i))
	}
	if len(cfg.RecentProjects) != maxRecentProjects {
		t.Fatalf("cap not enforced: %d entries", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != fmt.Sprintf("/p%d.rpb", maxRecentProjects+4) {
		t.Fatalf("newest not at front: %v", cfg.RecentProjects[0])
	}
}

func TestAutoPersistingWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	a, err := OpenAutoPersisting(path)
	if err != nil {
		t.Fatalf("OpenAutoPersisting: %v", err)
	}
	a.AddRecentProject("/x.rpb")
	a.SetLastProject("/x.rpb")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.LastProject != "/x.rpb" || len(got.RecentProjects) != 1 {
		t.Fatalf("mutations not persisted: %+v", got)
	}
}
