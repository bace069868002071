/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config persists user preferences to config.toml in the user
// config scope. The file is rewritten in its entirety on every change.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"photobook/internal/appdirs"
)

// maxRecentProjects caps the recent-projects list.
const maxRecentProjects = 10

// Config is the persisted user configuration.
type Config struct {
	RecentProjects []string `toml:"recent_projects"`
	LastProject    string   `toml:"last_project"`
}

// Path returns the per-user config file path.
func Path() (string, error) {
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path. A missing file yields the zero
// config without error.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save rewrites the config file atomically: encode to a temp file in the
// same directory, then rename over the target.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// AddRecentProject moves or inserts path at the front of the recent list,
// deduplicating and trimming to the cap.
func (c *Config) AddRecentProject(path string) {
	c.RecentProjects = slices.DeleteFunc(c.RecentProjects, func(p string) bool { return p == path })
	c.RecentProjects = append([]string{path}, c.RecentProjects...)
	if len(c.RecentProjects) > maxRecentProjects {
		c.RecentProjects = c.RecentProjects[:maxRecentProjects]
	}
}

// SetLastProject records the most recently active project.
func (c *Config) SetLastProject(path string) { c.LastProject = path }
