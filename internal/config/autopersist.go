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
	"log/slog"
	"sync"

	applog "photobook/internal/log"
)

// AutoPersisting wraps a Config and rewrites the file after every mutation.
// Write failures are logged, never propagated; preferences are best effort.
type AutoPersisting struct {
	mu   sync.Mutex
	path string
	cfg  Config
}

// OpenAutoPersisting loads the config at path, tolerating a missing file.
func OpenAutoPersisting(path string) (*AutoPersisting, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &AutoPersisting{path: path, cfg: cfg}, nil
}

// Get returns a copy of the current config.
func (a *AutoPersisting) Get() Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	cfg := a.cfg
	cfg.RecentProjects = append([]string(nil), a.cfg.RecentProjects...)
	return cfg
}

// AddRecentProject records a project path and persists.
func (a *AutoPersisting) AddRecentProject(path string) {
	a.mutate(func(c *Config) { c.AddRecentProject(path) })
}

// SetLastProject records the active project and persists.
func (a *AutoPersisting) SetLastProject(path string) {
	a.mutate(func(c *Config) { c.SetLastProject(path) })
}

func (a *AutoPersisting) mutate(f func(*Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f(&a.cfg)
	if err := Save(a.path, a.cfg); err != nil {
		applog.WithComponent("config").Warn("config write failed",
			slog.String("path", a.path), slog.Any("err", err))
	}
}
