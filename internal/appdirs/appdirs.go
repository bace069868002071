/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package appdirs resolves the per-user config and cache directories.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
)

// appDirName is the directory created under the OS config and cache roots.
const appDirName = "photo_album"

// ConfigDir returns <OS config dir>/photo_album.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// CacheDir returns <OS cache dir>/photo_album. Thumbnails and the auto-save
// file live here.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Ensure creates both directories when missing and returns them.
func Ensure() (configDir, cacheDir string, err error) {
	configDir, err = ConfigDir()
	if err != nil {
		return "", "", err
	}
	cacheDir, err = CacheDir()
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create cache dir: %w", err)
	}
	return configDir, cacheDir, nil
}
