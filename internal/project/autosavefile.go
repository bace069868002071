/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// AutoSaveFile is the working-state snapshot written to the cache
// directory: the project content plus the active project path, if any.
type AutoSaveFile struct {
	ActiveProject string `json:"active_project,omitempty"`
	Project       File   `json:"project"`
}

// SaveAutoSave writes the snapshot in the same container format as
// projects, atomically replacing the previous one.
func SaveAutoSave(path string, a *AutoSaveFile) error {
	a.Project.Version = FormatVersion

	var buf bytes.Buffer
	if err := Encode(&buf, FormatVersion, a); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, buf.Bytes()); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp auto-save: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace auto-save: %w", err)
	}
	return nil
}

// LoadAutoSave reads a previously written snapshot.
func LoadAutoSave(path string) (*AutoSaveFile, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open auto-save: %w", err)
	}
	defer r.Close()
	payload, err := DecodePayload(r)
	if err != nil {
		return nil, err
	}
	var a AutoSaveFile
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if a.Project.Version > FormatVersion {
		return nil, fmt.Errorf("%w: auto-save version %d", ErrVersionMismatch, a.Project.Version)
	}
	return &a, nil
}
