/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRecover_WritesReportAndSnapshot ensures Recover handles a panic,
// writes a report, runs the snapshot callback, and exits through the
// injected exitFn instead of terminating the test process.
func TestRecover_WritesReportAndSnapshot(t *testing.T) {
	cacheRoot := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheRoot)

	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(os.Stderr, r) // drain pipe
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	snapshots := 0
	snapshot := func() (string, error) {
		snapshots++
		return "/tmp/auto_save.rpb", nil
	}

	func() {
		defer Recover(snapshot)
		panic("boom")
	}()

	var found string
	_ = filepath.WalkDir(cacheRoot, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() &&
			strings.HasPrefix(d.Name(), "crash-") && strings.HasSuffix(d.Name(), ".log") {
			found = path
		}
		return nil
	})
	if found == "" {
		t.Fatalf("expected crash report under cache dir")
	}
	b, err := os.ReadFile(found)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}

	if snapshots != 1 {
		t.Fatalf("snapshot callback ran %d times", snapshots)
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecover_NoPanicIsNoop(t *testing.T) {
	oldExit := exitFn
	exitFn = func(int) { t.Fatalf("exit called without panic") }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
	}()
}
