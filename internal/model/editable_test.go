/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package model

import "testing"

func TestEditableValueCommitOnEnd(t *testing.T) {
	e := NewEditableFloat(8)
	e.BeginEditing()
	e.SetBuffer("11.5")
	if e.Value() != 8 {
		t.Fatalf("value committed before EndEditing")
	}
	e.EndEditing()
	if e.Value() != 11.5 {
		t.Fatalf("expected 11.5 after EndEditing, got %g", e.Value())
	}
}

func TestEditableValueRevertsBadInput(t *testing.T) {
	e := NewEditableFloat(8)
	e.BeginEditing()
	e.SetBuffer("not a number")
	e.EndEditing()
	if e.Value() != 8 {
		t.Fatalf("bad input should keep committed value, got %g", e.Value())
	}
	if e.Buffer() != "8" {
		t.Fatalf("buffer should revert to committed value, got %q", e.Buffer())
	}
}

func TestUpdateIfNotActive(t *testing.T) {
	e := NewEditableInt(300)
	e.UpdateIfNotActive(600)
	if e.Value() != 600 || e.Buffer() != "600" {
		t.Fatalf("inactive update should commit, got %d %q", e.Value(), e.Buffer())
	}
	e.BeginEditing()
	e.SetBuffer("72")
	e.UpdateIfNotActive(150)
	if e.Buffer() != "72" {
		t.Fatalf("active edit clobbered by external update")
	}
	e.EndEditing()
	if e.Value() != 72 {
		t.Fatalf("expected 72, got %d", e.Value())
	}
}
