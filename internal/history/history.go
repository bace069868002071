/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history implements the undo/redo stack backing canvas editing.
// Entries are (kind, value) post-states; the kind names the recorded
// operation for audit display and the value is a full snapshot.
package history

// HistoricallyEqual reports semantic equality between snapshots. Fields that
// should not create history entries, such as transient edit flags, are
// ignored by implementations.
type HistoricallyEqual[V any] interface {
	HistoricallyEqualTo(other V) bool
}

// Entry is one recorded post-state.
type Entry[K comparable, V any] struct {
	Kind  K
	Value V
}

// Stack holds the initial value plus recorded post-states with a cursor.
// The zero value is not usable; construct with New.
type Stack[K comparable, V HistoricallyEqual[V]] struct {
	initial V
	entries []Entry[K, V]
	index   int
}

// New returns a stack whose undo floor is the given initial value.
func New[K comparable, V HistoricallyEqual[V]](initial V) *Stack[K, V] {
	return &Stack[K, V]{initial: initial}
}

// Save records a post-state. A value historically equal to the current one
// is discarded. Otherwise everything after the cursor is truncated, the
// entry is appended, and the cursor moves to it.
func (s *Stack[K, V]) Save(kind K, value V) {
	if value.HistoricallyEqualTo(s.current()) {
		return
	}
	if len(s.entries) > 0 {
		s.entries = s.entries[:s.index+1]
	}
	s.entries = append(s.entries, Entry[K, V]{Kind: kind, Value: value})
	s.index = len(s.entries) - 1
}

// Undo steps the cursor back and returns the value there. With no entries it
// returns the initial value. The cursor never moves below the first entry,
// so repeated undo settles on entries[0], not on the initial value.
func (s *Stack[K, V]) Undo() V {
	if len(s.entries) == 0 {
		return s.initial
	}
	if s.index > 0 {
		s.index--
	}
	return s.entries[s.index].Value
}

// Redo steps the cursor forward and returns the value there, capped at the
// newest entry.
func (s *Stack[K, V]) Redo() V {
	if len(s.entries) == 0 {
		return s.initial
	}
	if s.index < len(s.entries)-1 {
		s.index++
	}
	return s.entries[s.index].Value
}

// CanUndo reports whether Undo would move the cursor.
func (s *Stack[K, V]) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether Redo would move the cursor.
func (s *Stack[K, V]) CanRedo() bool { return len(s.entries) > 0 && s.index < len(s.entries)-1 }

// Len returns the number of recorded entries.
func (s *Stack[K, V]) Len() int { return len(s.entries) }

// CurrentKind returns the kind at the cursor; ok is false when no entry has
// been recorded yet.
func (s *Stack[K, V]) CurrentKind() (kind K, ok bool) {
	if len(s.entries) == 0 {
		return kind, false
	}
	return s.entries[s.index].Kind, true
}

func (s *Stack[K, V]) current() V {
	if len(s.entries) == 0 {
		return s.initial
	}
	return s.entries[s.index].Value
}
