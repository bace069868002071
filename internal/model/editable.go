/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import "strconv"

// EditableValue is a text-editable proxy of a typed value. Widgets edit the
// string buffer; the typed value is committed on EndEditing only, so external
// updates never clobber an in-progress edit.
type EditableValue[T any] struct {
	value   T
	buffer  string
	editing bool
	parse   func(string) (T, error)
	format  func(T) string
}

// NewEditableValue builds an editable value with explicit parse and format
// functions.
func NewEditableValue[T any](v T, parse func(string) (T, error), format func(T) string) EditableValue[T] {
	return EditableValue[T]{value: v, buffer: format(v), parse: parse, format: format}
}

// NewEditableFloat is an EditableValue for float32 fields.
func NewEditableFloat(v float32) EditableValue[float32] {
	return NewEditableValue(v,
		func(s string) (float32, error) {
			f, err := strconv.ParseFloat(s, 32)
			return float32(f), err
		},
		func(f float32) string { return strconv.FormatFloat(float64(f), 'f', -1, 32) },
	)
}

// NewEditableInt is an EditableValue for int fields.
func NewEditableInt(v int) EditableValue[int] {
	return NewEditableValue(v, strconv.Atoi, strconv.Itoa)
}

// Value returns the committed value.
func (e *EditableValue[T]) Value() T { return e.value }

// Editing reports whether an edit is in progress.
func (e *EditableValue[T]) Editing() bool { return e.editing }

// Buffer returns the current text buffer.
func (e *EditableValue[T]) Buffer() string { return e.buffer }

// SetBuffer replaces the text buffer while editing.
func (e *EditableValue[T]) SetBuffer(s string) { e.buffer = s }

// UpdateIfNotActive commits v unless an edit is in progress.
func (e *EditableValue[T]) UpdateIfNotActive(v T) {
	if e.editing {
		return
	}
	e.value = v
	e.buffer = e.format(v)
}

// BeginEditing marks the value as being edited.
func (e *EditableValue[T]) BeginEditing() { e.editing = true }

// EndEditing parses the buffer and commits it. An unparseable buffer reverts
// to the committed value.
func (e *EditableValue[T]) EndEditing() {
	if !e.editing {
		return
	}
	e.editing = false
	if v, err := e.parse(e.buffer); err == nil {
		e.value = v
	}
	e.buffer = e.format(e.value)
}

// EditablePage wraps a page with per-field edit buffers for the page settings
// panel.
type EditablePage struct {
	Page   Page
	Width  EditableValue[float32]
	Height EditableValue[float32]
	PPI    EditableValue[int]
}

// NewEditablePage builds edit state for p.
func NewEditablePage(p Page) EditablePage {
	return EditablePage{
		Page:   p,
		Width:  NewEditableFloat(p.Width),
		Height: NewEditableFloat(p.Height),
		PPI:    NewEditableInt(p.PPI),
	}
}

// Sync pushes the page's current dimensions into any inactive edit buffers.
func (e *EditablePage) Sync() {
	e.Width.UpdateIfNotActive(e.Page.Width)
	e.Height.UpdateIfNotActive(e.Page.Height)
	e.PPI.UpdateIfNotActive(e.Page.PPI)
}
