/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"photobook/internal/id"
)

// ModalKind distinguishes the dialogs a frontend has to render.
type ModalKind int

const (
	ModalSaveWarning ModalKind = iota
	ModalError
)

// Response is the user's answer to a modal. ResponseNone means the
// modal is still open.
type Response int

const (
	ResponseNone Response = iota
	ResponseSave
	ResponseDontSave
	ResponseCancel
)

func (r Response) String() string {
	switch r {
	case ResponseSave:
		return "save"
	case ResponseDontSave:
		return "dont_save"
	case ResponseCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Modal is a pending dialog. The frontend renders it and feeds the
// user's choice back through Respond.
type Modal struct {
	ID       id.ModalID
	Kind     ModalKind
	Message  string
	response Response
}

// ModalManager tracks open dialogs. It is driven from the frontend's
// event loop and needs no locking of its own.
type ModalManager struct {
	alloc  *id.Allocator
	modals map[id.ModalID]*Modal
	order  []id.ModalID
}

func NewModalManager(alloc *id.Allocator) *ModalManager {
	return &ModalManager{alloc: alloc, modals: make(map[id.ModalID]*Modal)}
}

func (m *ModalManager) push(kind ModalKind, message string) id.ModalID {
	mid := m.alloc.NextModalID()
	m.modals[mid] = &Modal{ID: mid, Kind: kind, Message: message}
	m.order = append(m.order, mid)
	return mid
}

// PushSaveWarning opens the unsaved-changes dialog.
func (m *ModalManager) PushSaveWarning(message string) id.ModalID {
	return m.push(ModalSaveWarning, message)
}

// PushError opens an error notice. It only knows dismissal, no choices.
func (m *ModalManager) PushError(message string) id.ModalID {
	return m.push(ModalError, message)
}

// Respond records the user's choice. Unknown ids are ignored; a second
// response does not overwrite the first.
func (m *ModalManager) Respond(mid id.ModalID, r Response) {
	modal, ok := m.modals[mid]
	if !ok || modal.response != ResponseNone {
		return
	}
	modal.response = r
}

// Response returns the recorded choice, or ResponseNone while the modal
// is still open or already dismissed.
func (m *ModalManager) Response(mid id.ModalID) Response {
	modal, ok := m.modals[mid]
	if !ok {
		return ResponseNone
	}
	return modal.response
}

// Dismiss closes the modal.
func (m *ModalManager) Dismiss(mid id.ModalID) {
	if _, ok := m.modals[mid]; !ok {
		return
	}
	delete(m.modals, mid)
	for i, o := range m.order {
		if o == mid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Open returns the open modals in the order they were pushed.
func (m *ModalManager) Open() []Modal {
	out := make([]Modal, 0, len(m.order))
	for _, mid := range m.order {
		out = append(out, *m.modals[mid])
	}
	return out
}

// Len returns the number of open modals.
func (m *ModalManager) Len() int { return len(m.order) }
