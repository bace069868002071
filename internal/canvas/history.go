/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"reflect"
	"slices"

	"photobook/internal/history"
	"photobook/internal/id"
	"photobook/internal/model"
)

// OpKind names a recorded operation for audit display.
type OpKind string

const (
	OpAddLayer    OpKind = "add layer"
	OpRemoveLayer OpKind = "remove layer"
	OpTransform   OpKind = "transform"
	OpEditText    OpKind = "edit text"
	OpQuickLayout OpKind = "quick layout"
	OpSwap        OpKind = "swap layers"
	OpTemplate    OpKind = "apply template"
	OpPage        OpKind = "page setup"
)

// Snapshot is a full copy of the document content. Transient state such as
// drag handles, text-edit mode, tool state, and the viewport is excluded so
// changes to it never create history entries.
type Snapshot struct {
	Layers          []Layer
	Order           []id.LayerID
	QuickOrder      []id.LayerID
	Page            model.Page
	LastQuickLayout *Layout
}

// HistoricallyEqualTo reports whether two snapshots describe the same
// document content.
func (s Snapshot) HistoricallyEqualTo(other Snapshot) bool {
	return reflect.DeepEqual(s, other)
}

func snapshotOf(c *State) Snapshot {
	snap := Snapshot{
		Order:      slices.Clone(c.order),
		QuickOrder: slices.Clone(c.QuickLayoutOrder),
		Page:       c.Page.Page,
	}
	for _, lid := range c.order {
		l := *c.layers[lid].clone()
		l.Transform.ActiveHandle = HandleNone
		snap.Layers = append(snap.Layers, l)
	}
	if c.LastQuickLayout != nil {
		v := *c.LastQuickLayout
		snap.LastQuickLayout = &v
	}
	return snap
}

func (c *State) restore(snap Snapshot) {
	c.layers = make(map[id.LayerID]*Layer, len(snap.Layers))
	c.order = slices.Clone(snap.Order)
	for i := range snap.Layers {
		l := snap.Layers[i]
		c.layers[l.ID] = l.clone()
	}
	c.QuickLayoutOrder = slices.Clone(snap.QuickOrder)
	c.Page = model.NewEditablePage(snap.Page)
	c.LastQuickLayout = nil
	if snap.LastQuickLayout != nil {
		v := *snap.LastQuickLayout
		c.LastQuickLayout = &v
	}
	c.TextEditLayer = 0
	c.lineDraft = nil
	c.Tool = idleTool(c.Tool.Tool)
	c.RebuildMultiSelect()
}

// History records and replays canvas snapshots. It lives exactly as long
// as its canvas.
type History struct {
	stack *history.Stack[OpKind, Snapshot]
}

// NewHistory captures the canvas's current content as the initial value.
func NewHistory(c *State) *History {
	return &History{stack: history.New[OpKind](snapshotOf(c))}
}

// Record saves the canvas's current content. A snapshot historically equal
// to the current one is discarded.
func (h *History) Record(kind OpKind, c *State) {
	h.stack.Save(kind, snapshotOf(c))
}

// Undo steps back and applies the resulting snapshot to the canvas.
func (h *History) Undo(c *State) {
	c.restore(h.stack.Undo())
}

// Redo steps forward and applies the resulting snapshot to the canvas.
func (h *History) Redo(c *State) {
	c.restore(h.stack.Redo())
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return h.stack.CanUndo() }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return h.stack.CanRedo() }

// Len returns the number of recorded entries.
func (h *History) Len() int { return h.stack.Len() }
