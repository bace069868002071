/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"testing"

	"photobook/internal/geom"
)

func TestUndoRedoAddLayers(t *testing.T) {
	c := newTestCanvas(t)
	h := NewHistory(c)

	a := c.AddLayer(&Layer{
		Name: "A", Visible: true,
		Transform: TransformableState{Rect: geom.R(0, 0, 100, 100)},
		Content:   RectShape{},
	})
	h.Record(OpAddLayer, c)

	b := c.AddLayer(&Layer{
		Name: "B", Visible: true,
		Transform: TransformableState{Rect: geom.R(200, 200, 100, 100)},
		Content:   RectShape{},
	})
	h.Record(OpAddLayer, c)

	h.Undo(c)
	if c.Len() != 1 {
		t.Fatalf("after undo, %d layers", c.Len())
	}
	if _, ok := c.Layer(a); !ok {
		t.Fatalf("A missing after undo")
	}
	if _, ok := c.Layer(b); ok {
		t.Fatalf("B still present after undo")
	}

	h.Redo(c)
	if c.Len() != 2 {
		t.Fatalf("after redo, %d layers", c.Len())
	}
	lb, ok := c.Layer(b)
	if !ok || lb.Transform.Rect != geom.R(200, 200, 100, 100) {
		t.Fatalf("B not restored by redo")
	}
}

func TestHistoryIgnoresTransientState(t *testing.T) {
	c := newTestCanvas(t)
	h := NewHistory(c)
	addPhotoLayer(c, "/p/a.jpg", 100, 100)
	h.Record(OpAddLayer, c)

	// Viewport and drag-handle changes must not create entries.
	c.SetZoom(3)
	c.Offset = geom.Pt{X: 50, Y: 50}
	for _, l := range c.Layers() {
		l.Transform.ActiveHandle = HandleBottomRight
	}
	h.Record(OpTransform, c)
	if h.Len() != 1 {
		t.Fatalf("transient change recorded an entry, len=%d", h.Len())
	}
}

func TestHistoryRestoresQuickLayoutOrder(t *testing.T) {
	c := newTestCanvas(t)
	a := addPhotoLayer(c, "/p/a.jpg", 100, 100)
	b := addPhotoLayer(c, "/p/b.jpg", 100, 100)
	h := NewHistory(c)

	c.SwapQuickLayoutPositions(0, 1)
	h.Record(OpSwap, c)

	h.Undo(c)
	if c.QuickLayoutOrder[0] != a || c.QuickLayoutOrder[1] != b {
		t.Fatalf("quick-layout order not restored: %v", c.QuickLayoutOrder)
	}
	h.Redo(c)
	if c.QuickLayoutOrder[0] != b {
		t.Fatalf("quick-layout order not re-applied: %v", c.QuickLayoutOrder)
	}
}

func TestHistoryBranchTruncation(t *testing.T) {
	c := newTestCanvas(t)
	h := NewHistory(c)
	lid := addPhotoLayer(c, "/p/a.jpg", 100, 100)
	h.Record(OpAddLayer, c)

	c.SetLayerRect(lid, geom.R(10, 10, 100, 100))
	h.Record(OpTransform, c)
	c.SetLayerRect(lid, geom.R(20, 20, 100, 100))
	h.Record(OpTransform, c)

	h.Undo(c)
	c.SetLayerRect(lid, geom.R(99, 99, 100, 100))
	h.Record(OpTransform, c)
	if h.CanRedo() {
		t.Fatalf("redo branch survived a new save")
	}
	l, _ := c.Layer(lid)
	if l.Transform.Rect.X != 99 {
		t.Fatalf("rect %+v", l.Transform.Rect)
	}
}
