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

func TestToolSwitchBlockedWhileActive(t *testing.T) {
	c := newTestCanvas(t)
	if !c.SelectTool(ToolRectangle) {
		t.Fatalf("idle tool switch refused")
	}
	c.BeginDrag(geom.Pt{X: 10, Y: 10})
	if c.SelectTool(ToolEllipse) {
		t.Fatalf("tool switch allowed during active drag")
	}
	c.EndDrag()
	if !c.SelectTool(ToolEllipse) {
		t.Fatalf("tool switch refused after drag ended")
	}
}

func TestRectangleDragInsertsImmediately(t *testing.T) {
	c := newTestCanvas(t)
	c.SelectTool(ToolRectangle)
	c.BeginDrag(geom.Pt{X: 100, Y: 100})
	if c.Len() != 1 {
		t.Fatalf("rectangle not inserted on press")
	}
	c.DragTo(geom.Pt{X: 300, Y: 250})
	l := c.Layers()[0]
	if l.Transform.Rect != geom.R(100, 100, 200, 150) {
		t.Fatalf("drag rect %+v", l.Transform.Rect)
	}
	c.EndDrag()
	if c.Tool.Active {
		t.Fatalf("tool still active after release")
	}
	if c.Len() != 1 {
		t.Fatalf("layer count %d after commit", c.Len())
	}
}

func TestLineDraftStaysOutOfOrderUntilCommit(t *testing.T) {
	c := newTestCanvas(t)
	c.SelectTool(ToolLine)
	c.BeginDrag(geom.Pt{X: 50, Y: 60})
	c.DragTo(geom.Pt{X: 150, Y: 20})
	if c.Len() != 0 {
		t.Fatalf("line appeared in layer order before commit")
	}
	draft := c.LineDraft()
	if draft == nil {
		t.Fatalf("no line draft during drag")
	}
	line := draft.Content.(LineShape)
	if line.Start != (geom.Pt{X: 0, Y: 40}) || line.End != (geom.Pt{X: 100, Y: 0}) {
		t.Fatalf("line endpoints %+v %+v", line.Start, line.End)
	}
	c.EndDrag()
	if c.Len() != 1 {
		t.Fatalf("line not committed on release")
	}
	if c.LineDraft() != nil {
		t.Fatalf("draft not cleared")
	}
}

func TestCancelDragRemovesShape(t *testing.T) {
	c := newTestCanvas(t)
	c.SelectTool(ToolEllipse)
	c.BeginDrag(geom.Pt{X: 0, Y: 0})
	c.DragTo(geom.Pt{X: 50, Y: 50})
	c.CancelDrag()
	if c.Len() != 0 {
		t.Fatalf("cancelled ellipse left a layer")
	}
	if c.Tool.Active {
		t.Fatalf("tool still active after cancel")
	}

	c.SelectTool(ToolLine)
	c.BeginDrag(geom.Pt{X: 0, Y: 0})
	c.CancelDrag()
	if c.LineDraft() != nil || c.Len() != 0 {
		t.Fatalf("cancelled line left a draft")
	}
}

func TestDragIgnoredWhenIdle(t *testing.T) {
	c := newTestCanvas(t)
	c.DragTo(geom.Pt{X: 10, Y: 10})
	c.EndDrag()
	c.CancelDrag()
	if c.Len() != 0 || c.Tool.Active {
		t.Fatalf("idle drag ops mutated state")
	}
}
