/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"photobook/internal/geom"
	"photobook/internal/id"
)

// Tool names the active editing tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolText
	ToolRectangle
	ToolEllipse
	ToolLine
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolText:
		return "text"
	case ToolRectangle:
		return "rectangle"
	case ToolEllipse:
		return "ellipse"
	case ToolLine:
		return "line"
	}
	return "unknown"
}

// ToolState is either idle with a tool armed or active during a drag.
type ToolState struct {
	Tool   Tool
	Active bool
	Start  geom.Pt

	// draftID is the layer being created during an active drag, for the
	// tools that insert immediately.
	draftID id.LayerID
}

func idleTool(t Tool) ToolState { return ToolState{Tool: t} }

// SelectTool arms a tool. A tool change is refused while a drag is active.
func (c *State) SelectTool(t Tool) bool {
	if c.Tool.Active {
		return false
	}
	c.Tool = idleTool(t)
	return true
}

// BeginDrag transitions the armed tool to active at pos. The rectangle,
// ellipse, and text tools insert their layer immediately and mutate it
// during the drag; the line tool keeps its draft out of the layer order
// until EndDrag commits it.
func (c *State) BeginDrag(pos geom.Pt) {
	if c.Tool.Active {
		return
	}
	c.Tool.Active = true
	c.Tool.Start = pos
	c.Tool.draftID = 0

	switch c.Tool.Tool {
	case ToolRectangle:
		c.Tool.draftID = c.AddLayer(&Layer{
			Name:      "Rectangle",
			Visible:   true,
			Transform: TransformableState{Rect: geom.FromMinMax(pos, pos)},
			Content: RectShape{
				Fill:        c.Settings.Fill,
				Stroke:      c.Settings.Stroke,
				StrokeWidth: c.Settings.StrokeWidth,
			},
		})
	case ToolEllipse:
		c.Tool.draftID = c.AddLayer(&Layer{
			Name:      "Ellipse",
			Visible:   true,
			Transform: TransformableState{Rect: geom.FromMinMax(pos, pos)},
			Content: EllipseShape{
				Fill:        c.Settings.Fill,
				Stroke:      c.Settings.Stroke,
				StrokeWidth: c.Settings.StrokeWidth,
			},
		})
	case ToolText:
		c.Tool.draftID = c.AddLayer(&Layer{
			Name:      "Text",
			Visible:   true,
			Transform: TransformableState{Rect: geom.FromMinMax(pos, pos)},
			Content: TextContent{
				Text:     "Text",
				FontSize: c.Settings.FontSize,
				Font:     c.Settings.Font,
				Color:    c.Settings.TextColor,
				HAlign:   HAlignCenter,
				VAlign:   VAlignCenter,
			},
		})
	case ToolLine:
		c.lineDraft = &Layer{
			Name:      "Line",
			Visible:   true,
			Transform: TransformableState{Rect: geom.FromMinMax(pos, pos)},
			Content: LineShape{
				Start:       geom.Pt{},
				End:         geom.Pt{},
				Stroke:      c.Settings.Stroke,
				StrokeWidth: c.Settings.StrokeWidth,
			},
		}
	}
}

// DragTo updates the in-progress shape to span from the drag start to pos.
func (c *State) DragTo(pos geom.Pt) {
	if !c.Tool.Active {
		return
	}
	span := geom.FromMinMax(c.Tool.Start, pos)
	switch c.Tool.Tool {
	case ToolRectangle, ToolEllipse, ToolText:
		if l, ok := c.layers[c.Tool.draftID]; ok {
			l.Transform.Rect = span
		}
	case ToolLine:
		if c.lineDraft == nil {
			return
		}
		c.lineDraft.Transform.Rect = span
		content := c.lineDraft.Content.(LineShape)
		content.Start = c.Tool.Start.Sub(span.Min())
		content.End = pos.Sub(span.Min())
		c.lineDraft.Content = content
	}
}

// EndDrag commits the drag and returns the tool to idle. A line draft only
// now enters the layer order.
func (c *State) EndDrag() {
	if !c.Tool.Active {
		return
	}
	if c.Tool.Tool == ToolLine && c.lineDraft != nil {
		c.AddLayer(c.lineDraft)
		c.lineDraft = nil
	}
	c.Tool = idleTool(c.Tool.Tool)
}

// CancelDrag abandons the drag: immediately inserted shapes are removed and
// a line draft is dropped.
func (c *State) CancelDrag() {
	if !c.Tool.Active {
		return
	}
	if c.Tool.draftID != 0 {
		c.RemoveLayer(c.Tool.draftID)
	}
	c.lineDraft = nil
	c.Tool = idleTool(c.Tool.Tool)
}

// LineDraft exposes the uncommitted line layer for drawing, nil when no
// line drag is active.
func (c *State) LineDraft() *Layer { return c.lineDraft }
