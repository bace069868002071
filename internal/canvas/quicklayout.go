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
	"photobook/internal/layout"
	"photobook/internal/template"
)

// LayoutKind names a quick-layout family.
type LayoutKind int

const (
	LayoutGrid LayoutKind = iota
	LayoutCenterWeightedGrid
	LayoutHighlight
	LayoutVerticalStack
	LayoutHorizontalStack
	LayoutZigzag
	LayoutTemplate
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutGrid:
		return "grid"
	case LayoutCenterWeightedGrid:
		return "center-weighted grid"
	case LayoutHighlight:
		return "highlight"
	case LayoutVerticalStack:
		return "vertical stack"
	case LayoutHorizontalStack:
		return "horizontal stack"
	case LayoutZigzag:
		return "zigzag"
	case LayoutTemplate:
		return "template regions"
	}
	return "unknown"
}

// Layout is one quick-layout candidate. Padding is a fraction of the page's
// shorter edge.
type Layout struct {
	Kind    LayoutKind
	Padding float32
}

// stackMargin is the page fraction used as margin by the stack layouts.
const stackMargin = 0.02

// AvailableLayouts returns the candidate set for n photo layers.
func AvailableLayouts(n int) []Layout {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []Layout{
			{Kind: LayoutGrid, Padding: 0},
			{Kind: LayoutGrid, Padding: 0.05},
			{Kind: LayoutGrid, Padding: 0.1},
			{Kind: LayoutGrid, Padding: 0.2},
			{Kind: LayoutGrid, Padding: 0.3},
		}
	case n == 2:
		return []Layout{
			{Kind: LayoutCenterWeightedGrid, Padding: 0.02},
			{Kind: LayoutHighlight, Padding: 0.2},
			{Kind: LayoutHighlight, Padding: 0.1},
			{Kind: LayoutVerticalStack},
			{Kind: LayoutHorizontalStack},
		}
	default:
		return []Layout{
			{Kind: LayoutCenterWeightedGrid, Padding: 0},
			{Kind: LayoutCenterWeightedGrid, Padding: 0.02},
			{Kind: LayoutCenterWeightedGrid, Padding: 0.1},
			{Kind: LayoutHighlight, Padding: 0},
			{Kind: LayoutHighlight, Padding: 0.1},
			{Kind: LayoutVerticalStack},
			{Kind: LayoutHorizontalStack},
			{Kind: LayoutZigzag},
			{Kind: LayoutGrid, Padding: 0},
			{Kind: LayoutGrid, Padding: 0.025},
			{Kind: LayoutGrid, Padding: 0.05},
			{Kind: LayoutGrid, Padding: 0.1},
		}
	}
}

// AvailableQuickLayouts is AvailableLayouts plus a template candidate
// when the canvas has an active template.
func (c *State) AvailableQuickLayouts(n int) []Layout {
	out := AvailableLayouts(n)
	if c.Template != nil && n > 0 {
		out = append([]Layout{{Kind: LayoutTemplate}}, out...)
	}
	return out
}

// ApplyQuickLayout computes rects for the photo layers in quick-layout
// order and applies them. The layout is remembered for Shuffle.
func (c *State) ApplyQuickLayout(l Layout) {
	items := c.PhotoLayerAspects()
	if len(items) == 0 {
		return
	}
	size := c.Page.Page.SizePixels()
	var rects map[int64]geom.Rect
	if l.Kind == LayoutTemplate {
		rects = c.templateLayout(items, size.W, size.H)
	} else {
		rects = computeQuickLayout(l, items, size.W, size.H)
	}
	for _, it := range items {
		if r, ok := rects[int64(it.id)]; ok {
			c.SetLayerRect(it.id, r)
		}
	}
	saved := l
	c.LastQuickLayout = &saved
}

// ShuffleQuickLayout rotates the quick-layout order by one and re-applies
// the last layout. Without a previous layout it is a no-op.
func (c *State) ShuffleQuickLayout() {
	if c.LastQuickLayout == nil || len(c.QuickLayoutOrder) < 2 {
		return
	}
	first := c.QuickLayoutOrder[0]
	copy(c.QuickLayoutOrder, c.QuickLayoutOrder[1:])
	c.QuickLayoutOrder[len(c.QuickLayoutOrder)-1] = first
	c.ApplyQuickLayout(*c.LastQuickLayout)
}

func computeQuickLayout(l Layout, items []aspectItem, pw, ph float32) map[int64]geom.Rect {
	pad := l.Padding * min(pw, ph)
	switch l.Kind {
	case LayoutGrid, LayoutCenterWeightedGrid:
		g := layout.NewGrid(pw, ph, pad, pad, layout.Vertical)
		if l.Kind == LayoutCenterWeightedGrid {
			g = g.WithMode(layout.GridCenterWeighted)
		}
		return g.Layout(layoutItems(items))
	case LayoutVerticalStack:
		s := layout.Stack{
			Width: pw, Height: ph,
			Gap:          stackMargin * min(pw, ph),
			Margin:       layout.MarginAll(stackMargin * min(pw, ph)),
			Direction:    layout.Vertical,
			Alignment:    layout.AlignCenter,
			Distribution: layout.EqualSpacing(),
		}
		return s.Layout(layoutItems(items))
	case LayoutHorizontalStack:
		s := layout.Stack{
			Width: pw, Height: ph,
			Gap:          stackMargin * min(pw, ph),
			Margin:       layout.MarginAll(stackMargin * min(pw, ph)),
			Direction:    layout.Horizontal,
			Alignment:    layout.AlignCenter,
			Distribution: layout.EqualSpacing(),
		}
		return s.Layout(layoutItems(items))
	case LayoutHighlight:
		return highlightLayout(items, pw, ph, pad)
	case LayoutZigzag:
		return zigzagLayout(items, pw, ph)
	}
	return map[int64]geom.Rect{}
}

// templateLayout snaps photos to the active template's image regions in
// quick-layout order. Photos beyond the region count keep their rects.
func (c *State) templateLayout(items []aspectItem, pw, ph float32) map[int64]geom.Rect {
	out := make(map[int64]geom.Rect, len(items))
	if c.Template == nil {
		return out
	}
	var cells []geom.Rect
	for _, r := range c.Template.Regions {
		if r.Kind == template.RegionImage {
			cells = append(cells, r.Rect(pw, ph))
		}
	}
	for i, it := range items {
		if i >= len(cells) {
			break
		}
		out[int64(it.id)] = fitAspect(it.aspect, cells[i])
	}
	return out
}

func layoutItems(items []aspectItem) []layout.Item {
	out := make([]layout.Item, len(items))
	for i, it := range items {
		out[i] = layout.Item{ID: int64(it.id), AspectRatio: it.aspect}
	}
	return out
}

// highlightLayout gives the first photo the left 60 percent of the page and
// stacks the rest in the right column, matching the highlight's y extent.
func highlightLayout(items []aspectItem, pw, ph, pad float32) map[int64]geom.Rect {
	out := make(map[int64]geom.Rect, len(items))
	highlightCell := geom.R(0, 0, 0.6*pw, ph).Inset(pad, pad)
	highlight := fitAspect(items[0].aspect, highlightCell)
	out[int64(items[0].id)] = highlight

	rest := items[1:]
	if len(rest) == 0 {
		return out
	}
	column := geom.R(0.6*pw, highlight.Y, 0.4*pw, highlight.H)
	cellH := column.H / float32(len(rest))
	for i, it := range rest {
		cell := geom.R(column.X, column.Y+float32(i)*cellH, column.W, cellH).Inset(pad/2, pad/2)
		out[int64(it.id)] = fitAspect(it.aspect, cell)
	}
	return out
}

// zigzagLayout staggers photos diagonally: 30 percent cells alternating
// between the left and right half, stepping down the page.
func zigzagLayout(items []aspectItem, pw, ph float32) map[int64]geom.Rect {
	out := make(map[int64]geom.Rect, len(items))
	// The cells are 0.3 page heights tall; shrink the step beyond four
	// photos so the last cell still ends on the page.
	step := float32(0.2)
	if n := len(items); n > 4 {
		step = 0.6 / float32(n-1)
	}
	for i, it := range items {
		x := float32(0.1)
		if i%2 == 1 {
			x = 0.6
		}
		y := 0.1 + step*float32(i)
		cell := geom.R(x*pw, y*ph, 0.3*pw, 0.3*ph)
		out[int64(it.id)] = fitAspect(it.aspect, cell)
	}
	return out
}

// fitAspect returns the largest rect of the given aspect ratio centered in
// target.
func fitAspect(ar float32, target geom.Rect) geom.Rect {
	if ar <= 0 {
		ar = 1
	}
	w := target.W
	h := w / ar
	if h > target.H {
		h = target.H
		w = h * ar
	}
	return geom.R(target.X+(target.W-w)/2, target.Y+(target.H-h)/2, w, h)
}
