/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"math"

	"photobook/internal/geom"
)

// Stack lays out items along one axis inside the frame (X, Y, Width, Height).
// Item main-axis sizes derive from the shared cross-axis extent and each
// item's aspect ratio; the whole row or column scales down when it would
// overflow the frame.
type Stack struct {
	Width  float32
	Height float32
	X      float32
	Y      float32
	Gap    float32
	Margin Margin

	Direction    Direction
	Alignment    Alignment
	Distribution Distribution
}

// Layout computes a rect per item id. Empty input yields an empty map.
func (s Stack) Layout(items []Item) map[int64]geom.Rect {
	if len(items) == 0 {
		return map[int64]geom.Rect{}
	}
	if s.Direction == Vertical {
		return s.layoutVertical(items)
	}
	return s.layoutHorizontal(items)
}

func (s Stack) layoutVertical(items []Item) map[int64]geom.Rect {
	dims := VerticalItemDimensions(s.Width, s.Height, s.Gap, s.Margin, items)

	n := len(items)
	totalGap := s.Gap * float32(n-1)
	innerW := s.Width - (s.Margin.Left + s.Margin.Right)
	innerH := s.Height - (s.Margin.Top + s.Margin.Bottom)

	var sumH float32
	for _, d := range dims {
		sumH += d.H
	}
	totalScaledH := sumH + totalGap

	rects := make([]geom.Rect, n)
	switch s.Distribution.Kind {
	case DistributeStart, DistributeCenter, DistributeEnd:
		var y float32
		for i, d := range dims {
			rects[i] = geom.R(0, y, d.W, d.H)
			y += d.H + s.Gap
		}
		var shift float32
		if s.Distribution.Kind == DistributeCenter {
			shift = (innerH - totalScaledH) / 2
		} else if s.Distribution.Kind == DistributeEnd {
			shift = innerH - totalScaledH
		}
		for i := range rects {
			rects[i].Y += shift
		}
	case DistributeEqualSpacing:
		spacing := s.Gap
		if n > 1 {
			spacing = max(s.Gap, (innerH-sumH)/float32(n-1))
		}
		var y float32
		for i, d := range dims {
			rects[i] = geom.R(0, y, d.W, d.H)
			y += d.H + spacing
		}
	case DistributeGrid:
		cell := (innerH - totalGap) / float32(n)
		var y float32
		for i, d := range dims {
			rects[i] = geom.R(0, y, d.W, d.H).FitAndCenterWithin(geom.R(0, y, innerW, cell))
			y += cell + s.Gap
		}
	case DistributeCenterWeightedGrid:
		sizes := s.Distribution.MainAxisSizes
		var y float32
		for i, d := range dims {
			cell := d.H
			if i < len(sizes) {
				cell = sizes[i]
			}
			rects[i] = geom.R(0, y, d.W, d.H).FitAndCenterWithin(geom.R(0, y, innerW, cell))
			y += cell + s.Gap
		}
	}

	switch s.Alignment {
	case AlignCenter:
		for i := range rects {
			rects[i].X = (innerW - rects[i].W) / 2
		}
	case AlignEnd:
		for i := range rects {
			rects[i].X = innerW - rects[i].W
		}
	}

	out := make(map[int64]geom.Rect, n)
	origin := geom.Pt{X: s.Margin.Left + s.X, Y: s.Margin.Top + s.Y}
	for i, it := range items {
		out[it.ID] = rects[i].Translated(origin)
	}
	return out
}

func (s Stack) layoutHorizontal(items []Item) map[int64]geom.Rect {
	dims := HorizontalItemDimensions(s.Width, s.Height, s.Gap, s.Margin, items)

	n := len(items)
	totalGap := s.Gap * float32(n-1)
	innerW := s.Width - (s.Margin.Left + s.Margin.Right)
	innerH := s.Height - (s.Margin.Top + s.Margin.Bottom)

	var sumW float32
	for _, d := range dims {
		sumW += d.W
	}
	totalScaledW := sumW + totalGap

	rects := make([]geom.Rect, n)
	switch s.Distribution.Kind {
	case DistributeStart, DistributeCenter, DistributeEnd:
		var x float32
		for i, d := range dims {
			rects[i] = geom.R(x, 0, d.W, d.H)
			x += d.W + s.Gap
		}
		var shift float32
		if s.Distribution.Kind == DistributeCenter {
			shift = (innerW - totalScaledW) / 2
		} else if s.Distribution.Kind == DistributeEnd {
			shift = innerW - totalScaledW
		}
		for i := range rects {
			rects[i].X += shift
		}
	case DistributeEqualSpacing:
		spacing := s.Gap
		if n > 1 {
			spacing = max(s.Gap, (innerW-sumW)/float32(n-1))
		}
		var x float32
		for i, d := range dims {
			rects[i] = geom.R(x, 0, d.W, d.H)
			x += d.W + spacing
		}
	case DistributeGrid:
		cell := (innerW - totalGap) / float32(n)
		var x float32
		for i, d := range dims {
			rects[i] = geom.R(x, 0, d.W, d.H).FitAndCenterWithin(geom.R(x, 0, cell, innerH))
			x += cell + s.Gap
		}
	case DistributeCenterWeightedGrid:
		sizes := s.Distribution.MainAxisSizes
		var x float32
		for i, d := range dims {
			cell := d.W
			if i < len(sizes) {
				cell = sizes[i]
			}
			rects[i] = geom.R(x, 0, d.W, d.H).FitAndCenterWithin(geom.R(x, 0, cell, innerH))
			x += cell + s.Gap
		}
	}

	switch s.Alignment {
	case AlignCenter:
		for i := range rects {
			rects[i].Y = (innerH - rects[i].H) / 2
		}
	case AlignEnd:
		for i := range rects {
			rects[i].Y = innerH - rects[i].H
		}
	}

	out := make(map[int64]geom.Rect, n)
	origin := geom.Pt{X: s.Margin.Left + s.X, Y: s.Margin.Top + s.Y}
	for i, it := range items {
		out[it.ID] = rects[i].Translated(origin)
	}
	return out
}

// VerticalItemDimensions sizes items for a vertical stack: every item spans
// the inner width and derives its height from the aspect ratio, then the
// whole column is scaled down when it would overflow.
func VerticalItemDimensions(width, height, gap float32, margin Margin, items []Item) []geom.Size {
	innerW := width - (margin.Left + margin.Right)
	innerH := height - (margin.Top + margin.Bottom)

	dims := make([]geom.Size, len(items))
	var sumH float32
	for i, it := range items {
		h := innerW
		if it.AspectRatio > 0 {
			h = innerW / it.AspectRatio
		}
		dims[i] = geom.Size{W: innerW, H: h}
		sumH += h
	}

	totalGap := gap * float32(len(items)-1)
	if sumH+totalGap > innerH {
		scale := (innerH - totalGap) / sumH
		if scale < 0 {
			scale = 0
		}
		for i := range dims {
			dims[i].W = floorf(dims[i].W * scale)
			dims[i].H = floorf(dims[i].H * scale)
		}
	}
	return dims
}

// HorizontalItemDimensions sizes items for a horizontal stack: every item
// spans the inner height and derives its width from the aspect ratio, then
// the whole row is scaled down when it would overflow.
func HorizontalItemDimensions(width, height, gap float32, margin Margin, items []Item) []geom.Size {
	innerW := width - (margin.Left + margin.Right)
	innerH := height - (margin.Top + margin.Bottom)

	dims := make([]geom.Size, len(items))
	var sumW float32
	for i, it := range items {
		w := innerH * it.AspectRatio
		if it.AspectRatio <= 0 {
			w = innerH
		}
		dims[i] = geom.Size{W: w, H: innerH}
		sumW += w
	}

	totalGap := gap * float32(len(items)-1)
	if sumW+totalGap > innerW {
		scale := (innerW - totalGap) / sumW
		if scale < 0 {
			scale = 0
		}
		for i := range dims {
			dims[i].W = floorf(dims[i].W * scale)
			dims[i].H = floorf(dims[i].H * scale)
		}
	}
	return dims
}

func floorf(v float32) float32 { return float32(math.Floor(float64(v))) }
