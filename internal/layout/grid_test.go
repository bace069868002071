/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package layout

import (
	"math"
	"testing"

	"photobook/internal/geom"
)

func TestGridEmptyInput(t *testing.T) {
	g := NewGrid(800, 600, 10, 0, Vertical)
	if got := g.Layout(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestGridColumnCount(t *testing.T) {
	// ceil(sqrt(5)) = 3 slots per column, so 5 items split into a full
	// column of 3 and a second column of 2.
	items := testItems(1, 1, 1, 1, 1)
	g := NewGrid(900, 600, 0, 0, Vertical)
	rects := g.Layout(items)
	if len(rects) != 5 {
		t.Fatalf("expected 5 rects, got %d", len(rects))
	}
	firstColRight := float32(450)
	var first, second int
	for _, r := range rects {
		if r.X < firstColRight {
			first++
		} else {
			second++
		}
	}
	if first != 3 || second != 2 {
		t.Fatalf("expected column split 3/2, got %d/%d", first, second)
	}
}

func TestGridContainment(t *testing.T) {
	frames := []geom.Rect{
		geom.R(0, 0, 1200, 800),
		geom.R(0, 0, 500, 1000),
	}
	modes := []GridMode{GridEqual, GridCenterWeighted}
	directions := []Direction{Horizontal, Vertical}
	itemSets := [][]Item{
		testItems(1.0),
		testItems(1.5, 0.7),
		testItems(1.0, 1.5, 0.75, 1.0),
		testItems(0.5, 2.0, 1.0, 1.3, 0.9, 1.1, 1.0),
	}
	for _, frame := range frames {
		for _, mode := range modes {
			for _, dir := range directions {
				for _, items := range itemSets {
					g := Grid{Width: frame.W, Height: frame.H, Gap: 10, Margin: MarginAll(20), Mode: mode, Direction: dir}
					rects := g.Layout(items)
					if len(rects) != len(items) {
						t.Fatalf("lost items: want %d rects, got %d (mode=%v dir=%v)", len(items), len(rects), mode, dir)
					}
					for id, r := range rects {
						if !frame.ContainsRect(r, 1.0) {
							t.Fatalf("item %d escapes frame: rect %+v (mode=%v dir=%v n=%d)", id, r, mode, dir, len(items))
						}
					}
				}
			}
		}
	}
}

func TestGridCenterWeightedRowsAlign(t *testing.T) {
	// Four mixed-aspect photos in a landscape frame produce a 2x2 grid.
	// Rows must share y extents across columns and the block must sit
	// vertically centered.
	items := testItems(1.0, 1.5, 0.75, 1.0)
	g := Grid{Width: 1200, Height: 800, Gap: 10, Mode: GridCenterWeighted, Direction: Vertical}
	rects := g.Layout(items)

	// Columns hold [1 2] and [3 4]; rows pair (1,3) and (2,4).
	for _, row := range [][2]int64{{1, 3}, {2, 4}} {
		a := rects[row[0]]
		b := rects[row[1]]
		if math.Abs(float64(a.Y-b.Y)) > 0.5 || math.Abs(float64(a.H-b.H)) > 0.5 {
			t.Fatalf("row %v misaligned: %+v vs %+v", row, a, b)
		}
	}

	top := float32(math.Inf(1))
	bottom := float32(math.Inf(-1))
	for _, r := range rects {
		top = min(top, r.Y)
		bottom = max(bottom, r.Y+r.H)
	}
	if math.Abs(float64(top-(800-bottom))) > 1.0 {
		t.Fatalf("block not vertically centered: top margin %g, bottom margin %g", top, 800-bottom)
	}

	if math.Abs(float64(top-12)) > 1.0 {
		t.Fatalf("expected top margin near 12, got %g", top)
	}
	if r := rects[1]; math.Abs(float64(r.H-451)) > 1.0 {
		t.Fatalf("first row height: got %g, want 451", r.H)
	}
	if r := rects[2]; math.Abs(float64(r.H-315)) > 1.0 {
		t.Fatalf("second row height: got %g, want 315", r.H)
	}
}

func TestGridHorizontalRoundRobin(t *testing.T) {
	// Horizontal direction assigns items to rows round robin, so with
	// 4 items and 2 rows the odd ids share the first row.
	items := testItems(1, 1, 1, 1)
	g := NewGrid(1200, 800, 10, 0, Horizontal)
	rects := g.Layout(items)
	if math.Abs(float64(rects[1].Y-rects[3].Y)) > 0.5 {
		t.Fatalf("items 1 and 3 should share a row: y %g vs %g", rects[1].Y, rects[3].Y)
	}
	if math.Abs(float64(rects[2].Y-rects[4].Y)) > 0.5 {
		t.Fatalf("items 2 and 4 should share a row: y %g vs %g", rects[2].Y, rects[4].Y)
	}
	if rects[1].Y >= rects[2].Y {
		t.Fatalf("row order wrong: %g vs %g", rects[1].Y, rects[2].Y)
	}
}
