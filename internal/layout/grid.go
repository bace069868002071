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

// GridMode selects how grid cells are sized.
type GridMode int

const (
	// GridEqual gives each column (or row) an equal share and packs it as an
	// independent stack.
	GridEqual GridMode = iota
	// GridCenterWeighted computes per-slot sizes first, reduces them to the
	// per-row minimum across columns so rows align, and centers the block.
	GridCenterWeighted
)

// Grid arranges items into ceil(sqrt(N)) columns (vertical direction) or the
// equivalent row split (horizontal direction).
type Grid struct {
	Width     float32
	Height    float32
	Gap       float32
	Margin    Margin
	Mode      GridMode
	Direction Direction
}

// NewGrid builds an equal-mode grid with a uniform margin.
func NewGrid(width, height, gap, margin float32, dir Direction) Grid {
	return Grid{Width: width, Height: height, Gap: gap, Margin: MarginAll(margin), Mode: GridEqual, Direction: dir}
}

// WithMode returns a copy using the given mode.
func (g Grid) WithMode(m GridMode) Grid {
	g.Mode = m
	return g
}

// Layout computes a rect per item id. Empty input yields an empty map.
func (g Grid) Layout(items []Item) map[int64]geom.Rect {
	if len(items) == 0 {
		return map[int64]geom.Rect{}
	}
	if g.Direction == Vertical {
		return g.layoutVertical(items)
	}
	return g.layoutHorizontal(items)
}

func (g Grid) layoutVertical(items []Item) map[int64]geom.Rect {
	rowsPerColumn := int(math.Ceil(math.Sqrt(float64(len(items)))))
	if rowsPerColumn < 1 {
		rowsPerColumn = 1
	}
	var columns [][]Item
	for start := 0; start < len(items); start += rowsPerColumn {
		end := min(start+rowsPerColumn, len(items))
		columns = append(columns, items[start:end])
	}
	numColumns := len(columns)

	totalGapsW := g.Gap * float32(numColumns-1)
	columnWidth := max((g.Width-g.Margin.Left-g.Margin.Right-totalGapsW)/float32(numColumns), 0)
	stackHeight := g.Height - g.Margin.Top - g.Margin.Bottom

	out := make(map[int64]geom.Rect, len(items))

	switch g.Mode {
	case GridEqual:
		for colIdx, column := range columns {
			st := Stack{
				Width:        columnWidth,
				Height:       stackHeight,
				Gap:          g.Gap,
				Direction:    Vertical,
				Alignment:    AlignCenter,
				Distribution: GridCells(),
				X:            g.Margin.Left + float32(colIdx)*(columnWidth+g.Gap),
				Y:            g.Margin.Top,
			}
			for id, r := range st.Layout(column) {
				out[id] = r
			}
		}
	case GridCenterWeighted:
		dimsPerColumn := make([][]geom.Size, numColumns)
		maxRows := 0
		for i, column := range columns {
			dimsPerColumn[i] = VerticalItemDimensions(columnWidth, stackHeight, g.Gap, Margin{}, column)
			maxRows = max(maxRows, len(dimsPerColumn[i]))
		}

		rowHeights := make([]float32, 0, maxRows)
		for row := 0; row < maxRows; row++ {
			h := float32(math.MaxFloat32)
			for _, dims := range dimsPerColumn {
				if row < len(dims) {
					h = min(h, dims[row].H)
				}
			}
			if h != float32(math.MaxFloat32) && h > 0 {
				rowHeights = append(rowHeights, h)
			}
		}

		var blockH float32
		for _, h := range rowHeights {
			blockH += h
		}
		blockH += float32(len(rowHeights)-1) * g.Gap
		vOffset := max(stackHeight-blockH, 0) / 2

		for colIdx, column := range columns {
			st := Stack{
				Width:        columnWidth,
				Height:       stackHeight,
				Gap:          g.Gap,
				Direction:    Vertical,
				Alignment:    AlignCenter,
				Distribution: CenterWeightedGrid(rowHeights),
				X:            g.Margin.Left + float32(colIdx)*(columnWidth+g.Gap),
				Y:            g.Margin.Top + vOffset,
			}
			for id, r := range st.Layout(column) {
				out[id] = r
			}
		}
	}
	return out
}

func (g Grid) layoutHorizontal(items []Item) map[int64]geom.Rect {
	colsPerRow := int(math.Ceil(math.Sqrt(float64(len(items)))))
	if colsPerRow < 1 {
		colsPerRow = 1
	}
	numRows := int(math.Ceil(float64(len(items)) / float64(colsPerRow)))
	if numRows < 1 {
		numRows = 1
	}

	rows := make([][]Item, numRows)
	for i, it := range items {
		rows[i%numRows] = append(rows[i%numRows], it)
	}
	var nonEmpty [][]Item
	for _, r := range rows {
		if len(r) > 0 {
			nonEmpty = append(nonEmpty, r)
		}
	}
	rows = nonEmpty
	numRows = len(rows)

	totalGapsH := g.Gap * float32(numRows-1)
	rowHeight := max((g.Height-g.Margin.Top-g.Margin.Bottom-totalGapsH)/float32(numRows), 0)
	stackWidth := g.Width - g.Margin.Left - g.Margin.Right

	out := make(map[int64]geom.Rect, len(items))

	switch g.Mode {
	case GridEqual:
		for rowIdx, row := range rows {
			st := Stack{
				Width:        stackWidth,
				Height:       rowHeight,
				Gap:          g.Gap,
				Direction:    Horizontal,
				Alignment:    AlignCenter,
				Distribution: GridCells(),
				X:            g.Margin.Left,
				Y:            g.Margin.Top + float32(rowIdx)*(rowHeight+g.Gap),
			}
			for id, r := range st.Layout(row) {
				out[id] = r
			}
		}
	case GridCenterWeighted:
		dimsPerRow := make([][]geom.Size, numRows)
		maxCols := 0
		for i, row := range rows {
			dimsPerRow[i] = HorizontalItemDimensions(stackWidth, rowHeight, g.Gap, Margin{}, row)
			maxCols = max(maxCols, len(dimsPerRow[i]))
		}

		colWidths := make([]float32, 0, maxCols)
		for col := 0; col < maxCols; col++ {
			w := float32(math.MaxFloat32)
			for _, dims := range dimsPerRow {
				if col < len(dims) {
					w = min(w, dims[col].W)
				}
			}
			if w != float32(math.MaxFloat32) && w > 0 {
				colWidths = append(colWidths, w)
			}
		}

		var blockW float32
		for _, w := range colWidths {
			blockW += w
		}
		blockW += float32(len(colWidths)-1) * g.Gap
		hOffset := max(stackWidth-blockW, 0) / 2

		for rowIdx, row := range rows {
			st := Stack{
				Width:        stackWidth,
				Height:       rowHeight,
				Gap:          g.Gap,
				Direction:    Horizontal,
				Alignment:    AlignCenter,
				Distribution: CenterWeightedGrid(colWidths),
				X:            g.Margin.Left + hOffset,
				Y:            g.Margin.Top + float32(rowIdx)*(rowHeight+g.Gap),
			}
			for id, r := range st.Layout(row) {
				out[id] = r
			}
		}
	}
	return out
}
