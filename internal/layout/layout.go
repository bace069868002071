/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout provides the stack and grid layout engine used by
// quick-layouts. Items are characterized only by an aspect ratio; the engine
// returns world-space rectangles keyed by item id. Callers that need results
// in input order iterate their item slice.
package layout

// Item is one element to lay out.
type Item struct {
	ID          int64
	AspectRatio float32
}

// Margin is the inset applied to the frame before items are placed.
type Margin struct {
	Top    float32
	Right  float32
	Bottom float32
	Left   float32
}

// MarginAll returns a uniform margin.
func MarginAll(v float32) Margin {
	return Margin{Top: v, Right: v, Bottom: v, Left: v}
}

// Direction is the main axis of a stack.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Alignment positions items on the cross axis.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// DistributionKind selects how leftover main-axis space is used.
type DistributionKind int

const (
	DistributeStart DistributionKind = iota
	DistributeCenter
	DistributeEnd
	DistributeEqualSpacing
	DistributeGrid
	DistributeCenterWeightedGrid
)

// Distribution pairs a kind with the per-slot main-axis sizes needed by the
// center-weighted grid variant.
type Distribution struct {
	Kind          DistributionKind
	MainAxisSizes []float32
}

func Start() Distribution        { return Distribution{Kind: DistributeStart} }
func Center() Distribution       { return Distribution{Kind: DistributeCenter} }
func End() Distribution          { return Distribution{Kind: DistributeEnd} }
func EqualSpacing() Distribution { return Distribution{Kind: DistributeEqualSpacing} }
func GridCells() Distribution    { return Distribution{Kind: DistributeGrid} }
func CenterWeightedGrid(mainAxisSizes []float32) Distribution {
	return Distribution{Kind: DistributeCenterWeightedGrid, MainAxisSizes: mainAxisSizes}
}
