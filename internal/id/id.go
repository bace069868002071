/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package id issues process-wide unique identifiers for layers, pages and
// modals. All identifier kinds draw from a single monotonic counter, so an id
// is unique across kinds for the lifetime of the allocator.
package id

import "sync/atomic"

// LayerID identifies a layer on a canvas page.
type LayerID int64

// PageID identifies a canvas page.
type PageID int64

// ModalID identifies a modal pushed onto the modal manager.
type ModalID int64

// Allocator hands out monotonically increasing ids. The zero value is not
// usable; construct with NewAllocator.
type Allocator struct {
	next atomic.Int64
}

// NewAllocator returns an allocator whose first id is 1.
func NewAllocator() *Allocator {
	a := &Allocator{}
	a.next.Store(1)
	return a
}

// NextLayerID returns a fresh layer id.
func (a *Allocator) NextLayerID() LayerID { return LayerID(a.nextID()) }

// NextPageID returns a fresh page id.
func (a *Allocator) NextPageID() PageID { return PageID(a.nextID()) }

// NextModalID returns a fresh modal id.
func (a *Allocator) NextModalID() ModalID { return ModalID(a.nextID()) }

func (a *Allocator) nextID() int64 { return a.next.Add(1) - 1 }

// SetMinLayerID raises the allocator floor so every id issued afterwards is
// >= min. Lower floors are ignored; the counter never moves backwards.
func (a *Allocator) SetMinLayerID(min LayerID) {
	for {
		cur := a.next.Load()
		if cur >= int64(min) {
			return
		}
		if a.next.CompareAndSwap(cur, int64(min)) {
			return
		}
	}
}
