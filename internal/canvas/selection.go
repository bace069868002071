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

// MultiChild is one member of a multi-selection. Local is the child's
// transform expressed relative to the group rect origin.
type MultiChild struct {
	ID    id.LayerID
	Local TransformableState
}

// MultiSelect groups the selected layers behind one transformable. The
// group rect is the axis-aligned union of the children's world rects.
// Children referencing vanished layers are pruned on every resolve.
type MultiSelect struct {
	Group    TransformableState
	Children []MultiChild
}

// RebuildMultiSelect recomputes the multi-select from the layers' Selected
// flags. Fewer than two selected layers clear it.
func (c *State) RebuildMultiSelect() {
	selected := c.SelectedIDs()
	if len(selected) < 2 {
		c.Multi = nil
		return
	}
	var group geom.Rect
	first := true
	for _, lid := range selected {
		b := c.layers[lid].Transform.WorldBounds()
		if first {
			group = b
			first = false
		} else {
			group = group.Union(b)
		}
	}
	ms := &MultiSelect{Group: TransformableState{Rect: group}}
	for _, lid := range selected {
		ms.Children = append(ms.Children, MultiChild{
			ID:    lid,
			Local: c.layers[lid].Transform.ToLocalSpace(group),
		})
	}
	c.Multi = ms
}

// ApplyGroupTransform moves, scales, and rotates every child according to
// the new group transform. Translation and scale map the child's local rect
// through the group rect change; a rotation delta composes additively onto
// each child and revolves the child's center about the group center.
func (c *State) ApplyGroupTransform(next TransformableState) {
	ms := c.Multi
	if ms == nil || ms.Group.Rect.Empty() || next.Rect.Empty() {
		return
	}
	old := ms.Group
	sx := next.Rect.W / old.Rect.W
	sy := next.Rect.H / old.Rect.H
	dRot := next.Rotation - old.Rotation
	groupCenter := next.Rect.Center()

	kept := ms.Children[:0]
	for _, child := range ms.Children {
		l, ok := c.layers[child.ID]
		if !ok {
			continue
		}
		kept = append(kept, child)
		if !l.CanTransform() {
			continue
		}
		local := child.Local.Rect
		world := geom.R(
			next.Rect.X+local.X*sx,
			next.Rect.Y+local.Y*sy,
			local.W*sx,
			local.H*sy,
		)
		if dRot != 0 {
			center := geom.RotatePtAround(world.Center(), dRot, groupCenter)
			world = world.WithCenter(center)
			l.Transform.Rotation = child.Local.Rotation + dRot
		} else {
			l.Transform.Rotation = child.Local.Rotation
		}
		l.Transform.Rect = world
	}
	ms.Children = kept
	ms.Group = next
}
