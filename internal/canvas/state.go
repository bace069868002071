/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"fmt"
	"slices"

	"photobook/internal/geom"
	"photobook/internal/id"
	"photobook/internal/model"
	"photobook/internal/photo"
	"photobook/internal/template"
)

// initialPhotoEdge is the longest edge, in page pixels, given to a photo
// layer created without an explicit rect.
const initialPhotoEdge = 1000

// minZoom and maxZoom clamp the viewport zoom.
const (
	minZoom = 0.05
	maxZoom = 40.0
)

// ToolSettings carries the per-tool drawing defaults.
type ToolSettings struct {
	Fill        Color
	Stroke      Color
	StrokeWidth float32
	FontSize    float32
	Font        string
	TextColor   Color
}

// DefaultToolSettings returns the settings a fresh canvas starts with.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{
		Fill:        Color{R: 220, G: 220, B: 220, A: 255},
		Stroke:      Color{A: 255},
		StrokeWidth: 2,
		FontSize:    32,
		TextColor:   Color{A: 255},
	}
}

// State is the per-page document. Insertion order of layers is z-order,
// back to front. All mutators are total: unknown ids are ignored.
type State struct {
	alloc *id.Allocator

	Page model.EditablePage

	layers map[id.LayerID]*Layer
	order  []id.LayerID

	Zoom   float32
	Offset geom.Pt

	Template *template.Template
	Multi    *MultiSelect

	QuickLayoutOrder []id.LayerID
	LastQuickLayout  *Layout

	// TextEditLayer holds the one layer in text-edit mode, 0 for none.
	TextEditLayer id.LayerID

	Tool     ToolState
	Settings ToolSettings

	lineDraft *Layer

	InitialZoomComputed bool
}

// New returns an empty canvas for the given page.
func New(alloc *id.Allocator, page model.Page) *State {
	return &State{
		alloc:    alloc,
		Page:     model.NewEditablePage(page),
		layers:   make(map[id.LayerID]*Layer),
		Zoom:     1,
		Tool:     idleTool(ToolSelect),
		Settings: DefaultToolSettings(),
	}
}

// WithPhoto returns a canvas seeded with one photo layer. The layer rect
// preserves the photo aspect with its longest edge at 1000 page pixels.
func WithPhoto(alloc *id.Allocator, page model.Page, p photo.Photo) *State {
	c := New(alloc, page)
	c.AddPhotoLayer(p)
	return c
}

// WithTemplate returns a canvas whose layers are the template's regions
// instantiated at page pixel size.
func WithTemplate(alloc *id.Allocator, page model.Page, tpl template.Template) *State {
	c := New(alloc, page)
	c.ApplyTemplate(tpl)
	return c
}

// Allocator exposes the id source, shared with loaders that must raise its
// floor.
func (c *State) Allocator() *id.Allocator { return c.alloc }

// Len returns the layer count.
func (c *State) Len() int { return len(c.order) }

// Layer returns the layer with the given id.
func (c *State) Layer(lid id.LayerID) (*Layer, bool) {
	l, ok := c.layers[lid]
	return l, ok
}

// Layers returns the layers in z-order, back to front.
func (c *State) Layers() []*Layer {
	out := make([]*Layer, 0, len(c.order))
	for _, lid := range c.order {
		out = append(out, c.layers[lid])
	}
	return out
}

// Order returns a copy of the z-order ids.
func (c *State) Order() []id.LayerID {
	return slices.Clone(c.order)
}

// AddLayer inserts a prepared layer at the top of the z-order, assigning an
// id when the layer has none.
func (c *State) AddLayer(l *Layer) id.LayerID {
	if l.ID == 0 {
		l.ID = c.alloc.NextLayerID()
	}
	if _, exists := c.layers[l.ID]; exists {
		return l.ID
	}
	c.layers[l.ID] = l
	c.order = append(c.order, l.ID)
	if l.IsPhoto() {
		c.QuickLayoutOrder = append(c.QuickLayoutOrder, l.ID)
	}
	return l.ID
}

// AddPhotoLayer creates a photo layer sized by the initial-edge rule.
func (c *State) AddPhotoLayer(p photo.Photo) id.LayerID {
	ar := p.AspectRatio()
	var w, h float32
	if ar >= 1 {
		w, h = initialPhotoEdge, initialPhotoEdge/ar
	} else {
		w, h = initialPhotoEdge*ar, initialPhotoEdge
	}
	l := &Layer{
		Name:      p.Name(),
		Visible:   true,
		Transform: TransformableState{Rect: geom.R(0, 0, w, h)},
		Content:   PhotoContent{Photo: p, Crop: geom.R(0, 0, 1, 1)},
	}
	return c.AddLayer(l)
}

// ApplyTemplate replaces the active template and instantiates its regions
// as layers at page pixel size.
func (c *State) ApplyTemplate(tpl template.Template) {
	c.Template = &tpl
	size := c.Page.Page.SizePixels()
	for i, region := range tpl.Regions {
		l := &Layer{
			Visible:   true,
			Transform: TransformableState{Rect: region.Rect(size.W, size.H)},
		}
		switch region.Kind {
		case template.RegionImage:
			l.Name = fmt.Sprintf("%s photo %d", tpl.Name, i+1)
			l.Content = TemplatePhotoContent{Region: region, Mode: ScaleFill}
		case template.RegionText:
			l.Name = fmt.Sprintf("%s text %d", tpl.Name, i+1)
			l.Content = TemplateTextContent{Region: region, Text: region.Sample}
		}
		c.AddLayer(l)
	}
}

// RemoveLayer drops a layer and purges it from the quick-layout order, the
// multi-select, and text-edit mode. Unknown ids are ignored.
func (c *State) RemoveLayer(lid id.LayerID) {
	if _, ok := c.layers[lid]; !ok {
		return
	}
	delete(c.layers, lid)
	c.order = slices.DeleteFunc(c.order, func(v id.LayerID) bool { return v == lid })
	c.QuickLayoutOrder = slices.DeleteFunc(c.QuickLayoutOrder, func(v id.LayerID) bool { return v == lid })
	if c.TextEditLayer == lid {
		c.TextEditLayer = 0
	}
	c.RebuildMultiSelect()
}

// SetZoom clamps and stores the viewport zoom.
func (c *State) SetZoom(z float32) {
	c.Zoom = min(max(z, minZoom), maxZoom)
}

// SelectOnly selects one layer and clears every other selection.
func (c *State) SelectOnly(lid id.LayerID) {
	for _, l := range c.layers {
		l.Selected = l.ID == lid
	}
	c.RebuildMultiSelect()
}

// ToggleSelect extends or shrinks the selection by one layer.
func (c *State) ToggleSelect(lid id.LayerID) {
	l, ok := c.layers[lid]
	if !ok {
		return
	}
	l.Selected = !l.Selected
	c.RebuildMultiSelect()
}

// ClearSelection deselects all layers.
func (c *State) ClearSelection() {
	for _, l := range c.layers {
		l.Selected = false
	}
	c.Multi = nil
}

// SelectedIDs returns the selected layer ids in z-order.
func (c *State) SelectedIDs() []id.LayerID {
	var out []id.LayerID
	for _, lid := range c.order {
		if c.layers[lid].Selected {
			out = append(out, lid)
		}
	}
	return out
}

// SetLayerRect moves or resizes a layer. Locked and invisible layers
// refuse the mutation.
func (c *State) SetLayerRect(lid id.LayerID, r geom.Rect) {
	l, ok := c.layers[lid]
	if !ok || !l.CanTransform() {
		return
	}
	l.Transform.Rect = r
}

// SetLayerRotation rotates a layer about its rect center.
func (c *State) SetLayerRotation(lid id.LayerID, rad float32) {
	l, ok := c.layers[lid]
	if !ok || !l.CanTransform() {
		return
	}
	l.Transform.Rotation = rad
}

// BeginTextEdit puts one layer into text-edit mode, ending any other edit.
func (c *State) BeginTextEdit(lid id.LayerID) {
	l, ok := c.layers[lid]
	if !ok {
		return
	}
	switch l.Content.(type) {
	case TextContent, TemplateTextContent:
		c.TextEditLayer = lid
	}
}

// EndTextEdit leaves text-edit mode.
func (c *State) EndTextEdit() { c.TextEditLayer = 0 }

// SetLayerText replaces the text of a text-bearing layer.
func (c *State) SetLayerText(lid id.LayerID, text string) {
	l, ok := c.layers[lid]
	if !ok {
		return
	}
	switch content := l.Content.(type) {
	case TextContent:
		content.Text = text
		l.Content = content
	case TemplateTextContent:
		content.Text = text
		l.Content = content
	}
}

// FillTemplateRegion places a photo into a template photo layer.
func (c *State) FillTemplateRegion(lid id.LayerID, p photo.Photo) {
	l, ok := c.layers[lid]
	if !ok {
		return
	}
	content, ok := l.Content.(TemplatePhotoContent)
	if !ok {
		return
	}
	content.Photo = &p
	l.Content = content
}

// UpdateQuickLayoutOrder prunes ids whose layers disappeared or are not
// photo layers, then appends photo layers missing from the order.
func (c *State) UpdateQuickLayoutOrder() {
	kept := c.QuickLayoutOrder[:0]
	for _, lid := range c.QuickLayoutOrder {
		if l, ok := c.layers[lid]; ok && l.IsPhoto() {
			kept = append(kept, lid)
		}
	}
	c.QuickLayoutOrder = kept
	for _, lid := range c.order {
		if c.layers[lid].IsPhoto() && !slices.Contains(c.QuickLayoutOrder, lid) {
			c.QuickLayoutOrder = append(c.QuickLayoutOrder, lid)
		}
	}
}

// SwapLayerCentersAndBounds exchanges two layers' placement: each rect is
// fit-and-centered within the other's original rect so aspect is kept.
// Locked and invisible layers refuse the mutation, on either side.
func (c *State) SwapLayerCentersAndBounds(a, b id.LayerID) bool {
	la, okA := c.layers[a]
	lb, okB := c.layers[b]
	if !okA || !okB || a == b || !la.CanTransform() || !lb.CanTransform() {
		return false
	}
	ra := la.Transform.Rect
	rb := lb.Transform.Rect
	la.Transform.Rect = ra.FitAndCenterWithin(rb)
	lb.Transform.Rect = rb.FitAndCenterWithin(ra)
	return true
}

// SwapQuickLayoutPositions swaps two entries of the quick-layout order and
// mirrors the layers' placement so the visual order follows. When either
// layer refuses the transform the order is left untouched too.
func (c *State) SwapQuickLayoutPositions(i, j int) {
	if i < 0 || j < 0 || i >= len(c.QuickLayoutOrder) || j >= len(c.QuickLayoutOrder) || i == j {
		return
	}
	a := c.QuickLayoutOrder[i]
	b := c.QuickLayoutOrder[j]
	if !c.SwapLayerCentersAndBounds(a, b) {
		return
	}
	c.QuickLayoutOrder[i], c.QuickLayoutOrder[j] = b, a
}

// PhotoLayerAspects returns the quick-layout order ids paired with each
// photo's aspect ratio, pruning the order first.
func (c *State) PhotoLayerAspects() []aspectItem {
	c.UpdateQuickLayoutOrder()
	out := make([]aspectItem, 0, len(c.QuickLayoutOrder))
	for _, lid := range c.QuickLayoutOrder {
		content := c.layers[lid].Content.(PhotoContent)
		out = append(out, aspectItem{id: lid, aspect: content.Photo.AspectRatio()})
	}
	return out
}

type aspectItem struct {
	id     id.LayerID
	aspect float32
}
