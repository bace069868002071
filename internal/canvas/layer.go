/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas holds the authoritative per-page document: layers with
// transformable rects, selection, tools, quick-layouts, and editing history.
package canvas

import (
	"photobook/internal/geom"
	"photobook/internal/id"
	"photobook/internal/photo"
	"photobook/internal/template"
)

// Handle names the transform handle currently being dragged. Transient,
// never persisted.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTop
	HandleBottom
	HandleLeft
	HandleRight
	HandleRotate
	HandleBody
)

// TransformableState is an axis-aligned rect plus a rotation in radians
// about the rect center.
type TransformableState struct {
	Rect     geom.Rect
	Rotation float32

	// Drag state, transient.
	ActiveHandle Handle
}

// ToLocalSpace re-expresses the transform relative to the group rect's
// origin.
func (t TransformableState) ToLocalSpace(group geom.Rect) TransformableState {
	t.Rect = t.Rect.Translated(geom.Pt{X: -group.X, Y: -group.Y})
	t.ActiveHandle = HandleNone
	return t
}

// ToWorldSpace undoes ToLocalSpace for the given group rect.
func (t TransformableState) ToWorldSpace(group geom.Rect) TransformableState {
	t.Rect = t.Rect.Translated(geom.Pt{X: group.X, Y: group.Y})
	return t
}

// WorldBounds returns the axis-aligned bounds of the rotated rect.
func (t TransformableState) WorldBounds() geom.Rect {
	if t.Rotation == 0 {
		return t.Rect
	}
	return geom.RotatedBoundsAround(t.Rect, t.Rotation, t.Rect.Center())
}

// ContentKind discriminates layer content variants.
type ContentKind string

const (
	KindPhoto         ContentKind = "photo"
	KindText          ContentKind = "text"
	KindTemplatePhoto ContentKind = "template_photo"
	KindTemplateText  ContentKind = "template_text"
	KindRect          ContentKind = "rect"
	KindEllipse       ContentKind = "ellipse"
	KindLine          ContentKind = "line"
)

// LayerContent is the tagged content variant of a layer.
type LayerContent interface {
	Kind() ContentKind
}

// Color is an sRGB color with alpha.
type Color struct {
	R, G, B, A uint8
}

// HAlign is horizontal text alignment.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// VAlign is vertical text alignment.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// ScaleMode controls how a photo fills a template region.
type ScaleMode int

const (
	ScaleFit ScaleMode = iota
	ScaleFill
	ScaleStretch
)

// PhotoContent places a photo with a normalized crop rect in [0,1] square.
// Unresolved marks a photo referenced by a loaded project but missing on
// disk; such layers are kept but skipped on draw.
type PhotoContent struct {
	Photo      photo.Photo
	Crop       geom.Rect
	Unresolved bool
}

func (PhotoContent) Kind() ContentKind { return KindPhoto }

// ClampCrop limits the crop rect to the unit square.
func (p *PhotoContent) ClampCrop() {
	c := p.Crop
	c.X = min(max(c.X, 0), 1)
	c.Y = min(max(c.Y, 0), 1)
	c.W = min(max(c.W, 0), 1-c.X)
	c.H = min(max(c.H, 0), 1-c.Y)
	p.Crop = c
}

// TextContent is free-standing text.
type TextContent struct {
	Text     string
	FontSize float32
	Font     string
	Color    Color
	HAlign   HAlign
	VAlign   VAlign
}

func (TextContent) Kind() ContentKind { return KindText }

// TemplatePhotoContent is a template image region, optionally filled.
type TemplatePhotoContent struct {
	Region template.Region
	Photo  *photo.Photo
	Mode   ScaleMode
}

func (TemplatePhotoContent) Kind() ContentKind { return KindTemplatePhoto }

// TemplateTextContent is a template text region with its current text.
type TemplateTextContent struct {
	Region template.Region
	Text   string
}

func (TemplateTextContent) Kind() ContentKind { return KindTemplateText }

// RectShape is a rectangle drawn by the shape tool.
type RectShape struct {
	Fill        Color
	Stroke      Color
	StrokeWidth float32
}

func (RectShape) Kind() ContentKind { return KindRect }

// EllipseShape is an ellipse inscribed in the layer rect.
type EllipseShape struct {
	Fill        Color
	Stroke      Color
	StrokeWidth float32
}

func (EllipseShape) Kind() ContentKind { return KindEllipse }

// LineShape is a segment in layer-local coordinates.
type LineShape struct {
	Start       geom.Pt
	End         geom.Pt
	Stroke      Color
	StrokeWidth float32
}

func (LineShape) Kind() ContentKind { return KindLine }

// Layer is one addressable element on a page. Insertion order in the canvas
// is z-order, back to front.
type Layer struct {
	ID        id.LayerID
	Name      string
	Visible   bool
	Locked    bool
	Selected  bool
	Transform TransformableState
	Content   LayerContent
}

// CanTransform reports whether transform mutations are allowed. Locked and
// invisible layers refuse them.
func (l *Layer) CanTransform() bool { return l.Visible && !l.Locked }

// IsPhoto reports whether the layer holds a plain photo.
func (l *Layer) IsPhoto() bool {
	_, ok := l.Content.(PhotoContent)
	return ok
}

// clone returns a deep copy. Content variants are value types except the
// template photo pointer, which is duplicated.
func (l *Layer) clone() *Layer {
	c := *l
	if tp, ok := c.Content.(TemplatePhotoContent); ok && tp.Photo != nil {
		p := *tp.Photo
		tp.Photo = &p
		c.Content = tp
	}
	return &c
}
