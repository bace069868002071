/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package project serializes the in-memory scene to the versioned .rpb
// container and reconstructs it. Version 1 carries the photo list and the
// canvas pages with their ordered layers.
package project

import (
	"errors"

	"photobook/internal/canvas"
	"photobook/internal/geom"
	"photobook/internal/id"
	"photobook/internal/model"
	"photobook/internal/photo"
	"photobook/internal/template"
)

// FormatVersion is the newest project format this build reads and writes.
const FormatVersion = 1

var (
	// ErrVersionMismatch marks a file written by a newer format version.
	ErrVersionMismatch = errors.New("project format version not supported")
	// ErrCorrupt marks a file that is not a valid project container.
	ErrCorrupt = errors.New("project file corrupt")
)

// File is the version 1 on-disk shape.
type File struct {
	Version int        `json:"version"`
	Photos  []PhotoDTO `json:"photos"`
	Pages   []PageDTO  `json:"pages"`
}

// PhotoDTO is one entry of the photo collection. Paths are stored absolute.
type PhotoDTO struct {
	Path     string `json:"path"`
	Rating   int    `json:"rating,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Rotation int    `json:"rotation,omitempty"` // quarter turns
}

// PageDTO is one canvas page. The quick-layout order is stored because the
// user can reorder it independently of the z-order.
type PageDTO struct {
	Page             model.Page   `json:"page"`
	Template         *TemplateDTO `json:"template,omitempty"`
	QuickLayoutOrder []int64      `json:"quick_layout_order,omitempty"`
	Layers           []LayerDTO   `json:"layers"`
}

// TemplateDTO is the active page template, stored whole so templates from
// user packs survive a reload on a machine without the pack.
type TemplateDTO struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	PageWidth  float32     `json:"page_width,omitempty"`
	PageHeight float32     `json:"page_height,omitempty"`
	Regions    []RegionDTO `json:"regions"`
}

func toTemplateDTO(t template.Template) *TemplateDTO {
	d := &TemplateDTO{ID: t.ID, Name: t.Name, PageWidth: t.Page.Width, PageHeight: t.Page.Height}
	for _, r := range t.Regions {
		d.Regions = append(d.Regions, toRegionDTO(r))
	}
	return d
}

func (d *TemplateDTO) toTemplate() template.Template {
	t := template.Template{
		ID:   d.ID,
		Name: d.Name,
		Page: template.PageSpec{Width: d.PageWidth, Height: d.PageHeight},
	}
	for _, r := range d.Regions {
		t.Regions = append(t.Regions, r.toRegion())
	}
	return t
}

// RectDTO mirrors geom.Rect.
type RectDTO struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

func toRectDTO(r geom.Rect) RectDTO { return RectDTO{X: r.X, Y: r.Y, W: r.W, H: r.H} }
func (r RectDTO) toRect() geom.Rect { return geom.R(r.X, r.Y, r.W, r.H) }

// PtDTO mirrors geom.Pt.
type PtDTO struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// ColorDTO mirrors canvas.Color.
type ColorDTO struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

func toColorDTO(c canvas.Color) ColorDTO { return ColorDTO{R: c.R, G: c.G, B: c.B, A: c.A} }
func (c ColorDTO) toColor() canvas.Color { return canvas.Color{R: c.R, G: c.G, B: c.B, A: c.A} }

// RegionDTO mirrors template.Region.
type RegionDTO struct {
	Kind     string  `json:"kind"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	W        float32 `json:"w"`
	H        float32 `json:"h"`
	Sample   string  `json:"sample,omitempty"`
	FontSize float32 `json:"font_size,omitempty"`
}

func toRegionDTO(r template.Region) RegionDTO {
	return RegionDTO{Kind: string(r.Kind), X: r.X, Y: r.Y, W: r.W, H: r.H, Sample: r.Sample, FontSize: r.FontSize}
}

func (r RegionDTO) toRegion() template.Region {
	return template.Region{Kind: template.RegionKind(r.Kind), X: r.X, Y: r.Y, W: r.W, H: r.H, Sample: r.Sample, FontSize: r.FontSize}
}

// ContentDTO is the flattened layer content variant. Kind selects which
// fields apply.
type ContentDTO struct {
	Kind string `json:"kind"`

	// photo
	Path string   `json:"path,omitempty"`
	Crop *RectDTO `json:"crop,omitempty"`

	// text
	Text     string    `json:"text,omitempty"`
	FontSize float32   `json:"font_size,omitempty"`
	Font     string    `json:"font,omitempty"`
	Color    *ColorDTO `json:"color,omitempty"`
	HAlign   int       `json:"h_align,omitempty"`
	VAlign   int       `json:"v_align,omitempty"`

	// template regions
	Region    *RegionDTO `json:"region,omitempty"`
	ScaleMode int        `json:"scale_mode,omitempty"`

	// shapes
	Fill        *ColorDTO `json:"fill,omitempty"`
	Stroke      *ColorDTO `json:"stroke,omitempty"`
	StrokeWidth float32   `json:"stroke_width,omitempty"`
	Start       *PtDTO    `json:"start,omitempty"`
	End         *PtDTO    `json:"end,omitempty"`
}

// LayerDTO is one layer. Transient flags (drag handles, edit mode) are not
// part of the format.
type LayerDTO struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Visible  bool       `json:"visible"`
	Locked   bool       `json:"locked,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Rect     RectDTO    `json:"rect"`
	Rotation float32    `json:"rotation,omitempty"`
	Content  ContentDTO `json:"content"`
}

// Scene is the in-memory pair the codec works against: the photo
// collection plus the canvas pages.
type Scene struct {
	Photos []photo.Photo
	Pages  []*canvas.State
}

// FromScene converts the scene into the on-disk shape.
func FromScene(s *Scene) *File {
	f := &File{Version: FormatVersion}
	for _, p := range s.Photos {
		f.Photos = append(f.Photos, PhotoDTO{
			Path:     p.Path,
			Rating:   p.Rating,
			Width:    p.Meta.Width,
			Height:   p.Meta.Height,
			Rotation: int(p.Meta.Rotation),
		})
	}
	for _, page := range s.Pages {
		pd := PageDTO{Page: page.Page.Page}
		if page.Template != nil {
			pd.Template = toTemplateDTO(*page.Template)
		}
		for _, lid := range page.QuickLayoutOrder {
			pd.QuickLayoutOrder = append(pd.QuickLayoutOrder, int64(lid))
		}
		for _, l := range page.Layers() {
			pd.Layers = append(pd.Layers, toLayerDTO(l))
		}
		f.Pages = append(f.Pages, pd)
	}
	return f
}

func toLayerDTO(l *canvas.Layer) LayerDTO {
	d := LayerDTO{
		ID:       int64(l.ID),
		Name:     l.Name,
		Visible:  l.Visible,
		Locked:   l.Locked,
		Selected: l.Selected,
		Rect:     toRectDTO(l.Transform.Rect),
		Rotation: l.Transform.Rotation,
	}
	switch content := l.Content.(type) {
	case canvas.PhotoContent:
		crop := toRectDTO(content.Crop)
		d.Content = ContentDTO{Kind: string(canvas.KindPhoto), Path: content.Photo.Path, Crop: &crop}
	case canvas.TextContent:
		color := toColorDTO(content.Color)
		d.Content = ContentDTO{
			Kind:     string(canvas.KindText),
			Text:     content.Text,
			FontSize: content.FontSize,
			Font:     content.Font,
			Color:    &color,
			HAlign:   int(content.HAlign),
			VAlign:   int(content.VAlign),
		}
	case canvas.TemplatePhotoContent:
		region := toRegionDTO(content.Region)
		d.Content = ContentDTO{Kind: string(canvas.KindTemplatePhoto), Region: &region, ScaleMode: int(content.Mode)}
		if content.Photo != nil {
			d.Content.Path = content.Photo.Path
		}
	case canvas.TemplateTextContent:
		region := toRegionDTO(content.Region)
		d.Content = ContentDTO{Kind: string(canvas.KindTemplateText), Region: &region, Text: content.Text}
	case canvas.RectShape:
		fill, stroke := toColorDTO(content.Fill), toColorDTO(content.Stroke)
		d.Content = ContentDTO{Kind: string(canvas.KindRect), Fill: &fill, Stroke: &stroke, StrokeWidth: content.StrokeWidth}
	case canvas.EllipseShape:
		fill, stroke := toColorDTO(content.Fill), toColorDTO(content.Stroke)
		d.Content = ContentDTO{Kind: string(canvas.KindEllipse), Fill: &fill, Stroke: &stroke, StrokeWidth: content.StrokeWidth}
	case canvas.LineShape:
		stroke := toColorDTO(content.Stroke)
		start := PtDTO{X: content.Start.X, Y: content.Start.Y}
		end := PtDTO{X: content.End.X, Y: content.End.Y}
		d.Content = ContentDTO{Kind: string(canvas.KindLine), Stroke: &stroke, StrokeWidth: content.StrokeWidth, Start: &start, End: &end}
	}
	return d
}

// ToScene reconstructs the scene. Layer ids are kept as stored; afterwards
// the allocator floor is raised past the maximum id seen so fresh ids never
// collide. Photo layers whose path is neither in the photo list nor on disk
// are kept with an unresolved marker.
func (f *File) ToScene(alloc *id.Allocator, resolve func(path string) (photo.Photo, bool)) *Scene {
	s := &Scene{}
	byPath := make(map[string]photo.Photo, len(f.Photos))
	for _, pd := range f.Photos {
		p := photo.Photo{
			Path:   pd.Path,
			Rating: pd.Rating,
			Meta: photo.Metadata{
				Width:    pd.Width,
				Height:   pd.Height,
				Rotation: photo.Rotation(pd.Rotation % 4),
			},
		}
		byPath[p.Path] = p
		s.Photos = append(s.Photos, p)
	}

	var maxID int64
	for _, pd := range f.Pages {
		c := canvas.New(alloc, pd.Page)
		for _, ld := range pd.Layers {
			l := fromLayerDTO(ld, byPath, resolve)
			if l == nil {
				continue
			}
			c.AddLayer(l)
			maxID = max(maxID, int64(l.ID))
		}
		if pd.Template != nil {
			tpl := pd.Template.toTemplate()
			c.Template = &tpl
		}
		// The stored order wins over the z-order default built up by
		// AddLayer; pruning keeps it honest against the actual layers.
		if len(pd.QuickLayoutOrder) > 0 {
			order := make([]id.LayerID, 0, len(pd.QuickLayoutOrder))
			for _, v := range pd.QuickLayoutOrder {
				order = append(order, id.LayerID(v))
			}
			c.QuickLayoutOrder = order
		}
		c.UpdateQuickLayoutOrder()
		c.RebuildMultiSelect()
		s.Pages = append(s.Pages, c)
	}
	alloc.SetMinLayerID(id.LayerID(maxID + 1))
	return s
}

func fromLayerDTO(d LayerDTO, byPath map[string]photo.Photo, resolve func(path string) (photo.Photo, bool)) *canvas.Layer {
	l := &canvas.Layer{
		ID:       id.LayerID(d.ID),
		Name:     d.Name,
		Visible:  d.Visible,
		Locked:   d.Locked,
		Selected: d.Selected,
		Transform: canvas.TransformableState{
			Rect:     d.Rect.toRect(),
			Rotation: d.Rotation,
		},
	}
	switch canvas.ContentKind(d.Content.Kind) {
	case canvas.KindPhoto:
		content := canvas.PhotoContent{Crop: geom.R(0, 0, 1, 1)}
		if d.Content.Crop != nil {
			content.Crop = d.Content.Crop.toRect()
		}
		if p, ok := byPath[d.Content.Path]; ok {
			content.Photo = p
		} else if resolve != nil {
			if p, ok := resolve(d.Content.Path); ok {
				content.Photo = p
			} else {
				content.Photo = photo.Photo{Path: d.Content.Path}
				content.Unresolved = true
			}
		} else {
			content.Photo = photo.Photo{Path: d.Content.Path}
			content.Unresolved = true
		}
		content.ClampCrop()
		l.Content = content
	case canvas.KindText:
		content := canvas.TextContent{
			Text:     d.Content.Text,
			FontSize: d.Content.FontSize,
			Font:     d.Content.Font,
			HAlign:   canvas.HAlign(d.Content.HAlign),
			VAlign:   canvas.VAlign(d.Content.VAlign),
		}
		if d.Content.Color != nil {
			content.Color = d.Content.Color.toColor()
		}
		l.Content = content
	case canvas.KindTemplatePhoto:
		if d.Content.Region == nil {
			return nil
		}
		content := canvas.TemplatePhotoContent{
			Region: d.Content.Region.toRegion(),
			Mode:   canvas.ScaleMode(d.Content.ScaleMode),
		}
		if d.Content.Path != "" {
			if p, ok := byPath[d.Content.Path]; ok {
				content.Photo = &p
			}
		}
		l.Content = content
	case canvas.KindTemplateText:
		if d.Content.Region == nil {
			return nil
		}
		l.Content = canvas.TemplateTextContent{Region: d.Content.Region.toRegion(), Text: d.Content.Text}
	case canvas.KindRect:
		content := canvas.RectShape{StrokeWidth: d.Content.StrokeWidth}
		if d.Content.Fill != nil {
			content.Fill = d.Content.Fill.toColor()
		}
		if d.Content.Stroke != nil {
			content.Stroke = d.Content.Stroke.toColor()
		}
		l.Content = content
	case canvas.KindEllipse:
		content := canvas.EllipseShape{StrokeWidth: d.Content.StrokeWidth}
		if d.Content.Fill != nil {
			content.Fill = d.Content.Fill.toColor()
		}
		if d.Content.Stroke != nil {
			content.Stroke = d.Content.Stroke.toColor()
		}
		l.Content = content
	case canvas.KindLine:
		content := canvas.LineShape{StrokeWidth: d.Content.StrokeWidth}
		if d.Content.Stroke != nil {
			content.Stroke = d.Content.Stroke.toColor()
		}
		if d.Content.Start != nil {
			content.Start = geom.Pt{X: d.Content.Start.X, Y: d.Content.Start.Y}
		}
		if d.Content.End != nil {
			content.End = geom.Pt{X: d.Content.End.X, Y: d.Content.End.Y}
		}
		l.Content = content
	default:
		return nil
	}
	return l
}
