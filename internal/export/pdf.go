/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders scenes to print and preview formats.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"photobook/internal/canvas"
	"photobook/internal/geom"
	"photobook/internal/project"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt) unless otherwise noted.
// Vector text uses built-in Helvetica for portability; font embedding
// can be added later using TTFs.
//
// Coordinates:
// - Page origin is top-left.
// - Layer rects are in page pixels and scaled to pt by 72/ppi per page.
type PDFOptions struct {
	Pages []int // if empty, export all pages
}

// WriteScenePDF exports the scene as one multi-page PDF at outPath.
// Invisible layers and unresolved photos are skipped; unresolved photo
// rects are left empty rather than failing the whole export.
func WriteScenePDF(scene *project.Scene, outPath string, opt PDFOptions) error {
	if scene == nil || len(scene.Pages) == 0 {
		return fmt.Errorf("scene has no pages")
	}

	firstW, firstH := pageSizePt(scene.Pages[0])
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: firstW, Ht: firstH},
		OrientationStr: "",
	})
	pdf.SetTitle("Photobook", false)
	pdf.SetAuthor("Photobook", false)
	pdf.SetFont("Helvetica", "", 12)

	for _, pidx := range pageIndexes(len(scene.Pages), opt.Pages) {
		if pidx < 0 || pidx >= len(scene.Pages) {
			continue
		}
		page := scene.Pages[pidx]
		w, h := pageSizePt(page)
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})
		scale := 72.0 / float64(page.Page.Page.PPI)

		for _, l := range page.Layers() {
			if !l.Visible {
				continue
			}
			drawLayerPDF(pdf, l, scale)
		}
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pageSizePt(c *canvas.State) (w, h float64) {
	size := c.Page.Page.SizePixels()
	ppi := float64(c.Page.Page.PPI)
	return float64(size.W) / ppi * 72, float64(size.H) / ppi * 72
}

func pageIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}

// drawLayerPDF renders one layer. Rotation uses gofpdf's transform stack
// around the rect center.
func drawLayerPDF(pdf *gofpdf.Fpdf, l *canvas.Layer, scale float64) {
	r := scaledRect(l.Transform.Rect, scale)
	rotated := l.Transform.Rotation != 0
	if rotated {
		pdf.TransformBegin()
		pdf.TransformRotate(-float64(l.Transform.Rotation)*180/math.Pi, r.x+r.w/2, r.y+r.h/2)
	}

	switch c := l.Content.(type) {
	case canvas.PhotoContent:
		if !c.Unresolved {
			placeImage(pdf, c.Photo.Path, r, canvas.ScaleStretch)
		}
	case canvas.TemplatePhotoContent:
		if c.Photo != nil {
			placeImage(pdf, c.Photo.Path, r, c.Mode)
		} else {
			// Empty region: light placeholder frame.
			pdf.SetDrawColor(190, 190, 190)
			pdf.SetLineWidth(0.5)
			pdf.Rect(r.x, r.y, r.w, r.h, "D")
		}
	case canvas.TextContent:
		drawText(pdf, c.Text, c.FontSize, c.Color, c.HAlign, c.VAlign, r, scale)
	case canvas.TemplateTextContent:
		fontPx := float32(c.Region.FontSize)
		if fontPx <= 0 {
			fontPx = 24
		}
		drawText(pdf, c.Text, fontPx, canvas.Color{A: 255}, canvas.HAlignCenter, canvas.VAlignCenter, r, scale)
	case canvas.RectShape:
		setShapeStyle(pdf, c.Fill, c.Stroke, c.StrokeWidth, scale)
		pdf.Rect(r.x, r.y, r.w, r.h, shapeStyleStr(c.Fill, c.Stroke))
	case canvas.EllipseShape:
		setShapeStyle(pdf, c.Fill, c.Stroke, c.StrokeWidth, scale)
		pdf.Ellipse(r.x+r.w/2, r.y+r.h/2, r.w/2, r.h/2, 0, shapeStyleStr(c.Fill, c.Stroke))
	case canvas.LineShape:
		pdf.SetDrawColor(int(c.Stroke.R), int(c.Stroke.G), int(c.Stroke.B))
		pdf.SetLineWidth(float64(c.StrokeWidth) * scale)
		pdf.Line(
			r.x+float64(c.Start.X)*scale, r.y+float64(c.Start.Y)*scale,
			r.x+float64(c.End.X)*scale, r.y+float64(c.End.Y)*scale,
		)
	}

	if rotated {
		pdf.TransformEnd()
	}
}

type rectPt struct{ x, y, w, h float64 }

func scaledRect(r geom.Rect, scale float64) rectPt {
	return rectPt{
		x: float64(r.X) * scale,
		y: float64(r.Y) * scale,
		w: float64(r.W) * scale,
		h: float64(r.H) * scale,
	}
}

// placeImage embeds the file at path into the target rect. Fit letterboxes,
// Fill covers and clips, Stretch ignores the aspect ratio. Missing or
// unreadable files degrade to a placeholder frame.
func placeImage(pdf *gofpdf.Fpdf, path string, r rectPt, mode canvas.ScaleMode) {
	info := pdf.RegisterImageOptions(path, gofpdf.ImageOptions{AllowNegativePosition: true})
	if pdf.Err() || info == nil || info.Width() <= 0 || info.Height() <= 0 {
		pdf.ClearError()
		pdf.SetDrawColor(190, 190, 190)
		pdf.SetLineWidth(0.5)
		pdf.Rect(r.x, r.y, r.w, r.h, "D")
		return
	}
	iw, ih := info.Width(), info.Height()

	var dx, dy, dw, dh float64
	switch mode {
	case canvas.ScaleStretch:
		dx, dy, dw, dh = r.x, r.y, r.w, r.h
	case canvas.ScaleFill:
		s := math.Max(r.w/iw, r.h/ih)
		dw, dh = iw*s, ih*s
		dx, dy = r.x+(r.w-dw)/2, r.y+(r.h-dh)/2
	default: // ScaleFit
		s := math.Min(r.w/iw, r.h/ih)
		dw, dh = iw*s, ih*s
		dx, dy = r.x+(r.w-dw)/2, r.y+(r.h-dh)/2
	}

	pdf.ClipRect(r.x, r.y, r.w, r.h, false)
	pdf.ImageOptions(path, dx, dy, dw, dh, false, gofpdf.ImageOptions{AllowNegativePosition: true}, 0, "")
	pdf.ClipEnd()
}

func drawText(pdf *gofpdf.Fpdf, text string, fontPx float32, col canvas.Color, ha canvas.HAlign, va canvas.VAlign, r rectPt, scale float64) {
	if text == "" {
		return
	}
	fontPt := float64(fontPx) * scale
	if fontPt <= 0 {
		fontPt = 12
	}
	pdf.SetFont("Helvetica", "", fontPt)
	pdf.SetTextColor(int(col.R), int(col.G), int(col.B))

	align := ""
	switch ha {
	case canvas.HAlignCenter:
		align = "C"
	case canvas.HAlignRight:
		align = "R"
	default:
		align = "L"
	}
	switch va {
	case canvas.VAlignCenter:
		align += "M"
	case canvas.VAlignBottom:
		align += "B"
	default:
		align += "T"
	}

	pdf.SetXY(r.x, r.y)
	pdf.CellFormat(r.w, r.h, text, "", 0, align, false, 0, "")
}

func setShapeStyle(pdf *gofpdf.Fpdf, fill, stroke canvas.Color, width float32, scale float64) {
	pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
	pdf.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
	w := float64(width) * scale
	if w <= 0 {
		w = 0.5
	}
	pdf.SetLineWidth(w)
}

// shapeStyleStr picks gofpdf's draw mode from the alpha channels: fill,
// draw, or both.
func shapeStyleStr(fill, stroke canvas.Color) string {
	switch {
	case fill.A > 0 && stroke.A > 0:
		return "FD"
	case fill.A > 0:
		return "F"
	default:
		return "D"
	}
}
