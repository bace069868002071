/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"photobook/internal/canvas"
	"photobook/internal/geom"
	"photobook/internal/project"
)

// PNGOptions controls raster preview export.
// - DPI: when > 0 overrides the page PPI for output pixel size
// - Pages: if empty, export all
type PNGOptions struct {
	DPI        int
	Pages      []int
	Background canvas.Color
}

// WriteScenePNGPages renders each page as a separate PNG under outDir,
// named page-<n>.png with 1-based numbering. It returns the written
// paths. Text is rendered with a small bitmap face; the PDF exporter is
// the print-accurate path. Rotation is ignored in the raster preview.
func WriteScenePNGPages(scene *project.Scene, outDir string, opt PNGOptions) ([]string, error) {
	if scene == nil || len(scene.Pages) == 0 {
		return nil, fmt.Errorf("scene has no pages")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}

	bg := opt.Background
	if bg.A == 0 {
		bg = canvas.Color{R: 255, G: 255, B: 255, A: 255}
	}

	var written []string
	for _, pidx := range pageIndexes(len(scene.Pages), opt.Pages) {
		if pidx < 0 || pidx >= len(scene.Pages) {
			continue
		}
		page := scene.Pages[pidx]
		img := renderPage(page, opt.DPI, bg)

		out := filepath.Join(outDir, fmt.Sprintf("page-%d.png", pidx+1))
		f, err := os.Create(out)
		if err != nil {
			return written, fmt.Errorf("create %s: %w", out, err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return written, fmt.Errorf("encode %s: %w", out, err)
		}
		if err := f.Close(); err != nil {
			return written, fmt.Errorf("close %s: %w", out, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func renderPage(c *canvas.State, dpi int, bg canvas.Color) *image.RGBA {
	size := c.Page.Page.SizePixels()
	scale := float32(1)
	if dpi > 0 {
		scale = float32(dpi) / float32(c.Page.Page.PPI)
	}
	w := max(int(size.W*scale), 1)
	h := max(int(size.H*scale), 1)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(bg)), image.Point{}, draw.Src)

	for _, l := range c.Layers() {
		if !l.Visible {
			continue
		}
		drawLayerPNG(img, l, scale)
	}
	return img
}

func drawLayerPNG(img *image.RGBA, l *canvas.Layer, scale float32) {
	r := pixelRect(l.Transform.Rect, scale)

	switch ct := l.Content.(type) {
	case canvas.PhotoContent:
		if !ct.Unresolved {
			drawPhoto(img, ct.Photo.Path, r, canvas.ScaleStretch)
		}
	case canvas.TemplatePhotoContent:
		if ct.Photo != nil {
			drawPhoto(img, ct.Photo.Path, r, ct.Mode)
		} else {
			strokeRect(img, r, color.RGBA{R: 190, G: 190, B: 190, A: 255})
		}
	case canvas.TextContent:
		drawLabel(img, ct.Text, rgba(ct.Color), r)
	case canvas.TemplateTextContent:
		drawLabel(img, ct.Text, color.RGBA{A: 255}, r)
	case canvas.RectShape:
		if ct.Fill.A > 0 {
			draw.Draw(img, r, image.NewUniform(rgba(ct.Fill)), image.Point{}, draw.Over)
		}
		if ct.Stroke.A > 0 {
			strokeRect(img, r, rgba(ct.Stroke))
		}
	case canvas.EllipseShape:
		drawEllipse(img, r, ct)
	case canvas.LineShape:
		x0 := r.Min.X + int(ct.Start.X*scale)
		y0 := r.Min.Y + int(ct.Start.Y*scale)
		x1 := r.Min.X + int(ct.End.X*scale)
		y1 := r.Min.Y + int(ct.End.Y*scale)
		drawLine(img, x0, y0, x1, y1, rgba(ct.Stroke))
	}
}

func pixelRect(r geom.Rect, scale float32) image.Rectangle {
	return image.Rect(
		int(r.X*scale), int(r.Y*scale),
		int((r.X+r.W)*scale), int((r.Y+r.H)*scale),
	)
}

func rgba(c canvas.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// drawPhoto decodes the source and scales it into dst per the scale
// mode. Unreadable files degrade to a placeholder frame.
func drawPhoto(img *image.RGBA, path string, dst image.Rectangle, mode canvas.ScaleMode) {
	f, err := os.Open(path)
	if err != nil {
		strokeRect(img, dst, color.RGBA{R: 190, G: 190, B: 190, A: 255})
		return
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		strokeRect(img, dst, color.RGBA{R: 190, G: 190, B: 190, A: 255})
		return
	}

	sb := src.Bounds()
	target := dst
	if mode != canvas.ScaleStretch {
		fit := geom.R(0, 0, float32(sb.Dx()), float32(sb.Dy()))
		frame := geom.R(
			float32(dst.Min.X), float32(dst.Min.Y),
			float32(dst.Dx()), float32(dst.Dy()),
		)
		placed := fit.FitAndCenterWithin(frame)
		if mode == canvas.ScaleFill {
			// Cover: scale the fitted rect up so the frame is filled.
			factor := max(frame.W/placed.W, frame.H/placed.H)
			placed = geom.FromCenterSize(frame.Center(), geom.Size{W: placed.W * factor, H: placed.H * factor})
		}
		target = image.Rect(
			int(placed.X), int(placed.Y),
			int(placed.X+placed.W), int(placed.Y+placed.H),
		)
	}

	clipped := img.SubImage(dst).(*image.RGBA)
	xdraw.ApproxBiLinear.Scale(clipped, target, src, sb, draw.Over, nil)
}

func strokeRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		setPixel(img, x, r.Min.Y, col)
		setPixel(img, x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		setPixel(img, r.Min.X, y, col)
		setPixel(img, r.Max.X-1, y, col)
	}
}

func drawEllipse(img *image.RGBA, r image.Rectangle, s canvas.EllipseShape) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	fill := rgba(s.Fill)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				if s.Fill.A > 0 {
					setPixel(img, x, y, fill)
				}
			}
		}
	}
}

// drawLine is an integer Bresenham walk.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setPixel(img, x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawLabel(img *image.RGBA, text string, col color.RGBA, r image.Rectangle) {
	if text == "" {
		return
	}
	d := font.Drawer{
		Dst:  img.SubImage(r).(*image.RGBA),
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X+2, r.Min.Y+13),
	}
	d.DrawString(text)
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
