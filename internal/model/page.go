/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package model holds the page model and small value helpers shared by the
// canvas and the project codec.
package model

import (
	"encoding/json"
	"fmt"

	"photobook/internal/geom"
)

// Unit is the measurement unit of page dimensions.
type Unit int

const (
	UnitPixels Unit = iota
	UnitInches
	UnitCentimeters
)

const cmPerInch = 2.54

func (u Unit) String() string {
	switch u {
	case UnitPixels:
		return "pixels"
	case UnitInches:
		return "inches"
	case UnitCentimeters:
		return "centimeters"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// MarshalJSON encodes the unit as its name.
func (u Unit) MarshalJSON() ([]byte, error) { return json.Marshal(u.String()) }

// UnmarshalJSON decodes a unit name.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "pixels":
		*u = UnitPixels
	case "inches":
		*u = UnitInches
	case "centimeters":
		*u = UnitCentimeters
	default:
		return fmt.Errorf("unknown unit %q", s)
	}
	return nil
}

// Page is the logical document unit: dimensions in a unit plus pixel density.
type Page struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	PPI    int     `json:"ppi"`
	Unit   Unit    `json:"unit"`
}

// DefaultPPI is used when no project setting overrides it.
const DefaultPPI = 300

// DefaultPage is an 8 x 8 inch square page at the default density.
func DefaultPage() Page {
	return Page{Width: 8, Height: 8, PPI: DefaultPPI, Unit: UnitInches}
}

// NewPage validates dimensions and density.
func NewPage(width, height float32, ppi int, unit Unit) (Page, error) {
	if width <= 0 || height <= 0 {
		return Page{}, fmt.Errorf("page dimensions must be positive, got %gx%g", width, height)
	}
	if ppi <= 0 {
		return Page{}, fmt.Errorf("page ppi must be positive, got %d", ppi)
	}
	return Page{Width: width, Height: height, PPI: ppi, Unit: unit}, nil
}

// pixelsPerUnit returns the pixel count of one unit at the page's density.
func (p Page) pixelsPerUnit() float32 {
	switch p.Unit {
	case UnitInches:
		return float32(p.PPI)
	case UnitCentimeters:
		return float32(p.PPI) / cmPerInch
	default:
		return 1
	}
}

// SizePixels returns the page dimensions in pixels.
func (p Page) SizePixels() geom.Size {
	ppu := p.pixelsPerUnit()
	return geom.Size{W: p.Width * ppu, H: p.Height * ppu}
}

// SizeInches returns the page dimensions in inches.
func (p Page) SizeInches() geom.Size {
	px := p.SizePixels()
	return geom.Size{W: px.W / float32(p.PPI), H: px.H / float32(p.PPI)}
}

// AspectRatio is width over height.
func (p Page) AspectRatio() float32 {
	if p.Height == 0 {
		return 1
	}
	return p.Width / p.Height
}

// SetUnit re-expresses the dimensions in the new unit, preserving the pixel
// size.
func (p *Page) SetUnit(u Unit) {
	if p.Unit == u {
		return
	}
	px := p.SizePixels()
	p.Unit = u
	ppu := p.pixelsPerUnit()
	p.Width = px.W / ppu
	p.Height = px.H / ppu
}

// SetPPI changes the density. Pixel dimensions scale with it; unit dimensions
// stay fixed.
func (p *Page) SetPPI(ppi int) {
	if ppi > 0 {
		p.PPI = ppi
	}
}
