/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package model

import (
	"math"
	"testing"
)

func relClose(a, b float32) bool {
	if b == 0 {
		return math.Abs(float64(a)) < 1e-4
	}
	return math.Abs(float64((a-b)/b)) < 1e-4
}

func TestSizePixels(t *testing.T) {
	cases := []struct {
		page Page
		w, h float32
	}{
		{Page{Width: 8, Height: 8, PPI: 300, Unit: UnitInches}, 2400, 2400},
		{Page{Width: 11, Height: 8, PPI: 300, Unit: UnitInches}, 3300, 2400},
		{Page{Width: 2.54, Height: 5.08, PPI: 100, Unit: UnitCentimeters}, 100, 200},
		{Page{Width: 640, Height: 480, PPI: 300, Unit: UnitPixels}, 640, 480},
	}
	for _, c := range cases {
		px := c.page.SizePixels()
		if !relClose(px.W, c.w) || !relClose(px.H, c.h) {
			t.Fatalf("SizePixels(%+v) = %+v, want %gx%g", c.page, px, c.w, c.h)
		}
	}
}

func TestSetUnitPreservesPixelSize(t *testing.T) {
	units := []Unit{UnitPixels, UnitInches, UnitCentimeters}
	base := Page{Width: 8, Height: 11, PPI: 300, Unit: UnitInches}
	for _, u := range units {
		p := base
		before := p.SizePixels()
		p.SetUnit(u)
		after := p.SizePixels()
		if !relClose(after.W, before.W) || !relClose(after.H, before.H) {
			t.Fatalf("pixel size changed converting to %v: %+v != %+v", u, after, before)
		}
		p.SetUnit(base.Unit)
		if !relClose(p.Width, base.Width) || !relClose(p.Height, base.Height) {
			t.Fatalf("round trip via %v drifted: %+v", u, p)
		}
	}
}

func TestNewPageValidation(t *testing.T) {
	if _, err := NewPage(0, 8, 300, UnitInches); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := NewPage(8, 8, 0, UnitInches); err == nil {
		t.Fatalf("expected error for zero ppi")
	}
	if _, err := NewPage(8, 8, 300, UnitInches); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	p := Page{Width: 8, Height: 8, PPI: 300, Unit: UnitInches}
	pr, ok := PresetByName("12 x 12 in")
	if !ok {
		t.Fatalf("preset missing")
	}
	p.ApplyPreset(pr)
	if p.Width != 12 || p.Height != 12 || p.Unit != UnitInches || p.PPI != 300 {
		t.Fatalf("unexpected page after preset: %+v", p)
	}
	px := p.SizePixels()
	if px.W != 3600 || px.H != 3600 {
		t.Fatalf("expected 3600x3600 px, got %+v", px)
	}
}

func TestUnitJSONRoundTrip(t *testing.T) {
	for _, u := range []Unit{UnitPixels, UnitInches, UnitCentimeters} {
		data, err := u.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got Unit
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != u {
			t.Fatalf("round trip mismatch: %v != %v", got, u)
		}
	}
	var u Unit
	if err := u.UnmarshalJSON([]byte(`"furlongs"`)); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}
