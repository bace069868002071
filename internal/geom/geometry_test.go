/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

func TestUnion(t *testing.T) {
	r := R(0, 0, 10, 10).Union(R(5, 5, 20, 20))
	if r.X != 0 || r.Y != 0 || r.W != 25 || r.H != 25 {
		t.Fatalf("unexpected union %+v", r)
	}
}

func TestFitAndCenterWithinLandscapeIntoSquare(t *testing.T) {
	r := R(0, 0, 200, 100)
	target := R(0, 0, 100, 100)
	f := r.FitAndCenterWithin(target)
	if !approx(f.W, 100) || !approx(f.H, 50) {
		t.Fatalf("unexpected fitted size %+v", f)
	}
	if !approx(f.Y, 25) || !approx(f.X, 0) {
		t.Fatalf("not centered: %+v", f)
	}
	if !target.ContainsRect(f, 1e-3) {
		t.Fatalf("fitted rect escapes target: %+v", f)
	}
}

func TestFitAndCenterWithinPreservesAspect(t *testing.T) {
	cases := []struct{ rw, rh, tw, th float32 }{
		{100, 100, 50, 200},
		{30, 90, 400, 400},
		{1, 3, 10, 1},
	}
	for _, c := range cases {
		f := R(0, 0, c.rw, c.rh).FitAndCenterWithin(R(10, 10, c.tw, c.th))
		if !approx(f.W/f.H, c.rw/c.rh) {
			t.Fatalf("aspect not preserved for %+v: got %+v", c, f)
		}
	}
}

func TestRotatedBoundsAround(t *testing.T) {
	r := R(0, 0, 10, 10)
	b := RotatedBoundsAround(r, float32(math.Pi/2), r.Center())
	if !approx(b.X, 0) || !approx(b.Y, 0) || !approx(b.W, 10) || !approx(b.H, 10) {
		t.Fatalf("square rotated 90 deg about center should keep bounds, got %+v", b)
	}
	b = RotatedBoundsAround(R(0, 0, 20, 10), float32(math.Pi/2), Pt{10, 5})
	if !approx(b.W, 10) || !approx(b.H, 20) {
		t.Fatalf("rotated bounds should swap extents, got %+v", b)
	}
}

func TestAffineComposition(t *testing.T) {
	m := Translate(5, 0).Mul(Rotate(float32(math.Pi / 2)))
	p := m.Apply(Pt{1, 0})
	if !approx(p.X, 5) || !approx(p.Y, 1) {
		t.Fatalf("unexpected transform result %+v", p)
	}
}

func TestFromMinMax(t *testing.T) {
	r := FromMinMax(Pt{10, 20}, Pt{0, 5})
	if r.X != 0 || r.Y != 5 || r.W != 10 || r.H != 15 {
		t.Fatalf("unexpected rect %+v", r)
	}
}
