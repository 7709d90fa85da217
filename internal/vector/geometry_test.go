/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
	u := r.Union(R(0, 0, 5, 5))
	if u.X != 0 || u.Y != 0 || u.W != 110 || u.H != 70 {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestMat3_FullProduct(t *testing.T) {
	a := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	b := Mat3{{8, 4, 2}, {5, 7, 3}, {1, 9, 6}}
	want := Mat3{{21, 45, 26}, {63, 105, 59}, {105, 165, 92}}
	if got := a.Mul(b); got != want {
		t.Fatalf("product mismatch: got %v want %v", got, want)
	}
	if p := a.Apply(Pt{7, 11}); p != (Pt{32, 89}) {
		t.Fatalf("apply mismatch: %+v", p)
	}
}

func TestMat3_ComposeThenApply(t *testing.T) {
	mats := []Mat3{
		Translate(271, 168),
		Rotate(math.Pi + 0.7),
		Scale(-1, 1),
		Translate(700, 0).Mul(Scale(-1, 1)),
	}
	pts := []Pt{{0, 0}, {7, 11}, {-9.5, 3.25}, {300, 168}}
	for i, a := range mats {
		for j, b := range mats {
			ab := a.Mul(b)
			for _, p := range pts {
				got := ab.Apply(p)
				want := a.Apply(b.Apply(p))
				if got.Dist(want) > 1e-9 {
					t.Fatalf("mats[%d]*mats[%d] apply %v: got %v want %v", i, j, p, got, want)
				}
			}
		}
	}
}

func TestRotate_QuarterTurn(t *testing.T) {
	p := Rotate(math.Pi / 2).Apply(Pt{1, 0})
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Fatalf("unexpected rotation: %+v", p)
	}
	if d := Rotate(0.3).Det2(); math.Abs(d-1) > 1e-12 {
		t.Fatalf("rotation should preserve area, det=%v", d)
	}
	if Scale(-1, 1).Det2() >= 0 {
		t.Fatalf("mirror should have negative determinant")
	}
}

func TestCubic_EndpointsExact(t *testing.T) {
	curves := []Cubic{
		{P(271, 168), P(223, 89), P(107, 32), P(22, 98)},
		{P(5, 5), P(-3, 40), P(60, 1e-7), P(5, 5)}, // identical endpoints
	}
	for _, c := range curves {
		if got := c.Eval(0); got != c.P0 {
			t.Fatalf("B(0) = %v, want %v", got, c.P0)
		}
		if got := c.Eval(1); got != c.P3 {
			t.Fatalf("B(1) = %v, want %v", got, c.P3)
		}
	}
}

func TestCubic_ChordLengthOfLine(t *testing.T) {
	c := Cubic{P(0, 0), P(100.0/3, 0), P(200.0/3, 0), P(100, 0)}
	if l := c.ChordLength(5000); math.Abs(l-100) > 1e-9 {
		t.Fatalf("expected length 100, got %v", l)
	}
	moved := c.Transform(Translate(3, 4))
	if moved.P0 != P(3, 4) || moved.P3 != P(103, 4) {
		t.Fatalf("unexpected transformed curve: %+v", moved)
	}
}

func TestMat3_Invert(t *testing.T) {
	m := Translate(700, 0).Mul(Scale(-1, 1)).Mul(Rotate(0.3)).Mul(Scale(2, 2))
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible matrix")
	}
	p := Pt{12.5, -3}
	q := inv.Apply(m.Apply(p))
	if math.Abs(q.X-p.X) > 1e-9 || math.Abs(q.Y-p.Y) > 1e-9 {
		t.Fatalf("round trip: got %+v want %+v", q, p)
	}
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Fatalf("singular matrix reported invertible")
	}
}
