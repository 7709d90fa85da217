/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for resolution-independent drawing.
// Values are float64 so generated path data keeps full precision.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// P returns the point (x, y).
func P(x, y float64) Pt { return Pt{X: x, Y: y} }

func (p Pt) Add(q Pt) Pt             { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt             { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Mul(f float64) Pt        { return Pt{p.X * f, p.Y * f} }
func (p Pt) Lerp(q Pt, t float64) Pt { return Pt{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t} }

// Dist returns the euclidean distance between p and q.
// It is computed as sqrt(dx²+dy²) rather than math.Hypot so chord sums
// match the plain formula bit for bit.
func (p Pt) Dist(q Pt) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Mat3 is a 3×3 matrix in row-major order. Affine transforms keep the
// bottom row at (0 0 1):
//
//	| a b c |
//	| d e f |
//	| 0 0 1 |
//
// The convention is (A.Mul(B)).Apply(p) == A.Apply(B.Apply(p)).
type Mat3 [3][3]float64

var Identity = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Mul returns the full matrix product m×n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// Apply transforms p as the homogeneous vector (x, y, 1). The bottom row
// is ignored, so projective matrices are treated as affine.
func (m Mat3) Apply(p Pt) Pt {
	return Pt{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// Det2 returns the determinant of the linear part.
func (m Mat3) Det2() float64 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }

// Invert returns the inverse of an affine matrix. ok is false when the
// linear part is singular.
func (m Mat3) Invert() (inv Mat3, ok bool) {
	det := m.Det2()
	if det == 0 {
		return Mat3{}, false
	}
	a, b, c := m[0][0]/det, m[0][1]/det, m[0][2]
	d, e, f := m[1][0]/det, m[1][1]/det, m[1][2]
	inv = Mat3{
		{e, -b, b*f - e*c},
		{-d, a, d*c - a*f},
		{0, 0, 1},
	}
	return inv, true
}

// Translation returns the translation column.
func (m Mat3) Translation() Pt { return Pt{m[0][2], m[1][2]} }

func Translate(tx, ty float64) Mat3 { return Mat3{{1, 0, tx}, {0, 1, ty}, {0, 0, 1}} }
func Scale(sx, sy float64) Mat3     { return Mat3{{sx, 0, 0}, {0, sy, 0}, {0, 0, 1}} }

// Rotate returns a rotation by rad radians. In the y-down coordinate system
// of SVG, positive angles turn clockwise.
func Rotate(rad float64) Mat3 {
	s, c := math.Sincos(rad)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
