/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Cubic is a cubic Bézier curve given by its four control points.
type Cubic struct {
	P0, P1, P2, P3 Pt
}

// CubicOf builds a curve from a control polygon of exactly four points.
func CubicOf(pts [4]Pt) Cubic { return Cubic{pts[0], pts[1], pts[2], pts[3]} }

// Points returns the control polygon.
func (c Cubic) Points() [4]Pt { return [4]Pt{c.P0, c.P1, c.P2, c.P3} }

// Eval returns the point at parameter t in [0, 1].
//
// The Bernstein weights are applied per axis as written, not in Horner
// form, so Eval(0) is exactly P0 and Eval(1) is exactly P3.
func (c Cubic) Eval(t float64) Pt {
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return Pt{
		X: b0*c.P0.X + b1*c.P1.X + b2*c.P2.X + b3*c.P3.X,
		Y: b0*c.P0.Y + b1*c.P1.Y + b2*c.P2.Y + b3*c.P3.Y,
	}
}

// ChordLength approximates the arc length with n equal parameter steps.
func (c Cubic) ChordLength(n int) float64 {
	if n < 1 {
		n = 1
	}
	var total float64
	last := c.P0
	for i := 1; i <= n; i++ {
		p := c.Eval(float64(i) / float64(n))
		total += p.Dist(last)
		last = p
	}
	return total
}

// Transform maps every control point through m. Béziers are affine
// invariant, so the result traces the transformed curve exactly.
func (c Cubic) Transform(m Mat3) Cubic {
	return Cubic{m.Apply(c.P0), m.Apply(c.P1), m.Apply(c.P2), m.Apply(c.P3)}
}
