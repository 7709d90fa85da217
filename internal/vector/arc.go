/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// ArcToCubics converts an SVG endpoint arc into cubic Bézier segments of at
// most 90° each. The conversion follows the arc implementation notes of
// the SVG specification: out-of-range radii are scaled up until the arc
// fits, and zero radii degrade to a straight segment.
func ArcToCubics(from Pt, rx, ry, rotDeg float64, large, sweep bool, to Pt) []Cubic {
	if from == to {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []Cubic{{from, from.Lerp(to, 1.0/3), from.Lerp(to, 2.0/3), to}}
	}

	sinPhi, cosPhi := math.Sincos(Radians(rotDeg))
	dx2 := (from.X - to.X) / 2
	dy2 := (from.Y - to.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math.Sqrt(max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	center := Pt{
		X: cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2,
		Y: sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2,
	}

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := vecAngle(1, 0, ux, uy)
	delta := vecAngle(ux, uy, vx, vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	arm := (4.0 / 3.0) * math.Tan(step/4)

	point := func(a float64) Pt {
		s, c := math.Sincos(a)
		u, v := rx*c, ry*s
		return Pt{center.X + cosPhi*u - sinPhi*v, center.Y + sinPhi*u + cosPhi*v}
	}
	tangent := func(a float64) Pt {
		s, c := math.Sincos(a)
		u, v := -rx*s, ry*c
		return Pt{cosPhi*u - sinPhi*v, sinPhi*u + cosPhi*v}
	}

	out := make([]Cubic, 0, n)
	p0 := from
	a0 := theta
	for i := 0; i < n; i++ {
		a1 := a0 + step
		p3 := point(a1)
		if i == n-1 {
			p3 = to
		}
		out = append(out, Cubic{
			P0: p0,
			P1: p0.Add(tangent(a0).Mul(arm)),
			P2: p3.Sub(tangent(a1).Mul(arm)),
			P3: p3,
		})
		p0, a0 = p3, a1
	}
	return out
}

// vecAngle returns the signed angle from u to v.
func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
