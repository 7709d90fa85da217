/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chain

import (
	"math"

	"geareye/internal/vector"
)

// Link is the measured geometry between two consecutive anchors.
type Link struct {
	Index    int
	Trailing vector.Pt
	Leading  vector.Pt
	Angle    float64 // radians, direction from leading back to trailing
	D        float64 // gap between the ornament outer edges
	H        float64 // height of the tangency point above the axis
	Theta    float64 // tangency angle atan2(h, r + d/2)
}

// Frame returns the local frame of the link: origin at the trailing
// anchor, +x pointing at the leading anchor.
func (l Link) Frame() vector.Mat3 {
	return vector.Translate(l.Trailing.X, l.Trailing.Y).Mul(vector.Rotate(math.Pi + l.Angle))
}

// measure computes the link geometry for ornaments of radius r. It fails
// when the anchors are too close for the ornaments to stay apart or too
// far for the tangent circles to meet.
func measure(c Capture, r float64) (Link, error) {
	angle := math.Atan2(c.Trailing.Y-c.Leading.Y, c.Trailing.X-c.Leading.X)
	d := c.Leading.Dist(c.Trailing) - 2*r
	half := r + d/2
	h2 := 4*r*r - half*half
	if d < 0 || h2 < 0 {
		return Link{}, &GeometryError{Link: c.Seq, D: d, H2: h2}
	}
	h := math.Sqrt(h2)
	return Link{
		Index:    c.Seq,
		Trailing: c.Trailing,
		Leading:  c.Leading,
		Angle:    angle,
		D:        d,
		H:        h,
		Theta:    math.Atan2(h, half),
	}, nil
}
