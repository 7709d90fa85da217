/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package logo

import (
	"math"

	"geareye/internal/vector"
)

// Gear traces a toothed outline around center. Each tooth spans a third
// of its pitch on the minor circle, rises radially and runs half a pitch
// on the major circle.
func Gear(center vector.Pt, minor, major float64, teeth int) vector.Path {
	var p vector.Path
	if teeth < 1 {
		return p
	}
	at := func(r, deg float64) vector.Pt {
		s, c := math.Sincos(vector.Radians(deg))
		return vector.P(center.X+r*c, center.Y+r*s)
	}
	step := 360 / float64(teeth)
	for i := 0; i < teeth; i++ {
		deg := float64(i) * step
		alpha := deg + step/3
		beta := deg + step*5/6
		gamma := deg + step*4/3
		if i == 0 {
			p.MoveTo(at(minor, alpha))
		} else {
			p.LineTo(at(minor, alpha))
		}
		p.ArcTo(minor, minor, 0, false, true, at(minor, beta))
		p.LineTo(at(major, beta))
		p.ArcTo(major, major, 0, false, true, at(major, gamma))
	}
	p.Close()
	return p
}
