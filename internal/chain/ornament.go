/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chain

import "geareye/internal/vector"

// Ornament is the ring-and-dot motif drawn at every anchor.
type Ornament struct {
	Ring vector.Path // annulus: outer circle plus an opposite-winding inner circle
	Dot  vector.Path
}

// NewOrnament builds the motif of outer radius r around center.
func NewOrnament(center vector.Pt, r float64) Ornament {
	ring := vector.Circle(center, r, true)
	ring.Append(vector.Circle(center, 0.4*r, false))
	return Ornament{
		Ring: ring,
		Dot:  vector.Circle(center, 0.25*r, true),
	}
}

// Paths returns the ring and the dot in drawing order.
func (o Ornament) Paths() []vector.Path { return []vector.Path{o.Ring, o.Dot} }

func (o Ornament) Transform(m vector.Mat3) Ornament {
	return Ornament{Ring: o.Ring.Transform(m), Dot: o.Dot.Transform(m)}
}
