/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Circle returns a closed circle around c as two semicircular arcs. A
// single 360° arc cannot be expressed because its endpoints coincide.
// The sweep flag selects the winding, so a circle with the opposite sweep
// cuts a hole under the nonzero fill rule.
func Circle(c Pt, r float64, sweep bool) Path {
	var p Path
	left := Pt{c.X - r, c.Y}
	p.MoveTo(left)
	p.ArcTo(r, r, 0, true, sweep, Pt{c.X + r, c.Y})
	p.ArcTo(r, r, 0, true, sweep, left)
	return p
}

// Polygon returns a closed polyline through pts.
func Polygon(pts []Pt) Path {
	var p Path
	for i, q := range pts {
		if i == 0 {
			p.MoveTo(q)
			continue
		}
		p.LineTo(q)
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// RectPath returns r as a closed path.
func RectPath(r Rect) Path {
	return Polygon([]Pt{r.Min(), {r.X + r.W, r.Y}, r.Max(), {r.X, r.Y + r.H}})
}
