/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chain

import (
	"iter"

	"geareye/internal/vector"
)

// Capture is one threshold crossing of the arc-length walk.
//
// The first capture of a walk has Seq 0 and only records its anchor in
// Leading. Every later capture is a link between the previous anchor
// (Trailing) and the new one (Leading), numbered from 1.
type Capture struct {
	Seq      int
	T        float64
	Trailing vector.Pt
	Leading  vector.Pt
}

// IsLink reports whether the capture joins two anchors.
func (c Capture) IsLink() bool { return c.Seq > 0 }

// Walker samples a cubic at uniform t and captures anchors at roughly
// uniform chord-length intervals. Chord sums approximate arc length; the
// approximation is part of the output geometry and must not be refined.
type Walker struct {
	Spacing    float64
	Iterations int
}

func NewWalker(cfg Config) Walker {
	return Walker{Spacing: cfg.Spacing, Iterations: cfg.IterationCount}
}

// Captures yields the captures of one walk over c in traversal order.
func (w Walker) Captures(c vector.Cubic) iter.Seq[Capture] {
	return func(yield func(Capture) bool) {
		n := max(w.Iterations, 1)
		last := c.P0
		var length, goal float64
		var lead vector.Pt
		seq := -1
		for i := 1; i <= n; i++ {
			t := float64(i) / float64(n)
			p := c.Eval(t)
			length += p.Dist(last)
			last = p
			if length < goal {
				continue
			}
			goal += w.Spacing
			seq++
			capt := Capture{Seq: seq, T: t, Leading: p}
			if seq > 0 {
				capt.Trailing = lead
			}
			lead = p
			if !yield(capt) {
				return
			}
		}
	}
}

// Anchors returns every captured anchor, including the first one.
func (w Walker) Anchors(c vector.Cubic) []vector.Pt {
	var out []vector.Pt
	for capt := range w.Captures(c) {
		out = append(out, capt.Leading)
	}
	return out
}
