/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chain

import (
	"log/slog"
	"math"

	applog "geareye/internal/log"
	"geareye/internal/vector"
)

// BuildClipOutline traces one continuous outline around the chain of c,
// skipping the first cfg.ClipSkip links, and finishes with straight lines
// to each of the extra points.
//
// Every link contributes a bump around its trailing ornament. Adjacent
// bumps are oriented by their own link direction only, so the first and
// last arcs of neighbouring links overlap slightly.
func BuildClipOutline(c vector.Cubic, cfg Config, extra []vector.Pt) (vector.Path, error) {
	l := applog.WithOperation(applog.WithComponent("chain"), "clip")
	r := cfg.OrnamentRadius
	cr := cfg.ClipCircleRadius
	r1 := cfg.ClipOuterRadius
	r2 := cfg.ClipInnerRadius

	var out vector.Path
	links := 0
	for capt := range NewWalker(cfg).Captures(c) {
		if !capt.IsLink() || capt.Seq <= cfg.ClipSkip {
			continue
		}
		k, err := measure(capt, r)
		if err != nil {
			l.Debug("link rejected", slog.Int("link", capt.Seq), slog.Any("err", err))
			return vector.Path{}, err
		}
		m := k.Frame()
		sin, cos := math.Sincos(k.Theta)
		q := [6]vector.Pt{
			m.Apply(vector.P(0, -r1)),
			m.Apply(vector.P(cos*r1, -sin*r1)),
			m.Apply(vector.P(cr+k.D/2-cos*r2, -k.H+sin*r2)),
			m.Apply(vector.P(cr+k.D/2+cos*r2, -k.H+sin*r2)),
			m.Apply(vector.P(2*cr+k.D-cos*r1, -sin*r1)),
			m.Apply(vector.P(2*cr+k.D, -r1)),
		}
		if out.Empty() {
			out.MoveTo(q[0])
		} else {
			out.LineTo(q[0])
		}
		out.ArcTo(r1, r1, 0, false, true, q[1])
		out.LineTo(q[2])
		out.ArcTo(r2, r2, 0, false, false, q[3])
		out.LineTo(q[4])
		out.ArcTo(r1, r1, 0, false, true, q[5])
		links++
	}
	for _, p := range extra {
		if out.Empty() {
			out.MoveTo(p)
			continue
		}
		out.LineTo(p)
	}
	l.Debug("clip outline built", slog.Int("links", links), slog.Int("cmds", out.Len()))
	return out, nil
}
