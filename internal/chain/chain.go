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

// Style selects the connector drawn between two ornaments.
type Style uint8

const (
	Closed Style = iota // four arcs hugging both ornaments
	Open                // two arcs leaving a gap
)

// StyleFor maps the parity flag onto a connector style.
func StyleFor(parity bool) Style {
	if parity {
		return Open
	}
	return Closed
}

func (s Style) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Group is one chain link in its local frame. Origin and Rotation
// (degrees) describe the frame for document output, Link.Frame() gives
// the same frame as a matrix.
type Group struct {
	Link      Link
	Style     Style
	Origin    vector.Pt
	Rotation  float64
	Ornament  Ornament
	Connector vector.Path
}

// Chain is the output of one walk: link groups in traversal order and a
// final ornament, in global coordinates, at the last captured anchor.
type Chain struct {
	Groups    []Group
	Final     Ornament
	Anchor    vector.Pt
	EndParity bool
}

// Paths flattens the chain into global-coordinate paths in drawing order.
func (c Chain) Paths() []vector.Path {
	out := make([]vector.Path, 0, 3*len(c.Groups)+2)
	for _, g := range c.Groups {
		m := g.Link.Frame()
		for _, p := range g.Ornament.Paths() {
			out = append(out, p.Transform(m))
		}
		out = append(out, g.Connector.Transform(m))
	}
	return append(out, c.Final.Paths()...)
}

// Build walks c and emits one link group per captured anchor pair,
// alternating connector styles starting from parity. A geometry error
// aborts the walk and no partial chain is returned.
func Build(c vector.Cubic, parity bool, cfg Config) (Chain, error) {
	l := applog.WithOperation(applog.WithComponent("chain"), "build")
	r := cfg.OrnamentRadius
	var out Chain
	for capt := range NewWalker(cfg).Captures(c) {
		out.Anchor = capt.Leading
		if !capt.IsLink() {
			continue
		}
		link, err := measure(capt, r)
		if err != nil {
			l.Debug("link rejected", slog.Int("link", capt.Seq), slog.Any("err", err))
			return Chain{}, err
		}
		g := Group{
			Link:     link,
			Style:    StyleFor(parity),
			Origin:   link.Trailing,
			Rotation: vector.Degrees(link.Angle) + 180,
			Ornament: NewOrnament(vector.Pt{}, r),
		}
		if parity {
			g.Connector = openConnector(link, r, cfg)
		} else {
			g.Connector = closedConnector(link, r, cfg)
		}
		parity = !parity
		out.Groups = append(out.Groups, g)
	}
	out.Final = NewOrnament(out.Anchor, r)
	out.EndParity = parity
	l.Debug("chain built", slog.Int("links", len(out.Groups)), slog.Bool("end_parity", parity))
	return out, nil
}

// closedConnector hugs both ornaments with two outer arcs of the fudged
// radius and two inner arcs of the tangent circles.
func closedConnector(k Link, r float64, cfg Config) vector.Path {
	sin, cos := math.Sincos(k.Theta)
	r1 := r * cfg.FudgeRatio
	r2 := r
	mid := r + k.D/2
	far := 2*r + k.D

	var p vector.Path
	p.MoveTo(vector.P(cos*r1, -sin*r1))
	p.ArcTo(r1, r1, 0, false, true, vector.P(cos*r1, sin*r1))
	p.LineTo(vector.P(mid-cos*r2, k.H-sin*r2))
	p.ArcTo(r2, r2, 0, false, true, vector.P(mid+cos*r2, k.H-sin*r2))
	p.LineTo(vector.P(far-cos*r1, sin*r1))
	p.ArcTo(r1, r1, 0, false, true, vector.P(far-cos*r1, -sin*r1))
	p.LineTo(vector.P(mid+cos*r2, -k.H+sin*r2))
	p.ArcTo(r2, r2, 0, false, true, vector.P(mid-cos*r2, -k.H+sin*r2))
	return p
}

// openConnector uses the fixed gap angle instead of the tangency angle.
func openConnector(k Link, r float64, cfg Config) vector.Path {
	sin, cos := math.Sincos(cfg.GapAngle)
	r1 := r * cfg.GapRatio
	far := 2*r + k.D

	var p vector.Path
	p.MoveTo(vector.P(cos*r1, -sin*r1))
	p.ArcTo(r1, r1, 0, false, true, vector.P(cos*r1, sin*r1))
	p.LineTo(vector.P(far-cos*r1, sin*r1))
	p.ArcTo(r1, r1, 0, false, true, vector.P(far-cos*r1, -sin*r1))
	return p
}
