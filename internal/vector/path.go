/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"strconv"
	"strings"
)

// Path commands. A Path is an append-only list of typed commands; it is
// only turned into SVG path syntax at the output boundary.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	ArcTo   // elliptical arc (rx, ry, rot, large, sweep, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case ArcTo:
		return "A"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	}
	return "?"
}

type PathCmd struct {
	Op   PathOp
	Data [7]float64 // enough for an arc; unused slots are zero
}

// End returns the end point of the command. Close has none and returns
// the zero point.
func (c PathCmd) End() Pt {
	switch c.Op {
	case MoveTo, LineTo:
		return Pt{c.Data[0], c.Data[1]}
	case ArcTo:
		return Pt{c.Data[5], c.Data[6]}
	case CubicTo:
		return Pt{c.Data[4], c.Data[5]}
	}
	return Pt{}
}

// Arc unpacks an ArcTo command.
func (c PathCmd) Arc() (rx, ry, rot float64, large, sweep bool, to Pt) {
	return c.Data[0], c.Data[1], c.Data[2], c.Data[3] != 0, c.Data[4] != 0, Pt{c.Data[5], c.Data[6]}
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(to Pt) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [7]float64{to.X, to.Y}})
}
func (p *Path) LineTo(to Pt) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [7]float64{to.X, to.Y}})
}

// ArcTo appends an SVG elliptical arc from the current point to to.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, to Pt) {
	p.Cmds = append(p.Cmds, PathCmd{Op: ArcTo, Data: [7]float64{rx, ry, rot, flag(large), flag(sweep), to.X, to.Y}})
}
func (p *Path) CubicTo(c1, c2, to Pt) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [7]float64{c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Append adds all commands of o after the commands of p.
func (p *Path) Append(o Path) { p.Cmds = append(p.Cmds, o.Cmds...) }

func (p Path) Len() int       { return len(p.Cmds) }
func (p Path) Empty() bool    { return len(p.Cmds) == 0 }
func (p Path) Clone() Path    { return Path{Cmds: append([]PathCmd(nil), p.Cmds...)} }
func (p Path) String() string { return p.SVG() }

// Count returns how many commands of the given kind the path holds.
func (p Path) Count(op PathOp) int {
	n := 0
	for _, c := range p.Cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Transform maps the path through m. Arc radii are scaled by the square
// root of the determinant and the sweep flag flips for mirroring
// matrices. This is exact for similarity transforms only; apply other
// matrices to CubicForm instead.
func (p Path) Transform(m Mat3) Path {
	det := m.Det2()
	k := math.Sqrt(math.Abs(det))
	rot := Degrees(math.Atan2(m[1][0], m[0][0]))
	out := Path{Cmds: make([]PathCmd, 0, len(p.Cmds))}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			out.MoveTo(m.Apply(c.End()))
		case LineTo:
			out.LineTo(m.Apply(c.End()))
		case ArcTo:
			rx, ry, r, large, sweep, to := c.Arc()
			if det < 0 {
				sweep = !sweep
			}
			if rx != ry {
				r += rot
			}
			out.ArcTo(rx*k, ry*k, r, large, sweep, m.Apply(to))
		case CubicTo:
			out.CubicTo(m.Apply(Pt{c.Data[0], c.Data[1]}), m.Apply(Pt{c.Data[2], c.Data[3]}), m.Apply(c.End()))
		case Close:
			out.Close()
		}
	}
	return out
}

// CubicForm returns an equivalent path with every arc replaced by cubic
// segments, so consumers only need to handle M, L, C and Z.
func (p Path) CubicForm() Path {
	out := Path{Cmds: make([]PathCmd, 0, len(p.Cmds))}
	var cur, start Pt
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			cur, start = c.End(), c.End()
			out.Cmds = append(out.Cmds, c)
		case ArcTo:
			rx, ry, rot, large, sweep, to := c.Arc()
			for _, seg := range ArcToCubics(cur, rx, ry, rot, large, sweep, to) {
				out.CubicTo(seg.P1, seg.P2, seg.P3)
			}
			cur = to
		case Close:
			cur = start
			out.Cmds = append(out.Cmds, c)
		default:
			cur = c.End()
			out.Cmds = append(out.Cmds, c)
		}
	}
	return out
}

// Flatten approximates the path by polylines, one per subpath. Cubic
// segments (including converted arcs) are sampled with steps points.
func (p Path) Flatten(steps int) [][]Pt {
	if steps < 1 {
		steps = 1
	}
	var polys [][]Pt
	var cur []Pt
	flush := func() {
		if len(cur) > 1 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	var last Pt
	for _, c := range p.CubicForm().Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			last = c.End()
			cur = []Pt{last}
		case LineTo:
			if cur == nil {
				cur = []Pt{last}
			}
			last = c.End()
			cur = append(cur, last)
		case CubicTo:
			if cur == nil {
				cur = []Pt{last}
			}
			seg := Cubic{last, Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, c.End()}
			for i := 1; i <= steps; i++ {
				cur = append(cur, seg.Eval(float64(i)/float64(steps)))
			}
			last = seg.P3
		case Close:
			if len(cur) > 0 {
				last = cur[0]
			}
			flush()
		}
	}
	flush()
	return polys
}

// Bounds returns an axis-aligned bounding box of the path using the
// control points of its cubic form. Arcs are converted first, so the box
// hugs circles tightly.
func (p Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(q Pt) {
		minX, minY = min(minX, q.X), min(minY, q.Y)
		maxX, maxY = max(maxX, q.X), max(maxY, q.Y)
	}
	for _, c := range p.CubicForm().Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			grow(c.End())
		case CubicTo:
			grow(Pt{c.Data[0], c.Data[1]})
			grow(Pt{c.Data[2], c.Data[3]})
			grow(c.End())
		case Close:
			// no-op for bounds
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// SVG serializes the path to the SVG path mini-language with absolute
// commands. Coordinates carry six decimals, radii and rotation are
// written in shortest form.
func (p Path) SVG() string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op.String())
		switch c.Op {
		case MoveTo, LineTo:
			writeCoord(&b, c.Data[0], c.Data[1])
		case ArcTo:
			for _, v := range c.Data[:3] {
				b.WriteByte(' ')
				b.WriteString(strconv.FormatFloat(FloatRound(clean(v), 6), 'f', -1, 64))
			}
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(int(c.Data[3])))
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(int(c.Data[4])))
			writeCoord(&b, c.Data[5], c.Data[6])
		case CubicTo:
			writeCoord(&b, c.Data[0], c.Data[1])
			writeCoord(&b, c.Data[2], c.Data[3])
			writeCoord(&b, c.Data[4], c.Data[5])
		}
	}
	return b.String()
}

func writeCoord(b *strings.Builder, x, y float64) {
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(clean(x), 'f', 6, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(clean(y), 'f', 6, 64))
}

// clean folds values that would print as negative zero.
func clean(v float64) float64 {
	if math.Abs(v) < 5e-7 {
		return 0
	}
	return v
}
