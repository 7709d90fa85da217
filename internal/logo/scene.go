/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package logo

import (
	"strconv"
	"strings"

	"geareye/internal/vector"
)

// Scene is a resolution-independent description of the logo document.
// Exporters walk it; nothing in it is format specific.
type Scene struct {
	Width, Height float64
	Gradients     []Gradient
	Clips         []ClipDef
	Nodes         []Node
}

// Gradient is a linear gradient in object bounding box units.
type Gradient struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Stops          []Stop
}

type Stop struct {
	Offset float64 // 0..1
	Color  vector.Color
}

// At returns the gradient color at parameter t along the gradient vector.
func (g Gradient) At(t float64) vector.Color {
	if len(g.Stops) == 0 {
		return vector.Transparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			if b.Offset == a.Offset {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/(b.Offset-a.Offset))
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// ClipDef is a clip region in the user space of the node that references it.
type ClipDef struct {
	ID   string
	Path vector.Path
}

type PaintKind uint8

const (
	Inherit PaintKind = iota
	SolidPaint
	GradientPaint
)

// Paint is a fill. The zero value inherits the parent fill.
type Paint struct {
	Kind     PaintKind
	Color    vector.Color
	Gradient string // gradient id for GradientPaint
}

func Solid(c vector.Color) Paint  { return Paint{Kind: SolidPaint, Color: c} }
func GradientRef(id string) Paint { return Paint{Kind: GradientPaint, Gradient: id} }

// Attr returns the SVG fill attribute value.
func (p Paint) Attr() string {
	switch p.Kind {
	case SolidPaint:
		return p.Color.Hex()
	case GradientPaint:
		return "url(#" + p.Gradient + ")"
	}
	return ""
}

type OpKind uint8

const (
	OpTranslate OpKind = iota
	OpRotate // degrees
	OpScale
)

// TransformOp is one entry of an SVG transform list.
type TransformOp struct {
	Kind OpKind
	A, B float64
}

// Transform is an ordered transform list, applied right to left to points.
type Transform []TransformOp

func Translate(x, y float64) TransformOp { return TransformOp{Kind: OpTranslate, A: x, B: y} }
func Rotate(deg float64) TransformOp     { return TransformOp{Kind: OpRotate, A: deg} }
func Scale(x, y float64) TransformOp     { return TransformOp{Kind: OpScale, A: x, B: y} }

// Matrix composes the list into one matrix.
func (t Transform) Matrix() vector.Mat3 {
	m := vector.Identity
	for _, op := range t {
		switch op.Kind {
		case OpTranslate:
			m = m.Mul(vector.Translate(op.A, op.B))
		case OpRotate:
			m = m.Mul(vector.Rotate(vector.Radians(op.A)))
		case OpScale:
			m = m.Mul(vector.Scale(op.A, op.B))
		}
	}
	return m
}

// String formats the list as an SVG transform attribute value.
func (t Transform) String() string {
	parts := make([]string, 0, len(t))
	for _, op := range t {
		switch op.Kind {
		case OpTranslate:
			parts = append(parts, "translate("+num(op.A)+" "+num(op.B)+")")
		case OpRotate:
			parts = append(parts, "rotate("+num(op.A)+")")
		case OpScale:
			parts = append(parts, "scale("+num(op.A)+" "+num(op.B)+")")
		}
	}
	return strings.Join(parts, " ")
}

func num(v float64) string { return strconv.FormatFloat(vector.FloatRound(v, 6), 'f', -1, 64) }

// Node is a group when Path is empty and a shape otherwise. Children are
// drawn in order after the node's own path.
type Node struct {
	Transform Transform
	Fill      Paint
	Clip      string // id of a ClipDef
	Path      vector.Path
	Children  []Node
}

// ClipRef is a clip in effect for a drawable, with the matrix of the
// user space it was referenced from.
type ClipRef struct {
	ID     string
	Matrix vector.Mat3
}

// Drawable is a resolved shape: its local path, the full matrix to
// document space, the inherited fill and every clip of its ancestors.
type Drawable struct {
	Path   vector.Path
	Matrix vector.Mat3
	Fill   Paint
	Clips  []ClipRef
}

// Walk visits every shape in document order. It stops at the first error.
func (s Scene) Walk(fn func(Drawable) error) error {
	var visit func(n Node, parent vector.Mat3, fill Paint, clips []ClipRef) error
	visit = func(n Node, parent vector.Mat3, fill Paint, clips []ClipRef) error {
		m := parent.Mul(n.Transform.Matrix())
		if n.Fill.Kind != Inherit {
			fill = n.Fill
		}
		if n.Clip != "" {
			clips = append(clips[:len(clips):len(clips)], ClipRef{ID: n.Clip, Matrix: m})
		}
		if !n.Path.Empty() {
			if err := fn(Drawable{Path: n.Path, Matrix: m, Fill: fill, Clips: clips}); err != nil {
				return err
			}
		}
		for _, c := range n.Children {
			if err := visit(c, m, fill, clips); err != nil {
				return err
			}
		}
		return nil
	}
	for _, n := range s.Nodes {
		if err := visit(n, vector.Identity, Solid(vector.Black), nil); err != nil {
			return err
		}
	}
	return nil
}

func (s Scene) Gradient(id string) (Gradient, bool) {
	for _, g := range s.Gradients {
		if g.ID == id {
			return g, true
		}
	}
	return Gradient{}, false
}

func (s Scene) Clip(id string) (ClipDef, bool) {
	for _, c := range s.Clips {
		if c.ID == id {
			return c, true
		}
	}
	return ClipDef{}, false
}
