/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"geareye/internal/logo"
	"geareye/internal/vector"
)

// SVGOptions controls SVG export behavior.
//
//nolint:revive // clarity is preferred
type SVGOptions struct {
	// Title is written as the document <title> when set.
	Title string
}

// WriteSVG serializes the scene as a standalone SVG document. Gradients
// and clip paths go into <defs> under their stable ids; nodes become
// groups carrying transform, fill and clip-path attributes.
func WriteSVG(w io.Writer, s logo.Scene, opt SVGOptions) error {
	width, height := int(math.Round(s.Width)), int(math.Round(s.Height))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid document size %vx%v", s.Width, s.Height)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(width, height, 0, 0, width, height)
	if opt.Title != "" {
		canvas.Title(opt.Title)
	}

	canvas.Def()
	for _, g := range s.Gradients {
		linearGradient(canvas, g)
	}
	for _, c := range s.Clips {
		canvas.ClipPath(attr("id", c.ID))
		canvas.Path(c.Path.SVG())
		canvas.ClipEnd()
	}
	canvas.DefEnd()

	for _, n := range s.Nodes {
		writeNode(canvas, n)
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// RenderSVG is WriteSVG into memory.
func RenderSVG(s logo.Scene, opt SVGOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(canvas *svg.SVG, n logo.Node) {
	attrs := nodeAttrs(n)
	if len(n.Children) == 0 && !n.Path.Empty() {
		canvas.Path(n.Path.SVG(), attrs...)
		return
	}
	canvas.Group(attrs...)
	if !n.Path.Empty() {
		canvas.Path(n.Path.SVG())
	}
	for _, c := range n.Children {
		writeNode(canvas, c)
	}
	canvas.Gend()
}

func nodeAttrs(n logo.Node) []string {
	var attrs []string
	if len(n.Transform) > 0 {
		attrs = append(attrs, attr("transform", n.Transform.String()))
	}
	if v := n.Fill.Attr(); v != "" {
		attrs = append(attrs, attr("fill", v))
	}
	if n.Clip != "" {
		attrs = append(attrs, attr("clip-path", "url(#"+n.Clip+")"))
	}
	return attrs
}

// attr formats name="value". svgo passes arguments containing '=' through
// verbatim, everything else would end up in a style attribute.
func attr(name, value string) string { return name + `="` + escAttr(value) + `"` }

// linearGradient writes the element svgo's LinearGradient would, with
// fractional percentages; svgo only takes whole uint8 percents.
func linearGradient(canvas *svg.SVG, g logo.Gradient) {
	_, _ = fmt.Fprintf(canvas.Writer, "<linearGradient id=\"%s\" x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\">\n",
		escAttr(g.ID), percent(g.X1), percent(g.Y1), percent(g.X2), percent(g.Y2))
	for _, st := range g.Stops {
		_, _ = fmt.Fprintf(canvas.Writer, "<stop offset=\"%s\" stop-color=\"%s\" stop-opacity=\"%s\"/>\n",
			percent(st.Offset), st.Color.Hex(), shortNum(float64(st.Color.A)/255))
	}
	_, _ = io.WriteString(canvas.Writer, "</linearGradient>\n")
}

// percent formats a unit value as a percentage with four decimals.
func percent(v float64) string {
	return shortNum(math.Max(0, math.Min(1, v))*100) + "%"
}

func shortNum(v float64) string { return strconv.FormatFloat(vector.FloatRound(v, 4), 'f', -1, 64) }

// errWriter remembers the first write error; svgo itself ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '"':
			out = append(out, "&quot;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
