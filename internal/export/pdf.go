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
	"time"

	"github.com/jung-kurt/gofpdf"

	"geareye/internal/logo"
	"geareye/internal/vector"
)

// PDFOptions controls PDF export behavior.
// Units are points: one document unit maps to one pt, so the 700×400
// logo becomes a 700×400 pt page.
//
// Clip paths and gradient fills use PDF clipping polygons, which are
// flattened with ClipSteps samples per curve segment.
//
//nolint:revive // keep options grouped and explicit for clarity
type PDFOptions struct {
	Title     string
	ClipSteps int       // zero means 16
	Created   time.Time // fixed creation date for reproducible output; zero uses now
}

const defaultClipSteps = 16

// WritePDF renders the scene as a single page vector PDF.
func WritePDF(w io.Writer, s logo.Scene, opt PDFOptions) error {
	if !(s.Width > 0) || !(s.Height > 0) {
		return fmt.Errorf("invalid document size %vx%v", s.Width, s.Height)
	}
	steps := opt.ClipSteps
	if steps <= 0 {
		steps = defaultClipSteps
	}
	size := gofpdf.SizeType{Wd: s.Width, Ht: s.Height}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetCreator("geareye", false)
	if !opt.Created.IsZero() {
		pdf.SetCreationDate(opt.Created)
	}
	pdf.AddPageFormat("", size)

	err := s.Walk(func(d logo.Drawable) error {
		clips := 0
		for _, ref := range d.Clips {
			def, ok := s.Clip(ref.ID)
			if !ok {
				return fmt.Errorf("unknown clip %q", ref.ID)
			}
			for _, poly := range def.Path.Flatten(steps) {
				pdf.ClipPolygon(pdfPoints(poly, ref.Matrix), false)
				clips++
			}
		}
		switch d.Fill.Kind {
		case logo.GradientPaint:
			g, ok := s.Gradient(d.Fill.Gradient)
			if !ok {
				return fmt.Errorf("unknown gradient %q", d.Fill.Gradient)
			}
			pdfGradient(pdf, d, g, steps)
		default:
			c := vector.Black
			if d.Fill.Kind == logo.SolidPaint {
				c = d.Fill.Color
			}
			setFillColor(pdf, c)
			pdfPath(pdf, d.Path, d.Matrix)
			pdf.DrawPath("F")
		}
		for ; clips > 0; clips-- {
			pdf.ClipEnd()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// RenderPDF is WritePDF into memory.
func RenderPDF(s logo.Scene, opt PDFOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, s, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfPath emits p as PDF path operators. Arcs are converted to cubics
// first and every point goes through m, so any affine matrix is exact.
func pdfPath(pdf *gofpdf.Fpdf, p vector.Path, m vector.Mat3) {
	for _, c := range p.CubicForm().Cmds {
		switch c.Op {
		case vector.MoveTo:
			q := m.Apply(c.End())
			pdf.MoveTo(q.X, q.Y)
		case vector.LineTo:
			q := m.Apply(c.End())
			pdf.LineTo(q.X, q.Y)
		case vector.CubicTo:
			c1 := m.Apply(vector.Pt{X: c.Data[0], Y: c.Data[1]})
			c2 := m.Apply(vector.Pt{X: c.Data[2], Y: c.Data[3]})
			q := m.Apply(c.End())
			pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
		case vector.Close:
			pdf.ClosePath()
		}
	}
}

// pdfGradient paints a two color axial shading clipped to every subpath
// of the shape. PDF shadings take the first and last stop only.
func pdfGradient(pdf *gofpdf.Fpdf, d logo.Drawable, g logo.Gradient, steps int) {
	if len(g.Stops) == 0 {
		return
	}
	from, to := g.Stops[0].Color, g.Stops[len(g.Stops)-1].Color
	box := d.Path.Bounds()
	dev := d.Path.Transform(d.Matrix).Bounds()
	if dev.Empty() {
		return
	}
	unit := func(fx, fy float64) (float64, float64) {
		q := d.Matrix.Apply(vector.Pt{X: box.X + fx*box.W, Y: box.Y + fy*box.H})
		// gofpdf measures the gradient vector from the bottom left corner.
		return (q.X - dev.X) / dev.W, 1 - (q.Y-dev.Y)/dev.H
	}
	x1, y1 := unit(g.X1, g.Y1)
	x2, y2 := unit(g.X2, g.Y2)
	for _, poly := range d.Path.Flatten(steps) {
		pdf.ClipPolygon(pdfPoints(poly, d.Matrix), false)
		pdf.LinearGradient(dev.X, dev.Y, dev.W, dev.H,
			int(from.R), int(from.G), int(from.B),
			int(to.R), int(to.G), int(to.B),
			x1, y1, x2, y2)
		pdf.ClipEnd()
	}
}

func pdfPoints(poly []vector.Pt, m vector.Mat3) []gofpdf.PointType {
	out := make([]gofpdf.PointType, 0, len(poly))
	for _, p := range poly {
		q := m.Apply(p)
		out = append(out, gofpdf.PointType{X: q.X, Y: q.Y})
	}
	return out
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
