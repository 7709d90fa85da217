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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xvector "golang.org/x/image/vector"

	"geareye/internal/logo"
	"geareye/internal/vector"
)

// PNG engines.
const (
	EngineNative = "native" // golang.org/x/image/vector over the scene
	EngineOKSVG  = "oksvg"  // re-renders the SVG serialization
)

// PNGOptions controls PNG export behavior.
// - Scale: output pixels per document unit; zero means 1
// - Engine: EngineNative (default) or EngineOKSVG
// - Background: painted under the logo when set; transparent otherwise
//
//nolint:revive // clarity is preferred
type PNGOptions struct {
	Scale      float64
	Engine     string
	Background *vector.Color
}

// WritePNG rasterizes the scene and encodes it as PNG.
func WritePNG(w io.Writer, s logo.Scene, opt PNGOptions) error {
	scale := opt.Scale
	if scale == 0 {
		scale = 1
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("invalid png scale %v", opt.Scale)
	}
	var (
		img *image.RGBA
		err error
	)
	switch opt.Engine {
	case "", EngineNative:
		img, err = RasterizeScene(s, scale, opt.Background)
	case EngineOKSVG:
		var data []byte
		data, err = RenderSVG(s, SVGOptions{})
		if err == nil {
			img, err = RasterizeSVG(data, pixels(s.Width, scale), pixels(s.Height, scale), opt.Background)
		}
	default:
		return fmt.Errorf("unknown png engine %q", opt.Engine)
	}
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderPNG is WritePNG into memory.
func RenderPNG(s logo.Scene, opt PNGOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, s, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RasterizeScene draws the scene with the nonzero fill rule. Each shape
// is rasterized into an alpha coverage mask, multiplied by the masks of
// its clips and composited over the image with its paint.
func RasterizeScene(s logo.Scene, scale float64, bg *vector.Color) (*image.RGBA, error) {
	w, h := pixels(s.Width, scale), pixels(s.Height, scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(*bg), image.Point{}, draw.Src)
	}
	view := vector.Scale(scale, scale)
	clipMasks := map[logo.ClipRef]*image.Alpha{}

	err := s.Walk(func(d logo.Drawable) error {
		m := view.Mul(d.Matrix)
		cover := rasterPath(d.Path, m, w, h)
		for _, ref := range d.Clips {
			mask, ok := clipMasks[ref]
			if !ok {
				def, found := s.Clip(ref.ID)
				if !found {
					return fmt.Errorf("unknown clip %q", ref.ID)
				}
				mask = rasterPath(def.Path, view.Mul(ref.Matrix), w, h)
				clipMasks[ref] = mask
			}
			multiplyAlpha(cover, mask)
		}
		src, err := paintSource(s, d, m, dst.Bounds())
		if err != nil {
			return err
		}
		draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, cover, image.Point{}, draw.Over)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// RasterizeSVG renders SVG bytes with oksvg. The engine does not
// implement clip-path, so clipped shapes are drawn whole.
func RasterizeSVG(data []byte, w, h int, bg *vector.Color) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", w, h)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(*bg), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

func pixels(v, scale float64) int { return int(math.Ceil(v*scale - 1e-9)) }

// rasterPath returns the coverage of p mapped through m.
func rasterPath(p vector.Path, m vector.Mat3, w, h int) *image.Alpha {
	z := xvector.NewRasterizer(w, h)
	open := false
	pt := func(q vector.Pt) (float32, float32) {
		q = m.Apply(q)
		return float32(q.X), float32(q.Y)
	}
	for _, c := range p.CubicForm().Cmds {
		switch c.Op {
		case vector.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(c.End()))
			open = true
		case vector.LineTo:
			z.LineTo(pt(c.End()))
		case vector.CubicTo:
			x1, y1 := pt(vector.Pt{X: c.Data[0], Y: c.Data[1]})
			x2, y2 := pt(vector.Pt{X: c.Data[2], Y: c.Data[3]})
			x3, y3 := pt(c.End())
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		case vector.Close:
			if open {
				z.ClosePath()
				open = false
			}
		}
	}
	if open {
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func multiplyAlpha(dst, mask *image.Alpha) {
	for i, a := range dst.Pix {
		dst.Pix[i] = uint8(uint16(a) * uint16(mask.Pix[i]) / 255)
	}
}

func paintSource(s logo.Scene, d logo.Drawable, m vector.Mat3, bounds image.Rectangle) (image.Image, error) {
	switch d.Fill.Kind {
	case logo.GradientPaint:
		g, ok := s.Gradient(d.Fill.Gradient)
		if !ok {
			return nil, fmt.Errorf("unknown gradient %q", d.Fill.Gradient)
		}
		inv, ok := m.Invert()
		if !ok {
			return image.Transparent, nil
		}
		return &gradientImage{g: g, inv: inv, box: d.Path.Bounds(), bounds: bounds}, nil
	case logo.SolidPaint:
		return image.NewUniform(d.Fill.Color), nil
	}
	return image.NewUniform(vector.Black), nil
}

// gradientImage evaluates a linear gradient in the object bounding box
// units of the shape it fills.
type gradientImage struct {
	g      logo.Gradient
	inv    vector.Mat3 // device to shape space
	box    vector.Rect
	bounds image.Rectangle
}

func (gi *gradientImage) ColorModel() color.Model { return color.RGBAModel }
func (gi *gradientImage) Bounds() image.Rectangle { return gi.bounds }

func (gi *gradientImage) At(x, y int) color.Color {
	if gi.box.W == 0 || gi.box.H == 0 {
		return gi.g.At(0)
	}
	p := gi.inv.Apply(vector.Pt{X: float64(x) + 0.5, Y: float64(y) + 0.5})
	u := (p.X - gi.box.X) / gi.box.W
	v := (p.Y - gi.box.Y) / gi.box.H
	dx, dy := gi.g.X2-gi.g.X1, gi.g.Y2-gi.g.Y1
	den := dx*dx + dy*dy
	if den == 0 {
		return gi.g.At(0)
	}
	return gi.g.At(((u-gi.g.X1)*dx + (v-gi.g.Y1)*dy) / den)
}
