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
	"image/png"
	"testing"

	"geareye/internal/logo"
	"geareye/internal/vector"
)

func square(x, y, size float64) vector.Path {
	return vector.RectPath(vector.R(x, y, size, size))
}

func TestRasterizeScene_DefaultLogo(t *testing.T) {
	img, err := RasterizeScene(defaultScene(t), 1, nil)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 700 || b.Dy() != 400 {
		t.Fatalf("unexpected size %v", b)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Fatalf("corner should be transparent, alpha=%d", a)
	}
	// Pupils of both eyes.
	for _, x := range []int{158, 541} {
		c := img.RGBAAt(x, 145)
		if c.R != logo.Green.R || c.G != logo.Green.G || c.B != logo.Green.B || c.A != 255 {
			t.Fatalf("pupil at x=%d: got %+v", x, c)
		}
	}
	// The hub gradient runs from green to white; the mirrored eye uses the
	// mirrored gradient, so both hubs shade the same way on screen.
	left := img.RGBAAt(183, 145)
	right := img.RGBAAt(567, 145)
	if left.A != 255 || left.R <= logo.Green.R || left.R == 255 {
		t.Fatalf("hub pixel not a gradient blend: %+v", left)
	}
	if d := int(left.R) - int(right.R); d < -1 || d > 1 {
		t.Fatalf("hub shading differs between eyes: %+v vs %+v", left, right)
	}
}

func TestRasterizeScene_ClipMask(t *testing.T) {
	s := logo.Scene{
		Width: 20, Height: 20,
		Clips: []logo.ClipDef{{ID: "left", Path: vector.RectPath(vector.R(0, 0, 10, 20))}},
		Nodes: []logo.Node{{Path: square(0, 0, 20), Fill: logo.Solid(vector.Black), Clip: "left"}},
	}
	img, err := RasterizeScene(s, 1, nil)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Fatalf("inside clip: alpha=%d", a)
	}
	if a := img.RGBAAt(15, 5).A; a != 0 {
		t.Fatalf("outside clip: alpha=%d", a)
	}

	s.Nodes[0].Clip = "missing"
	if _, err := RasterizeScene(s, 1, nil); err == nil {
		t.Fatalf("expected error for unknown clip")
	}
}

func TestRasterizeScene_HoleAndGradient(t *testing.T) {
	ring := vector.Circle(vector.P(50, 50), 40, true)
	ring.Append(vector.Circle(vector.P(50, 50), 16, false))
	s := logo.Scene{
		Width: 200, Height: 100,
		Gradients: []logo.Gradient{{
			ID: "g", X1: 0, Y1: 0, X2: 1, Y2: 0,
			Stops: []logo.Stop{{Offset: 0, Color: vector.Black}, {Offset: 1, Color: vector.White}},
		}},
		Nodes: []logo.Node{
			{Path: ring, Fill: logo.Solid(vector.Black)},
			{
				Transform: logo.Transform{logo.Translate(200, 0), logo.Scale(-1, 1)},
				Fill:      logo.GradientRef("g"),
				Path:      square(0, 0, 100),
			},
		},
	}
	img, err := RasterizeScene(s, 1, &vector.White)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if c := img.RGBAAt(50, 50); c.R != 255 {
		t.Fatalf("opposite winding should leave a hole, got %+v", c)
	}
	if c := img.RGBAAt(20, 50); c.R != 0 || c.A != 255 {
		t.Fatalf("ring body should be black, got %+v", c)
	}
	// Mirrored square: local x=0 is device x=200.
	near, far := img.RGBAAt(198, 50), img.RGBAAt(102, 50)
	if !(near.R < 20 && far.R > 235) {
		t.Fatalf("gradient must follow the local box: near=%+v far=%+v", near, far)
	}
}

func TestWritePNG_Engines(t *testing.T) {
	s := defaultScene(t)
	for _, engine := range []string{EngineNative, EngineOKSVG} {
		var buf bytes.Buffer
		if err := WritePNG(&buf, s, PNGOptions{Scale: 0.5, Engine: engine}); err != nil {
			t.Fatalf("%s: write png: %v", engine, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("%s: decode: %v", engine, err)
		}
		if b := img.Bounds(); b.Dx() != 350 || b.Dy() != 200 {
			t.Fatalf("%s: unexpected size %v", engine, b)
		}
		opaque := 0
		for y := 0; y < 200; y++ {
			for x := 0; x < 350; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
					opaque++
				}
			}
		}
		if opaque == 0 {
			t.Fatalf("%s: nothing was drawn", engine)
		}
	}
}

func TestWritePNG_InvalidOptions(t *testing.T) {
	s := defaultScene(t)
	if err := WritePNG(&bytes.Buffer{}, s, PNGOptions{Engine: "cairo"}); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
	if err := WritePNG(&bytes.Buffer{}, s, PNGOptions{Scale: -2}); err == nil {
		t.Fatalf("expected error for negative scale")
	}
}
