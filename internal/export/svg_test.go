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
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"geareye/internal/logo"
)

func defaultScene(t *testing.T) logo.Scene {
	t.Helper()
	s, err := logo.Build(context.Background(), logo.DefaultOptions())
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	return s
}

func TestWriteSVG_Document(t *testing.T) {
	s := defaultScene(t)
	b, err := RenderSVG(s, SVGOptions{Title: "Gear & Eyes"})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	doc := string(b)
	wants := []string{
		`viewBox="0 0 700 400"`,
		`<title>Gear &amp; Eyes</title>`,
		`<clipPath id="chain-clip"`,
		`<linearGradient id="gradient-left"`,
		`<linearGradient id="gradient-right"`,
		`clip-path="url(#chain-clip)"`,
		`fill="url(#gradient-left)"`,
		`fill="url(#gradient-right)"`,
		`transform="translate(700 0) scale(-1 1)"`,
		`fill="#43B063"`,
	}
	for _, w := range wants {
		if !strings.Contains(doc, w) {
			t.Fatalf("svg missing %s", w)
		}
	}
	if strings.Contains(doc, "style=") {
		t.Fatalf("attributes must not be folded into style")
	}
	shapes := 0
	_ = s.Walk(func(logo.Drawable) error { shapes++; return nil })
	if got := strings.Count(doc, "<path d="); got != shapes+1 {
		t.Fatalf("path elements: got %d want %d (shapes plus clip)", got, shapes+1)
	}
	// defs come before their first use
	if strings.Index(doc, `<clipPath id="chain-clip"`) > strings.Index(doc, `url(#chain-clip)`) {
		t.Fatalf("clip path defined after use")
	}
}

func TestWriteSVG_WellFormedXML(t *testing.T) {
	b, err := RenderSVG(defaultScene(t), SVGOptions{})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(b))
	depth, elems := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("xml: %v", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
			elems++
		case xml.EndElement:
			depth--
		}
	}
	if depth != 0 || elems == 0 {
		t.Fatalf("unbalanced document: depth=%d elems=%d", depth, elems)
	}
}

func TestWriteSVG_Deterministic(t *testing.T) {
	a, err := RenderSVG(defaultScene(t), SVGOptions{})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := RenderSVG(defaultScene(t), SVGOptions{})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("svg output differs between runs")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVG_Errors(t *testing.T) {
	if err := WriteSVG(failWriter{}, defaultScene(t), SVGOptions{}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
	if err := WriteSVG(io.Discard, logo.Scene{}, SVGOptions{}); err == nil {
		t.Fatalf("expected error for empty document size")
	}
}

func TestPercent(t *testing.T) {
	cases := map[float64]string{0: "0%", 0.25: "25%", 0.0669873: "6.6987%", 0.9330127: "93.3013%", 1: "100%", -1: "0%", 2: "100%"}
	for in, want := range cases {
		if got := percent(in); got != want {
			t.Fatalf("percent(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestWriteSVG_GradientKeepsFractionalEndpoints(t *testing.T) {
	b, err := RenderSVG(defaultScene(t), SVGOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// left eye: (1-sin30)/2, (1-cos30)/2 to (1+sin30)/2, (1+cos30)/2
	want := `<linearGradient id="gradient-left" x1="25%" y1="6.6987%" x2="75%" y2="93.3013%">`
	if !bytes.Contains(b, []byte(want)) {
		t.Fatalf("missing %s in:\n%s", want, b[:min(len(b), 600)])
	}
	if !bytes.Contains(b, []byte(`<stop offset="0%" stop-color="#43B063" stop-opacity="1"/>`)) {
		t.Fatalf("missing first gradient stop")
	}
}
