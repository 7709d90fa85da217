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
	"strings"
	"testing"
	"time"

	"geareye/internal/logo"
)

func TestWritePDF_CreatesDocument(t *testing.T) {
	s := defaultScene(t)
	b, err := RenderPDF(s, PDFOptions{Title: "Gear Eyes", Created: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)})
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("missing pdf header")
	}
	if !bytes.Contains(b, []byte("%%EOF")) {
		t.Fatalf("missing pdf trailer")
	}
	doc := string(b)
	// One axial shading per hub.
	if n := strings.Count(doc, "/ShadingType 2"); n < 2 {
		t.Fatalf("expected gradient shadings for both hubs, got %d", n)
	}
}

func TestWritePDF_Errors(t *testing.T) {
	if err := WritePDF(&bytes.Buffer{}, logo.Scene{}, PDFOptions{}); err == nil {
		t.Fatalf("expected error for empty document size")
	}
	s := defaultScene(t)
	s.Clips = nil
	if err := WritePDF(&bytes.Buffer{}, s, PDFOptions{}); err == nil || !strings.Contains(err.Error(), "unknown clip") {
		t.Fatalf("expected unknown clip error, got %v", err)
	}
}
