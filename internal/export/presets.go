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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	applog "geareye/internal/log"
	"geareye/internal/logo"
	"geareye/internal/storage"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatZip = "zip" // bundle of svg, png and pdf plus manifest
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
	PresetAll   PresetName = "all"
)

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - Files are named <BaseName>.<format> inside OutDir; OutDir defaults
//     to the working directory.
//   - BaseName defaults to logo_gear_eyes_text.
//
// When Cache and Hash are both set, rendered bytes are looked up under
// (Hash, variant) first, where the variant folds in the raster options.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset   PresetName
	Formats  []string // allowed: svg, png, pdf, zip; empty means preset defaults
	OutDir   string
	BaseName string
	SVG      SVGOptions
	PNG      PNGOptions
	PDF      PDFOptions
	Cache    *storage.Cache
	Hash     string
}

// Artifact describes one written file.
type Artifact struct {
	Format string
	Path   string
	Size   int
	Cached bool
}

// BatchExport renders the scene in every requested format and writes
// the files atomically. It returns the artifacts in format order.
func BatchExport(ctx context.Context, s logo.Scene, opt BatchOptions) ([]Artifact, error) {
	l := applog.WithOperation(applog.WithComponent("export"), "batch").With(
		slog.String("preset", string(opt.Preset)),
	)
	formats, err := ResolveFormats(opt.Preset, opt.Formats)
	if err != nil {
		return nil, err
	}
	opt = presetOptions(opt)
	base := opt.BaseName
	if base == "" {
		base = logo.FileName
	}

	out := make([]Artifact, 0, len(formats))
	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		data, cached, err := renderCached(ctx, s, f, opt)
		if err != nil {
			l.Error("render failed", slog.String("format", f), slog.Any("err", err))
			return out, fmt.Errorf("%s: %w", f, err)
		}
		path := filepath.Join(opt.OutDir, base+"."+f)
		if err := storage.WriteFileAtomic(path, data); err != nil {
			l.Error("write failed", slog.String("path", path), slog.Any("err", err))
			return out, fmt.Errorf("%s: %w", f, err)
		}
		l.Info("exported", slog.String("format", f), slog.String("path", path), slog.Int("bytes", len(data)), slog.Bool("cached", cached))
		out = append(out, Artifact{Format: f, Path: path, Size: len(data), Cached: cached})
	}
	return out, nil
}

// Render produces the bytes of one format.
func Render(s logo.Scene, format string, opt BatchOptions) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(s, opt.SVG)
	case FormatPNG:
		return RenderPNG(s, opt.PNG)
	case FormatPDF:
		return RenderPDF(s, opt.PDF)
	case FormatZip:
		return RenderBundle(s, opt)
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// RenderBundle renders svg, png and pdf and packs them into one archive.
func RenderBundle(s logo.Scene, opt BatchOptions) ([]byte, error) {
	base := opt.BaseName
	if base == "" {
		base = logo.FileName
	}
	var files []BundleFile
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF} {
		data, err := Render(s, f, opt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		files = append(files, BundleFile{Name: base + "." + f, Format: f, Data: data})
	}
	var buf bytes.Buffer
	if err := WriteBundle(&buf, files, opt.Hash); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderCached(ctx context.Context, s logo.Scene, format string, opt BatchOptions) ([]byte, bool, error) {
	gen := func(context.Context) ([]byte, error) { return Render(s, format, opt) }
	if opt.Cache == nil || opt.Hash == "" {
		b, err := gen(ctx)
		return b, false, err
	}
	return opt.Cache.GetOrCreate(ctx, opt.Hash, Variant(format, opt), gen)
}

// Variant returns the cache key suffix for format under opt. Options that
// change the bytes of a format are part of its variant: raster options
// for png and zip, the titles for svg, pdf and zip, and a non-default
// clip flattening for pdf and zip.
func Variant(format string, opt BatchOptions) string {
	v := format
	if format == FormatPNG || format == FormatZip {
		engine := opt.PNG.Engine
		if engine == "" {
			engine = EngineNative
		}
		scale := opt.PNG.Scale
		if scale == 0 {
			scale = 1
		}
		v += ":" + engine + ":" + strconv.FormatFloat(scale, 'g', -1, 64)
		if opt.PNG.Background != nil {
			v += ":" + opt.PNG.Background.Hex()
		}
	}
	if format == FormatPDF || format == FormatZip {
		if steps := opt.PDF.ClipSteps; steps > 0 && steps != defaultClipSteps {
			v += ":steps=" + strconv.Itoa(steps)
		}
	}
	var svgTitle, pdfTitle string
	switch format {
	case FormatSVG:
		svgTitle = opt.SVG.Title
	case FormatPDF:
		pdfTitle = opt.PDF.Title
	case FormatZip:
		svgTitle, pdfTitle = opt.SVG.Title, opt.PDF.Title
	}
	if svgTitle != "" || pdfTitle != "" {
		sum := sha256.Sum256([]byte(svgTitle + "\x00" + pdfTitle))
		v += ":title=" + hex.EncodeToString(sum[:6])
	}
	return v
}

// ResolveFormats normalizes explicit formats or falls back to the preset
// defaults. Duplicates are dropped.
func ResolveFormats(p PresetName, formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = presetDefaultFormats(p)
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case FormatSVG, FormatPNG, FormatPDF, FormatZip:
		case "":
			continue
		default:
			return nil, fmt.Errorf("unknown format: %s", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no formats selected")
	}
	return out, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{FormatSVG, FormatPNG}
	case PresetPrint:
		return []string{FormatPDF, FormatPNG}
	case PresetAll:
		return []string{FormatSVG, FormatPNG, FormatPDF, FormatZip}
	default:
		return []string{FormatSVG}
	}
}

// presetOptions fills raster defaults the preset implies. Explicit
// options win.
func presetOptions(opt BatchOptions) BatchOptions {
	if opt.PNG.Scale == 0 && opt.Preset == PresetPrint {
		opt.PNG.Scale = 4
	}
	return opt
}
