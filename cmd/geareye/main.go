/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command geareye renders the gear-eye logo and prints its chain and clip
// path data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"geareye/internal/chain"
	"geareye/internal/config"
	"geareye/internal/crash"
	"geareye/internal/export"
	applog "geareye/internal/log"
	"geareye/internal/logo"
	"geareye/internal/storage"
	"geareye/internal/vector"
	"geareye/internal/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "geareye: gear-eye logo generator")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  geareye version|-v|--version                 Show version")
	_, _ = fmt.Fprintln(w, "  geareye build [-config f] [-out dir] [-formats svg,png,pdf] [-preset web|print|all] [-no-cache]")
	_, _ = fmt.Fprintln(w, "                                               Render the logo files")
	_, _ = fmt.Fprintln(w, "  geareye chain [-config f] [-curve top|bottom] [-parity]")
	_, _ = fmt.Fprintln(w, "                                               Print chain path data, one line per link")
	_, _ = fmt.Fprintln(w, "  geareye clip [-config f]                     Print the clip outline path data")
	_, _ = fmt.Fprintln(w, "  geareye bundle [-config f] [-out file.zip]   Write svg, png and pdf into one archive")
	_, _ = fmt.Fprintln(w, "  geareye cache [-config f] [-clear]           List or clear cached renders")
	_, _ = fmt.Fprintln(w, "  geareye config [-config f]                   Print the effective config")
}

func main() {
	defer crash.Recover(crashDir())
	if code := run(os.Args[1:], os.Stdout, os.Stderr); code != exitOK {
		os.Exit(code)
	}
}

// crashDir places crash reports next to the render cache.
func crashDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, storage.CacheDirName, "crash")
}

// errUsage marks errors that should exit with exitUsage.
var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, version.String())
		return exitOK
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	case "build":
		err = runBuild(rest, stdout, stderr)
	case "chain":
		err = runChain(rest, stdout, stderr)
	case "clip":
		err = runClip(rest, stdout, stderr)
	case "bundle":
		err = runBundle(rest, stdout, stderr)
	case "cache":
		err = runCache(rest, stdout, stderr)
	case "config":
		err = runConfig(rest, stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return exitUsage
	}
	defer func() { _ = applog.Close() }()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	default:
		applog.WithComponent("cli").Error("command failed", slog.String("cmd", cmd), slog.Any("err", err))
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

// newFlags returns a flag set with the shared -config flag.
func newFlags(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "config file (default: per-user config.yaml)")
	return fs, path
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", errUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

// setup loads the config and initializes logging from it.
func setup(path string, stderr io.Writer) (config.AppConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	opts := cfg.LogOptions()
	opts.Console = stderr
	applog.Init(opts)
	applog.WithComponent("cli").Debug("config loaded", slog.String("hash", cfg.Hash()))
	return cfg, nil
}

func buildScene(ctx context.Context, cfg config.AppConfig) (logo.Scene, error) {
	opt, err := cfg.LogoOptions()
	if err != nil {
		return logo.Scene{}, err
	}
	return logo.Build(ctx, opt)
}

func batchOptions(cfg config.AppConfig) export.BatchOptions {
	return export.BatchOptions{
		Preset:  export.PresetName(cfg.Export.Preset),
		Formats: cfg.Export.Formats,
		OutDir:  cfg.Export.OutDir,
		SVG:     export.SVGOptions{Title: cfg.Export.Title},
		PNG:     export.PNGOptions{Scale: cfg.Export.PNGScale, Engine: cfg.Export.PNGEngine},
		PDF:     export.PDFOptions{Title: cfg.Export.Title},
		Hash:    cfg.Hash(),
	}
}

func openCache(cfg config.AppConfig) (*storage.Cache, error) {
	path := cfg.Cache.Path
	if path == "" {
		p, err := storage.DefaultCachePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return storage.OpenCache(path)
}

func runBuild(args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlags("build", stderr)
	out := fs.String("out", "", "output directory (overrides export.out_dir)")
	formats := fs.String("formats", "", "comma separated formats: svg, png, pdf, zip")
	preset := fs.String("preset", "", "export preset: web, print or all")
	noCache := fs.Bool("no-cache", false, "render without the cache")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := setup(*cfgPath, stderr)
	if err != nil {
		return err
	}
	l := applog.WithOperation(applog.WithComponent("cli"), "build")

	ctx := context.Background()
	scene, err := buildScene(ctx, cfg)
	if err != nil {
		return err
	}
	opt := batchOptions(cfg)
	if *out != "" {
		opt.OutDir = *out
	}
	if *preset != "" {
		opt.Preset = export.PresetName(*preset)
		opt.Formats = nil
	}
	if *formats != "" {
		opt.Formats = strings.Split(*formats, ",")
	}
	warnUnclippedEngine(opt, stderr)
	if cfg.Cache.Enabled && !*noCache {
		c, err := openCache(cfg)
		if err != nil {
			// Rendering does not depend on the cache.
			l.Warn("cache unavailable", slog.Any("err", err))
		} else {
			defer func() { _ = c.Close() }()
			opt.Cache = c
		}
	}

	arts, err := export.BatchExport(ctx, scene, opt)
	if err != nil {
		return err
	}
	for _, a := range arts {
		note := ""
		if a.Cached {
			note = " (cached)"
		}
		_, _ = fmt.Fprintf(stdout, "%s\t%d bytes%s\n", a.Path, a.Size, note)
	}
	return nil
}

// warnUnclippedEngine tells the user that the oksvg engine draws the
// clipped chain and gear without their clip.
func warnUnclippedEngine(opt export.BatchOptions, stderr io.Writer) {
	if opt.PNG.Engine != export.EngineOKSVG {
		return
	}
	formats, err := export.ResolveFormats(opt.Preset, opt.Formats)
	if err != nil || !slices.ContainsFunc(formats, func(f string) bool { return f == export.FormatPNG || f == export.FormatZip }) {
		return
	}
	applog.WithOperation(applog.WithComponent("cli"), "build").Warn("png engine ignores clip-path", slog.String("engine", opt.PNG.Engine))
	_, _ = fmt.Fprintf(stderr, "warning: png engine %q ignores clip-path; the bottom chain and gear are drawn unclipped (use %q)\n",
		export.EngineOKSVG, export.EngineNative)
}

func runChain(args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlags("chain", stderr)
	curve := fs.String("curve", "top", "curve to walk: top or bottom")
	parity := fs.Bool("parity", false, "start with the open connector (default: the curve's configured parity)")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := setup(*cfgPath, stderr)
	if err != nil {
		return err
	}
	opt, err := cfg.LogoOptions()
	if err != nil {
		return err
	}
	c, p := opt.Top, opt.TopParity
	switch *curve {
	case "top":
	case "bottom":
		c, p = opt.Bottom, opt.BottomParity
	default:
		return fmt.Errorf("%w: chain: unknown curve %q", errUsage, *curve)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "parity" {
			p = *parity
		}
	})

	ch, err := chain.Build(c, p, opt.Chain)
	if err != nil {
		return err
	}
	for i, g := range ch.Groups {
		tr := logo.Transform{logo.Translate(g.Origin.X, g.Origin.Y), logo.Rotate(g.Rotation)}
		_, _ = fmt.Fprintf(stdout, "%d\t%s\t%s\t%s\n", i+1, g.Style, tr, joinPaths(append(g.Ornament.Paths(), g.Connector)))
	}
	_, _ = fmt.Fprintf(stdout, "final\t\t\t%s\n", joinPaths(ch.Final.Paths()))
	return nil
}

func joinPaths(ps []vector.Path) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.SVG()
	}
	return strings.Join(parts, " ")
}

func runClip(args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlags("clip", stderr)
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := setup(*cfgPath, stderr)
	if err != nil {
		return err
	}
	opt, err := cfg.LogoOptions()
	if err != nil {
		return err
	}
	p, err := chain.BuildClipOutline(opt.Top, opt.Chain, opt.ExtraClip)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, p.SVG())
	return nil
}

func runBundle(args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlags("bundle", stderr)
	out := fs.String("out", "", "archive path (default: <out_dir>/"+logo.FileName+".zip)")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := setup(*cfgPath, stderr)
	if err != nil {
		return err
	}
	scene, err := buildScene(context.Background(), cfg)
	if err != nil {
		return err
	}
	opt := batchOptions(cfg)
	data, err := export.RenderBundle(scene, opt)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = filepath.Join(cfg.Export.OutDir, logo.FileName+"."+export.FormatZip)
	}
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "%s\t%d bytes\n", path, len(data))
	return nil
}

func runCache(args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlags("cache", stderr)
	clearAll := fs.Bool("clear", false, "delete every cached render")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := setup(*cfgPath, stderr)
	if err != nil {
		return err
	}
	c, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	if *clearAll {
		n, err := c.Clear(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "removed %d entries from %s\n", n, c.Path())
		return nil
	}
	entries, err := c.List(ctx)
	if err != nil {
		return err
	}
	total, err := c.TotalBytes(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		_, _ = fmt.Fprintf(stdout, "%s\t%s\t%d\t%s\n", e.Hash[:min(12, len(e.Hash))], e.Format, e.Size, e.LastAccess.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(stdout, "%d entries, %d bytes in %s\n", len(entries), total, c.Path())
	return nil
}

func runConfig(args []string, stdout, stderr io.Writer) error {
	fs, cfgPath := newFlags("config", stderr)
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, err := setup(*cfgPath, stderr)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
