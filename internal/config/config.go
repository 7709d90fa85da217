/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"geareye/internal/chain"
	applog "geareye/internal/log"
	"geareye/internal/logo"
	"geareye/internal/storage"
	"geareye/internal/vector"
	"geareye/internal/version"
)

// AppConfig is the user-editable configuration persisted as YAML.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are rejected by schema validation so typos do not go unnoticed.

// Point is an (x, y) pair written as a two element list.
type Point [2]float64

func (p Point) pt() vector.Pt { return vector.Pt{X: p[0], Y: p[1]} }

func pointOf(p vector.Pt) Point { return Point{p.X, p.Y} }

type ChainConfig struct {
	Spacing          float64 `yaml:"spacing" json:"spacing"`
	OrnamentRadius   float64 `yaml:"ornament_radius" json:"ornament_radius"`
	IterationCount   int     `yaml:"iteration_count" json:"iteration_count"`
	FudgeRatio       float64 `yaml:"fudge_ratio" json:"fudge_ratio"`
	GapAngleDeg      float64 `yaml:"gap_angle_deg" json:"gap_angle_deg"`
	GapRatio         float64 `yaml:"gap_ratio" json:"gap_ratio"`
	ClipCircleRadius float64 `yaml:"clip_circle_radius" json:"clip_circle_radius"`
	ClipOuterRadius  float64 `yaml:"clip_outer_radius" json:"clip_outer_radius"`
	ClipInnerRadius  float64 `yaml:"clip_inner_radius" json:"clip_inner_radius"`
	ClipSkip         int     `yaml:"clip_skip" json:"clip_skip"`
}

// CurveConfig is a cubic control polygon plus the starting connector parity.
type CurveConfig struct {
	P0     Point `yaml:"p0,flow" json:"p0"`
	P1     Point `yaml:"p1,flow" json:"p1"`
	P2     Point `yaml:"p2,flow" json:"p2"`
	P3     Point `yaml:"p3,flow" json:"p3"`
	Parity bool  `yaml:"parity" json:"parity"`
}

func (c CurveConfig) cubic() vector.Cubic {
	return vector.Cubic{P0: c.P0.pt(), P1: c.P1.pt(), P2: c.P2.pt(), P3: c.P3.pt()}
}

type LogoConfig struct {
	Width            float64     `yaml:"width" json:"width"`
	Height           float64     `yaml:"height" json:"height"`
	Color            string      `yaml:"color" json:"color"`
	Top              CurveConfig `yaml:"top" json:"top"`
	Bottom           CurveConfig `yaml:"bottom" json:"bottom"`
	ExtraClip        []Point     `yaml:"extra_clip,flow" json:"extra_clip"`
	GearCenter       Point       `yaml:"gear_center,flow" json:"gear_center"`
	GearMinor        float64     `yaml:"gear_minor" json:"gear_minor"`
	GearMajor        float64     `yaml:"gear_major" json:"gear_major"`
	GearTeeth        int         `yaml:"gear_teeth" json:"gear_teeth"`
	HubRadius        float64     `yaml:"hub_radius" json:"hub_radius"`
	PupilRadius      float64     `yaml:"pupil_radius" json:"pupil_radius"`
	GradientAngleDeg float64     `yaml:"gradient_angle_deg" json:"gradient_angle_deg"`
	MirrorOffset     float64     `yaml:"mirror_offset" json:"mirror_offset"`
	Wordmark         bool        `yaml:"wordmark" json:"wordmark"`
}

type ExportConfig struct {
	OutDir    string   `yaml:"out_dir" json:"out_dir"`
	Preset    string   `yaml:"preset" json:"preset"`
	Formats   []string `yaml:"formats,flow" json:"formats"`
	PNGScale  float64  `yaml:"png_scale" json:"png_scale"`
	PNGEngine string   `yaml:"png_engine" json:"png_engine"`
	Title     string   `yaml:"title" json:"title"`
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"` // empty means the user cache dir
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Chain         ChainConfig   `yaml:"chain" json:"chain"`
	Logo          LogoConfig    `yaml:"logo" json:"logo"`
	Export        ExportConfig  `yaml:"export" json:"export"`
	Cache         CacheConfig   `yaml:"cache" json:"cache"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// Defaults returns the application defaults. Chain and logo sections
// mirror chain.DefaultConfig and logo.DefaultOptions.
func Defaults() AppConfig {
	c := chain.DefaultConfig()
	o := logo.DefaultOptions()
	extra := make([]Point, 0, len(o.ExtraClip))
	for _, p := range o.ExtraClip {
		extra = append(extra, pointOf(p))
	}
	curve := func(c vector.Cubic, parity bool) CurveConfig {
		return CurveConfig{P0: pointOf(c.P0), P1: pointOf(c.P1), P2: pointOf(c.P2), P3: pointOf(c.P3), Parity: parity}
	}
	return AppConfig{
		ConfigVersion: 1,
		Chain: ChainConfig{
			Spacing:          c.Spacing,
			OrnamentRadius:   c.OrnamentRadius,
			IterationCount:   c.IterationCount,
			FudgeRatio:       c.FudgeRatio,
			GapAngleDeg:      vector.FloatRound(vector.Degrees(c.GapAngle), 9),
			GapRatio:         c.GapRatio,
			ClipCircleRadius: c.ClipCircleRadius,
			ClipOuterRadius:  c.ClipOuterRadius,
			ClipInnerRadius:  c.ClipInnerRadius,
			ClipSkip:         c.ClipSkip,
		},
		Logo: LogoConfig{
			Width:            o.Width,
			Height:           o.Height,
			Color:            o.Color.Hex(),
			Top:              curve(o.Top, o.TopParity),
			Bottom:           curve(o.Bottom, o.BottomParity),
			ExtraClip:        extra,
			GearCenter:       pointOf(o.GearCenter),
			GearMinor:        o.GearMinor,
			GearMajor:        o.GearMajor,
			GearTeeth:        o.GearTeeth,
			HubRadius:        o.HubRadius,
			PupilRadius:      o.PupilRadius,
			GradientAngleDeg: vector.FloatRound(vector.Degrees(o.GradientAngle), 9),
			MirrorOffset:     o.MirrorOffset,
			Wordmark:         o.Wordmark,
		},
		Export:  ExportConfig{OutDir: ".", Formats: []string{"svg"}, PNGScale: 1, PNGEngine: "native"},
		Cache:   CacheConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvSpacing    = "GEYE_SPACING"
	EnvIterations = "GEYE_ITERATIONS"
	EnvColor      = "GEYE_COLOR"
	EnvOutDir     = "GEYE_OUT_DIR"
	EnvFormats    = "GEYE_FORMATS"
	EnvPNGScale   = "GEYE_PNG_SCALE"
	EnvPNGEngine  = "GEYE_PNG_ENGINE"
	EnvCache      = "GEYE_CACHE"
	EnvCachePath  = "GEYE_CACHE_PATH"
	// EnvLogLevel Logging envs, shared with internal/log.FromEnv
	EnvLogLevel  = "GEYE_LOG_LEVEL"
	EnvLogFormat = "GEYE_LOG_FORMAT"
	EnvLogSource = "GEYE_LOG_SOURCE"
	EnvLogFile   = "GEYE_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "geareye")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "geareye")
	default: // linux and others
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "geareye")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "geareye")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file at path (the per-user file when path is
// empty), applies defaults and merges environment overrides. A missing
// file yields the defaults. The file and the effective config are both
// validated against the embedded schema.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		applog.WithComponent("config").Debug("no config file, using defaults", slog.String("path", path))
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := validateDocument(data); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config YAML atomically.
func Save(path string, cfg AppConfig) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(path, data)
}

// Marshal renders cfg as YAML.
func Marshal(cfg AppConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// mergeInto copies the file config over dst. Blank strings and empty
// lists keep the value already in dst; names are normalized.
func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	dst.Chain = src.Chain

	color := dst.Logo.Color
	dst.Logo = src.Logo
	if strings.TrimSpace(dst.Logo.Color) == "" {
		dst.Logo.Color = color
	}
	dst.Logo.Color = strings.ToUpper(strings.TrimSpace(dst.Logo.Color))
	if !strings.HasPrefix(dst.Logo.Color, "#") {
		dst.Logo.Color = "#" + dst.Logo.Color
	}

	if strings.TrimSpace(src.Export.OutDir) != "" {
		dst.Export.OutDir = strings.TrimSpace(src.Export.OutDir)
	}
	dst.Export.Preset = strings.ToLower(strings.TrimSpace(src.Export.Preset))
	if len(src.Export.Formats) > 0 {
		dst.Export.Formats = normalizeList(src.Export.Formats)
	}
	if src.Export.PNGScale != 0 {
		dst.Export.PNGScale = src.Export.PNGScale
	}
	if strings.TrimSpace(src.Export.PNGEngine) != "" {
		dst.Export.PNGEngine = strings.ToLower(strings.TrimSpace(src.Export.PNGEngine))
	}
	dst.Export.Title = src.Export.Title

	// booleans: copy directly from src (file) so user preferences persist
	dst.Cache.Enabled = src.Cache.Enabled
	dst.Cache.Path = strings.TrimSpace(src.Cache.Path)

	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvSpacing)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Chain.Spacing = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvIterations)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chain.IterationCount = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvColor)); v != "" {
		if c, err := vector.ParseHex(v); err == nil {
			cfg.Logo.Color = c.Hex()
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutDir)); v != "" {
		cfg.Export.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFormats)); v != "" {
		cfg.Export.Formats = normalizeList(strings.Split(v, ","))
	}
	if v := strings.TrimSpace(os.Getenv(EnvPNGScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Export.PNGScale = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPNGEngine)); v != "" {
		cfg.Export.PNGEngine = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCache)); v != "" {
		cfg.Cache.Enabled = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCachePath)); v != "" {
		cfg.Cache.Path = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"chain.spacing":         EnvSpacing,
		"chain.iteration_count": EnvIterations,
		"logo.color":            EnvColor,
		"export.out_dir":        EnvOutDir,
		"export.formats":        EnvFormats,
		"export.png_scale":      EnvPNGScale,
		"export.png_engine":     EnvPNGEngine,
		"cache.enabled":         EnvCache,
		"cache.path":            EnvCachePath,
		"logging.level":         EnvLogLevel,
		"logging.format":        EnvLogFormat,
		"logging.source":        EnvLogSource,
		"logging.file":          EnvLogFile,
	}
	if env, ok := names[key]; ok && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// ChainConfig converts the chain section.
func (c AppConfig) ChainConfig() chain.Config {
	s := c.Chain
	return chain.Config{
		Spacing:          s.Spacing,
		OrnamentRadius:   s.OrnamentRadius,
		IterationCount:   s.IterationCount,
		FudgeRatio:       s.FudgeRatio,
		GapAngle:         vector.Radians(s.GapAngleDeg),
		GapRatio:         s.GapRatio,
		ClipCircleRadius: s.ClipCircleRadius,
		ClipOuterRadius:  s.ClipOuterRadius,
		ClipInnerRadius:  s.ClipInnerRadius,
		ClipSkip:         s.ClipSkip,
	}
}

// LogoOptions converts the logo and chain sections.
func (c AppConfig) LogoOptions() (logo.Options, error) {
	l := c.Logo
	color, err := vector.ParseHex(l.Color)
	if err != nil {
		return logo.Options{}, err
	}
	extra := make([]vector.Pt, 0, len(l.ExtraClip))
	for _, p := range l.ExtraClip {
		extra = append(extra, p.pt())
	}
	return logo.Options{
		Width:         l.Width,
		Height:        l.Height,
		Color:         color,
		Top:           l.Top.cubic(),
		Bottom:        l.Bottom.cubic(),
		TopParity:     l.Top.Parity,
		BottomParity:  l.Bottom.Parity,
		ExtraClip:     extra,
		Chain:         c.ChainConfig(),
		GearCenter:    l.GearCenter.pt(),
		GearMinor:     l.GearMinor,
		GearMajor:     l.GearMajor,
		GearTeeth:     l.GearTeeth,
		HubRadius:     l.HubRadius,
		PupilRadius:   l.PupilRadius,
		GradientAngle: vector.Radians(l.GradientAngleDeg),
		MirrorOffset:  l.MirrorOffset,
		Wordmark:      l.Wordmark,
	}, nil
}

// LogOptions converts the logging section for internal/log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// Hash returns a stable SHA-256 over everything that changes the rendered
// document: the chain and logo sections plus the program version.
func (c AppConfig) Hash() string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s\n%#v\n%#v\n", version.Version, c.Chain, c.Logo)
	return hex.EncodeToString(h.Sum(nil))
}
