/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"geareye/internal/config"
	"geareye/internal/logo"
	"geareye/internal/version"
)

// testEnv points the config and the cache into a temp dir and returns the
// -config argument pair.
func testEnv(t *testing.T) (dir string, cfgArgs []string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv(config.EnvCachePath, filepath.Join(dir, "cache", "renders.sqlite"))
	t.Setenv(config.EnvOutDir, filepath.Join(dir, "out"))
	t.Setenv(config.EnvLogLevel, "error")
	return dir, []string{"-config", filepath.Join(dir, "missing.yaml")}
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCmd(t, "version")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if strings.TrimSpace(out) != version.String() {
		t.Fatalf("version output = %q", out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	if code, _, errOut := runCmd(t); code != exitUsage || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("no args: code=%d stderr=%q", code, errOut)
	}
	if code, _, _ := runCmd(t, "frobnicate"); code != exitUsage {
		t.Fatalf("unknown command: code=%d", code)
	}
	_, cfgArgs := testEnv(t)
	if code, _, _ := runCmd(t, append([]string{"chain", "-curve", "middle"}, cfgArgs...)...); code != exitUsage {
		t.Fatalf("bad curve: code=%d", code)
	}
	if code, _, _ := runCmd(t, "clip", "-nope"); code != exitUsage {
		t.Fatalf("bad flag: code=%d", code)
	}
}

func TestRun_ChainTopAndBottom(t *testing.T) {
	_, cfgArgs := testEnv(t)
	cases := []struct {
		curve string
		links int
		first string
	}{
		{"top", 13, "closed"},
		{"bottom", 17, "open"},
	}
	for _, tc := range cases {
		code, out, errOut := runCmd(t, append([]string{"chain", "-curve", tc.curve}, cfgArgs...)...)
		if code != exitOK {
			t.Fatalf("%s: exit code %d, stderr %s", tc.curve, code, errOut)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != tc.links+1 {
			t.Fatalf("%s: expected %d lines, got %d", tc.curve, tc.links+1, len(lines))
		}
		if f := strings.Split(lines[0], "\t"); f[1] != tc.first || !strings.HasPrefix(f[2], "translate(") {
			t.Fatalf("%s: unexpected first line %q", tc.curve, lines[0])
		}
		if !strings.HasPrefix(lines[len(lines)-1], "final\t") {
			t.Fatalf("%s: missing final ornament line", tc.curve)
		}
	}
}

func TestRun_ChainParityFlagOverrides(t *testing.T) {
	_, cfgArgs := testEnv(t)
	code, out, _ := runCmd(t, append([]string{"chain", "-parity"}, cfgArgs...)...)
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if f := strings.Split(out, "\t"); f[1] != "open" {
		t.Fatalf("expected the first link to be open, got %q", f[1])
	}
}

func TestRun_Clip(t *testing.T) {
	_, cfgArgs := testEnv(t)
	code, out, _ := runCmd(t, append([]string{"clip"}, cfgArgs...)...)
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	out = strings.TrimSpace(out)
	if strings.Count(out, "M") != 1 || !strings.HasPrefix(out, "M ") {
		t.Fatalf("clip outline must start with a single move: %.40s", out)
	}
	if !strings.HasSuffix(out, "L 300.000000 168.000000") {
		t.Fatalf("clip outline must end at the last extra point: ...%s", out[len(out)-40:])
	}
}

func TestRun_BuildUsesCache(t *testing.T) {
	dir, cfgArgs := testEnv(t)
	args := append([]string{"build", "-formats", "svg,pdf"}, cfgArgs...)

	code, out, errOut := runCmd(t, args...)
	if code != exitOK {
		t.Fatalf("first build: exit code %d, stderr %s", code, errOut)
	}
	if strings.Contains(out, "(cached)") {
		t.Fatalf("first build must render: %s", out)
	}
	svg := filepath.Join(dir, "out", logo.FileName+".svg")
	if b, err := os.ReadFile(svg); err != nil || !bytes.Contains(b, []byte("<svg")) {
		t.Fatalf("svg not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", logo.FileName+".pdf")); err != nil {
		t.Fatalf("pdf not written: %v", err)
	}

	_, out, _ = runCmd(t, args...)
	if strings.Count(out, "(cached)") != 2 {
		t.Fatalf("second build must be served from cache: %s", out)
	}

	code, out, _ = runCmd(t, append([]string{"cache"}, cfgArgs...)...)
	if code != exitOK || !strings.Contains(out, "2 entries") {
		t.Fatalf("cache listing: code=%d out=%s", code, out)
	}
	code, out, _ = runCmd(t, append([]string{"cache", "-clear"}, cfgArgs...)...)
	if code != exitOK || !strings.Contains(out, "removed 2 entries") {
		t.Fatalf("cache clear: code=%d out=%s", code, out)
	}
}

func TestRun_BuildNoCache(t *testing.T) {
	dir, cfgArgs := testEnv(t)
	out := filepath.Join(dir, "elsewhere")
	code, stdout, errOut := runCmd(t, append([]string{"build", "-no-cache", "-out", out}, cfgArgs...)...)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	if !strings.Contains(stdout, filepath.Join(out, logo.FileName+".svg")) {
		t.Fatalf("unexpected output: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "cache", "renders.sqlite")); !os.IsNotExist(err) {
		t.Fatalf("cache must not be created with -no-cache, stat err=%v", err)
	}
}

func TestRun_BuildWarnsForUnclippedEngine(t *testing.T) {
	_, cfgArgs := testEnv(t)
	t.Setenv(config.EnvPNGScale, "0.25")

	t.Setenv(config.EnvPNGEngine, "oksvg")
	code, _, errOut := runCmd(t, append([]string{"build", "-no-cache", "-formats", "png"}, cfgArgs...)...)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	if !strings.Contains(errOut, "ignores clip-path") {
		t.Fatalf("expected a clip warning, stderr: %s", errOut)
	}

	_, _, errOut = runCmd(t, append([]string{"build", "-no-cache", "-formats", "svg"}, cfgArgs...)...)
	if strings.Contains(errOut, "ignores clip-path") {
		t.Fatalf("svg-only build must not warn: %s", errOut)
	}

	t.Setenv(config.EnvPNGEngine, "native")
	_, _, errOut = runCmd(t, append([]string{"build", "-no-cache", "-formats", "png"}, cfgArgs...)...)
	if strings.Contains(errOut, "ignores clip-path") {
		t.Fatalf("native engine must not warn: %s", errOut)
	}
}

func TestRun_Bundle(t *testing.T) {
	dir, cfgArgs := testEnv(t)
	target := filepath.Join(dir, "logo.zip")
	code, _, errOut := runCmd(t, append([]string{"bundle", "-out", target}, cfgArgs...)...)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	b, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("PK")) {
		t.Fatalf("bundle is not a zip archive")
	}
}

func TestRun_ConfigPrintsEffectiveValues(t *testing.T) {
	_, cfgArgs := testEnv(t)
	t.Setenv(config.EnvSpacing, "19")
	code, out, _ := runCmd(t, append([]string{"config"}, cfgArgs...)...)
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "spacing: 19") {
		t.Fatalf("env override missing from config output:\n%s", out)
	}
}

func TestRun_InvalidConfigFails(t *testing.T) {
	dir, _ := testEnv(t)
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("chain:\n  spacing: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := runCmd(t, "clip", "-config", path)
	if code != exitError || !strings.Contains(errOut, "Error:") {
		t.Fatalf("expected runtime failure, code=%d stderr=%s", code, errOut)
	}
}
