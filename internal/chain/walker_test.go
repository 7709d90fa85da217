/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chain

import (
	"math"
	"testing"

	"geareye/internal/vector"
)

var (
	topCurve    = vector.Cubic{P0: vector.P(271, 168), P1: vector.P(223, 89), P2: vector.P(107, 32), P3: vector.P(22, 98)}
	bottomCurve = vector.Cubic{P0: vector.P(271, 168), P1: vector.P(164, 322), P2: vector.P(12, 214), P3: vector.P(56, 90)}
)

func TestWalker_StraightLine(t *testing.T) {
	line := vector.Cubic{P0: vector.P(0, 0), P1: vector.P(100.0/3, 0), P2: vector.P(200.0/3, 0), P3: vector.P(100, 0)}
	w := Walker{Spacing: 7, Iterations: 5000}
	anchors := w.Anchors(line)
	if len(anchors) != 15 {
		t.Fatalf("expected 15 anchors, got %d", len(anchors))
	}
	if math.Abs(anchors[0].X-0.02) > 1e-9 {
		t.Fatalf("first anchor should be the first sample, got %+v", anchors[0])
	}
	for i := 1; i < len(anchors); i++ {
		if d := anchors[i].Dist(anchors[i-1]); math.Abs(d-7) > 0.02+1e-9 {
			t.Fatalf("anchor %d spaced %v apart, want ≈7", i, d)
		}
	}
}

func TestWalker_AnchorCountFollowsLength(t *testing.T) {
	cfg := DefaultConfig()
	for name, c := range map[string]vector.Cubic{"top": topCurve, "bottom": bottomCurve} {
		l := c.ChordLength(cfg.IterationCount)
		lo := int(math.Floor(l / cfg.Spacing))
		n := len(NewWalker(cfg).Anchors(c))
		if n < lo || n > lo+1 {
			t.Fatalf("%s: %d anchors for length %.3f, want in [%d, %d]", name, n, l, lo, lo+1)
		}
	}
	if n := len(NewWalker(cfg).Anchors(topCurve)); n != 14 {
		t.Fatalf("top curve: expected 14 anchors, got %d", n)
	}
	if n := len(NewWalker(cfg).Anchors(bottomCurve)); n != 18 {
		t.Fatalf("bottom curve: expected 18 anchors, got %d", n)
	}
}

func TestWalker_CapturesChainAnchors(t *testing.T) {
	var prev Capture
	n := 0
	for capt := range NewWalker(DefaultConfig()).Captures(topCurve) {
		if capt.Seq != n {
			t.Fatalf("capture %d has Seq %d", n, capt.Seq)
		}
		if n == 0 {
			if capt.IsLink() || capt.Trailing != (vector.Pt{}) {
				t.Fatalf("first capture must only record its anchor: %+v", capt)
			}
			if capt.T != 1.0/5000 {
				t.Fatalf("first capture should happen at the first sample, t=%v", capt.T)
			}
		} else {
			if !capt.IsLink() || capt.Trailing != prev.Leading {
				t.Fatalf("capture %d does not continue from the previous anchor", n)
			}
			if capt.T <= prev.T {
				t.Fatalf("captures out of order at %d", n)
			}
		}
		prev = capt
		n++
	}
}

func TestWalker_StopsWhenConsumerBreaks(t *testing.T) {
	n := 0
	for range NewWalker(DefaultConfig()).Captures(topCurve) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("expected to stop after 3 captures, got %d", n)
	}
}
