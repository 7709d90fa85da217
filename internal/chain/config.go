/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chain

import (
	"errors"
	"fmt"
	"math"
)

// Config holds the constants of the chain generator. It is passed
// explicitly to every builder; nothing is read from package state.
type Config struct {
	Spacing        float64 // target on-curve distance between anchors
	OrnamentRadius float64 // outer radius of the ring ornament
	IterationCount int     // number of uniform t samples per walk
	FudgeRatio     float64 // outer arc radius factor of the closed connector
	GapAngle       float64 // radians, open connector arc offset
	GapRatio       float64 // arc radius factor of the open connector

	ClipCircleRadius float64
	ClipOuterRadius  float64
	ClipInnerRadius  float64
	ClipSkip         int // leading links left out of the clip outline
}

// DefaultConfig returns the constants of the reference logo.
func DefaultConfig() Config {
	return Config{
		Spacing:          21,
		OrnamentRadius:   9,
		IterationCount:   5000,
		FudgeRatio:       0.9,
		GapAngle:         math.Pi / 6,
		GapRatio:         1.1,
		ClipCircleRadius: 9,
		ClipOuterRadius:  11,
		ClipInnerRadius:  7,
		ClipSkip:         2,
	}
}

// Validate reports every field outside its usable range.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %v", name, v))
		}
	}
	positive("spacing", c.Spacing)
	positive("ornament radius", c.OrnamentRadius)
	positive("fudge ratio", c.FudgeRatio)
	positive("gap ratio", c.GapRatio)
	positive("clip circle radius", c.ClipCircleRadius)
	positive("clip outer radius", c.ClipOuterRadius)
	positive("clip inner radius", c.ClipInnerRadius)
	if c.IterationCount < 1 {
		errs = append(errs, fmt.Errorf("iteration count must be at least 1, got %d", c.IterationCount))
	}
	if c.GapAngle < 0 || c.GapAngle >= math.Pi/2 {
		errs = append(errs, fmt.Errorf("gap angle must be in [0, π/2), got %v", c.GapAngle))
	}
	if c.ClipSkip < 0 {
		errs = append(errs, fmt.Errorf("clip skip must not be negative, got %d", c.ClipSkip))
	}
	return errors.Join(errs...)
}
