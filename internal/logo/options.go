/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package logo

import (
	"errors"
	"fmt"
	"math"

	"geareye/internal/chain"
	"geareye/internal/vector"
)

// Stable ids used to reference definitions from the document body.
const (
	ClipID          = "chain-clip"
	GradientLeftID  = "gradient-left"
	GradientRightID = "gradient-right"

	// FileName is the base name of rendered artifacts.
	FileName = "logo_gear_eyes_text"
)

// Green is the brand color of the logo.
var Green = vector.Color{R: 0x43, G: 0xB0, B: 0x63, A: 255}

// Options describes one logo. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Width, Height float64
	Color         vector.Color

	Top, Bottom  vector.Cubic
	TopParity    bool
	BottomParity bool
	ExtraClip    []vector.Pt
	Chain        chain.Config

	GearCenter vector.Pt
	GearMinor  float64
	GearMajor  float64
	GearTeeth  int

	HubRadius     float64
	PupilRadius   float64
	GradientAngle float64 // radians from vertical

	// MirrorOffset is the x translation of the mirrored right eye.
	MirrorOffset float64
	Wordmark     bool
}

func DefaultOptions() Options {
	return Options{
		Width:         700,
		Height:        400,
		Color:         Green,
		Top:           vector.Cubic{P0: vector.P(271, 168), P1: vector.P(223, 89), P2: vector.P(107, 32), P3: vector.P(22, 98)},
		Bottom:        vector.Cubic{P0: vector.P(271, 168), P1: vector.P(164, 322), P2: vector.P(12, 214), P3: vector.P(56, 90)},
		TopParity:     false,
		BottomParity:  true,
		ExtraClip:     []vector.Pt{{X: 20, Y: 300}, {X: 300, Y: 300}, {X: 300, Y: 168}},
		Chain:         chain.DefaultConfig(),
		GearCenter:    vector.P(158, 145),
		GearMinor:     55,
		GearMajor:     70,
		GearTeeth:     12,
		HubRadius:     40,
		PupilRadius:   10,
		GradientAngle: math.Pi / 6,
		MirrorOffset:  700,
		Wordmark:      true,
	}
}

// Validate checks the document level options and the chain constants.
func (o Options) Validate() error {
	var errs []error
	if !(o.Width > 0) || !(o.Height > 0) {
		errs = append(errs, fmt.Errorf("document size must be positive, got %vx%v", o.Width, o.Height))
	}
	if o.GearTeeth < 1 {
		errs = append(errs, fmt.Errorf("gear needs at least one tooth, got %d", o.GearTeeth))
	}
	if !(o.GearMinor > 0) || o.GearMajor < o.GearMinor {
		errs = append(errs, fmt.Errorf("gear radii must satisfy 0 < minor <= major, got %v and %v", o.GearMinor, o.GearMajor))
	}
	if !(o.HubRadius > 0) || !(o.PupilRadius > 0) {
		errs = append(errs, errors.New("hub and pupil radii must be positive"))
	}
	if err := o.Chain.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
