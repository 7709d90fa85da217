/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package logo

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"geareye/internal/chain"
	applog "geareye/internal/log"
	"geareye/internal/vector"
)

// Build assembles the complete logo scene. The two chain walks and the
// clip outline are independent and run concurrently; results are slotted
// by role, so the scene is identical to a sequential build.
func Build(ctx context.Context, opt Options) (Scene, error) {
	l := applog.WithOperation(applog.WithComponent("logo"), "build")
	if err := opt.Validate(); err != nil {
		return Scene{}, fmt.Errorf("invalid logo options: %w", err)
	}

	var top, bottom chain.Chain
	var clip vector.Path
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		top, err = chain.Build(opt.Top, opt.TopParity, opt.Chain)
		if err != nil {
			return fmt.Errorf("top chain: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		bottom, err = chain.Build(opt.Bottom, opt.BottomParity, opt.Chain)
		if err != nil {
			return fmt.Errorf("bottom chain: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		clip, err = chain.BuildClipOutline(opt.Top, opt.Chain, opt.ExtraClip)
		if err != nil {
			return fmt.Errorf("clip outline: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		l.Error("build failed", slog.Any("err", err))
		return Scene{}, err
	}

	sin, cos := math.Sincos(opt.GradientAngle)
	stops := []Stop{{Offset: 0, Color: opt.Color}, {Offset: 1, Color: vector.White}}
	s := Scene{
		Width:  opt.Width,
		Height: opt.Height,
		Gradients: []Gradient{
			{ID: GradientLeftID, X1: (1 - sin) / 2, Y1: (1 - cos) / 2, X2: (1 + sin) / 2, Y2: (1 + cos) / 2, Stops: stops},
			{ID: GradientRightID, X1: (1 + sin) / 2, Y1: (1 - cos) / 2, X2: (1 - sin) / 2, Y2: (1 + cos) / 2, Stops: stops},
		},
		Clips: []ClipDef{{ID: ClipID, Path: clip}},
	}

	eye := func(gradient string) []Node {
		return []Node{
			chainNode(top, opt.Color, ""),
			chainNode(bottom, opt.Color, ClipID),
			{Path: Gear(opt.GearCenter, opt.GearMinor, opt.GearMajor, opt.GearTeeth), Fill: Solid(opt.Color), Clip: ClipID},
			{Path: vector.Circle(opt.GearCenter, opt.HubRadius, true), Fill: GradientRef(gradient)},
			{Path: vector.Circle(opt.GearCenter, opt.PupilRadius, true), Fill: Solid(opt.Color)},
		}
	}
	s.Nodes = append(s.Nodes,
		Node{Children: eye(GradientLeftID)},
		Node{
			Transform: Transform{Translate(opt.MirrorOffset, 0), Scale(-1, 1)},
			Children:  eye(GradientRightID),
		},
	)
	if opt.Wordmark {
		text := Node{Fill: Solid(opt.Color)}
		for _, p := range Wordmark() {
			text.Children = append(text.Children, Node{Path: p})
		}
		s.Nodes = append(s.Nodes, text)
	}

	l.Debug("scene built",
		slog.Int("top_links", len(top.Groups)),
		slog.Int("bottom_links", len(bottom.Groups)),
		slog.Int("clip_cmds", clip.Len()),
	)
	return s, nil
}

// chainNode turns a chain into a group of link groups followed by the
// final ornament.
func chainNode(ch chain.Chain, color vector.Color, clip string) Node {
	n := Node{Fill: Solid(color), Clip: clip}
	for _, g := range ch.Groups {
		link := Node{Transform: Transform{Translate(g.Origin.X, g.Origin.Y), Rotate(g.Rotation)}}
		for _, p := range g.Ornament.Paths() {
			link.Children = append(link.Children, Node{Path: p})
		}
		link.Children = append(link.Children, Node{Path: g.Connector})
		n.Children = append(n.Children, link)
	}
	for _, p := range ch.Final.Paths() {
		n.Children = append(n.Children, Node{Path: p})
	}
	return n
}
