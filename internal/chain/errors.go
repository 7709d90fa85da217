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
)

// ErrGeometry is matched by every GeometryError.
var ErrGeometry = errors.New("chain: invalid link geometry")

// GeometryError reports two anchors whose ornaments cannot be joined:
// either they overlap (D < 0) or they are too far apart for the tangent
// circles to meet (H2 < 0).
type GeometryError struct {
	Link int     // 1-based link counter within the walk
	D    float64 // gap between the ornament outer edges
	H2   float64 // 4r² - (r + d/2)²
}

func (e *GeometryError) Error() string {
	if e.D < 0 {
		return fmt.Sprintf("chain: link %d: ornaments overlap (gap %.6f)", e.Link, e.D)
	}
	return fmt.Sprintf("chain: link %d: anchors too far apart (gap %.6f, h² %.6f)", e.Link, e.D, e.H2)
}

func (e *GeometryError) Is(target error) bool { return target == ErrGeometry }
