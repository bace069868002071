/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package photo owns the loaded photo collection: metadata extraction,
// background decoding, navigation, and the on-disk thumbnail cache.
package photo

import (
	"path/filepath"
	"strings"
	"time"
)

// Rotation is a metadata-only transform in quarter turns. Pixels are never
// rewritten.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Degrees returns the rotation angle in degrees.
func (r Rotation) Degrees() int { return int(r) * 90 }

// Next returns the rotation advanced by a quarter turn clockwise.
func (r Rotation) Next() Rotation { return (r + 1) % 4 }

// swapsAxes reports whether the rotation exchanges width and height.
func (r Rotation) swapsAxes() bool { return r == Rotate90 || r == Rotate270 }

// Metadata is what the decoder extracts from a photo file. Width and Height
// are the stored pixel dimensions before rotation is applied.
type Metadata struct {
	Width       int
	Height      int
	Rotation    Rotation
	TakenAt     time.Time // zero when the file carries no EXIF timestamp
	CameraModel string
}

// Photo is one file in the collection.
type Photo struct {
	Path   string
	Rating int // 0..5, 0 meaning unrated
	Meta   Metadata
}

// Name returns the file name without directory.
func (p Photo) Name() string { return filepath.Base(p.Path) }

// Size returns the display dimensions with rotation applied.
func (p Photo) Size() (w, h int) {
	if p.Meta.Rotation.swapsAxes() {
		return p.Meta.Height, p.Meta.Width
	}
	return p.Meta.Width, p.Meta.Height
}

// MaxDimension returns the larger display edge in pixels.
func (p Photo) MaxDimension() int {
	w, h := p.Size()
	return max(w, h)
}

// AspectRatio returns display width over height, 1 when dimensions are
// unknown.
func (p Photo) AspectRatio() float32 {
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// State tracks an entry's lifecycle inside the manager.
type State int

const (
	StatePending State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SupportedFile reports whether the path has a photo extension the loader
// accepts. The check is case-insensitive.
func SupportedFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
