/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package photo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ReadMetadata extracts pixel dimensions and, where present, EXIF
// orientation, capture time, and camera model. A file without EXIF data is
// not an error; only an unreadable or undecodable file is.
func ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("decode %s: %w", path, err)
	}
	meta := Metadata{Width: cfg.Width, Height: cfg.Height}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Metadata{}, fmt.Errorf("rewind photo: %w", err)
	}
	x, err := exif.Decode(f)
	if err != nil {
		// PNGs and stripped JPEGs carry no EXIF block.
		return meta, nil
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil {
			meta.Rotation = rotationFromOrientation(o)
		}
	}
	if t, err := x.DateTime(); err == nil {
		meta.TakenAt = t
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			meta.CameraModel = s
		}
	}
	return meta, nil
}

// rotationFromOrientation maps the EXIF orientation tag to a quarter-turn
// rotation. Mirrored orientations (2, 4, 5, 7) fall back to their unmirrored
// counterparts.
func rotationFromOrientation(o int) Rotation {
	switch o {
	case 3, 4:
		return Rotate180
	case 6, 5:
		return Rotate90
	case 8, 7:
		return Rotate270
	default:
		return Rotate0
	}
}
