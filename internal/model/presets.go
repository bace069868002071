/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

// Preset is a named page size in inches. Custom is represented by the absence
// of a preset; the page keeps whatever dimensions the user typed.
type Preset struct {
	Name   string
	Width  float32
	Height float32
}

// Presets are the page sizes offered by the new-page flow.
var Presets = []Preset{
	{Name: "8 x 8 in", Width: 8, Height: 8},
	{Name: "11 x 8 in", Width: 11, Height: 8},
	{Name: "8 x 11 in", Width: 8, Height: 11},
	{Name: "12 x 12 in", Width: 12, Height: 12},
}

// PresetByName looks up a preset; ok is false for unknown names (Custom).
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyPreset switches the page to the preset's inch dimensions. Density is
// kept.
func (p *Page) ApplyPreset(pr Preset) {
	p.Unit = UnitInches
	p.Width = pr.Width
	p.Height = pr.Height
}
