/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package template defines page templates: named sets of regions with
// relative positions and sizes that are instantiated into layers at page
// dimensions. A builtin pack ships embedded in the binary.
package template

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"photobook/internal/geom"
)

// RegionKind discriminates what a region holds.
type RegionKind string

const (
	RegionImage RegionKind = "image"
	RegionText  RegionKind = "text"
)

// Region is one slot of a template. Position and size are relative to the
// page, each component in [0,1].
type Region struct {
	Kind RegionKind `yaml:"kind"`
	X    float32    `yaml:"x"`
	Y    float32    `yaml:"y"`
	W    float32    `yaml:"w"`
	H    float32    `yaml:"h"`

	// Text regions only.
	Sample   string  `yaml:"sample,omitempty"`
	FontSize float32 `yaml:"font_size,omitempty"`
}

// Rect returns the region's world rect at the given page pixel size.
func (r Region) Rect(pageW, pageH float32) geom.Rect {
	return geom.R(r.X*pageW, r.Y*pageH, r.W*pageW, r.H*pageH)
}

// PageSpec is the page shape a template is designed for, in inches.
type PageSpec struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// defaultPageSpec is assumed when a pack omits the page shape.
var defaultPageSpec = PageSpec{Width: 8, Height: 8}

// Template is a named arrangement of regions.
type Template struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Page    PageSpec `yaml:"page"`
	Regions []Region `yaml:"regions"`
}

// Validate checks the identity fields and that every region lies within
// the unit square. A zero page is normalized, not rejected; user packs may
// omit it.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template without id")
	}
	if t.Name == "" {
		return fmt.Errorf("template %s without name", t.ID)
	}
	if t.Page == (PageSpec{}) {
		t.Page = defaultPageSpec
	}
	if t.Page.Width <= 0 || t.Page.Height <= 0 {
		return fmt.Errorf("template %s: non-positive page", t.ID)
	}
	for i, r := range t.Regions {
		if r.Kind != RegionImage && r.Kind != RegionText {
			return fmt.Errorf("template %s region %d: unknown kind %q", t.Name, i, r.Kind)
		}
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("template %s region %d: non-positive size", t.Name, i)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > 1.0001 || r.Y+r.H > 1.0001 {
			return fmt.Errorf("template %s region %d: outside unit square", t.Name, i)
		}
	}
	return nil
}

//go:embed builtin.yaml
var builtinYAML []byte

var (
	builtinOnce sync.Once
	builtins    []Template
	builtinErr  error
)

// Builtin returns the embedded template pack. The pack is parsed once; a
// parse failure is a build defect and panics.
func Builtin() []Template {
	builtinOnce.Do(func() {
		var doc struct {
			Templates []Template `yaml:"templates"`
		}
		if err := yaml.Unmarshal(builtinYAML, &doc); err != nil {
			builtinErr = fmt.Errorf("parse builtin templates: %w", err)
			return
		}
		for i := range doc.Templates {
			if err := doc.Templates[i].Validate(); err != nil {
				builtinErr = err
				return
			}
		}
		builtins = doc.Templates
	})
	if builtinErr != nil {
		panic(builtinErr)
	}
	return builtins
}

// ByName returns the builtin template with the given name.
func ByName(name string) (Template, bool) {
	for _, t := range Builtin() {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// ByID returns the builtin template with the given id.
func ByID(tid string) (Template, bool) {
	for _, t := range Builtin() {
		if t.ID == tid {
			return t, true
		}
	}
	return Template{}, false
}

// Parse reads templates from YAML, for user-supplied packs.
func Parse(data []byte) ([]Template, error) {
	var doc struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for i := range doc.Templates {
		if err := doc.Templates[i].Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Templates, nil
}
