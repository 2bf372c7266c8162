// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/text"
)

// ErrInvalidPlan is returned when a plan fails validation.
var ErrInvalidPlan = errors.Base("invalid plan")

// 🔌 Parser is the interface for plan parsers
type Parser interface {
	// 📝 Parse parses the plan from bytes
	Parse(ctx context.Context, data []byte) (*Plan, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ✏️ Edit is one anchored replacement as written in a plan file
type Edit struct {
	Label       string   `json:"label,omitempty" yaml:"label,omitempty" hcl:"label,optional"`
	Target      string   `json:"target" yaml:"target" hcl:"target"`
	Replacement *string  `json:"replacement" yaml:"replacement" hcl:"replacement,optional"` // nil when the key is absent
	Before      []string `json:"before,omitempty" yaml:"before,omitempty" hcl:"before,optional"`
	After       []string `json:"after,omitempty" yaml:"after,omitempty" hcl:"after,optional"`
}

// 📂 FileSet is a group of files sharing the same edits
type FileSet struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,label"`
	Glob   string   `json:"glob" yaml:"glob" hcl:"glob"`
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Edits  []Edit   `json:"edits" yaml:"edits" hcl:"edit,block"`
}

// 📚 Plan represents a complete edit plan
type Plan struct {
	Root        string    `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Concurrency int       `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
	Backup      bool      `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`
	Files       []FileSet `json:"files" yaml:"files" hcl:"files,block"`

	location string
}

// 📍 Location returns the path the plan was loaded from, if any
func (p *Plan) Location() string {
	return p.location
}

// 🎯 Load loads the plan from a file
func Load(ctx context.Context, path string) (*Plan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading plan")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading plan file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	plan, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing plan: %w", err)
	}
	plan.location = path

	if err := plan.Validate(); err != nil {
		return nil, errors.Errorf("validating plan: %w", err)
	}

	logger.Debug().
		Str("root", plan.Root).
		Int("file_sets", len(plan.Files)).
		Int("concurrency", plan.Concurrency).
		Msg("plan loaded")

	return plan, nil
}

// 🔍 Validate checks if the plan is valid and fills in defaults
func (p *Plan) Validate() error {
	if len(p.Files) == 0 {
		return errors.Errorf("%w: at least one file set is required", ErrInvalidPlan)
	}
	if p.Concurrency < 0 {
		return errors.Errorf("%w: concurrency must not be negative, got %d", ErrInvalidPlan, p.Concurrency)
	}

	for i, fs := range p.Files {
		where := fmt.Sprintf("files[%d]", i)
		if fs.Name != "" {
			where = fmt.Sprintf("files[%d] (%s)", i, fs.Name)
		}
		if strings.TrimSpace(fs.Glob) == "" {
			return errors.Errorf("%w: %s: glob is required", ErrInvalidPlan, where)
		}
		if len(fs.Edits) == 0 {
			return errors.Errorf("%w: %s: at least one edit is required", ErrInvalidPlan, where)
		}
		for j, e := range fs.Edits {
			if e.Replacement == nil {
				return errors.Errorf("%w: %s: edits[%d]: replacement is required", ErrInvalidPlan, where, j)
			}
		}
	}

	// Set defaults
	base := "."
	if p.location != "" {
		base = filepath.Dir(p.location)
	}
	switch {
	case p.Root == "":
		p.Root = base
	case !filepath.IsAbs(p.Root):
		p.Root = filepath.Join(base, p.Root)
	}
	p.Root = filepath.Clean(p.Root)

	if p.Concurrency == 0 {
		p.Concurrency = 1
	}

	return nil
}

// 📝 String returns a string representation of the plan
func (p *Plan) String() string {
	edits := 0
	for _, fs := range p.Files {
		edits += len(fs.Edits)
	}
	return fmt.Sprintf("%s: %d file sets, %d edits", p.Root, len(p.Files), edits)
}

// 🔄 Requests converts the file set's edits to replacement requests
func (fs FileSet) Requests() []text.Request {
	reqs := make([]text.Request, 0, len(fs.Edits))
	for _, e := range fs.Edits {
		var replacement string
		if e.Replacement != nil {
			replacement = *e.Replacement
		}
		reqs = append(reqs, text.Request{
			Label:       e.Label,
			Target:      e.Target,
			Replacement: replacement,
			Before:      e.Before,
			After:       e.After,
		})
	}
	return reqs
}
