// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

// Package output renders batch results as JSON, YAML, a table or styled text.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/methodguard/internal/batch"
	"fillmore-labs.com/methodguard/internal/verdict"
)

// Format selects a rendering.
type Format string

// Supported formats.
const (
	JSON  Format = "json"
	YAML  Format = "yaml"
	Table Format = "table"
	Text  Format = "text"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, Table, Text}

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// UnitReport is the serialized result of one unit.
type UnitReport struct {
	Unit    string           `json:"unit"            yaml:"unit"`
	File    string           `json:"file"            yaml:"file"`
	Methods []verdict.Report `json:"methods"         yaml:"methods"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Reports converts batch results to their serialized form.
func Reports(results []batch.UnitResult) []UnitReport {
	reports := make([]UnitReport, 0, len(results))

	for _, r := range results {
		u := UnitReport{Unit: r.Unit, File: r.File, Methods: make([]verdict.Report, 0, len(r.Verdicts))}
		if r.Err != nil {
			u.Error = r.Err.Error()
		}

		for _, v := range r.Verdicts {
			u.Methods = append(u.Methods, v.Report())
		}

		reports = append(reports, u)
	}

	return reports
}

// Options tune the rendering.
type Options struct {
	// Color enables ANSI styling of the text format.
	Color bool
}

// Write renders results to w in format f.
func Write(w io.Writer, f Format, results []batch.UnitResult, opts Options) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(Reports(results))

	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(Reports(results)); err != nil {
			return err
		}

		return enc.Close()

	case Table:
		return writeTable(w, results)

	case Text:
		return writeText(w, results, opts.Color)

	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
}
