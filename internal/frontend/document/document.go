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

// Package document reads syntax trees serialized as YAML or JSON documents.
//
// A document lists units with their methods. Method bodies are lists of nodes
// tagged by "kind"; unknown kinds are kept as malformed nodes so that only the
// affected method becomes unanalyzable.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/methodguard/internal/frontend/jdk"
	"fillmore-labs.com/methodguard/internal/tree"
)

// ErrInvalidDocument is returned for documents that do not describe units.
var ErrInvalidDocument = errors.New("invalid document")

// File is the top level of a document.
type File struct {
	Units []Unit `yaml:"units"`
}

// Unit describes one declared type.
type Unit struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	// TypeResolution false produces a unit without resolver.
	TypeResolution *bool `yaml:"typeResolution"`
	// Hierarchy selects the base type table: "jdk" (default) or "none".
	Hierarchy string `yaml:"hierarchy"`
	// Types maps declared type names to their direct supertype.
	Types   map[string]string `yaml:"types"`
	Methods []Method          `yaml:"methods"`
}

// Method describes one method declaration.
type Method struct {
	Name     string   `yaml:"name"`
	Line     int      `yaml:"line"`
	Params   []Param  `yaml:"params"`
	Throws   []string `yaml:"throws"`
	Result   string   `yaml:"result"`
	Abstract bool     `yaml:"abstract"`
	Body     []*Node  `yaml:"body"`
}

// Param describes a formal parameter. Capability defaults to the one of the Java type.
type Param struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Capability string `yaml:"capability"`
}

// Parse reads all units of a document. Positions are reported relative to filename
// unless a unit names its own file.
func Parse(r io.Reader, filename string) ([]*tree.Unit, error) {
	var f File

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: empty", filename, ErrInvalidDocument)
		}

		return nil, fmt.Errorf("%s: %w: %w", filename, ErrInvalidDocument, err)
	}

	if len(f.Units) == 0 {
		return nil, fmt.Errorf("%s: %w: no units", filename, ErrInvalidDocument)
	}

	units := make([]*tree.Unit, 0, len(f.Units))

	for i := range f.Units {
		u, err := f.Units[i].convert(filename)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}

		units = append(units, u)
	}

	return units, nil
}

// ParseFile reads the document at path.
func ParseFile(path string) ([]*tree.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, path)
}

func (u *Unit) convert(filename string) (*tree.Unit, error) {
	if u.Name == "" {
		return nil, fmt.Errorf("%w: unit without name", ErrInvalidDocument)
	}

	file := u.File
	if file == "" {
		file = filename
	}

	resolver, err := u.resolver()
	if err != nil {
		return nil, err
	}

	unit := &tree.Unit{
		Name:     u.Name,
		File:     file,
		Methods:  make([]*tree.Method, 0, len(u.Methods)),
		Resolver: resolver,
	}

	for i := range u.Methods {
		m, err := u.Methods[i].convert(u.Name, file)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", u.Name, err)
		}

		unit.Methods = append(unit.Methods, m)
	}

	return unit, nil
}

func (u *Unit) resolver() (tree.TypeResolver, error) {
	if u.TypeResolution != nil && !*u.TypeResolution {
		return nil, nil //nolint:nilnil
	}

	var h tree.Hierarchy

	switch u.Hierarchy {
	case "", "jdk":
		h = jdk.Hierarchy()

	case "none":
		h = make(tree.Hierarchy, len(u.Types))

	default:
		return nil, fmt.Errorf("%w: unit %s: unknown hierarchy %q", ErrInvalidDocument, u.Name, u.Hierarchy)
	}

	for name, parent := range u.Types {
		h[name] = parent
	}

	return h, nil
}

func (m *Method) convert(owner, file string) (*tree.Method, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("%w: method without name", ErrInvalidDocument)
	}

	method := &tree.Method{
		Sig: tree.Signature{
			Name:   m.Name,
			Params: make([]tree.Param, 0, len(m.Params)),
			Throws: m.Throws,
			Result: m.Result,
		},
		At:    tree.Position(file, m.Line, 1),
		Owner: owner,
	}

	for _, p := range m.Params {
		c := jdk.Capability(p.Type)
		if p.Capability != "" {
			var err error
			if c, err = tree.ParseCapability(p.Capability); err != nil {
				return nil, fmt.Errorf("%w: method %s: parameter %s: %w", ErrInvalidDocument, m.Name, p.Name, err)
			}
		}

		method.Sig.Params = append(method.Sig.Params, tree.Param{Name: p.Name, Type: p.Type, Capability: c})
	}

	if !m.Abstract {
		c := converter{file: file, owner: owner}
		method.Body = &tree.BlockStmt{At: method.At, List: c.stmts(m.Body)}
	}

	return method, nil
}
