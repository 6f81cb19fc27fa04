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

package tree

import "strings"

// TypeResolver answers nominal ancestry queries.
type TypeResolver interface {
	// Ancestors returns the supertypes of name, nearest first, excluding name itself.
	// ok is false when name is unknown.
	Ancestors(name string) (ancestors []string, ok bool)
}

// Hierarchy is a [TypeResolver] backed by a map from type name to its direct supertype.
// Root types map to "".
type Hierarchy map[string]string

// Ancestors implements [TypeResolver].
// Qualified names not present in the map are retried with their simple name.
func (h Hierarchy) Ancestors(name string) ([]string, bool) {
	parent, ok := h[name]
	if !ok {
		simple := SimpleName(name)
		if simple == name {
			return nil, false
		}

		if parent, ok = h[simple]; !ok {
			return nil, false
		}
	}

	var ancestors []string

	seen := map[string]struct{}{name: {}}
	for parent != "" {
		if _, ok := seen[parent]; ok {
			break // cyclic hierarchy
		}
		seen[parent] = struct{}{}

		ancestors = append(ancestors, parent)

		next, ok := h[parent]
		if !ok {
			next = h[SimpleName(parent)]
		}

		parent = next
	}

	return ancestors, true
}

// Resolvers combines several resolvers. The first one knowing a type answers.
type Resolvers []TypeResolver

// Ancestors implements [TypeResolver].
func (r Resolvers) Ancestors(name string) ([]string, bool) {
	for _, res := range r {
		if res == nil {
			continue
		}

		if ancestors, ok := res.Ancestors(name); ok {
			return ancestors, true
		}
	}

	return nil, false
}

// SimpleName strips generic arguments and package qualification from a type name.
func SimpleName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}

	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// IsA reports whether typ is named, or has an ancestor named, like one of names.
// Names are compared both qualified and simple.
func IsA(typ string, ancestors []string, names map[string]struct{}) bool {
	if matches(typ, names) {
		return true
	}

	for _, a := range ancestors {
		if matches(a, names) {
			return true
		}
	}

	return false
}

func matches(name string, names map[string]struct{}) bool {
	if _, ok := names[name]; ok {
		return true
	}

	_, ok := names[SimpleName(name)]

	return ok
}
