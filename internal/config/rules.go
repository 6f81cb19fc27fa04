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

package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/methodguard/internal/tree"
)

// DefaultInlineDepth is the number of same-type call levels inlined by the exception classifier.
const DefaultInlineDepth = 1

// ErrInvalidRules is returned for configurations that cannot be used.
var ErrInvalidRules = errors.New("invalid rules")

// RulesFile is the serialized form of [Rules].
type RulesFile struct {
	// UncheckedExceptionFamily names the root types of unchecked exceptions.
	UncheckedExceptionFamily []string `json:"uncheckedExceptionFamily" mapstructure:"uncheckedExceptionFamily" yaml:"uncheckedExceptionFamily"`
	// MutatingOperations maps a capability tag to the member names that mutate it.
	MutatingOperations map[string][]string `json:"mutatingOperations" mapstructure:"mutatingOperations" yaml:"mutatingOperations"`
	// InlineDepth bounds same-type call inlining. Nil means [DefaultInlineDepth].
	InlineDepth *int `json:"inlineDepth,omitempty" mapstructure:"inlineDepth" yaml:"inlineDepth,omitempty"`
}

// Rules is the validated, immutable analysis configuration.
type Rules struct {
	family      map[string]struct{}
	operations  map[tree.Capability]map[string]struct{}
	inlineDepth int
}

// NewRules validates f and builds the lookup tables.
func NewRules(f RulesFile) (*Rules, error) {
	r := &Rules{
		family:      make(map[string]struct{}, len(f.UncheckedExceptionFamily)),
		operations:  make(map[tree.Capability]map[string]struct{}, len(f.MutatingOperations)),
		inlineDepth: DefaultInlineDepth,
	}

	for _, name := range f.UncheckedExceptionFamily {
		if name == "" {
			return nil, fmt.Errorf("%w: empty unchecked exception family root", ErrInvalidRules)
		}

		r.family[name] = struct{}{}
	}

	for tag, members := range f.MutatingOperations {
		c, err := tree.ParseCapability(tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}

		if !c.Collection() {
			return nil, fmt.Errorf("%w: capability %s has no mutating operations", ErrInvalidRules, c)
		}

		ops := r.operations[c]
		if ops == nil {
			ops = make(map[string]struct{}, len(members))
			r.operations[c] = ops
		}

		for _, m := range members {
			ops[m] = struct{}{}
		}
	}

	if f.InlineDepth != nil {
		if *f.InlineDepth < 0 {
			return nil, fmt.Errorf("%w: negative inline depth %d", ErrInvalidRules, *f.InlineDepth)
		}

		r.inlineDepth = *f.InlineDepth
	}

	return r, nil
}

// UncheckedFamily returns the set of unchecked root type names. The result must not be modified.
func (r *Rules) UncheckedFamily() map[string]struct{} { return r.family }

// Mutates reports whether calling member on a value of capability c mutates it.
func (r *Rules) Mutates(c tree.Capability, member string) bool {
	_, ok := r.operations[c][member]
	return ok
}

// InlineDepth returns the inlining bound.
func (r *Rules) InlineDepth() int { return r.inlineDepth }

// File returns the serialized form of r, with sorted entries.
func (r *Rules) File() RulesFile {
	depth := r.inlineDepth

	f := RulesFile{
		UncheckedExceptionFamily: slices.Sorted(maps.Keys(r.family)),
		MutatingOperations:       make(map[string][]string, len(r.operations)),
		InlineDepth:              &depth,
	}

	for c, ops := range r.operations {
		f.MutatingOperations[c.String()] = slices.Sorted(maps.Keys(ops))
	}

	return f
}

// DefaultRules returns the rules for Java-like sources.
func DefaultRules() *Rules {
	r, err := NewRules(DefaultRulesFile())
	if err != nil {
		panic(err)
	}

	return r
}

// DefaultRulesFile returns the serialized default rules for Java-like sources.
func DefaultRulesFile() RulesFile {
	return RulesFile{
		UncheckedExceptionFamily: []string{
			"RuntimeException", "java.lang.RuntimeException",
			"Error", "java.lang.Error",
		},
		MutatingOperations: map[string][]string{
			tree.MutableSequence.String(): {
				"add", "addAll", "addFirst", "addLast", "insert", "push", "pop", "poll",
				"offer", "remove", "removeAll", "removeIf", "removeFirst", "removeLast",
				"retainAll", "set", "clear", "sort", "replaceAll",
			},
			tree.MutableSet.String(): {
				"add", "addAll", "remove", "removeAll", "removeIf", "retainAll", "clear",
			},
			tree.MutableMapping.String(): {
				"put", "putAll", "putIfAbsent", "remove", "replace", "replaceAll",
				"compute", "computeIfAbsent", "computeIfPresent", "merge", "clear",
			},
		},
	}
}

// GoRules returns the rules for Go sources, as lowered by the Go front-end.
func GoRules() *Rules {
	r, err := NewRules(GoRulesFile())
	if err != nil {
		panic(err)
	}

	return r
}

// GoRulesFile returns the serialized rules for Go sources.
//
// Panics are the only unchecked exceptions. Built-in operations are lowered to
// pseudo members: index assignment is "[]=", and package functions taking the
// collection as first argument are named by their qualified name.
func GoRulesFile() RulesFile {
	return RulesFile{
		UncheckedExceptionFamily: []string{"panic"},
		MutatingOperations: map[string][]string{
			tree.MutableSequence.String(): {
				"[]=", "clear", "copy",
				"slices.Compact", "slices.CompactFunc", "slices.Delete", "slices.DeleteFunc",
				"slices.Reverse", "slices.Sort", "slices.SortFunc", "slices.SortStableFunc",
				"sort.Sort", "sort.Stable", "sort.Slice", "sort.SliceStable",
				"sort.Ints", "sort.Strings", "sort.Float64s",
				"PushBack", "PushFront", "InsertBefore", "InsertAfter", "Remove",
				"MoveToFront", "MoveToBack", "MoveBefore", "MoveAfter", "PushBackList", "PushFrontList", "Init",
			},
			tree.MutableSet.String(): {
				"[]=", "delete", "clear", "maps.Copy", "maps.DeleteFunc",
			},
			tree.MutableMapping.String(): {
				"[]=", "delete", "clear", "maps.Copy", "maps.DeleteFunc",
			},
		},
	}
}
