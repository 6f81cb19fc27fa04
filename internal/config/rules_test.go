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

package config_test

import (
	"errors"
	"slices"
	"testing"

	. "fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/tree"
)

func TestNewRules(t *testing.T) {
	t.Parallel()

	depth := func(d int) *int { return &d }

	tests := []struct {
		name    string
		file    RulesFile
		wantErr bool
		depth   int
	}{
		{"Defaults", DefaultRulesFile(), false, DefaultInlineDepth},
		{"Go", GoRulesFile(), false, DefaultInlineDepth},
		{"Empty", RulesFile{}, false, DefaultInlineDepth},
		{"ZeroDepth", RulesFile{InlineDepth: depth(0)}, false, 0},
		{"DeepInline", RulesFile{InlineDepth: depth(3)}, false, 3},
		{"NegativeDepth", RulesFile{InlineDepth: depth(-1)}, true, 0},
		{"UnknownCapability", RulesFile{MutatingOperations: map[string][]string{"IMMUTABLE_LIST": {"add"}}}, true, 0},
		{"OtherCapability", RulesFile{MutatingOperations: map[string][]string{"OTHER": {"add"}}}, true, 0},
		{"EmptyRoot", RulesFile{UncheckedExceptionFamily: []string{""}}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRules(tt.file)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRules) {
					t.Fatalf("Got error %v, want %v", err, ErrInvalidRules)
				}

				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if got := r.InlineDepth(); got != tt.depth {
				t.Errorf("InlineDepth() = %d, want %d", got, tt.depth)
			}
		})
	}
}

func TestMutates(t *testing.T) {
	t.Parallel()

	r, err := NewRules(RulesFile{
		MutatingOperations: map[string][]string{"mutable_sequence": {"insert"}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !r.Mutates(tree.MutableSequence, "insert") {
		t.Error("Expected insert to mutate a sequence")
	}

	if r.Mutates(tree.MutableSequence, "size") {
		t.Error("Expected size not to mutate a sequence")
	}

	if r.Mutates(tree.MutableSet, "insert") {
		t.Error("Expected insert not to mutate a set")
	}
}

func TestRulesFileRoundTrip(t *testing.T) {
	t.Parallel()

	f := DefaultRules().File()

	if !slices.IsSorted(f.UncheckedExceptionFamily) {
		t.Errorf("Family not sorted: %v", f.UncheckedExceptionFamily)
	}

	r, err := NewRules(f)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, ok := r.UncheckedFamily()["RuntimeException"]; !ok {
		t.Error("Expected RuntimeException to be an unchecked root")
	}

	if !r.Mutates(tree.MutableMapping, "put") {
		t.Error("Expected put to mutate a mapping")
	}
}
