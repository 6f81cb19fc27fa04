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

package tree_test

import (
	"go/token"
	"slices"
	"testing"

	. "fillmore-labs.com/methodguard/internal/tree"
)

func TestHierarchyAncestors(t *testing.T) {
	t.Parallel()

	h := Hierarchy{
		"Throwable":             "",
		"Exception":             "Throwable",
		"RuntimeException":      "Exception",
		"IllegalStateException": "RuntimeException",
		"Loop":                  "Loop",
	}

	tests := []struct {
		name   string
		typ    string
		want   []string
		wantOK bool
	}{
		{"Root", "Throwable", nil, true},
		{"Chain", "IllegalStateException", []string{"RuntimeException", "Exception", "Throwable"}, true},
		{"Qualified", "java.lang.IllegalStateException", []string{"RuntimeException", "Exception", "Throwable"}, true},
		{"Unknown", "Nope", nil, false},
		{"Cycle", "Loop", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := h.Ancestors(tt.typ)
			if ok != tt.wantOK {
				t.Fatalf("Ancestors(%q) ok = %v, want %v", tt.typ, ok, tt.wantOK)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Ancestors(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestResolvers(t *testing.T) {
	t.Parallel()

	r := Resolvers{nil, Hierarchy{"A": "B"}, Hierarchy{"A": "C", "D": ""}}

	if got, ok := r.Ancestors("A"); !ok || !slices.Equal(got, []string{"B"}) {
		t.Errorf("Ancestors(A) = %v, %v", got, ok)
	}

	if _, ok := r.Ancestors("D"); !ok {
		t.Error("Expected D to resolve")
	}
}

func TestParseCapability(t *testing.T) {
	t.Parallel()

	for _, c := range []Capability{Other, MutableSequence, MutableSet, MutableMapping} {
		got, err := ParseCapability(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCapability(%q) = %v, %v", c, got, err)
		}
	}

	if got, err := ParseCapability("mutable_set"); err != nil || got != MutableSet {
		t.Errorf("ParseCapability(mutable_set) = %v, %v", got, err)
	}

	if _, err := ParseCapability("IMMUTABLE"); err == nil {
		t.Error("Expected error for unknown capability")
	}
}

func TestInspectOrder(t *testing.T) {
	t.Parallel()

	pos := func(line int) token.Position { return token.Position{Filename: "A.java", Line: line, Column: 1} }

	call := &CallExpr{At: pos(2), Recv: &Ident{At: pos(2), Name: "items"}, Member: "add"}
	body := &BlockStmt{At: pos(1), List: []Stmt{
		&ExprStmt{X: call},
		&TryStmt{
			At:      pos(3),
			Body:    &BlockStmt{At: pos(3)},
			Catches: []*CatchClause{{At: pos(4), Name: "e", Types: []string{"Exception"}, Body: &BlockStmt{At: pos(4)}}},
		},
	}}

	var lines []int

	Inspect(body, func(n Node) bool {
		lines = append(lines, n.Pos().Line)
		return true
	})

	if want := []int{1, 2, 2, 2, 3, 3, 4, 4}; !slices.Equal(lines, want) {
		t.Errorf("Visited lines %v, want %v", lines, want)
	}
}

func TestFuncNameString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   FuncName
		want string
	}{
		{"Function", FuncName{Path: "os", Name: "Exit"}, "os.Exit"},
		{"Method", FuncName{Path: "java.lang", Receiver: "System", Name: "exit"}, "(java.lang.System).exit"},
		{"Bare", FuncName{Name: "f"}, "f"},
	}

	for _, tt := range tests {
		if got := tt.fn.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
