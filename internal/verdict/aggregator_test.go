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

package verdict_test

import (
	"context"
	"encoding/json"
	"errors"
	"go/token"
	"reflect"
	"testing"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/diag"
	"fillmore-labs.com/methodguard/internal/exceptions"
	"fillmore-labs.com/methodguard/internal/tree"
	. "fillmore-labs.com/methodguard/internal/verdict"
)

func pos(line int) token.Position {
	return token.Position{Filename: "JavaClass.java", Line: line, Column: 9}
}

func throwNew(line int, typ string) *tree.ThrowStmt {
	return &tree.ThrowStmt{At: pos(line), X: &tree.NewExpr{At: pos(line), Type: typ}}
}

func call(line int, recv, member string) *tree.ExprStmt {
	return &tree.ExprStmt{X: &tree.CallExpr{At: pos(line), Recv: &tree.Ident{At: pos(line), Name: recv}, Member: member}}
}

func method(name string, params []tree.Param, throws []string, body ...tree.Stmt) *tree.Method {
	return &tree.Method{
		Sig:   tree.Signature{Name: name, Params: params, Throws: throws, Result: "void"},
		Body:  &tree.BlockStmt{List: body},
		Owner: "JavaClass",
	}
}

var items = tree.Param{Name: "items", Type: "List<String>", Capability: tree.MutableSequence}

// javaClass mirrors the sample class with one method per scenario.
func javaClass() *tree.Unit {
	return &tree.Unit{
		Name: "JavaClass",
		File: "JavaClass.java",
		Methods: []*tree.Method{
			method("methodDoesNotThrow", nil, nil),
			method("methodThrowsCheckedException", nil, []string{"IllegalAccessException"}, throwNew(12, "IllegalAccessException")),
			method("methodThrowsUncheckedException", nil, nil, throwNew(16, "IllegalStateException")),
			method("methodDoesNotMutateParameter", []tree.Param{items}, nil, call(19, "items", "size")),
			method("methodMutatesParameter", []tree.Param{items}, nil, call(24, "items", "insert")),
			method("methodBroken", nil, nil, &tree.BadStmt{At: pos(27), Kind: "yield_statement"}),
			method("methodThrowsBoth", nil, []string{"IllegalAccessException"},
				&tree.IfStmt{
					At:   pos(30),
					Cond: &tree.Ident{At: pos(30), Name: "flag", Type: "boolean"},
					Then: throwNew(31, "IllegalAccessException"),
				},
				throwNew(33, "IllegalArgumentException"),
			),
		},
		Resolver: tree.Hierarchy{
			"Throwable":                "",
			"Exception":                "Throwable",
			"IllegalAccessException":   "Exception",
			"RuntimeException":         "Exception",
			"IllegalStateException":    "RuntimeException",
			"IllegalArgumentException": "RuntimeException",
		},
	}
}

func newAggregator(t *testing.T, opts ...Option) *Aggregator {
	t.Helper()

	a, err := New(config.DefaultRules(), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return a
}

func TestAnalyzeUnit(t *testing.T) {
	t.Parallel()

	verdicts, err := newAggregator(t, WithParallelism(3)).AnalyzeUnit(t.Context(), javaClass())
	if err != nil {
		t.Fatalf("AnalyzeUnit failed: %v", err)
	}

	want := []struct {
		name    string
		kind    string
		mutated []string
	}{
		{"methodDoesNotThrow", "NONE", nil},
		{"methodThrowsCheckedException", "CHECKED", nil},
		{"methodThrowsUncheckedException", "UNCHECKED", nil},
		{"methodDoesNotMutateParameter", "NONE", nil},
		{"methodMutatesParameter", "NONE", []string{"items"}},
		{"methodBroken", "UNANALYZABLE", nil},
		{"methodThrowsBoth", "BOTH", nil},
	}

	if len(verdicts) != len(want) {
		t.Fatalf("Got %d verdicts, want %d", len(verdicts), len(want))
	}

	for i, w := range want {
		v := verdicts[i]

		if v.Index != i || v.Name() != w.name {
			t.Errorf("Verdict %d is %s (index %d), want %s", i, v.Name(), v.Index, w.name)
		}

		if got := v.ExceptionKind(); got != w.kind {
			t.Errorf("%s: got kind %s, want %s", w.name, got, w.kind)
		}

		var mutated []string
		for _, m := range v.Mutated() {
			mutated = append(mutated, m.Param)
		}

		if !reflect.DeepEqual(mutated, w.mutated) {
			t.Errorf("%s: got mutated %v, want %v", w.name, mutated, w.mutated)
		}
	}

	if broken := verdicts[5]; !errors.Is(broken.Err, diag.ErrMalformedAST) {
		t.Errorf("Got error %v, want %v", broken.Err, diag.ErrMalformedAST)
	}
}

func TestAnalyzeUnitIdempotent(t *testing.T) {
	t.Parallel()

	a := newAggregator(t)
	u := javaClass()

	first, err := a.AnalyzeUnit(t.Context(), u)
	if err != nil {
		t.Fatal(err)
	}

	second, err := a.AnalyzeUnit(t.Context(), u)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Verdicts differ between runs")
	}
}

func TestNoTypeResolver(t *testing.T) {
	t.Parallel()

	u := javaClass()
	u.Resolver = nil

	_, err := newAggregator(t).AnalyzeUnit(t.Context(), u)
	if !errors.Is(err, ErrNoTypeResolver) {
		t.Errorf("Got error %v, want %v", err, ErrNoTypeResolver)
	}
}

func TestCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newAggregator(t).AnalyzeUnit(ctx, javaClass())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}

func TestNoRules(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); !errors.Is(err, config.ErrInvalidRules) {
		t.Errorf("Got error %v, want %v", err, config.ErrInvalidRules)
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	u := javaClass()
	a := newAggregator(t)

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{
			name:  "Mutated",
			index: 4,
			want:  `{"methodName":"methodMutatesParameter","exceptionKind":"NONE","mutatedParameters":[{"paramName":"items","location":"JavaClass.java:24:9"}]}`,
		},
		{
			name:  "NotMutated",
			index: 3,
			want:  `{"methodName":"methodDoesNotMutateParameter","exceptionKind":"NONE","mutatedParameters":[]}`,
		},
		{
			name:  "Unanalyzable",
			index: 5,
			want:  `{"methodName":"methodBroken","exceptionKind":"UNANALYZABLE","mutatedParameters":[],"diagnostics":["JavaClass.java:27:9: unknown node kind \"yield_statement\""]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(a.AnalyzeMethod(t.Context(), u, tt.index))
			if err != nil {
				t.Fatal(err)
			}

			if string(got) != tt.want {
				t.Errorf("Got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUndeclared(t *testing.T) {
	t.Parallel()

	u := javaClass()
	u.Methods[1].Sig.Throws = nil

	v := newAggregator(t).AnalyzeMethod(t.Context(), u, 1)

	if v.Kind != exceptions.Checked {
		t.Errorf("Got kind %s, want %s", v.Kind, exceptions.Checked)
	}

	if want := []string{"IllegalAccessException"}; !reflect.DeepEqual(v.Undeclared, want) {
		t.Errorf("Got undeclared %v, want %v", v.Undeclared, want)
	}
}
