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

package golang_test

import (
	"go/ast"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/methodguard/internal/config"
	. "fillmore-labs.com/methodguard/internal/frontend/golang"
	"fillmore-labs.com/methodguard/internal/testsource"
	"fillmore-labs.com/methodguard/internal/tree"
	"fillmore-labs.com/methodguard/internal/verdict"
)

const src = `package test

import (
	"container/list"
	"errors"
	"fmt"
	"os"
	"slices"
)

type Set map[string]struct{}

type Store struct{ items []string }

func (s *Store) check(n int) error {
	if n < 0 {
		return errors.New("negative")
	}

	return nil
}

func (s *Store) Add(n int) error {
	if err := s.check(n); err != nil {
		return err
	}

	if n > 10 {
		panic("too large")
	}

	s.items = append(s.items, "x")

	return nil
}

func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}

	return total
}

func Mutate(xs []int, seen Set, m map[string]int, l *list.List) {
	xs[0] = 1
	delete(seen, "a")
	_ = m["a"]
	l.PushBack(1)
}

func Sorts(xs []int) {
	ys := xs
	slices.Sort(ys)
}

func Exits(code int) error {
	os.Exit(code)
	panic("unreachable")
}

func Recovers() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()

	panic("boom")
}

func Open(name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return 1, nil
}

func Reassigns(xs []int) {
	xs = nil
	clear(xs)
}

func Shadow(items []int, ok bool) {
	if ok {
		items := []int{0}
		items[0] = 1
	}

	items[0] = 2
}

func Leak(items []int) {
	alias := []int{0}
	{
		alias := items
		_ = alias
	}

	alias[0] = 1
}
`

func lower(t *testing.T) *Package {
	t.Helper()

	fset, f := testsource.Parse(t, src)
	pkg, info := testsource.Check(t, fset, f)

	return Lower(fset, pkg, info, []*ast.File{f})
}

func TestLower(t *testing.T) {
	t.Parallel()

	fset, f := testsource.Parse(t, src)
	pkg, info := testsource.Check(t, fset, f)

	p := Lower(fset, pkg, info, []*ast.File{f})

	u := p.Unit
	assert.Equal(t, "test", u.Name)
	assert.Equal(t, "test.go", u.File)
	require.Len(t, u.Methods, 11)

	add := testsource.FuncDecl(t, f, "Add")
	i, ok := p.Index(add)
	require.True(t, ok)

	m := u.Methods[i]
	assert.Equal(t, "Add", m.Sig.Name)
	assert.Equal(t, "Store", m.Owner)
	assert.Equal(t, []string{ErrorRoot}, m.Sig.Throws)
	assert.Equal(t, 23, m.At.Line)

	mutate := u.Methods[3]
	assert.Equal(t, "test", mutate.Owner)
	assert.Equal(t, []tree.Param{
		{Name: "xs", Type: "[]int", Capability: tree.MutableSequence},
		{Name: "seen", Type: "Set", Capability: tree.MutableSet},
		{Name: "m", Type: "map[string]int", Capability: tree.MutableMapping},
		{Name: "l", Type: "*list.List", Capability: tree.MutableSequence},
	}, mutate.Sig.Params)
	assert.Empty(t, mutate.Sig.Throws)

	recovers := u.Methods[6]
	require.Len(t, recovers.Body.List, 1)
	_, ok = recovers.Body.List[0].(*tree.TryStmt)
	assert.True(t, ok)
}

func TestVerdicts(t *testing.T) {
	t.Parallel()

	p := lower(t)

	a, err := verdict.New(config.GoRules())
	require.NoError(t, err)

	verdicts, err := a.AnalyzeUnit(t.Context(), p.Unit)
	require.NoError(t, err)

	type mutated struct{ param, location string }

	want := []struct {
		name    string
		kind    string
		mutated []mutated
	}{
		{"check", "CHECKED", nil},
		{"Add", "BOTH", nil},
		{"Sum", "NONE", nil},
		{"Mutate", "NONE", []mutated{{"xs", "test.go:47:2"}, {"seen", "test.go:48:2"}, {"l", "test.go:50:2"}}},
		{"Sorts", "NONE", []mutated{{"xs", "test.go:55:2"}}},
		{"Exits", "NONE", nil},
		{"Recovers", "NONE", nil},
		{"Open", "CHECKED", nil},
		{"Reassigns", "NONE", nil},
		{"Shadow", "NONE", []mutated{{"items", "test.go:94:2"}}},
		{"Leak", "NONE", nil},
	}

	require.Len(t, verdicts, len(want))

	for i, w := range want {
		r := verdicts[i].Report()

		assert.Equal(t, w.name, r.MethodName)
		assert.Equal(t, w.kind, r.ExceptionKind, w.name)
		assert.Empty(t, r.Diagnostics, w.name)
		assert.Empty(t, r.UndeclaredChecked, w.name)

		var got []mutated
		for _, p := range r.MutatedParameters {
			got = append(got, mutated{p.ParamName, p.Location})
		}

		assert.Equal(t, w.mutated, got, w.name)
	}
}

func TestCapability(t *testing.T) {
	t.Parallel()

	str := types.Typ[types.String]

	tests := []struct {
		name string
		typ  types.Type
		want tree.Capability
	}{
		{"Slice", types.NewSlice(str), tree.MutableSequence},
		{"Set", types.NewMap(str, types.NewStruct(nil, nil)), tree.MutableSet},
		{"BoolSet", types.NewMap(str, types.Typ[types.Bool]), tree.MutableSet},
		{"Map", types.NewMap(str, types.Typ[types.Int]), tree.MutableMapping},
		{"Array", types.NewArray(str, 3), tree.Other},
		{"PointerToSlice", types.NewPointer(types.NewSlice(str)), tree.Other},
		{"String", str, tree.Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Capability(tt.typ))
		})
	}
}

func TestResolver(t *testing.T) {
	t.Parallel()

	var r Resolver

	ancestors, ok := r.Ancestors(PanicType("string"))
	assert.True(t, ok)
	assert.Equal(t, []string{PanicRoot}, ancestors)

	ancestors, ok = r.Ancestors(ErrorRoot)
	assert.True(t, ok)
	assert.Empty(t, ancestors)

	ancestors, ok = r.Ancestors("*os.PathError")
	assert.True(t, ok)
	assert.Equal(t, []string{ErrorRoot}, ancestors)
}
