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

// Package golang lowers type-checked Go function declarations to syntax tree units.
//
// A package becomes one unit. Methods are owned by their receiver's base type,
// plain functions by the package path. Panics are thrown values of type
// "panic(T)", and returning a non-nil error from a function whose last result
// is an error throws the error's static type.
package golang

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

const (
	// PanicRoot is the ancestor of all panic types.
	PanicRoot = "panic"

	// ErrorRoot is the ancestor of all returned error types.
	ErrorRoot = "error"
)

// Resolver is the [tree.TypeResolver] of lowered Go code.
type Resolver struct{}

// Ancestors implements [tree.TypeResolver]. Every type is known.
func (Resolver) Ancestors(name string) ([]string, bool) {
	switch {
	case strings.HasPrefix(name, PanicRoot+"("):
		return []string{PanicRoot}, true

	case name == ErrorRoot:
		return nil, true

	default:
		return []string{ErrorRoot}, true
	}
}

// PanicType is the thrown type of a panic with a value of type typ.
func PanicType(typ string) string { return PanicRoot + "(" + typ + ")" }

// Package is a lowered Go package.
type Package struct {
	Unit  *tree.Unit
	index map[*ast.FuncDecl]int
}

// Index returns the declaration index of fn within the unit.
func (p *Package) Index(fn *ast.FuncDecl) (int, bool) {
	i, ok := p.index[fn]
	return i, ok
}

// Lower converts all function declarations of files, in file and declaration order.
func Lower(fset *token.FileSet, pkg *types.Package, info *types.Info, files []*ast.File) *Package {
	p := &Package{
		Unit:  &tree.Unit{Name: pkg.Path(), Resolver: Resolver{}},
		index: make(map[*ast.FuncDecl]int),
	}

	for _, f := range files {
		if p.Unit.File == "" {
			p.Unit.File = fset.PositionFor(f.Pos(), false).Filename
		}

		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}

			p.index[fn] = len(p.Unit.Methods)
			p.Unit.Methods = append(p.Unit.Methods, Function(fset, pkg, info, fn))
		}
	}

	return p
}

// Function lowers a single function declaration.
func Function(fset *token.FileSet, pkg *types.Package, info *types.Info, fn *ast.FuncDecl) *tree.Method {
	l := &lowering{fset: fset, pkg: pkg, info: info}

	m := &tree.Method{
		Sig: tree.Signature{Name: fn.Name.Name},
		At:  l.pos(fn.Name.Pos()),
	}

	obj, _ := info.Defs[fn.Name].(*types.Func)
	if obj != nil {
		m.Owner = l.owner(obj)
	} else {
		m.Owner = pkg.Path()
	}

	var sig *types.Signature
	if obj != nil {
		sig = obj.Signature()
	}

	l.results(sig)

	if sig != nil {
		m.Sig.Params = l.params(sig)
		m.Sig.Result = l.typeString(sig.Results())

		if l.errResult {
			m.Sig.Throws = []string{ErrorRoot}
		}
	}

	if fn.Body == nil {
		return m
	}

	m.Body = l.block(fn.Body)

	if recovers(info, fn.Body) {
		m.Body = &tree.BlockStmt{At: m.Body.At, List: []tree.Stmt{&tree.TryStmt{
			At:      m.Body.At,
			Body:    m.Body,
			Catches: []*tree.CatchClause{{At: m.Body.At, Types: []string{PanicRoot}, Body: &tree.BlockStmt{At: m.Body.At}}},
		}}}
	}

	return m
}

// owner returns the owning type name of a method, or the package path for functions.
func (l *lowering) owner(fn *types.Func) string {
	if fn.Signature().Recv() == nil {
		if pkg := fn.Pkg(); pkg != nil {
			return pkg.Path()
		}

		return ""
	}

	return tracker.FuncNameOf(fn).Receiver
}

func (l *lowering) params(sig *types.Signature) []tree.Param {
	tuple := sig.Params()
	params := make([]tree.Param, 0, tuple.Len())

	for v := range tuple.Variables() {
		name := v.Name()
		if name == "" {
			name = "_"
		}

		params = append(params, tree.Param{Name: name, Type: l.typeString(v.Type()), Capability: Capability(v.Type())})
	}

	return params
}

// Capability classifies a Go parameter type.
//
// Slices and *container/list.List are sequences. Maps to empty structs or
// booleans are sets, all other maps are mappings.
func Capability(t types.Type) tree.Capability {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		if named, ok := types.Unalias(ptr.Elem()).(*types.Named); ok {
			obj := named.Obj()
			if pkg := obj.Pkg(); pkg != nil && pkg.Path() == "container/list" && obj.Name() == "List" {
				return tree.MutableSequence
			}
		}

		return tree.Other
	}

	switch u := t.Underlying().(type) {
	case *types.Slice:
		return tree.MutableSequence

	case *types.Map:
		switch elem := u.Elem().Underlying().(type) {
		case *types.Struct:
			if elem.NumFields() == 0 {
				return tree.MutableSet
			}

		case *types.Basic:
			if elem.Kind() == types.Bool {
				return tree.MutableSet
			}
		}

		return tree.MutableMapping

	default:
		return tree.Other
	}
}

// recovers reports whether body defers a function literal calling recover.
func recovers(info *types.Info, body *ast.BlockStmt) bool {
	for _, stmt := range body.List {
		d, ok := stmt.(*ast.DeferStmt)
		if !ok {
			continue
		}

		lit, ok := ast.Unparen(d.Call.Fun).(*ast.FuncLit)
		if !ok {
			continue
		}

		found := false
		ast.Inspect(lit.Body, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FuncLit:
				return false

			case *ast.CallExpr:
				if isBuiltin(info, n, "recover") {
					found = true
				}
			}

			return !found
		})

		if found {
			return true
		}
	}

	return false
}

func isBuiltin(info *types.Info, call *ast.CallExpr, name string) bool {
	id, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok {
		return false
	}

	b, ok := info.Uses[id].(*types.Builtin)

	return ok && b.Name() == name
}
