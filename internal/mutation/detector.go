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

// Package mutation detects methods that modify the collections passed to them.
package mutation

import (
	"context"
	"go/token"
	"runtime/trace"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/diag"
	"fillmore-labs.com/methodguard/internal/tree"
)

// Verdict is the mutation finding for one collection parameter.
type Verdict struct {
	Param      string
	Index      int
	Capability tree.Capability
	State      State
	Member     string         // First mutating member, if mutated
	At         token.Position // First mutating call site, if mutated
}

// Result is the outcome of examining one method.
type Result struct {
	Verdicts    []Verdict // One per collection parameter, in parameter order
	Diagnostics []diag.Diagnostic
}

// Mutated returns the verdicts of mutated parameters.
func (r Result) Mutated() []Verdict {
	var mutated []Verdict

	for _, v := range r.Verdicts {
		if v.State == Mutated {
			mutated = append(mutated, v)
		}
	}

	return mutated
}

// Detector finds mutating calls on collection parameters.
type Detector struct {
	rules *config.Rules
}

// New creates a [Detector].
func New(rules *config.Rules) *Detector {
	return &Detector{rules: rules}
}

// Detect examines the body of m in source order.
//
// A call mutates a parameter when its receiver is an identifier bound to that
// parameter and the member is a mutating operation of the parameter's capability.
// Identifiers are bound through direct copies; any other assignment unbinds them.
//
// A method containing unmapped nodes yields a *[diag.MalformedError].
func (d *Detector) Detect(ctx context.Context, m *tree.Method) (Result, error) {
	defer trace.StartRegion(ctx, "DetectMutations").End()

	var res Result

	tracked := make(map[string]int) // parameter name -> verdict index

	for i, p := range m.Sig.Params {
		if p.Type == "" {
			res.Diagnostics = append(res.Diagnostics, diag.Unresolved(m.At, "type of parameter %s unresolved, assuming %s", p.Name, tree.Other))
			continue
		}

		if !p.Capability.Collection() {
			continue
		}

		tracked[p.Name] = len(res.Verdicts)
		res.Verdicts = append(res.Verdicts, Verdict{Param: p.Name, Index: i, Capability: p.Capability, State: NotMutated})
	}

	if m.Body == nil || len(tracked) == 0 {
		return res, nil
	}

	if err := diag.CheckTree(m.Body); err != nil {
		return Result{}, err
	}

	s := scan{rules: d.rules, verdicts: res.Verdicts, remaining: len(res.Verdicts), origins: NewOrigins()}
	for name, i := range tracked {
		s.origins.Bind(name, i)
	}

	s.stmt(m.Body)

	return res, nil
}

// scan walks a method body, updating verdicts in place.
type scan struct {
	rules     *config.Rules
	verdicts  []Verdict
	remaining int // Parameters not yet mutated
	origins   *Origins
}

func (s *scan) done() bool { return s.remaining == 0 }

func (s *scan) stmt(stmt tree.Stmt) {
	if s.done() {
		return
	}

	switch stmt := stmt.(type) {
	case *tree.LocalVarStmt:
		s.expr(stmt.Value)
		origin, ok := s.origin(stmt.Value)
		s.origins.Declare(stmt.Name, origin, ok)

	case *tree.AssignStmt:
		s.expr(stmt.Value)

		if id, ok := stmt.Target.(*tree.Ident); ok {
			s.assign(id.Name, stmt.Value)
		} else {
			s.expr(stmt.Target)
		}

	case *tree.BlockStmt:
		if stmt == nil {
			return
		}

		if !stmt.Flat {
			s.origins.Open()
			defer s.origins.Close()
		}

		for _, st := range stmt.List {
			s.stmt(st)
		}

	case *tree.LoopStmt:
		s.loop(stmt)

	case *tree.TryStmt:
		s.origins.Open()

		for _, r := range stmt.Resources {
			s.stmt(r)
		}

		s.stmt(stmt.Body)
		s.origins.Close()

		for _, clause := range stmt.Catches {
			s.origins.Open()

			if clause.Name != "" {
				s.origins.Declare(clause.Name, 0, false)
			}

			s.stmt(clause.Body)
			s.origins.Close()
		}

		if stmt.Finally != nil {
			s.stmt(stmt.Finally)
		}

	default:
		s.children(stmt)
	}
}

func (s *scan) children(n tree.Node) {
	for _, child := range tree.Children(n) {
		switch child := child.(type) {
		case tree.Stmt:
			s.stmt(child)

		case tree.Expr:
			s.expr(child)

		case *tree.CaseClause:
			s.origins.Open()
			s.children(child)
			s.origins.Close()
		}
	}
}

// loop scans a loop in execution order, with Init declarations scoped to the loop.
func (s *scan) loop(loop *tree.LoopStmt) {
	s.origins.Open()
	defer s.origins.Close()

	if loop.DoWhile {
		s.stmt(loop.Body)
		s.expr(loop.Cond)

		return
	}

	if loop.Init != nil {
		s.stmt(loop.Init)
	}

	s.expr(loop.Cond)
	s.stmt(loop.Body)

	if loop.Post != nil {
		s.stmt(loop.Post)
	}
}

// assign rebinds name: direct copies of a bound identifier propagate its origin.
func (s *scan) assign(name string, value tree.Expr) {
	if origin, ok := s.origin(value); ok {
		s.origins.Bind(name, origin)
		return
	}

	s.origins.Unbind(name)
}

// origin returns the parameter value aliases, if any.
func (s *scan) origin(value tree.Expr) (int, bool) {
	id, ok := value.(*tree.Ident)
	if !ok {
		return 0, false
	}

	return s.origins.Lookup(id.Name)
}

func (s *scan) expr(e tree.Expr) {
	tree.Inspect(e, func(n tree.Node) bool {
		if s.done() {
			return false
		}

		switch n := n.(type) {
		case *tree.FuncLit:
			s.funcLit(n)
			return false

		case *tree.CallExpr:
			s.call(n)
		}

		return true
	})
}

// funcLit scans a lambda body with its parameters shadowing outer bindings.
func (s *scan) funcLit(lit *tree.FuncLit) {
	outer := s.origins
	s.origins = outer.Clone()

	s.origins.Open()

	for _, p := range lit.Params {
		s.origins.Declare(p, 0, false)
	}

	s.stmt(lit.Body)

	s.origins = outer
}

func (s *scan) call(call *tree.CallExpr) {
	id, ok := call.Recv.(*tree.Ident)
	if !ok {
		return
	}

	i, ok := s.origins.Lookup(id.Name)
	if !ok {
		return
	}

	v := &s.verdicts[i]
	if v.State == Mutated || !s.rules.Mutates(v.Capability, call.Member) {
		return
	}

	v.State, v.Member, v.At = Mutated, call.Member, call.At
	s.remaining--
}
