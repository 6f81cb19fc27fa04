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

// Package exceptions classifies methods by the exceptions that can terminate them.
package exceptions

import (
	"context"
	"go/token"
	"runtime/trace"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/diag"
	"fillmore-labs.com/methodguard/internal/reachability"
	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

// Throw is a reachable throw site that is not caught inside the method.
type Throw struct {
	At      token.Position
	Type    string
	Checked bool
	Via     string // Name of the inlined method containing the throw, or ""
}

// Result is the outcome of classifying one method.
type Result struct {
	Kind        Kind
	Throws      []Throw
	Undeclared  []string // Checked exception types not covered by the throws clause
	Diagnostics []diag.Diagnostic
}

// Classifier computes the [Kind] of methods.
type Classifier struct {
	rules   *config.Rules
	tracker tracker.Tracker
}

// New creates a [Classifier]. t decides which calls cannot return.
func New(rules *config.Rules, t tracker.Tracker) *Classifier {
	return &Classifier{rules: rules, tracker: t}
}

// Classify determines the exception kind of m, a method of unit.
//
// Only reachable throws count. Throws caught by an enclosing catch clause and
// throws inside function literals are ignored. Calls to methods of the same
// declared type are inlined up to the configured depth.
//
// A method containing unmapped nodes yields a *[diag.MalformedError].
func (c *Classifier) Classify(ctx context.Context, unit *tree.Unit, m *tree.Method) (Result, error) {
	defer trace.StartRegion(ctx, "ClassifyExceptions").End()

	if m.Body == nil {
		return Result{Kind: None}, nil
	}

	if err := diag.CheckTree(m.Body); err != nil {
		return Result{}, err
	}

	var resolver tree.TypeResolver = tree.Hierarchy(nil)
	if unit.Resolver != nil {
		resolver = unit.Resolver
	}

	w := walker{
		ctx:      ctx,
		unit:     unit,
		owner:    m.Owner,
		resolver: resolver,
		family:   c.rules.UncheckedFamily(),
		declared: toSet(m.Sig.Throws),
		maxDepth: c.rules.InlineDepth(),
		tracker:  c.tracker,
		visited:  map[*tree.Method]struct{}{m: {}},
		seen:     make(map[string]struct{}),
	}

	w.method(m, 0, "", nil)

	w.res.Kind = KindOf(w.sawChecked, w.sawUnchecked)

	return w.res, nil
}

// walker traverses the reachable statements of a method and its inlined callees.
type walker struct {
	ctx      context.Context
	unit     *tree.Unit
	owner    string
	resolver tree.TypeResolver
	family   map[string]struct{}
	declared map[string]struct{}
	maxDepth int
	tracker  tracker.Tracker

	visited map[*tree.Method]struct{} // Methods on the current inlining path
	seen    map[string]struct{}       // Reported undeclared types

	res                      Result
	sawChecked, sawUnchecked bool
}

// scope is the context of a statement: its control flow graph, the inlining depth and active catch clauses.
type scope struct {
	graph    *reachability.Graph
	depth    int
	via      string
	handlers []map[string]struct{}
}

func (w *walker) method(m *tree.Method, depth int, via string, handlers []map[string]struct{}) {
	s := scope{
		graph:    reachability.NewGraph(w.ctx, m.Body, w.tracker),
		depth:    depth,
		via:      via,
		handlers: handlers,
	}

	w.stmt(s, m.Body)
}

func (w *walker) stmt(s scope, stmt tree.Stmt) {
	if reachable, ok := s.graph.Reachable(stmt); ok && !reachable {
		return
	}

	switch stmt := stmt.(type) {
	case *tree.ThrowStmt:
		w.expr(s, stmt.X)
		w.throw(s, stmt)

	case *tree.TryStmt:
		inner := s
		inner.handlers = append(s.handlers[:len(s.handlers):len(s.handlers)], catchTypes(stmt))

		for _, r := range stmt.Resources {
			w.stmt(inner, r)
		}

		w.stmt(inner, stmt.Body)

		for _, clause := range stmt.Catches {
			w.stmt(s, clause.Body)
		}

		if stmt.Finally != nil {
			w.stmt(s, stmt.Finally)
		}

	default:
		w.children(s, stmt)
	}
}

func (w *walker) children(s scope, n tree.Node) {
	for _, child := range tree.Children(n) {
		switch child := child.(type) {
		case tree.Stmt:
			w.stmt(s, child)

		case tree.Expr:
			w.expr(s, child)

		case *tree.CaseClause:
			w.children(s, child)
		}
	}
}

func (w *walker) expr(s scope, e tree.Expr) {
	tree.Inspect(e, func(n tree.Node) bool {
		switch n := n.(type) {
		case *tree.FuncLit:
			return false // not executed by this method

		case *tree.CallExpr:
			w.call(s, n)
		}

		return true
	})
}

// call inlines calls to methods of the analyzed type.
func (w *walker) call(s scope, call *tree.CallExpr) {
	if call.Target == nil || call.Target.Owner != w.owner || s.depth >= w.maxDepth {
		return
	}

	callee := w.unit.Lookup(*call.Target)
	if callee == nil || callee.Body == nil {
		return
	}

	if _, ok := w.visited[callee]; ok {
		return // recursive call
	}

	if err := diag.CheckTree(callee.Body); err != nil {
		w.res.Diagnostics = append(w.res.Diagnostics, diag.Diagnostic{
			At:      call.At,
			Code:    diag.MalformedAST,
			Message: "not inlining " + callee.Sig.Name + ": " + err.Error(),
		})

		return
	}

	w.visited[callee] = struct{}{}
	w.method(callee, s.depth+1, callee.Sig.Name, s.handlers)
	delete(w.visited, callee)
}

func (w *walker) throw(s scope, stmt *tree.ThrowStmt) {
	typ := stmt.X.StaticType()

	var (
		ancestors []string
		resolved  bool
	)

	if typ != "" {
		ancestors, resolved = w.resolver.Ancestors(typ)
	}

	for _, handler := range s.handlers {
		if typ != "" && tree.IsA(typ, ancestors, handler) {
			return // caught
		}
	}

	checked := resolved && !tree.IsA(typ, ancestors, w.family)

	switch {
	case typ == "":
		w.res.Diagnostics = append(w.res.Diagnostics, diag.Unresolved(stmt.At, "type of thrown expression unresolved, assuming unchecked"))

	case !resolved:
		w.res.Diagnostics = append(w.res.Diagnostics, diag.Unresolved(stmt.At, "exception type %s unresolved, assuming unchecked", typ))
	}

	if checked {
		w.sawChecked = true

		if _, ok := w.seen[typ]; !ok && !tree.IsA(typ, ancestors, w.declared) {
			w.seen[typ] = struct{}{}
			w.res.Undeclared = append(w.res.Undeclared, typ)
		}
	} else {
		w.sawUnchecked = true
	}

	w.res.Throws = append(w.res.Throws, Throw{At: stmt.At, Type: typ, Checked: checked, Via: s.via})
}

func catchTypes(stmt *tree.TryStmt) map[string]struct{} {
	var types []string
	for _, clause := range stmt.Catches {
		types = append(types, clause.Types...)
	}

	return toSet(types)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}
