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

package golang

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

// lowering converts the body of one function or function literal.
type lowering struct {
	fset *token.FileSet
	pkg  *types.Package
	info *types.Info

	nresults  int
	errResult bool // The last result is of type error
}

func (l *lowering) pos(p token.Pos) token.Position {
	return l.fset.PositionFor(p, false)
}

func (l *lowering) typeString(t types.Type) string {
	if t == nil {
		return ""
	}

	if b, ok := t.(*types.Basic); ok && b.Kind() == types.Invalid {
		return ""
	}

	return types.TypeString(t, l.qualifier)
}

// qualifier omits the current package and names others by package name, as written in source.
func (l *lowering) qualifier(p *types.Package) string {
	if p == l.pkg {
		return ""
	}

	return p.Name()
}

func (l *lowering) typeOf(e ast.Expr) string {
	return l.typeString(l.info.TypeOf(e))
}

func (l *lowering) results(sig *types.Signature) {
	l.nresults, l.errResult = 0, false
	if sig == nil {
		return
	}

	res := sig.Results()
	if l.nresults = res.Len(); l.nresults == 0 {
		return
	}

	l.errResult = types.Identical(res.At(l.nresults-1).Type(), types.Universe.Lookup("error").Type())
}

func (l *lowering) block(b *ast.BlockStmt) *tree.BlockStmt {
	if b == nil {
		return nil
	}

	return &tree.BlockStmt{At: l.pos(b.Lbrace), List: l.stmts(b.List)}
}

func (l *lowering) stmts(list []ast.Stmt) []tree.Stmt {
	stmts := make([]tree.Stmt, 0, len(list))
	for _, s := range list {
		if st := l.stmt(s); st != nil {
			stmts = append(stmts, st)
		}
	}

	return stmts
}

// seq combines statements, avoiding single element blocks.
func seq(at token.Position, list ...tree.Stmt) tree.Stmt {
	if len(list) == 1 {
		return list[0]
	}

	return &tree.BlockStmt{At: at, List: list, Flat: true}
}

// scoped wraps a statement with its init statement, which declares variables
// visible only in the statement.
func scoped(at token.Position, init, stmt tree.Stmt) tree.Stmt {
	return &tree.BlockStmt{At: at, List: []tree.Stmt{init, stmt}}
}

func (l *lowering) stmt(s ast.Stmt) tree.Stmt {
	if s == nil {
		return nil
	}

	at := l.pos(s.Pos())

	switch s := s.(type) {
	case *ast.BlockStmt:
		return l.block(s)

	case *ast.EmptyStmt:
		return &tree.EmptyStmt{At: at}

	case *ast.ExprStmt:
		if call, ok := ast.Unparen(s.X).(*ast.CallExpr); ok && isBuiltin(l.info, call, "panic") && len(call.Args) == 1 {
			arg := call.Args[0]

			return &tree.ThrowStmt{At: at, X: &tree.CompoundExpr{
				At:       l.pos(arg.Pos()),
				Op:       "panic",
				Operands: []tree.Expr{l.expr(arg)},
				Type:     PanicType(l.typeOf(arg)),
			}}
		}

		return &tree.ExprStmt{X: l.expr(s.X)}

	case *ast.DeclStmt:
		return l.decl(at, s)

	case *ast.AssignStmt:
		return l.assign(at, s)

	case *ast.IncDecStmt:
		return l.assignTo(at, s.Tok, s.X, &tree.CompoundExpr{At: at, Op: s.Tok.String(), Operands: []tree.Expr{l.expr(s.X)}})

	case *ast.SendStmt:
		return &tree.ExprStmt{X: &tree.CompoundExpr{At: at, Op: token.ARROW.String(), Operands: []tree.Expr{l.expr(s.Chan), l.expr(s.Value)}}}

	case *ast.GoStmt:
		return &tree.ExprStmt{X: &tree.CompoundExpr{At: at, Op: "go", Operands: []tree.Expr{l.expr(s.Call)}}}

	case *ast.DeferStmt:
		return &tree.ExprStmt{X: &tree.CompoundExpr{At: at, Op: "defer", Operands: []tree.Expr{l.expr(s.Call)}}}

	case *ast.ReturnStmt:
		return l.ret(at, s)

	case *ast.BranchStmt:
		var label string
		if s.Label != nil {
			label = s.Label.Name
		}

		return &tree.BranchStmt{At: at, Tok: s.Tok, Label: label}

	case *ast.LabeledStmt:
		return &tree.LabeledStmt{At: at, Label: s.Label.Name, Stmt: l.stmt(s.Stmt)}

	case *ast.IfStmt:
		stmt := &tree.IfStmt{At: at, Cond: l.expr(s.Cond), Then: l.block(s.Body), Else: l.stmt(s.Else)}
		if s.Init == nil {
			return stmt
		}

		return scoped(at, l.stmt(s.Init), stmt)

	case *ast.ForStmt:
		return &tree.LoopStmt{At: at, Init: l.stmt(s.Init), Cond: l.expr(s.Cond), Post: l.stmt(s.Post), Body: l.block(s.Body)}

	case *ast.RangeStmt:
		return l.rangeLoop(at, s)

	case *ast.SwitchStmt:
		stmt := &tree.SwitchStmt{At: at, Tag: l.expr(s.Tag)}
		for _, c := range s.Body.List {
			clause, ok := c.(*ast.CaseClause)
			if !ok {
				continue
			}

			stmt.Cases = append(stmt.Cases, &tree.CaseClause{At: l.pos(clause.Pos()), List: l.exprs(clause.List), Body: l.stmts(clause.Body)})
		}

		if s.Init == nil {
			return stmt
		}

		return scoped(at, l.stmt(s.Init), stmt)

	case *ast.TypeSwitchStmt:
		return l.typeSwitch(at, s)

	case *ast.SelectStmt:
		if len(s.Body.List) == 0 {
			return &tree.LoopStmt{At: at, Body: &tree.BlockStmt{At: at}} // blocks forever
		}

		stmt := &tree.SwitchStmt{At: at}
		for _, c := range s.Body.List {
			clause, ok := c.(*ast.CommClause)
			if !ok {
				continue
			}

			cc := &tree.CaseClause{At: l.pos(clause.Pos())}
			if clause.Comm != nil {
				cc.List = []tree.Expr{&tree.CompoundExpr{At: cc.At, Op: "select"}}
				cc.Body = append(cc.Body, l.stmt(clause.Comm))
			}

			cc.Body = append(cc.Body, l.stmts(clause.Body)...)
			stmt.Cases = append(stmt.Cases, cc)
		}

		return stmt

	case *ast.BadStmt:
		return &tree.BadStmt{At: at, Kind: "bad statement"}

	default:
		return &tree.BadStmt{At: at, Kind: "unknown statement"}
	}
}

func (l *lowering) decl(at token.Position, s *ast.DeclStmt) tree.Stmt {
	gen, ok := s.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return &tree.EmptyStmt{At: at}
	}

	var list []tree.Stmt

	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		if len(vs.Values) > 0 && len(vs.Values) != len(vs.Names) {
			list = append(list, &tree.ExprStmt{X: l.expr(vs.Values[0])})
		}

		for i, id := range vs.Names {
			local := &tree.LocalVarStmt{At: l.pos(id.Pos()), Name: id.Name, Type: l.typeOf(id)}
			if len(vs.Values) == len(vs.Names) {
				local.Value = l.expr(vs.Values[i])
			}

			list = append(list, local)
		}
	}

	if len(list) == 0 {
		return &tree.EmptyStmt{At: at}
	}

	return seq(at, list...)
}

func (l *lowering) assign(at token.Position, s *ast.AssignStmt) tree.Stmt {
	var list []tree.Stmt

	switch {
	case len(s.Lhs) == len(s.Rhs):
		for i, lhs := range s.Lhs {
			value := l.expr(s.Rhs[i])
			if s.Tok != token.ASSIGN && s.Tok != token.DEFINE {
				value = &tree.CompoundExpr{At: at, Op: s.Tok.String(), Operands: []tree.Expr{l.expr(lhs), value}}
			}

			list = append(list, l.assignTo(at, s.Tok, lhs, value))
		}

	case len(s.Rhs) == 1:
		list = append(list, &tree.ExprStmt{X: l.expr(s.Rhs[0])})
		for _, lhs := range s.Lhs {
			list = append(list, l.assignTo(at, s.Tok, lhs, &tree.CompoundExpr{At: at, Op: "result"}))
		}

	default:
		return &tree.BadStmt{At: at, Kind: "unbalanced assignment"}
	}

	return seq(at, list...)
}

// assignTo lowers a single assignment to lhs. Index assignments become "[]=" calls on the indexed collection.
func (l *lowering) assignTo(at token.Position, tok token.Token, lhs ast.Expr, value tree.Expr) tree.Stmt {
	switch lhs := ast.Unparen(lhs).(type) {
	case *ast.Ident:
		if lhs.Name == "_" {
			return &tree.ExprStmt{X: value}
		}

		if tok == token.DEFINE && l.info.Defs[lhs] != nil {
			return &tree.LocalVarStmt{At: at, Name: lhs.Name, Type: l.typeOf(lhs), Value: value}
		}

		return &tree.AssignStmt{At: at, Target: l.ident(lhs), Value: value}

	case *ast.IndexExpr:
		t := l.info.TypeOf(lhs.X)
		if t == nil {
			break
		}

		switch t.Underlying().(type) {
		case *types.Map, *types.Slice:
			return &tree.ExprStmt{X: &tree.CallExpr{
				At:     at,
				Recv:   l.expr(lhs.X),
				Member: "[]=",
				Args:   []tree.Expr{l.expr(lhs.Index), value},
			}}
		}
	}

	return &tree.AssignStmt{At: at, Target: l.expr(lhs), Value: value}
}

func (l *lowering) rangeLoop(at token.Position, s *ast.RangeStmt) tree.Stmt {
	body := l.block(s.Body)

	var vars []tree.Stmt

	for _, e := range []ast.Expr{s.Key, s.Value} {
		if e == nil {
			continue
		}

		vars = append(vars, l.assignTo(l.pos(e.Pos()), s.Tok, e, &tree.CompoundExpr{At: at, Op: "range"}))
	}

	body.List = append(vars, body.List...)

	return &tree.LoopStmt{At: at, Cond: l.expr(s.X), Body: body}
}

func (l *lowering) typeSwitch(at token.Position, s *ast.TypeSwitchStmt) tree.Stmt {
	var (
		tag  tree.Expr
		name string
	)

	switch a := s.Assign.(type) {
	case *ast.ExprStmt:
		if ta, ok := a.X.(*ast.TypeAssertExpr); ok {
			tag = l.expr(ta.X)
		}

	case *ast.AssignStmt:
		if len(a.Lhs) == 1 && len(a.Rhs) == 1 {
			if id, ok := a.Lhs[0].(*ast.Ident); ok {
				name = id.Name
			}

			if ta, ok := a.Rhs[0].(*ast.TypeAssertExpr); ok {
				tag = l.expr(ta.X)
			}
		}
	}

	if tag == nil {
		return &tree.BadStmt{At: at, Kind: "type switch guard"}
	}

	stmt := &tree.SwitchStmt{At: at, Tag: tag}

	for _, c := range s.Body.List {
		clause, ok := c.(*ast.CaseClause)
		if !ok {
			continue
		}

		cc := &tree.CaseClause{At: l.pos(clause.Pos())}
		for _, typ := range clause.List {
			cc.List = append(cc.List, &tree.CompoundExpr{At: l.pos(typ.Pos()), Op: "type", Type: l.typeOf(typ)})
		}

		if name != "" && name != "_" {
			cc.Body = append(cc.Body, &tree.LocalVarStmt{At: cc.At, Name: name, Value: &tree.CompoundExpr{At: cc.At, Op: "type"}})
		}

		cc.Body = append(cc.Body, l.stmts(clause.Body)...)
		stmt.Cases = append(stmt.Cases, cc)
	}

	if s.Init == nil {
		return stmt
	}

	return scoped(at, l.stmt(s.Init), stmt)
}

// ret lowers a return statement. Returning a value that may be a non-nil error throws it.
func (l *lowering) ret(at token.Position, s *ast.ReturnStmt) tree.Stmt {
	results := s.Results
	if !l.errResult || len(results) == 0 {
		return &tree.ReturnStmt{At: at, Results: l.exprs(results)}
	}

	last := results[len(results)-1]

	if len(results) == 1 && l.nresults > 1 {
		// return f(), with f returning a tuple ending in error
		tuple, ok := l.info.TypeOf(last).(*types.Tuple)
		if !ok || tuple.Len() != l.nresults {
			return &tree.ReturnStmt{At: at, Results: l.exprs(results)}
		}

		return &tree.ThrowStmt{At: at, X: &tree.CompoundExpr{At: at, Op: "result", Operands: []tree.Expr{l.expr(last)}, Type: ErrorRoot}}
	}

	if l.isNil(last) {
		return &tree.ReturnStmt{At: at, Results: l.exprs(results)}
	}

	list := make([]tree.Stmt, 0, len(results))
	for _, e := range results[:len(results)-1] {
		list = append(list, &tree.ExprStmt{X: l.expr(e)})
	}

	list = append(list, &tree.ThrowStmt{At: at, X: l.expr(last)})

	return seq(at, list...)
}

func (l *lowering) isNil(e ast.Expr) bool {
	tv, ok := l.info.Types[e]
	return ok && tv.IsNil()
}

func (l *lowering) exprs(list []ast.Expr) []tree.Expr {
	if len(list) == 0 {
		return nil
	}

	exprs := make([]tree.Expr, 0, len(list))
	for _, e := range list {
		if x := l.expr(e); x != nil {
			exprs = append(exprs, x)
		}
	}

	return exprs
}

func (l *lowering) ident(id *ast.Ident) *tree.Ident {
	return &tree.Ident{At: l.pos(id.Pos()), Name: id.Name, Type: l.typeOf(id)}
}

func (l *lowering) compound(e ast.Expr, op string, operands ...ast.Expr) tree.Expr {
	return &tree.CompoundExpr{At: l.pos(e.Pos()), Op: op, Operands: l.exprs(operands), Type: l.typeOf(e)}
}

func (l *lowering) expr(e ast.Expr) tree.Expr {
	if e == nil {
		return nil
	}

	switch e := e.(type) {
	case *ast.Ident:
		return l.ident(e)

	case *ast.BasicLit:
		return &tree.Literal{At: l.pos(e.Pos()), Type: l.typeOf(e), Value: e.Value}

	case *ast.ParenExpr:
		return l.expr(e.X)

	case *ast.CallExpr:
		return l.call(e)

	case *ast.FuncLit:
		return l.funcLit(e)

	case *ast.SelectorExpr:
		if _, ok := l.info.Selections[e]; !ok {
			// qualified identifier
			return &tree.Ident{At: l.pos(e.Pos()), Name: e.Sel.Name, Type: l.typeOf(e)}
		}

		return l.compound(e, ".", e.X)

	case *ast.StarExpr:
		return l.compound(e, "*", e.X)

	case *ast.UnaryExpr:
		return l.compound(e, e.Op.String(), e.X)

	case *ast.BinaryExpr:
		return l.compound(e, e.Op.String(), e.X, e.Y)

	case *ast.IndexExpr:
		return l.compound(e, "[]", e.X, e.Index)

	case *ast.IndexListExpr:
		return l.compound(e, "[]", e.X)

	case *ast.SliceExpr:
		return l.compound(e, "[:]", e.X, e.Low, e.High, e.Max)

	case *ast.TypeAssertExpr:
		return l.compound(e, ".()", e.X)

	case *ast.CompositeLit:
		return l.compound(e, "{}", e.Elts...)

	case *ast.KeyValueExpr:
		return l.compound(e, ":", e.Key, e.Value)

	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType, *ast.Ellipsis:
		return l.compound(e, "type")

	case *ast.BadExpr:
		return &tree.BadExpr{At: l.pos(e.Pos()), Kind: "bad expression"}

	default:
		return &tree.BadExpr{At: l.pos(e.Pos()), Kind: "unknown expression"}
	}
}

func (l *lowering) funcLit(e *ast.FuncLit) tree.Expr {
	sub := *l

	sig, _ := l.info.TypeOf(e).(*types.Signature)
	sub.results(sig)

	var params []string

	if e.Type.Params != nil {
		for _, field := range e.Type.Params.List {
			for _, id := range field.Names {
				params = append(params, id.Name)
			}
		}
	}

	return &tree.FuncLit{At: l.pos(e.Pos()), Params: params, Body: sub.block(e.Body)}
}

func (l *lowering) call(e *ast.CallExpr) tree.Expr {
	at := l.pos(e.Pos())
	typ := l.typeOf(e)

	if tv, ok := l.info.Types[ast.Unparen(e.Fun)]; ok && tv.IsType() {
		return &tree.CompoundExpr{At: at, Op: "conversion", Operands: l.exprs(e.Args), Type: typ}
	}

	switch obj := typeutil.Callee(l.info, e).(type) {
	case *types.Builtin:
		return l.builtin(at, e, obj.Name(), typ)

	case *types.Func:
		return l.funcCall(at, e, obj, typ)

	default:
		return &tree.CallExpr{At: at, Recv: l.expr(e.Fun), Args: l.exprs(e.Args), Type: typ}
	}
}

// builtin lowers built-in function calls. Built-ins modifying their first argument are calls on that argument.
func (l *lowering) builtin(at token.Position, e *ast.CallExpr, name, typ string) tree.Expr {
	switch name {
	case "delete", "clear", "copy":
		if len(e.Args) == 0 {
			break
		}

		return &tree.CallExpr{At: at, Recv: l.expr(e.Args[0]), Member: name, Args: l.exprs(e.Args[1:]), Type: typ}
	}

	return &tree.CompoundExpr{At: at, Op: name, Operands: l.exprs(e.Args), Type: typ}
}

// funcCall lowers a static function or method call.
//
// Calls of functions from other packages take their first argument as receiver,
// with the member named by the qualified function name. Calls of functions and
// methods of the analyzed package can be inlined.
func (l *lowering) funcCall(at token.Position, e *ast.CallExpr, fn *types.Func, typ string) tree.Expr {
	fn = fn.Origin()
	sig := fn.Signature()

	call := &tree.CallExpr{At: at, Member: fn.Name(), Type: typ, Callee: tracker.FuncNameOf(fn)}

	args := e.Args

	switch sel, ok := ast.Unparen(e.Fun).(*ast.SelectorExpr); {
	case ok && sig.Recv() != nil:
		call.Recv = l.expr(sel.X)

	case sig.Recv() == nil && fn.Pkg() != nil && fn.Pkg() != l.pkg && len(args) > 0:
		call.Recv, args = l.expr(args[0]), args[1:]
		call.Member = fn.Pkg().Name() + "." + fn.Name()
	}

	call.Args = l.exprs(args)

	if fn.Pkg() == l.pkg {
		call.Target = &tree.MethodRef{Owner: l.owner(fn), Name: fn.Name(), Arity: sig.Params().Len()}
	}

	return call
}
