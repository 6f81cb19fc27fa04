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

package java

import (
	"go/token"

	sitter "github.com/smacker/go-tree-sitter"

	"fillmore-labs.com/methodguard/internal/tree"
)

// lowering converts the body of one method.
type lowering struct {
	file   *file
	owner  string
	vars   map[string]string // Declared types of parameters and locals
	fields map[string]string // Declared types of fields
}

func (l *lowering) text(n *sitter.Node) string { return l.file.text(n) }

func (l *lowering) pos(n *sitter.Node) token.Position { return l.file.pos(n) }

func (l *lowering) typeOf(name string) string {
	if typ, ok := l.vars[name]; ok {
		return typ
	}

	return l.fields[name]
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment", "comment":
		return true

	default:
		return false
	}
}

func (l *lowering) block(n *sitter.Node) *tree.BlockStmt {
	b := &tree.BlockStmt{At: l.pos(n)}

	for i := range int(n.NamedChildCount()) {
		if s := l.stmt(n.NamedChild(i)); s != nil {
			b.List = append(b.List, s)
		}
	}

	return b
}

func (l *lowering) stmt(n *sitter.Node) tree.Stmt {
	if n == nil || isComment(n) {
		return nil
	}

	at := l.pos(n)

	switch n.Type() {
	case "block", "constructor_body":
		return l.block(n)

	case "synchronized_statement":
		body := n.ChildByFieldName("body")
		if body == nil {
			return &tree.BadStmt{At: at, Kind: n.Type()}
		}

		return l.block(body)

	case "local_variable_declaration":
		return l.localVars(n)

	case "expression_statement":
		x := firstNamed(n)
		if x == nil {
			return &tree.EmptyStmt{At: at}
		}

		return l.expressionStmt(x)

	case "throw_statement":
		x := firstNamed(n)
		if x == nil {
			return &tree.BadStmt{At: at, Kind: n.Type()}
		}

		return &tree.ThrowStmt{At: at, X: l.expr(x)}

	case "return_statement":
		s := &tree.ReturnStmt{At: at}
		if x := firstNamed(n); x != nil {
			s.Results = []tree.Expr{l.expr(x)}
		}

		return s

	case "if_statement":
		return &tree.IfStmt{
			At:   at,
			Cond: l.expr(n.ChildByFieldName("condition")),
			Then: l.stmt(n.ChildByFieldName("consequence")),
			Else: l.stmt(n.ChildByFieldName("alternative")),
		}

	case "while_statement":
		return &tree.LoopStmt{At: at, Cond: l.cond(n.ChildByFieldName("condition")), Body: l.stmt(n.ChildByFieldName("body"))}

	case "do_statement":
		return &tree.LoopStmt{At: at, Cond: l.cond(n.ChildByFieldName("condition")), Body: l.stmt(n.ChildByFieldName("body")), DoWhile: true}

	case "for_statement":
		return l.forStmt(n)

	case "enhanced_for_statement":
		name, typ := l.text(n.ChildByFieldName("name")), l.text(n.ChildByFieldName("type"))
		l.vars[name] = typ

		return &tree.LoopStmt{
			At:   at,
			Init: &tree.LocalVarStmt{At: at, Name: name, Type: typ},
			Cond: l.expr(n.ChildByFieldName("value")),
			Body: l.stmt(n.ChildByFieldName("body")),
		}

	case "switch_expression", "switch_statement":
		return l.switchStmt(n)

	case "try_statement", "try_with_resources_statement":
		return l.tryStmt(n)

	case "break_statement":
		return &tree.BranchStmt{At: at, Tok: token.BREAK, Label: l.text(firstOfType(n, "identifier"))}

	case "continue_statement":
		return &tree.BranchStmt{At: at, Tok: token.CONTINUE, Label: l.text(firstOfType(n, "identifier"))}

	case "labeled_statement":
		if n.NamedChildCount() < 2 {
			return &tree.BadStmt{At: at, Kind: n.Type()}
		}

		return &tree.LabeledStmt{At: at, Label: l.text(n.NamedChild(0)), Stmt: l.stmt(n.NamedChild(1))}

	case "assert_statement":
		return &tree.ExprStmt{X: &tree.CompoundExpr{At: at, Op: "assert", Operands: l.operands(n)}}

	case "explicit_constructor_invocation":
		args := l.args(n.ChildByFieldName("arguments"))
		call := &tree.CallExpr{At: at, Member: l.text(n.ChildByFieldName("constructor")), Args: args}

		if call.Member == "this" {
			call.Target = &tree.MethodRef{Owner: l.owner, Name: l.owner, Arity: len(args)}
		}

		return &tree.ExprStmt{X: call}

	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "local_class_declaration":
		return &tree.EmptyStmt{At: at}

	case "ERROR":
		return &tree.BadStmt{At: at, Kind: "syntax error"}

	default:
		return &tree.BadStmt{At: at, Kind: n.Type()}
	}
}

func (l *lowering) localVars(n *sitter.Node) tree.Stmt {
	typ := l.text(n.ChildByFieldName("type"))

	var list []tree.Stmt

	for _, d := range childrenOfType(n, "variable_declarator") {
		s := &tree.LocalVarStmt{At: l.pos(d), Name: l.text(d.ChildByFieldName("name")), Type: typ}

		if value := d.ChildByFieldName("value"); value != nil {
			s.Value = l.expr(value)

			if typ == "var" {
				s.Type = s.Value.StaticType()
			}
		}

		l.vars[s.Name] = s.Type
		list = append(list, s)
	}

	if len(list) == 1 {
		return list[0]
	}

	return &tree.BlockStmt{At: l.pos(n), List: list, Flat: true}
}

func (l *lowering) expressionStmt(x *sitter.Node) tree.Stmt {
	if x.Type() != "assignment_expression" {
		return &tree.ExprStmt{X: l.expr(x)}
	}

	at := l.pos(x)
	left := x.ChildByFieldName("left")
	value := l.expr(x.ChildByFieldName("right"))

	if op := l.text(x.ChildByFieldName("operator")); op != "=" {
		value = &tree.CompoundExpr{At: at, Op: op, Operands: []tree.Expr{l.expr(left), value}}
	}

	return &tree.AssignStmt{At: at, Target: l.expr(left), Value: value}
}

// cond lowers a loop condition. A constant true condition yields nil.
func (l *lowering) cond(n *sitter.Node) tree.Expr {
	for n != nil && n.Type() == "parenthesized_expression" {
		n = firstNamed(n)
	}

	if n == nil || n.Type() == "true" {
		return nil
	}

	return l.expr(n)
}

// forStmt lowers a basic for statement. The children are
// "for" "(" init... ";" condition ";" update... ")" body,
// where a local variable declaration includes its own ";".
func (l *lowering) forStmt(n *sitter.Node) tree.Stmt {
	s := &tree.LoopStmt{At: l.pos(n)}

	var init, post []tree.Stmt

	section := 0

loop:
	for i := range int(n.ChildCount()) {
		c := n.Child(i)

		switch {
		case c.Type() == ";":
			section++

		case c.Type() == ")":
			break loop

		case !c.IsNamed() || isComment(c):

		case c.Type() == "local_variable_declaration":
			init = append(init, l.stmt(c))
			section++

		case section == 0:
			init = append(init, l.expressionStmt(c))

		case section == 1:
			s.Cond = l.cond(c)

		default:
			post = append(post, l.expressionStmt(c))
		}
	}

	s.Init = l.list(n, init)
	s.Post = l.list(n, post)
	s.Body = l.stmt(n.ChildByFieldName("body"))

	return s
}

func (l *lowering) list(n *sitter.Node, list []tree.Stmt) tree.Stmt {
	switch len(list) {
	case 0:
		return nil

	case 1:
		return list[0]

	default:
		return &tree.BlockStmt{At: l.pos(n), List: list, Flat: true}
	}
}

// switchStmt lowers both statement groups, which fall through, and switch rules, which do not.
func (l *lowering) switchStmt(n *sitter.Node) tree.Stmt {
	s := &tree.SwitchStmt{At: l.pos(n), Tag: l.expr(n.ChildByFieldName("condition"))}

	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}

	for i := range int(body.NamedChildCount()) {
		c := body.NamedChild(i)

		switch c.Type() {
		case "switch_block_statement_group":
			s.FallThrough = true

			clause := &tree.CaseClause{At: l.pos(c)}
			isDefault := false

			for j := range int(c.NamedChildCount()) {
				x := c.NamedChild(j)
				if x.Type() == "switch_label" {
					isDefault = l.label(clause, x) || isDefault
					continue
				}

				if stmt := l.stmt(x); stmt != nil {
					clause.Body = append(clause.Body, stmt)
				}
			}

			if isDefault {
				clause.List = nil
			}

			s.Cases = append(s.Cases, clause)

		case "switch_rule":
			clause := &tree.CaseClause{At: l.pos(c)}

			isDefault := false

			for j := range int(c.NamedChildCount()) {
				x := c.NamedChild(j)
				if x.Type() == "switch_label" {
					isDefault = l.label(clause, x)
					continue
				}

				if stmt := l.stmt(x); stmt != nil {
					clause.Body = append(clause.Body, stmt)
				}
			}

			if isDefault {
				clause.List = nil
			}

			s.Cases = append(s.Cases, clause)
		}
	}

	return s
}

// label adds the values of a switch label to clause and reports whether it is the default label.
func (l *lowering) label(clause *tree.CaseClause, label *sitter.Node) bool {
	if label.NamedChildCount() == 0 {
		return true
	}

	if clause.List == nil {
		clause.List = []tree.Expr{}
	}

	clause.List = append(clause.List, l.operands(label)...)

	return false
}

func (l *lowering) tryStmt(n *sitter.Node) tree.Stmt {
	s := &tree.TryStmt{At: l.pos(n)}

	if resources := n.ChildByFieldName("resources"); resources != nil {
		for _, r := range childrenOfType(resources, "resource") {
			if value := r.ChildByFieldName("value"); value != nil {
				name, typ := l.text(r.ChildByFieldName("name")), l.text(r.ChildByFieldName("type"))
				l.vars[name] = typ
				s.Resources = append(s.Resources, &tree.LocalVarStmt{At: l.pos(r), Name: name, Type: typ, Value: l.expr(value)})

				continue
			}

			if x := firstNamed(r); x != nil {
				s.Resources = append(s.Resources, &tree.ExprStmt{X: l.expr(x)})
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		s.Body = l.block(body)
	} else {
		s.Body = &tree.BlockStmt{At: s.At}
	}

	for _, c := range childrenOfType(n, "catch_clause") {
		clause := &tree.CatchClause{At: l.pos(c), Body: &tree.BlockStmt{At: l.pos(c)}}

		if param := firstOfType(c, "catch_formal_parameter"); param != nil {
			clause.Name = l.text(param.ChildByFieldName("name"))

			if types := firstOfType(param, "catch_type"); types != nil {
				for i := range int(types.NamedChildCount()) {
					clause.Types = append(clause.Types, l.text(types.NamedChild(i)))
				}
			}

			if len(clause.Types) > 0 {
				l.vars[clause.Name] = clause.Types[0]
			}
		}

		if body := c.ChildByFieldName("body"); body != nil {
			clause.Body = l.block(body)
		}

		s.Catches = append(s.Catches, clause)
	}

	if finally := firstOfType(n, "finally_clause"); finally != nil {
		if body := firstOfType(finally, "block"); body != nil {
			s.Finally = l.block(body)
		}
	}

	return s
}

var _literalTypes = map[string]string{
	"string_literal":                 "String",
	"text_block":                     "String",
	"character_literal":              "char",
	"decimal_integer_literal":        "int",
	"hex_integer_literal":            "int",
	"octal_integer_literal":          "int",
	"binary_integer_literal":         "int",
	"decimal_floating_point_literal": "double",
	"hex_floating_point_literal":     "double",
	"true":                           "boolean",
	"false":                          "boolean",
	"null_literal":                   "null",
}

func (l *lowering) expr(n *sitter.Node) tree.Expr {
	if n == nil {
		return nil
	}

	at := l.pos(n)

	if typ, ok := _literalTypes[n.Type()]; ok {
		return &tree.Literal{At: at, Type: typ, Value: l.text(n)}
	}

	switch n.Type() {
	case "parenthesized_expression":
		x := firstNamed(n)
		if x == nil {
			return &tree.BadExpr{At: at, Kind: n.Type()}
		}

		return l.expr(x)

	case "identifier":
		name := l.text(n)

		return &tree.Ident{At: at, Name: name, Type: l.typeOf(name)}

	case "this":
		return &tree.Ident{At: at, Name: "this", Type: l.owner}

	case "method_invocation":
		return l.call(n)

	case "object_creation_expression":
		return &tree.NewExpr{At: at, Type: l.text(n.ChildByFieldName("type")), Args: l.args(n.ChildByFieldName("arguments"))}

	case "lambda_expression":
		return l.lambda(n)

	case "cast_expression":
		return &tree.CompoundExpr{
			At:       at,
			Op:       "cast",
			Operands: []tree.Expr{l.expr(n.ChildByFieldName("value"))},
			Type:     l.text(n.ChildByFieldName("type")),
		}

	case "ERROR":
		return &tree.BadExpr{At: at, Kind: "syntax error"}

	default:
		return &tree.CompoundExpr{At: at, Op: n.Type(), Operands: l.operands(n)}
	}
}

func (l *lowering) operands(n *sitter.Node) []tree.Expr {
	var list []tree.Expr

	for i := range int(n.NamedChildCount()) {
		c := n.NamedChild(i)
		if isComment(c) {
			continue
		}

		list = append(list, l.expr(c))
	}

	return list
}

func (l *lowering) args(n *sitter.Node) []tree.Expr {
	if n == nil {
		return nil
	}

	return l.operands(n)
}

func (l *lowering) call(n *sitter.Node) tree.Expr {
	name := l.text(n.ChildByFieldName("name"))
	obj := n.ChildByFieldName("object")
	args := l.args(n.ChildByFieldName("arguments"))

	call := &tree.CallExpr{At: l.pos(n), Recv: l.expr(obj), Member: name, Args: args, Callee: l.callee(obj, name)}

	if obj == nil || obj.Type() == "this" {
		call.Target = &tree.MethodRef{Owner: l.owner, Name: name, Arity: len(args)}
	}

	return call
}

// callee names calls of platform functions, such as System.exit.
func (l *lowering) callee(obj *sitter.Node, name string) tree.FuncName {
	if obj == nil {
		return tree.FuncName{}
	}

	switch obj.Type() {
	case "identifier":
		switch recv := l.text(obj); recv {
		case "System", "Runtime":
			if _, shadowed := l.vars[recv]; !shadowed {
				return tree.FuncName{Path: "java.lang", Receiver: recv, Name: name}
			}
		}

	case "field_access":
		switch l.text(obj) {
		case "java.lang.System":
			return tree.FuncName{Path: "java.lang", Receiver: "System", Name: name}
		}

	case "method_invocation": // Runtime.getRuntime().exit(...)
		if l.text(obj.ChildByFieldName("name")) == "getRuntime" && l.text(obj.ChildByFieldName("object")) == "Runtime" {
			return tree.FuncName{Path: "java.lang", Receiver: "Runtime", Name: name}
		}
	}

	return tree.FuncName{}
}

func (l *lowering) lambda(n *sitter.Node) tree.Expr {
	lit := &tree.FuncLit{At: l.pos(n)}

	if params := n.ChildByFieldName("parameters"); params != nil {
		switch params.Type() {
		case "identifier":
			lit.Params = []string{l.text(params)}

		case "formal_parameters":
			for _, p := range childrenOfType(params, "formal_parameter") {
				lit.Params = append(lit.Params, l.text(p.ChildByFieldName("name")))
			}

		default: // inferred_parameters
			for _, p := range childrenOfType(params, "identifier") {
				lit.Params = append(lit.Params, l.text(p))
			}
		}
	}

	body := n.ChildByFieldName("body")

	switch {
	case body == nil:
		lit.Body = &tree.BlockStmt{At: lit.At}

	case body.Type() == "block":
		lit.Body = l.block(body)

	default:
		lit.Body = &tree.BlockStmt{At: l.pos(body), List: []tree.Stmt{&tree.ExprStmt{X: l.expr(body)}}}
	}

	return lit
}
