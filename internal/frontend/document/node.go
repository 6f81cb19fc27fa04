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

package document

import (
	"go/token"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/methodguard/internal/tree"
)

// Node is a statement or expression of a method body.
//
// Line and Column default to the position of the node in the document.
type Node struct {
	Kind   string `yaml:"kind"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`

	Name  string `yaml:"name"`  // ident, local, labeled, branch label, literal value
	Type  string `yaml:"type"`  // static type
	Value *Node  `yaml:"value"` // throw, local, assign, expr
	Op    string `yaml:"op"`    // compound

	Target *Node `yaml:"target"` // assign

	Recv   *Node          `yaml:"recv"`   // call
	Member string         `yaml:"member"` // call
	Args   []*Node        `yaml:"args"`   // call, new
	Self   bool           `yaml:"self"`   // call on a method of the enclosing type
	Callee *tree.FuncName `yaml:"callee"` // call

	Operands []*Node  `yaml:"operands"` // compound
	Results  []*Node  `yaml:"results"`  // return
	Params   []string `yaml:"params"`   // lambda

	Cond    *Node   `yaml:"cond"`    // if, loop
	Then    []*Node `yaml:"then"`    // if
	Else    []*Node `yaml:"else"`    // if
	Init    *Node   `yaml:"init"`    // loop
	Post    *Node   `yaml:"post"`    // loop
	DoWhile bool    `yaml:"doWhile"` // loop
	Body    []*Node `yaml:"body"`    // block, loop, lambda, try, labeled

	Tag         *Node       `yaml:"tag"`         // switch
	Cases       []CaseNode  `yaml:"cases"`       // switch
	FallThrough bool        `yaml:"fallThrough"` // switch
	Resources   []*Node     `yaml:"resources"`   // try
	Catches     []CatchNode `yaml:"catches"`     // try
	Finally     []*Node     `yaml:"finally"`     // try
}

// CaseNode is a switch case. A case without values is the default case.
type CaseNode struct {
	Values []*Node `yaml:"values"`
	Body   []*Node `yaml:"body"`
}

// CatchNode is a catch clause.
type CatchNode struct {
	Name  string   `yaml:"name"`
	Types []string `yaml:"types"`
	Body  []*Node  `yaml:"body"`
}

// UnmarshalYAML implements [yaml.Unmarshaler], recording the document position.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node

	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}

	if n.Line == 0 {
		n.Line, n.Column = value.Line, value.Column
	}

	return nil
}

// converter lowers document nodes to syntax tree nodes.
type converter struct {
	file  string
	owner string
}

func (c converter) pos(n *Node) token.Position {
	return tree.Position(c.file, n.Line, n.Column)
}

func (c converter) stmts(nodes []*Node) []tree.Stmt {
	list := make([]tree.Stmt, 0, len(nodes))
	for _, n := range nodes {
		if s := c.stmt(n); s != nil {
			list = append(list, s)
		}
	}

	return list
}

func (c converter) block(n *Node, nodes []*Node) *tree.BlockStmt {
	return &tree.BlockStmt{At: c.pos(n), List: c.stmts(nodes)}
}

func (c converter) optBlock(n *Node, nodes []*Node) tree.Stmt {
	if nodes == nil {
		return nil
	}

	return c.block(n, nodes)
}

func (c converter) stmt(n *Node) tree.Stmt {
	if n == nil {
		return nil
	}

	at := c.pos(n)

	switch n.Kind {
	case "block":
		return c.block(n, n.Body)

	case "empty":
		return &tree.EmptyStmt{At: at}

	case "expr":
		if n.Value == nil {
			return &tree.BadStmt{At: at, Kind: "expr without value"}
		}

		return &tree.ExprStmt{X: c.expr(n.Value)}

	case "local":
		return &tree.LocalVarStmt{At: at, Name: n.Name, Type: n.Type, Value: c.expr(n.Value)}

	case "assign":
		return &tree.AssignStmt{At: at, Target: c.expr(n.Target), Value: c.expr(n.Value)}

	case "throw":
		if n.Value == nil {
			return &tree.BadStmt{At: at, Kind: "throw without value"}
		}

		return &tree.ThrowStmt{At: at, X: c.expr(n.Value)}

	case "return":
		return &tree.ReturnStmt{At: at, Results: c.exprs(n.Results)}

	case "if":
		return &tree.IfStmt{At: at, Cond: c.expr(n.Cond), Then: c.block(n, n.Then), Else: c.optBlock(n, n.Else)}

	case "loop":
		return &tree.LoopStmt{
			At:      at,
			Init:    c.stmt(n.Init),
			Cond:    c.expr(n.Cond),
			Post:    c.stmt(n.Post),
			Body:    c.block(n, n.Body),
			DoWhile: n.DoWhile,
		}

	case "switch":
		s := &tree.SwitchStmt{At: at, Tag: c.expr(n.Tag), FallThrough: n.FallThrough}
		for _, cn := range n.Cases {
			cc := &tree.CaseClause{At: at, Body: c.stmts(cn.Body)}
			if len(cn.Values) > 0 {
				cc.List = c.exprs(cn.Values)
			}

			s.Cases = append(s.Cases, cc)
		}

		return s

	case "try":
		s := &tree.TryStmt{At: at, Resources: c.stmts(n.Resources), Body: c.block(n, n.Body)}
		for _, cn := range n.Catches {
			s.Catches = append(s.Catches, &tree.CatchClause{At: at, Name: cn.Name, Types: cn.Types, Body: c.block(n, cn.Body)})
		}

		if n.Finally != nil {
			s.Finally = c.block(n, n.Finally)
		}

		return s

	case "break":
		return &tree.BranchStmt{At: at, Tok: token.BREAK, Label: n.Name}

	case "continue":
		return &tree.BranchStmt{At: at, Tok: token.CONTINUE, Label: n.Name}

	case "goto":
		return &tree.BranchStmt{At: at, Tok: token.GOTO, Label: n.Name}

	case "labeled":
		var body tree.Stmt
		if len(n.Body) == 1 {
			body = c.stmt(n.Body[0])
		} else {
			body = c.block(n, n.Body)
		}

		return &tree.LabeledStmt{At: at, Label: n.Name, Stmt: body}

	default:
		return &tree.BadStmt{At: at, Kind: n.Kind}
	}
}

func (c converter) exprs(nodes []*Node) []tree.Expr {
	if len(nodes) == 0 {
		return nil
	}

	list := make([]tree.Expr, 0, len(nodes))
	for _, n := range nodes {
		if e := c.expr(n); e != nil {
			list = append(list, e)
		}
	}

	return list
}

func (c converter) expr(n *Node) tree.Expr {
	if n == nil {
		return nil
	}

	at := c.pos(n)

	switch n.Kind {
	case "ident":
		return &tree.Ident{At: at, Name: n.Name, Type: n.Type}

	case "call":
		call := &tree.CallExpr{At: at, Recv: c.expr(n.Recv), Member: n.Member, Args: c.exprs(n.Args), Type: n.Type}
		if n.Self {
			call.Target = &tree.MethodRef{Owner: c.owner, Name: n.Member, Arity: len(n.Args)}
		}

		if n.Callee != nil {
			call.Callee = *n.Callee
		}

		return call

	case "new":
		return &tree.NewExpr{At: at, Type: n.Type, Args: c.exprs(n.Args)}

	case "lambda":
		return &tree.FuncLit{At: at, Params: n.Params, Body: c.block(n, n.Body)}

	case "literal":
		return &tree.Literal{At: at, Type: n.Type, Value: n.Name}

	case "compound":
		return &tree.CompoundExpr{At: at, Op: n.Op, Operands: c.exprs(n.Operands), Type: n.Type}

	default:
		return &tree.BadExpr{At: at, Kind: n.Kind}
	}
}
