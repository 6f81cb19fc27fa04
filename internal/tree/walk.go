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

package tree

// Inspect traverses the tree rooted at n in depth-first source order.
// It calls f(node) for each node; if f returns true, Inspect descends into the children of node.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}

	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var c children

	switch n := n.(type) {
	// keep-sorted start newline_separated=yes
	case *AssignStmt:
		c.expr(n.Target)
		c.expr(n.Value)

	case *BlockStmt:
		c.stmts(n.List)

	case *BranchStmt, *EmptyStmt, *BadStmt, *BadExpr, *Ident, *Literal:

	case *CallExpr:
		c.expr(n.Recv)
		c.exprs(n.Args)

	case *CaseClause:
		c.exprs(n.List)
		c.stmts(n.Body)

	case *CatchClause:
		c.stmt(n.Body)

	case *CompoundExpr:
		c.exprs(n.Operands)

	case *ExprStmt:
		c.expr(n.X)

	case *FuncLit:
		c.stmt(n.Body)

	case *IfStmt:
		c.expr(n.Cond)
		c.stmt(n.Then)
		c.stmt(n.Else)

	case *LabeledStmt:
		c.stmt(n.Stmt)

	case *LocalVarStmt:
		c.expr(n.Value)

	case *LoopStmt:
		c.stmt(n.Init)
		c.expr(n.Cond)
		c.stmt(n.Post)
		c.stmt(n.Body)

	case *NewExpr:
		c.exprs(n.Args)

	case *ReturnStmt:
		c.exprs(n.Results)

	case *SwitchStmt:
		c.expr(n.Tag)

		for _, cc := range n.Cases {
			c = append(c, cc)
		}

	case *ThrowStmt:
		c.expr(n.X)

	case *TryStmt:
		c.stmts(n.Resources)
		c.stmt(n.Body)

		for _, cc := range n.Catches {
			c = append(c, cc)
		}

		c.stmt(n.Finally)
		// keep-sorted end
	}

	return c
}

type children []Node

func (c *children) stmt(s Stmt) {
	if isNil(s) {
		return
	}

	*c = append(*c, s)
}

func (c *children) stmts(list []Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

func (c *children) expr(e Expr) {
	if isNil(e) {
		return
	}

	*c = append(*c, e)
}

func (c *children) exprs(list []Expr) {
	for _, e := range list {
		c.expr(e)
	}
}

// isNil catches typed nil pointers stored in interfaces, such as a nil *BlockStmt.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true

	case *BlockStmt:
		return n == nil

	default:
		return false
	}
}
