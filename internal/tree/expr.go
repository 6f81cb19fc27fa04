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

import (
	"go/token"
	"strings"
)

// Expr is an expression node.
type Expr interface {
	Node
	// StaticType returns the resolved static type name, or "" when unresolved.
	StaticType() string
	exprNode()
}

type (
	// Ident is a reference to a local variable, parameter or type name.
	Ident struct {
		At   token.Position
		Name string
		Type string
	}

	// CallExpr is a method or function invocation.
	CallExpr struct {
		At     token.Position
		Recv   Expr // or nil for unqualified calls
		Member string
		Args   []Expr
		Type   string

		// Target is set when the call resolves to a method declared on a named type.
		Target *MethodRef

		// Callee is the qualified name of the invoked function, when known.
		Callee FuncName
	}

	// NewExpr is an object creation.
	NewExpr struct {
		At   token.Position
		Type string
		Args []Expr
	}

	// FuncLit is a lambda or function literal. Its body is never executed by the enclosing method.
	FuncLit struct {
		At     token.Position
		Params []string
		Body   Stmt
	}

	// Literal is a constant value.
	Literal struct {
		At    token.Position
		Type  string
		Value string
	}

	// CompoundExpr covers operators, field selections, casts and other composite expressions.
	CompoundExpr struct {
		At       token.Position
		Op       string
		Operands []Expr
		Type     string
	}

	// BadExpr is a placeholder for an expression the adapter could not map.
	BadExpr struct {
		At   token.Position
		Kind string
	}
)

// MethodRef identifies a method of a declared type by name and arity.
type MethodRef struct {
	Owner string
	Name  string
	Arity int
}

// FuncName is a qualified function name.
type FuncName struct {
	Path     string // Package path or namespace
	Receiver string // Receiver type name, if any
	Name     string
}

// IsZero reports whether f names no function.
func (f FuncName) IsZero() bool { return f == FuncName{} }

func (f FuncName) String() string {
	var b strings.Builder

	if f.Receiver != "" {
		b.WriteByte('(')

		if f.Path != "" {
			b.WriteString(f.Path)
			b.WriteByte('.')
		}

		b.WriteString(f.Receiver)
		b.WriteString(").")
	} else if f.Path != "" {
		b.WriteString(f.Path)
		b.WriteByte('.')
	}

	b.WriteString(f.Name)

	return b.String()
}

func (e *Ident) Pos() token.Position        { return e.At }
func (e *CallExpr) Pos() token.Position     { return e.At }
func (e *NewExpr) Pos() token.Position      { return e.At }
func (e *FuncLit) Pos() token.Position      { return e.At }
func (e *Literal) Pos() token.Position      { return e.At }
func (e *CompoundExpr) Pos() token.Position { return e.At }
func (e *BadExpr) Pos() token.Position      { return e.At }

func (e *Ident) StaticType() string        { return e.Type }
func (e *CallExpr) StaticType() string     { return e.Type }
func (e *NewExpr) StaticType() string      { return e.Type }
func (e *FuncLit) StaticType() string      { return "" }
func (e *Literal) StaticType() string      { return e.Type }
func (e *CompoundExpr) StaticType() string { return e.Type }
func (e *BadExpr) StaticType() string      { return "" }

func (*Ident) exprNode()        {}
func (*CallExpr) exprNode()     {}
func (*NewExpr) exprNode()      {}
func (*FuncLit) exprNode()      {}
func (*Literal) exprNode()      {}
func (*CompoundExpr) exprNode() {}
func (*BadExpr) exprNode()      {}
