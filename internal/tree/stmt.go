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

import "go/token"

// Node is implemented by every statement and expression of a method body.
type Node interface {
	Pos() token.Position
}

// Position builds a source position.
func Position(filename string, line, column int) token.Position {
	return token.Position{Filename: filename, Line: line, Column: column}
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

type (
	// BlockStmt is a braced statement list.
	//
	// A Flat block groups statements lowered from a single source statement;
	// its declarations belong to the enclosing scope.
	BlockStmt struct {
		At   token.Position
		List []Stmt
		Flat bool
	}

	// EmptyStmt is a statement without effect, such as a local type declaration.
	EmptyStmt struct {
		At token.Position
	}

	// ExprStmt is an expression evaluated for its side effects.
	ExprStmt struct {
		X Expr
	}

	// LocalVarStmt declares a local variable with an optional initial value.
	LocalVarStmt struct {
		At    token.Position
		Name  string
		Type  string
		Value Expr // or nil
	}

	// AssignStmt assigns Value to Target.
	// Target is an [*Ident] for local variable and parameter assignments.
	AssignStmt struct {
		At     token.Position
		Target Expr
		Value  Expr
	}

	// ThrowStmt terminates the method with the exception X.
	ThrowStmt struct {
		At token.Position
		X  Expr
	}

	// ReturnStmt returns from the method.
	ReturnStmt struct {
		At      token.Position
		Results []Expr
	}

	// IfStmt is a conditional statement.
	IfStmt struct {
		At   token.Position
		Cond Expr
		Then Stmt
		Else Stmt // or nil
	}

	// LoopStmt covers all loop forms.
	//
	// A nil Cond denotes a loop without condition, left only by a branch statement.
	// For iteration over a collection, Cond is the collection expression.
	LoopStmt struct {
		At      token.Position
		Init    Stmt // or nil
		Cond    Expr // or nil
		Post    Stmt // or nil
		Body    Stmt
		DoWhile bool // Body executes before the first Cond evaluation
	}

	// SwitchStmt is a multi-way branch.
	//
	// With FallThrough set, control flows from the end of a case body into the next one.
	SwitchStmt struct {
		At          token.Position
		Tag         Expr // or nil
		Cases       []*CaseClause
		FallThrough bool
	}

	// CaseClause is a single case of a [SwitchStmt]. A nil List denotes the default case.
	CaseClause struct {
		At   token.Position
		List []Expr
		Body []Stmt
	}

	// TryStmt is a try statement with optional resources, catch clauses and finally block.
	TryStmt struct {
		At        token.Position
		Resources []Stmt
		Body      *BlockStmt
		Catches   []*CatchClause
		Finally   *BlockStmt // or nil
	}

	// CatchClause handles exceptions assignable to one of Types.
	CatchClause struct {
		At    token.Position
		Name  string
		Types []string
		Body  *BlockStmt
	}

	// BranchStmt is a break, continue, goto or fallthrough statement.
	BranchStmt struct {
		At    token.Position
		Tok   token.Token
		Label string // or ""
	}

	// LabeledStmt is a labeled statement.
	LabeledStmt struct {
		At    token.Position
		Label string
		Stmt  Stmt
	}

	// BadStmt is a placeholder for a statement the adapter could not map.
	BadStmt struct {
		At   token.Position
		Kind string
	}
)

func (s *BlockStmt) Pos() token.Position    { return s.At }
func (s *EmptyStmt) Pos() token.Position    { return s.At }
func (s *ExprStmt) Pos() token.Position     { return s.X.Pos() }
func (s *LocalVarStmt) Pos() token.Position { return s.At }
func (s *AssignStmt) Pos() token.Position   { return s.At }
func (s *ThrowStmt) Pos() token.Position    { return s.At }
func (s *ReturnStmt) Pos() token.Position   { return s.At }
func (s *IfStmt) Pos() token.Position       { return s.At }
func (s *LoopStmt) Pos() token.Position     { return s.At }
func (s *SwitchStmt) Pos() token.Position   { return s.At }
func (s *CaseClause) Pos() token.Position   { return s.At }
func (s *TryStmt) Pos() token.Position      { return s.At }
func (s *CatchClause) Pos() token.Position  { return s.At }
func (s *BranchStmt) Pos() token.Position   { return s.At }
func (s *LabeledStmt) Pos() token.Position  { return s.At }
func (s *BadStmt) Pos() token.Position      { return s.At }

func (*BlockStmt) stmtNode()    {}
func (*EmptyStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*LocalVarStmt) stmtNode() {}
func (*AssignStmt) stmtNode()   {}
func (*ThrowStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*LoopStmt) stmtNode()     {}
func (*SwitchStmt) stmtNode()   {}
func (*TryStmt) stmtNode()      {}
func (*BranchStmt) stmtNode()   {}
func (*LabeledStmt) stmtNode()  {}
func (*BadStmt) stmtNode()      {}
