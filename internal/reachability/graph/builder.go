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

package graph

import (
	"fmt"
	"maps"

	"fillmore-labs.com/methodguard/internal/reachability/block"
	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

// builder constructs the control flow graph.
// It traverses the tree and creates blocks and edges based on control flow semantics.
//
// The append* methods return the next basic [block] where statements should be added.
type builder struct {
	block.Factory                         // All blocks created during traversal
	labels        map[string]*LabelTarget // Maps label names to their target blocks
	targets       branchTargets           // Current break/continue/fallthrough targets

	tracker.Tracker
}

// appendStmtList appends a list of statements to the current block.
func (b *builder) appendStmtList(current *block.Block, list []tree.Stmt) *block.Block {
	for _, s := range list {
		current = b.appendStmt(current, s, nil)
	}

	return current
}

// appendStmt appends a single statement to the current block.
// labeled indicates if the statement has a label target (for break/continue/goto).
func (b *builder) appendStmt(current *block.Block, stmt tree.Stmt, labeled *LabelTarget) *block.Block {
	switch stmt := stmt.(type) {
	// keep-sorted start newline_separated=yes
	case nil:
		return current

	case *tree.AssignStmt, *tree.BadStmt, *tree.EmptyStmt, *tree.LocalVarStmt:
		current.Add(stmt)
		return current

	case *tree.BlockStmt:
		if stmt == nil {
			return current
		}

		current.Add(stmt)

		return b.appendStmtList(current, stmt.List)

	case *tree.BranchStmt:
		return b.appendBranchStmt(current, stmt)

	case *tree.ExprStmt:
		current.Add(stmt)

		if call, ok := stmt.X.(*tree.CallExpr); ok && b.CantReturn(call) {
			return b.New() // unreachable after non-returning call
		}

		return current

	case *tree.IfStmt:
		return b.appendIfStmt(current, stmt)

	case *tree.LabeledStmt:
		return b.appendLabeledStmt(current, stmt)

	case *tree.LoopStmt:
		return b.appendLoopStmt(current, stmt, labeled)

	case *tree.ReturnStmt, *tree.ThrowStmt:
		current.Add(stmt)

		return b.New() // unreachable after return or throw

	case *tree.SwitchStmt:
		return b.appendSwitchStmt(current, stmt, labeled)

	case *tree.TryStmt:
		return b.appendTryStmt(current, stmt)

	default:
		msg := fmt.Errorf("unexpected statement type: %T", stmt)
		panic(msg)
		// keep-sorted end
	}
}

// appendLabeledStmt handles labeled statements.
func (b *builder) appendLabeledStmt(current *block.Block, stmt *tree.LabeledStmt) *block.Block {
	labeled := b.labelTarget(stmt.Label)
	body := labeled.Body()

	current.Add(stmt)
	current.Link(body)

	switch stmt.Stmt.(type) {
	case *tree.LoopStmt, *tree.SwitchStmt:
		return b.appendStmt(body, stmt.Stmt, labeled)

	default: // "break label" leaves any labeled statement
		after := b.New()
		labeled.SetBreak(after)

		end := b.appendStmt(body, stmt.Stmt, nil)
		end.Link(after)

		return after
	}
}

// appendBranchStmt handles break, continue, goto and fallthrough.
func (b *builder) appendBranchStmt(current *block.Block, stmt *tree.BranchStmt) *block.Block {
	var target *block.Block
	if stmt.Label == "" {
		target = b.targets.target(stmt.Tok)
	} else {
		labeled := b.labelTarget(stmt.Label)
		target = labeled.BranchTarget(stmt.Tok)
	}

	current.Add(stmt)

	if target != nil {
		current.Link(target)
	}

	return b.New() // unreachable after break, continue, goto, or fallthrough
}

// labelTarget retrieves or creates a target for the given label.
func (b *builder) labelTarget(label string) *LabelTarget {
	if target, ok := b.labels[label]; ok {
		return target
	}

	body := b.New() // possibly a forward goto reference
	target := NewLabelTarget(body)
	b.labels[label] = target

	return target
}

// appendIfStmt handles if statements.
func (b *builder) appendIfStmt(current *block.Block, stmt *tree.IfStmt) *block.Block {
	current.Add(stmt)

	after := b.New() // after if
	then := b.New()  // then branch

	afterThen := b.appendStmt(then, stmt.Then, nil)
	afterThen.Link(after)

	elseBranch := after
	if stmt.Else != nil {
		elseBranch = b.New() // else branch

		afterElse := b.appendStmt(elseBranch, stmt.Else, nil)
		afterElse.Link(after)
	}

	current.LinkBranch(then, elseBranch)

	return after
}

// appendSwitchStmt handles switch statements.
func (b *builder) appendSwitchStmt(current *block.Block, stmt *tree.SwitchStmt, labeled *LabelTarget) *block.Block {
	current.Add(stmt)

	numCases := len(stmt.Cases)
	if numCases == 0 {
		return current
	}

	after := b.New() // after switch
	labeled.SetBreak(after)

	restore := b.targets.enterSwitch(after)
	defer restore()

	// no default, switch can fall through
	defaultTarget := after

	// previous case expressions, linked current -> expr1 -> expr2 -> default
	prevExpr := current

	var prevBody *block.Block // case body

	nextBody := b.New() // first switch case

	for i, clause := range stmt.Cases {
		if clause.List == nil {
			defaultTarget = nextBody // default case
		} else {
			caseExpr := b.New() // case expressions

			// link previous case expressions to previous body and current case expressions, skip default case
			prevExpr.LinkClause(prevBody, caseExpr)
			prevBody, prevExpr = nextBody, caseExpr
		}

		// current case body
		body := nextBody

		nextBody = nil
		if i < numCases-1 {
			nextBody = b.New() // next switch case
		}

		b.targets.setFallthrough(nextBody)

		body = b.appendStmtList(body, clause.Body)

		if stmt.FallThrough && nextBody != nil {
			body.Link(nextBody)
		} else {
			body.Link(after)
		}
	}

	// default case after all expressions
	prevExpr.LinkClause(prevBody, defaultTarget)

	return after
}

// appendLoopStmt handles all loop forms.
func (b *builder) appendLoopStmt(current *block.Block, stmt *tree.LoopStmt, labeled *LabelTarget) *block.Block {
	current.Add(stmt)

	current = b.appendStmt(current, stmt.Init, nil)

	body := b.New()  // loop body
	after := b.New() // after loop

	labeled.SetBreak(after)

	forever := stmt.Cond == nil

	cond := body
	if !forever {
		cond = b.New() // loop condition
		cond.LinkBranch(body, after)
	}

	if stmt.DoWhile {
		current.Link(body)
	} else {
		current.Link(cond)
	}

	post := cond
	if stmt.Post != nil {
		post = b.New() // post statement

		afterPost := b.appendStmt(post, stmt.Post, nil)
		afterPost.Link(cond)
	}

	labeled.SetContinue(post)

	restore := b.targets.enterLoop(after, post)

	bodyEnd := b.appendStmt(body, stmt.Body, nil)
	bodyEnd.Link(post)

	restore()

	return after
}

// appendTryStmt handles try statements.
//
// Every statement of the try body may throw, so the catch clauses are reachable
// whenever the try statement is. The finally block is built twice: once for normal
// completion, continuing after the try statement, and once for exceptions not
// caught, which propagate.
//
//	current -> body ----------------> finally -> after
//	   |                                 ^
//	   v                                 |
//	dispatch -> catch -> catch -> ... ---|---> finally -> (propagate)
//	               |        |            |
//	               v        v            |
//	           handler  handler ---------+
func (b *builder) appendTryStmt(current *block.Block, stmt *tree.TryStmt) *block.Block {
	current.Add(stmt)

	for _, r := range stmt.Resources {
		current = b.appendStmt(current, r, nil)
	}

	body := b.New()     // try body
	dispatch := b.New() // exception dispatch
	after := b.New()    // after try

	current.LinkBranch(body, dispatch)

	join := after
	if stmt.Finally != nil {
		join = b.New() // finally block
	}

	bodyEnd := b.appendStmt(body, stmt.Body, nil)
	bodyEnd.Link(join)

	prev := dispatch
	for _, clause := range stmt.Catches {
		handler := b.New() // catch body
		next := b.New()    // next catch clause

		prev.LinkBranch(handler, next)

		handlerEnd := b.appendStmt(handler, clause.Body, nil)
		handlerEnd.Link(join)

		prev = next
	}

	if stmt.Finally != nil {
		finallyEnd := b.appendStmt(join, stmt.Finally, nil)
		finallyEnd.Link(after)

		uncaught := b.New() // finally block for uncaught exceptions
		prev.Link(uncaught)

		_ = b.appendCopy(uncaught, stmt.Finally)
	}

	return after
}

// appendCopy appends a statement already part of the graph, with fresh targets for the labels it declares.
func (b *builder) appendCopy(current *block.Block, stmt tree.Stmt) *block.Block {
	outer := b.labels
	defer func() { b.labels = outer }()

	b.labels = maps.Clone(outer)

	tree.Inspect(stmt, func(n tree.Node) bool {
		if l, ok := n.(*tree.LabeledStmt); ok {
			delete(b.labels, l.Label)
		}

		return true
	})

	return b.appendStmt(current, stmt, nil)
}
