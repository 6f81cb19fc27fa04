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

package block

import "fillmore-labs.com/methodguard/internal/tree"

// Block represents a [basic Block] in the [control-flow graph].
// It is a sequence of statements with a single entry and exit point.
//
// [basic Block]: https://en.wikipedia.org/wiki/Basic_block
// [control-flow graph]: https://en.wikipedia.org/wiki/Control-flow_graph
type Block struct {
	Stmts []tree.Stmt // Statements in execution order

	// The successors.
	//
	// For unconditional jumps, Successor1 is the only successor.
	// For conditional branches, Successor1 is the "then" branch,
	// Successor2 the "else" branch.
	Successor1, Successor2 *Block

	index int // Creation order
}

// Index returns the creation index of the block within its [Factory].
func (b *Block) Index() int { return b.index }

// Add appends a statement to the block.
func (b *Block) Add(stmt tree.Stmt) {
	b.Stmts = append(b.Stmts, stmt)
}

// Link sets an unconditional successor. Blocks that already have a successor are left unchanged.
func (b *Block) Link(next *Block) {
	if b.Successor1 != nil {
		return
	}

	b.Successor1 = next
}

// LinkBranch sets the successors of a conditional branch.
func (b *Block) LinkBranch(then, els *Block) {
	b.Successor1, b.Successor2 = then, els
}

// LinkClause sets the successors for a clause in a chain (switch/catch).
//
// It links the current clause to the next clause in the chain, while optionally
// branching to a body if the clause is not the start of the chain.
//
//	current -> clause -> clause -> ...
//	              |         |
//	              v         v
//	            body      body
func (b *Block) LinkClause(body, next *Block) {
	if body == nil {
		b.Successor1 = next
		return
	}

	b.Successor1, b.Successor2 = body, next
}
