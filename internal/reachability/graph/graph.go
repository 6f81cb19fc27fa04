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
	"context"
	"runtime/trace"

	"fillmore-labs.com/methodguard/internal/reachability/block"
	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

// Node is a basic block of the control flow graph with successor block indices.
type Node struct {
	Stmts      []tree.Stmt // Statements of the block
	Successors []int       // Indices of successor blocks
}

// BuildGraph constructs the control flow graph for the given method body.
// The entry block has index 0.
func BuildGraph(ctx context.Context, body *tree.BlockStmt, t tracker.Tracker) []Node {
	if body == nil {
		return nil
	}

	defer trace.StartRegion(ctx, "Graph").End()

	blocks := traverseBody(body, t)

	return buildNodes(blocks)
}

func traverseBody(body *tree.BlockStmt, t tracker.Tracker) []*block.Block {
	b := builder{
		labels:  make(map[string]*LabelTarget),
		Tracker: t,
	}

	entry := b.New() // method entry

	_ = b.appendStmt(entry, body, nil)

	return b.All()
}

// buildNodes creates a list of nodes from the CFG blocks.
func buildNodes(blocks []*block.Block) []Node {
	nodes := make([]Node, len(blocks))
	for i, blk := range blocks {
		successors := make([]int, 0, 2)

		for _, succ := range [...]*block.Block{blk.Successor1, blk.Successor2} {
			if succ == nil {
				continue
			}

			successors = append(successors, succ.Index())
		}

		nodes[i] = Node{
			Stmts:      blk.Stmts,
			Successors: successors,
		}
	}

	return nodes
}
