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

// Package reachability decides which statements of a method body can execute.
package reachability

import (
	"context"

	"fillmore-labs.com/methodguard/internal/reachability/graph"
	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

// Graph determines reachability in a control-flow graph.
type Graph struct {
	// Block indices per statement; finally blocks appear once per exit path
	blocks map[tree.Stmt][]int

	// Blocks reachable from the method entry
	reached []bool
}

// NewGraph builds the control flow graph of body and computes the reachable blocks.
// t decides which calls cannot return.
func NewGraph(ctx context.Context, body *tree.BlockStmt, t tracker.Tracker) *Graph {
	nodes := graph.BuildGraph(ctx, body, t)

	g := &Graph{
		blocks:  make(map[tree.Stmt][]int),
		reached: make([]bool, len(nodes)),
	}

	for i, n := range nodes {
		for _, s := range n.Stmts {
			g.blocks[s] = append(g.blocks[s], i)
		}
	}

	g.search(nodes)

	return g
}

// Reachable reports whether stmt can execute. ok is false for statements not part of the graph.
func (g *Graph) Reachable(stmt tree.Stmt) (reachable, ok bool) {
	if g == nil {
		return true, false
	}

	blocks, ok := g.blocks[stmt]
	if !ok {
		return true, false
	}

	for _, i := range blocks {
		if g.reached[i] {
			return true, true
		}
	}

	return false, true
}

// search marks all blocks reachable from the entry using BFS.
func (g *Graph) search(nodes []graph.Node) {
	if len(nodes) == 0 {
		return
	}

	// Each block is enqueued at most once.
	queue := make([]int, len(nodes))

	g.reached[0] = true
	queue[0] = 0

	for qHead, qTail := 0, 1; qHead < qTail; qHead++ {
		for _, succ := range nodes[queue[qHead]].Successors {
			if g.reached[succ] {
				continue
			}
			g.reached[succ] = true

			queue[qTail] = succ
			qTail++
		}
	}
}
