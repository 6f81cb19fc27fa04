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
	"go/token"

	"fillmore-labs.com/methodguard/internal/reachability/block"
)

// branchTargets holds the targets of unlabeled break, continue and fallthrough
// statements for the innermost enclosing loop or switch.
type branchTargets struct {
	breakTarget, continueTarget, fallthroughTarget *block.Block
}

func (s *branchTargets) target(tok token.Token) *block.Block {
	switch tok {
	case token.BREAK:
		return s.breakTarget

	case token.CONTINUE:
		return s.continueTarget

	case token.FALLTHROUGH:
		return s.fallthroughTarget

	default:
		panic(fmt.Sprintf("unexpected branch token: %s", tok))
	}
}

// enterLoop installs the targets of a loop body and returns a function restoring the enclosing ones.
func (s *branchTargets) enterLoop(breakTarget, continueTarget *block.Block) (restore func()) {
	old := *s
	s.breakTarget, s.continueTarget = breakTarget, continueTarget

	return func() { *s = old }
}

// enterSwitch installs the break target of a switch and returns a function restoring the enclosing one.
// continue keeps targeting the enclosing loop.
func (s *branchTargets) enterSwitch(breakTarget *block.Block) (restore func()) {
	old := *s
	s.breakTarget = breakTarget

	return func() { *s = old }
}

// setFallthrough sets the fallthrough target of the current case body.
func (s *branchTargets) setFallthrough(next *block.Block) {
	s.fallthroughTarget = next
}
