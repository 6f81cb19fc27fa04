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

package tracker

import "fillmore-labs.com/methodguard/internal/tree"

// FuncName is a qualified function name.
type FuncName = tree.FuncName

// Tracker decides whether calls can return to their caller.
type Tracker struct {
	extra map[FuncName]struct{} // Additional functions that do not return
}

// New creates and returns a new Tracker, treating extra functions as non-returning too.
func New(extra ...FuncName) Tracker {
	if len(extra) == 0 {
		return Tracker{}
	}

	t := Tracker{extra: make(map[FuncName]struct{}, len(extra))}
	for _, name := range extra {
		t.extra[name] = struct{}{}
	}

	return t
}

// CantReturn determines if the given call expression represents a function that cannot return.
func (t Tracker) CantReturn(call *tree.CallExpr) bool {
	if call == nil || call.Callee.IsZero() {
		return false
	}

	if CantReturn(call.Callee) {
		return true
	}

	_, ok := t.extra[call.Callee]

	return ok
}
