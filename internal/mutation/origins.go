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

package mutation

import "maps"

// Origins maps identifiers to the parameter they currently alias.
//
// Bindings are by name: an identifier rebound to anything other than a direct copy of
// an aliasing identifier loses its origin. Declarations are scoped: closing a scope
// restores the bindings its declarations shadowed, while assignments to outer names persist.
type Origins struct {
	m      map[string]int
	scopes []map[string]binding // Outer bindings of names declared in each open scope
}

type binding struct {
	origin int
	ok     bool
}

// NewOrigins creates an empty identifier map.
func NewOrigins() *Origins {
	return &Origins{m: make(map[string]int)}
}

// Bind records that name aliases the parameter with verdict index origin.
func (o *Origins) Bind(name string, origin int) {
	o.m[name] = origin
}

// Unbind invalidates the origin of name.
func (o *Origins) Unbind(name string) {
	delete(o.m, name)
}

// Lookup returns the origin of name.
func (o *Origins) Lookup(name string) (int, bool) {
	origin, ok := o.m[name]

	return origin, ok
}

// Open starts a nested scope.
func (o *Origins) Open() {
	o.scopes = append(o.scopes, nil)
}

// Close ends the innermost scope, restoring the bindings shadowed by its declarations.
func (o *Origins) Close() {
	last := len(o.scopes) - 1
	if last < 0 {
		return
	}

	for name, b := range o.scopes[last] {
		if b.ok {
			o.m[name] = b.origin
		} else {
			delete(o.m, name)
		}
	}

	o.scopes = o.scopes[:last]
}

// Declare introduces name in the innermost scope, bound to origin when ok.
func (o *Origins) Declare(name string, origin int, ok bool) {
	if last := len(o.scopes) - 1; last >= 0 {
		if o.scopes[last] == nil {
			o.scopes[last] = make(map[string]binding)
		}

		if _, seen := o.scopes[last][name]; !seen {
			prev, had := o.m[name]
			o.scopes[last][name] = binding{origin: prev, ok: had}
		}
	}

	if ok {
		o.Bind(name, origin)
	} else {
		o.Unbind(name)
	}
}

// Clone returns an independent copy of the current bindings without open scopes.
func (o *Origins) Clone() *Origins {
	return &Origins{m: maps.Clone(o.m)}
}
