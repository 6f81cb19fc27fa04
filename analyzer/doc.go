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

// Package analyzer implements the methodguard static analysis pass.
//
// # Overview
//
// MethodGuard classifies every function by the way it can terminate abnormally
// and reports collection parameters the function modifies.
//
// A function "throws" a checked exception when it can return a non-nil error
// and an unchecked exception when it can panic. Calls to functions and methods
// of the same package and receiver type are inlined one level deep, calls of
// functions that never return (like [os.Exit]) end the control flow, and a
// deferred recover catches all panics.
//
// # Example
//
//	func (s *Store) Add(key string) error {
//	    if key == "" {
//	        return ErrEmptyKey
//	    }
//	    if s.closed {
//	        panic("store closed") // Function Store.Add both returns errors and panics
//	    }
//	    ...
//	}
//
//	func normalize(names []string) {
//	    slices.Sort(names) // Function normalize mutates parameter 'names' via slices.Sort
//	}
//
// # Checks
//
//   - mixed: functions that both return errors and panic (default on)
//   - panic: functions that can panic (default off)
//   - mutation: functions that mutate a slice, map or *list.List parameter (default on)
package analyzer
