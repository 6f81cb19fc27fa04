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

package config

// Checks selects the findings reported by the Go analyzer.
type Checks uint8

const (
	// MixedCheck reports functions that both return errors and panic.
	MixedCheck Checks = 1 << iota

	// PanicCheck reports functions that can panic.
	PanicCheck

	// MutationCheck reports functions that mutate a collection parameter.
	MutationCheck
)

// DefaultChecks returns the checks enabled when not configured otherwise.
func DefaultChecks() BitMask[Checks] {
	return NewBitMask(MixedCheck, MutationCheck)
}

// Behavior holds behavioral options.
type Behavior uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Behavior = 1 << iota
)

// DefaultBehavior returns the default behavior flags.
func DefaultBehavior() BitMask[Behavior] {
	return BitMask[Behavior]{}
}
