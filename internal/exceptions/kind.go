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

package exceptions

//go:generate go tool stringer -type Kind -linecomment

// Kind classifies the exceptional terminations of a method.
type Kind uint8

const (
	// None means no reachable, uncaught throw.
	None Kind = iota // NONE
	// Checked means only checked exceptions.
	Checked // CHECKED
	// Unchecked means only unchecked exceptions.
	Unchecked // UNCHECKED
	// Both means checked and unchecked exceptions.
	Both // BOTH
)

// KindOf maps the observed exception categories to a [Kind].
func KindOf(sawChecked, sawUnchecked bool) Kind {
	switch {
	case sawChecked && sawUnchecked:
		return Both

	case sawChecked:
		return Checked

	case sawUnchecked:
		return Unchecked

	default:
		return None
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// HasUnchecked reports whether k includes unchecked exceptions.
func (k Kind) HasUnchecked() bool { return k == Unchecked || k == Both }
