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

package tree

import (
	"fmt"
	"go/token"
	"strings"
)

//go:generate go tool stringer -type Capability -linecomment

// Capability classifies a parameter type by the mutable collection interface it offers.
type Capability uint8

const (
	// Other is any type that is not a mutable collection.
	Other Capability = iota // OTHER
	// MutableSequence is an ordered, index-addressable mutable collection.
	MutableSequence // MUTABLE_SEQUENCE
	// MutableSet is a mutable collection of unique elements.
	MutableSet // MUTABLE_SET
	// MutableMapping is a mutable key-value collection.
	MutableMapping // MUTABLE_MAPPING
)

// Collection reports whether c is one of the mutable collection capabilities.
func (c Capability) Collection() bool {
	return c == MutableSequence || c == MutableSet || c == MutableMapping
}

// ParseCapability parses a capability tag, ignoring case.
func ParseCapability(s string) (Capability, error) {
	for c := Other; c <= MutableMapping; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}

	return Other, fmt.Errorf("unknown capability %q", s)
}

// Param is a formal method parameter.
type Param struct {
	Name       string
	Type       string // "" when unresolved
	Capability Capability
}

// Signature describes a method's name, parameters, declared exceptions and result.
type Signature struct {
	Name   string
	Params []Param
	Throws []string
	Result string
}

// Method is a single method declaration.
type Method struct {
	Sig   Signature
	Body  *BlockStmt // nil for abstract methods
	At    token.Position
	Owner string // Declaring type
}

// Unit is a declared type or package together with its methods in declaration order.
type Unit struct {
	Name     string
	File     string
	Methods  []*Method
	Resolver TypeResolver // nil when type resolution is unavailable
}

// Lookup finds the method with the given owner, name and arity.
func (u *Unit) Lookup(ref MethodRef) *Method {
	for _, m := range u.Methods {
		if m.Owner == ref.Owner && m.Sig.Name == ref.Name && len(m.Sig.Params) == ref.Arity {
			return m
		}
	}

	return nil
}
