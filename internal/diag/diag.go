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

// Package diag holds the non-fatal findings and error types shared by the analyses.
package diag

import (
	"errors"
	"fmt"
	"go/token"

	"fillmore-labs.com/methodguard/internal/tree"
)

//go:generate go tool stringer -type Code -linecomment

// Code classifies a [Diagnostic].
type Code uint8

const (
	// UnresolvedType marks a type the resolver could not answer for.
	UnresolvedType Code = iota // UnresolvedType
	// MalformedAST marks a node kind the adapter could not map.
	MalformedAST // MalformedAst
)

// Diagnostic is a non-fatal finding attached to a method verdict.
type Diagnostic struct {
	At      token.Position `json:"-"       yaml:"-"`
	Code    Code           `json:"code"    yaml:"code"`
	Message string         `json:"message" yaml:"message"`
}

// MarshalText implements [encoding.TextMarshaler].
func (c Code) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.At, d.Code, d.Message)
}

// Unresolved creates an [UnresolvedType] diagnostic.
func Unresolved(at token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{At: at, Code: UnresolvedType, Message: fmt.Sprintf(format, args...)}
}

// ErrMalformedAST is wrapped by all errors for trees containing unmapped nodes.
var ErrMalformedAST = errors.New("malformed syntax tree")

// MalformedError reports the first unmapped node of a method body.
type MalformedError struct {
	At   token.Position
	Kind string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: unknown node kind %q", e.At, e.Kind)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedAST }

// CheckTree returns a *[MalformedError] for the first [tree.BadStmt] or [tree.BadExpr] in n.
func CheckTree(n tree.Node) error {
	var err error

	tree.Inspect(n, func(n tree.Node) bool {
		if err != nil {
			return false
		}

		switch n := n.(type) {
		case *tree.BadStmt:
			err = &MalformedError{At: n.At, Kind: n.Kind}

		case *tree.BadExpr:
			err = &MalformedError{At: n.At, Kind: n.Kind}
		}

		return err == nil
	})

	return err
}
