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

package mutation_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/diag"
	. "fillmore-labs.com/methodguard/internal/mutation"
	"fillmore-labs.com/methodguard/internal/tree"
)

func pos(line int) token.Position {
	return token.Position{Filename: "JavaClass.java", Line: line, Column: 9}
}

func ident(name string) *tree.Ident { return &tree.Ident{At: pos(1), Name: name} }

func call(line int, recv, member string, args ...tree.Expr) *tree.ExprStmt {
	return &tree.ExprStmt{X: &tree.CallExpr{At: pos(line), Recv: ident(recv), Member: member, Args: args}}
}

func items() tree.Param {
	return tree.Param{Name: "items", Type: "List<String>", Capability: tree.MutableSequence}
}

func method(params []tree.Param, body ...tree.Stmt) *tree.Method {
	return &tree.Method{
		Sig:  tree.Signature{Name: "m", Params: params, Result: "void"},
		Body: &tree.BlockStmt{List: body},
	}
}

func detect(t *testing.T, m *tree.Method) Result {
	t.Helper()

	res, err := New(config.DefaultRules()).Detect(t.Context(), m)
	require.NoError(t, err)

	return res
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		m      *tree.Method
		member string // Expected mutating member, "" when not mutated
		line   int
	}{
		{
			name:   "Insert",
			m:      method([]tree.Param{items()}, call(24, "items", "insert", ident("newElement"))),
			member: "insert",
			line:   24,
		},
		{
			name: "Size",
			m:    method([]tree.Param{items()}, call(19, "items", "size")),
		},
		{
			name: "FirstMutationWins",
			m: method([]tree.Param{items()},
				call(2, "items", "size"),
				call(3, "items", "add", ident("x")),
				call(4, "items", "clear"),
			),
			member: "add",
			line:   3,
		},
		{
			name: "Alias",
			m: method([]tree.Param{items()},
				&tree.LocalVarStmt{At: pos(2), Name: "copy", Type: "List<String>", Value: ident("items")},
				call(3, "copy", "remove", ident("x")),
			),
			member: "remove",
			line:   3,
		},
		{
			name: "Reassigned",
			m: method([]tree.Param{items()},
				&tree.AssignStmt{At: pos(2), Target: ident("items"), Value: &tree.NewExpr{At: pos(2), Type: "ArrayList<String>"}},
				call(3, "items", "add", ident("x")),
			),
		},
		{
			name: "AliasSurvivesReassignment",
			m: method([]tree.Param{items()},
				&tree.LocalVarStmt{At: pos(2), Name: "alias", Value: ident("items")},
				&tree.AssignStmt{At: pos(3), Target: ident("items"), Value: &tree.NewExpr{At: pos(3), Type: "ArrayList<String>"}},
				call(4, "alias", "add", ident("x")),
			),
			member: "add",
			line:   4,
		},
		{
			name: "SelfCopyKeepsOrigin",
			m: method([]tree.Param{items()},
				&tree.AssignStmt{At: pos(2), Target: ident("items"), Value: ident("items")},
				call(3, "items", "clear"),
			),
			member: "clear",
			line:   3,
		},
		{
			name: "NestedInLoop",
			m: method([]tree.Param{items()},
				&tree.LoopStmt{
					At:   pos(2),
					Cond: &tree.Ident{At: pos(2), Name: "more", Type: "boolean"},
					Body: &tree.BlockStmt{List: []tree.Stmt{call(3, "items", "push", ident("x"))}},
				},
			),
			member: "push",
			line:   3,
		},
		{
			name: "LoopPostAfterBody",
			m: method([]tree.Param{items()},
				&tree.LoopStmt{
					At:   pos(2),
					Init: &tree.LocalVarStmt{At: pos(2), Name: "it", Value: ident("items")},
					Cond: &tree.Ident{At: pos(2), Name: "more", Type: "boolean"},
					Post: &tree.AssignStmt{At: pos(2), Target: ident("it"), Value: &tree.NewExpr{At: pos(2), Type: "ArrayList<String>"}},
					Body: &tree.BlockStmt{List: []tree.Stmt{call(3, "it", "add", ident("x"))}},
				},
			),
			member: "add",
			line:   3,
		},
		{
			name: "LoopInitScoped",
			m: method([]tree.Param{items()},
				&tree.LoopStmt{
					At:   pos(2),
					Init: &tree.LocalVarStmt{At: pos(2), Name: "it", Value: ident("items")},
					Cond: &tree.Ident{At: pos(2), Name: "more", Type: "boolean"},
					Body: &tree.BlockStmt{},
				},
				&tree.LocalVarStmt{At: pos(4), Name: "other", Value: &tree.NewExpr{At: pos(4), Type: "ArrayList<String>"}},
				call(5, "it", "add", ident("x")),
			),
		},
		{
			name: "InnerDeclarationShadows",
			m: method([]tree.Param{items()},
				&tree.BlockStmt{List: []tree.Stmt{
					&tree.LocalVarStmt{At: pos(3), Name: "items", Value: &tree.NewExpr{At: pos(3), Type: "ArrayList<String>"}},
					call(4, "items", "size"),
				}},
				call(6, "items", "add", ident("x")),
			),
			member: "add",
			line:   6,
		},
		{
			name: "InnerAliasDoesNotLeak",
			m: method([]tree.Param{items()},
				&tree.LocalVarStmt{At: pos(2), Name: "alias", Value: &tree.NewExpr{At: pos(2), Type: "ArrayList<String>"}},
				&tree.BlockStmt{List: []tree.Stmt{
					&tree.LocalVarStmt{At: pos(4), Name: "alias", Value: ident("items")},
				}},
				call(6, "alias", "add", ident("x")),
			),
		},
		{
			name: "InnerAssignmentPersists",
			m: method([]tree.Param{items()},
				&tree.LocalVarStmt{At: pos(2), Name: "alias", Value: &tree.NewExpr{At: pos(2), Type: "ArrayList<String>"}},
				&tree.BlockStmt{List: []tree.Stmt{
					&tree.AssignStmt{At: pos(4), Target: ident("alias"), Value: ident("items")},
				}},
				call(6, "alias", "add", ident("x")),
			),
			member: "add",
			line:   6,
		},
		{
			name: "FlatBlockDeclares",
			m: method([]tree.Param{items()},
				&tree.BlockStmt{Flat: true, List: []tree.Stmt{
					&tree.LocalVarStmt{At: pos(2), Name: "a", Value: ident("items")},
					&tree.LocalVarStmt{At: pos(2), Name: "b", Value: ident("x")},
				}},
				call(3, "a", "add", ident("x")),
			),
			member: "add",
			line:   3,
		},
		{
			name: "CatchParameterScoped",
			m: method([]tree.Param{items()},
				&tree.TryStmt{
					At:   pos(2),
					Body: &tree.BlockStmt{List: []tree.Stmt{call(3, "list", "size")}},
					Catches: []*tree.CatchClause{{
						At:    pos(4),
						Name:  "items",
						Types: []string{"RuntimeException"},
						Body:  &tree.BlockStmt{},
					}},
				},
				call(6, "items", "add", ident("x")),
			),
			member: "add",
			line:   6,
		},
		{
			name: "CaseClauseScoped",
			m: method([]tree.Param{items()},
				&tree.SwitchStmt{
					At:  pos(2),
					Tag: ident("kind"),
					Cases: []*tree.CaseClause{{
						At: pos(3),
						Body: []tree.Stmt{
							&tree.LocalVarStmt{At: pos(3), Name: "items", Value: &tree.NewExpr{At: pos(3), Type: "ArrayList<String>"}},
						},
					}},
				},
				call(5, "items", "add", ident("x")),
			),
			member: "add",
			line:   5,
		},
		{
			name: "LambdaCapture",
			m: method([]tree.Param{items()},
				call(2, "executor", "execute", &tree.FuncLit{
					At:   pos(2),
					Body: &tree.BlockStmt{List: []tree.Stmt{call(3, "items", "add", ident("x"))}},
				}),
			),
			member: "add",
			line:   3,
		},
		{
			name: "LambdaParameterShadows",
			m: method([]tree.Param{items()},
				call(2, "lists", "forEach", &tree.FuncLit{
					At:     pos(2),
					Params: []string{"items"},
					Body:   &tree.BlockStmt{List: []tree.Stmt{call(3, "items", "add", ident("x"))}},
				}),
				call(4, "items", "size"),
			),
		},
		{
			name: "ReceiverNotIdentifier",
			m: method([]tree.Param{items()},
				&tree.ExprStmt{X: &tree.CallExpr{
					At:     pos(2),
					Recv:   &tree.CallExpr{At: pos(2), Recv: ident("items"), Member: "subList"},
					Member: "clear",
				}},
			),
		},
		{
			name: "ReadOnlyMember",
			m: method([]tree.Param{{Name: "lookup", Type: "Map<String,String>", Capability: tree.MutableMapping}},
				call(2, "lookup", "add", ident("x")),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := detect(t, tt.m)
			require.Len(t, res.Verdicts, 1)

			v := res.Verdicts[0]
			if tt.member == "" {
				assert.Equal(t, NotMutated, v.State)
				assert.Empty(t, res.Mutated())

				return
			}

			assert.Equal(t, Mutated, v.State)
			assert.Equal(t, tt.member, v.Member)
			assert.Equal(t, tt.line, v.At.Line)
		})
	}
}

func TestDetectParameters(t *testing.T) {
	t.Parallel()

	m := method([]tree.Param{
		{Name: "count", Type: "int", Capability: tree.Other},
		items(),
		{Name: "seen", Type: "Set<String>", Capability: tree.MutableSet},
		{Name: "index", Type: "Map<String,Integer>", Capability: tree.MutableMapping},
	},
		call(2, "seen", "add", ident("x")),
		call(3, "index", "put", ident("x"), ident("count")),
		call(4, "items", "get", ident("count")),
	)

	res := detect(t, m)

	require.Len(t, res.Verdicts, 3)
	assert.Equal(t, "items", res.Verdicts[0].Param)
	assert.Equal(t, 1, res.Verdicts[0].Index)
	assert.Equal(t, NotMutated, res.Verdicts[0].State)
	assert.Equal(t, Mutated, res.Verdicts[1].State)
	assert.Equal(t, Mutated, res.Verdicts[2].State)

	mutated := res.Mutated()
	require.Len(t, mutated, 2)
	assert.Equal(t, "seen", mutated[0].Param)
	assert.Equal(t, "index", mutated[1].Param)
}

func TestDetectUnresolvedParameter(t *testing.T) {
	t.Parallel()

	m := method([]tree.Param{{Name: "items"}}, call(2, "items", "add", ident("x")))

	res := detect(t, m)

	assert.Empty(t, res.Verdicts)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.UnresolvedType, res.Diagnostics[0].Code)
}

func TestDetectMalformed(t *testing.T) {
	t.Parallel()

	m := method([]tree.Param{items()}, &tree.BadStmt{At: pos(2), Kind: "yield_statement"})

	_, err := New(config.DefaultRules()).Detect(t.Context(), m)
	assert.ErrorIs(t, err, diag.ErrMalformedAST)
}

func TestDetectIdempotent(t *testing.T) {
	t.Parallel()

	m := method([]tree.Param{items()}, call(24, "items", "insert", ident("newElement")))

	assert.Equal(t, detect(t, m), detect(t, m))
}

func TestOrigins(t *testing.T) {
	t.Parallel()

	o := NewOrigins()
	o.Bind("a", 0)

	c := o.Clone()
	c.Unbind("a")
	c.Bind("b", 1)

	_, ok := o.Lookup("a")
	assert.True(t, ok)

	_, ok = o.Lookup("b")
	assert.False(t, ok)

	_, ok = c.Lookup("a")
	assert.False(t, ok)
}

func TestOriginsScopes(t *testing.T) {
	t.Parallel()

	o := NewOrigins()
	o.Bind("a", 0)
	o.Bind("b", 1)

	o.Open()
	o.Declare("a", 0, false) // shadows
	o.Declare("c", 1, true)  // new name
	o.Bind("b", 0)           // outer name

	_, ok := o.Lookup("a")
	assert.False(t, ok)

	o.Close()

	a, ok := o.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 0, a)

	b, ok := o.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, 0, b)

	_, ok = o.Lookup("c")
	assert.False(t, ok)
}
