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

// Package java lowers Java source files to syntax tree units using tree-sitter.
//
// Each class, interface, enum and record declaration becomes one unit holding its
// methods and constructors in declaration order. Types are resolved from local
// declarations only; the resolver knows the Java platform exceptions and the
// classes declared in the file.
package java

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"runtime/trace"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"fillmore-labs.com/methodguard/internal/frontend/jdk"
	"fillmore-labs.com/methodguard/internal/tree"
)

// ErrInvalidSource is returned for sources that cannot be parsed.
var ErrInvalidSource = errors.New("invalid Java source")

// Parse lowers all type declarations of a Java compilation unit.
func Parse(ctx context.Context, src []byte, filename string) ([]*tree.Unit, error) {
	defer trace.StartRegion(ctx, "ParseJava").End()

	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s: %w: content is not valid UTF-8", filename, ErrInvalidSource)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	t, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%s: tree-sitter parse failed: %w", filename, err)
	}
	defer t.Close()

	root := t.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s: %w: no syntax tree", filename, ErrInvalidSource)
	}

	f := file{src: src, name: filename, hierarchy: jdk.Hierarchy()}
	f.declarations(root)

	for _, u := range f.units {
		u.Resolver = f.hierarchy
	}

	return f.units, nil
}

// ParseFile reads and lowers the Java file at path.
func ParseFile(ctx context.Context, path string) ([]*tree.Unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, src, path)
}

// file collects the units of one compilation unit.
type file struct {
	src       []byte
	name      string
	hierarchy tree.Hierarchy
	units     []*tree.Unit
}

func (f *file) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return string(f.src[n.StartByte():n.EndByte()])
}

func (f *file) pos(n *sitter.Node) token.Position {
	start := n.StartPoint()

	return tree.Position(f.name, int(start.Row)+1, int(start.Column)+1)
}

// declarations finds type declarations below n, including nested ones.
func (f *file) declarations(n *sitter.Node) {
	for i := range int(n.NamedChildCount()) {
		child := n.NamedChild(i)

		switch child.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			f.typeDecl(child)
		}
	}
}

func (f *file) typeDecl(n *sitter.Node) {
	name := f.text(n.ChildByFieldName("name"))

	parent := "Object"
	if super := n.ChildByFieldName("superclass"); super != nil {
		if typ := firstNamed(super); typ != nil {
			parent = tree.SimpleName(f.text(typ))
		}
	}

	f.hierarchy[name] = parent

	unit := &tree.Unit{Name: name, File: f.name}
	f.units = append(f.units, unit)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	fields := make(map[string]string)

	var members []*sitter.Node

	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)

		if child.Type() == "enum_body_declarations" {
			for j := range int(child.NamedChildCount()) {
				members = append(members, child.NamedChild(j))
			}

			continue
		}

		members = append(members, child)
	}

	for _, member := range members {
		switch member.Type() {
		case "field_declaration":
			typ := f.text(member.ChildByFieldName("type"))
			for _, d := range childrenOfType(member, "variable_declarator") {
				fields[f.text(d.ChildByFieldName("name"))] = typ
			}

		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			f.typeDecl(member)
		}
	}

	for _, member := range members {
		switch member.Type() {
		case "method_declaration", "constructor_declaration", "compact_constructor_declaration":
			unit.Methods = append(unit.Methods, f.method(member, name, fields))
		}
	}
}

func (f *file) method(n *sitter.Node, owner string, fields map[string]string) *tree.Method {
	name := owner
	if id := n.ChildByFieldName("name"); id != nil {
		name = f.text(id)
	}

	result := "void"
	if typ := n.ChildByFieldName("type"); typ != nil {
		result = f.text(typ)
	}

	m := &tree.Method{
		Sig:   tree.Signature{Name: name, Result: result},
		At:    f.pos(n),
		Owner: owner,
	}

	l := lowering{file: f, owner: owner, vars: make(map[string]string), fields: fields}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := range int(params.NamedChildCount()) {
			p := params.NamedChild(i)

			var pname, ptype string

			switch p.Type() {
			case "formal_parameter":
				pname, ptype = f.text(p.ChildByFieldName("name")), f.text(p.ChildByFieldName("type"))

			case "spread_parameter":
				if d := firstOfType(p, "variable_declarator"); d != nil {
					pname = f.text(d.ChildByFieldName("name"))
				}

				if typ := firstNamed(p); typ != nil {
					ptype = f.text(typ) + "..."
				}

			default:
				continue
			}

			l.vars[pname] = ptype
			m.Sig.Params = append(m.Sig.Params, tree.Param{Name: pname, Type: ptype, Capability: capability(ptype)})
		}
	}

	if throws := firstOfType(n, "throws"); throws != nil {
		for i := range int(throws.NamedChildCount()) {
			m.Sig.Throws = append(m.Sig.Throws, f.text(throws.NamedChild(i)))
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		m.Body = l.block(body)
	}

	return m
}

// capability returns the collection capability of a declared parameter type.
func capability(typ string) tree.Capability {
	if strings.HasSuffix(typ, "...") {
		return tree.Other
	}

	return jdk.Capability(typ)
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}

	return n.NamedChild(0)
}

func firstOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := range int(n.NamedChildCount()) {
		if child := n.NamedChild(i); child.Type() == typ {
			return child
		}
	}

	return nil
}

func childrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	var nodes []*sitter.Node

	for i := range int(n.NamedChildCount()) {
		if child := n.NamedChild(i); child.Type() == typ {
			nodes = append(nodes, child)
		}
	}

	return nodes
}
