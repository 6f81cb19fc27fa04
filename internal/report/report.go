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

// Package report converts method verdicts into analysis diagnostics.
package report

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/methodguard/internal/astutil"
	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/exceptions"
	"fillmore-labs.com/methodguard/internal/verdict"
)

// Verdict emits the diagnostics for the verdict of fun enabled by checks.
func Verdict(ctx context.Context, p *analysis.Pass, currentFile astutil.CurrentFile, fun *ast.FuncDecl, v verdict.MethodVerdict, checks config.BitMask[config.Checks]) {
	defer trace.StartRegion(ctx, "Report").End()

	if v.Status == verdict.Unanalyzable {
		astutil.Unanalyzable(p, fun.Name, v.Name(), v.Err)

		return
	}

	name := funcName(fun)

	switch {
	case v.Kind == exceptions.Both && checks.Enabled(config.MixedCheck):
		reportMixed(p, currentFile, fun, name, v.Throws)

	case v.Kind.HasUnchecked() && checks.Enabled(config.PanicCheck):
		reportPanics(p, currentFile, fun, name, v.Throws)
	}

	if checks.Enabled(config.MutationCheck) {
		reportMutations(p, currentFile, fun, name, v)
	}
}

// reportMixed reports functions that both return errors and panic.
func reportMixed(p *analysis.Pass, currentFile astutil.CurrentFile, fun *ast.FuncDecl, name string, throws []exceptions.Throw) {
	var related []analysis.RelatedInformation

	if pos, ok := firstThrow(currentFile, throws, false); ok {
		related = append(related, analysis.RelatedInformation{Pos: pos, Message: "Panics here"})
	}

	if pos, ok := firstThrow(currentFile, throws, true); ok {
		related = append(related, analysis.RelatedInformation{Pos: pos, Message: "Returns an error here"})
	}

	p.Report(analysis.Diagnostic{
		Pos:      fun.Name.Pos(),
		End:      fun.Name.End(),
		Category: "mixed",
		Message:  fmt.Sprintf("Function %s both returns errors and panics (mg:mix)", name),
		Related:  related,
	})
}

// reportPanics reports functions that can panic.
func reportPanics(p *analysis.Pass, currentFile astutil.CurrentFile, fun *ast.FuncDecl, name string, throws []exceptions.Throw) {
	var related []analysis.RelatedInformation

	for _, t := range throws {
		if t.Checked {
			continue
		}

		pos := currentFile.Pos(t.At)
		if !pos.IsValid() {
			continue
		}

		msg := "Panics here"
		if t.Via != "" {
			msg = fmt.Sprintf("Panics in %s here", t.Via)
		}

		related = append(related, analysis.RelatedInformation{Pos: pos, Message: msg})
	}

	p.Report(analysis.Diagnostic{
		Pos:      fun.Name.Pos(),
		End:      fun.Name.End(),
		Category: "panic",
		Message:  fmt.Sprintf("Function %s can panic (mg:pan)", name),
		Related:  related,
	})
}

// reportMutations reports each mutated collection parameter at its first mutating call.
func reportMutations(p *analysis.Pass, currentFile astutil.CurrentFile, fun *ast.FuncDecl, name string, v verdict.MethodVerdict) {
	for _, m := range v.Mutated() {
		pos := currentFile.Pos(m.At)
		if !pos.IsValid() {
			pos = fun.Name.Pos()
		}

		if currentFile.NoLintComment(pos) {
			continue
		}

		var related []analysis.RelatedInformation
		if param := paramIdent(fun, m.Index); param != nil {
			related = []analysis.RelatedInformation{{Pos: param.Pos(), End: param.End(), Message: "Parameter declared here"}}
		}

		p.Report(analysis.Diagnostic{
			Pos:      pos,
			Category: "mutation",
			Message:  fmt.Sprintf("Function %s mutates parameter '%s' via %s (mg:mut)", name, m.Param, m.Member),
			Related:  related,
		})
	}
}

// firstThrow returns the position of the first throw in the current file with the given checked state.
func firstThrow(currentFile astutil.CurrentFile, throws []exceptions.Throw, checked bool) (token.Pos, bool) {
	for _, t := range throws {
		if t.Checked != checked {
			continue
		}

		if pos := currentFile.Pos(t.At); pos.IsValid() {
			return pos, true
		}
	}

	return token.NoPos, false
}

// paramIdent returns the identifier of the parameter at index, or nil for unnamed parameters.
func paramIdent(fun *ast.FuncDecl, index int) *ast.Ident {
	i := 0

	for _, field := range fun.Type.Params.List {
		if len(field.Names) == 0 {
			if i == index {
				return nil
			}

			i++

			continue
		}

		for _, id := range field.Names {
			if i == index {
				return id
			}

			i++
		}
	}

	return nil
}

// funcName returns the name of a function, qualified by its receiver type for methods.
func funcName(fun *ast.FuncDecl) string {
	if fun.Recv == nil || len(fun.Recv.List) == 0 {
		return fun.Name.Name
	}

	typ := fun.Recv.List[0].Type
	for {
		switch t := typ.(type) {
		case *ast.StarExpr:
			typ = t.X

			continue

		case *ast.IndexExpr:
			typ = t.X

			continue

		case *ast.IndexListExpr:
			typ = t.X

			continue

		case *ast.ParenExpr:
			typ = t.X

			continue

		case *ast.Ident:
			return t.Name + "." + fun.Name.Name
		}

		return fun.Name.Name
	}
}
