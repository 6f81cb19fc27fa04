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

package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/methodguard/internal/astutil"
	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/frontend/golang"
	"fillmore-labs.com/methodguard/internal/report"
	"fillmore-labs.com/methodguard/internal/verdict"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the methodguard analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("methodguard: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	if r.Checks.Empty() {
		return nil, nil
	}

	rules, err := r.Rules()
	if err != nil {
		return nil, fmt.Errorf("methodguard: %w", err)
	}

	aggregator, err := verdict.New(rules, verdict.WithParallelism(1))
	if err != nil {
		return nil, fmt.Errorf("methodguard: %w", err)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "MethodGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	// Stage 1: Lower all functions of the package, so calls into skipped files can be inlined
	pkg := golang.Lower(p.Fset, p.Pkg, p.TypesInfo, p.Files)

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if astutil.DocHasNoLint(file.Doc) {
			continue
		}

		// Loop over all function and method declarations in this file
		for c := range f.Preorder((*ast.FuncDecl)(nil)) {
			fun := c.Node().(*ast.FuncDecl)

			if fun.Body == nil {
				continue
			}

			// Skip functions with nolint comment
			if astutil.DocHasNoLint(fun.Doc) {
				continue
			}

			index, ok := pkg.Index(fun)
			if !ok {
				astutil.InternalError(p, fun.Name, "Function %s not lowered", fun.Name.Name)

				continue
			}

			// Stage 2: Classify exceptions and detect parameter mutations
			v := aggregator.AnalyzeMethod(ctx, pkg.Unit, index)

			// Stage 3: Generate diagnostics
			report.Verdict(ctx, p, currentFile, fun, v, r.Checks)
		}
	}

	return nil, nil
}
