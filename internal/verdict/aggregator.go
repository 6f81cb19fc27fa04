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

// Package verdict combines exception and mutation findings into per-method verdicts.
package verdict

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/trace"
	"slices"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/exceptions"
	"fillmore-labs.com/methodguard/internal/mutation"
	"fillmore-labs.com/methodguard/internal/reachability/tracker"
	"fillmore-labs.com/methodguard/internal/tree"
)

// ErrNoTypeResolver is returned for units without type resolution.
var ErrNoTypeResolver = errors.New("no type resolution available")

// Aggregator analyzes methods. It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	classifier  *exceptions.Classifier
	detector    *mutation.Detector
	parallelism int
}

// New creates an [Aggregator] with the given rules.
func New(rules *config.Rules, opts ...Option) (*Aggregator, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: no rules", config.ErrInvalidRules)
	}

	var o options
	Options(opts).apply(&o)

	parallelism := o.parallelism
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	return &Aggregator{
		classifier:  exceptions.New(rules, tracker.New(o.noReturn...)),
		detector:    mutation.New(rules),
		parallelism: parallelism,
	}, nil
}

// AnalyzeMethod analyzes the method at index of unit.
//
// Exception classification and mutation detection run concurrently. When either
// fails the verdict is [Unanalyzable] with the failure recorded in Err.
func (a *Aggregator) AnalyzeMethod(ctx context.Context, unit *tree.Unit, index int) MethodVerdict {
	m := unit.Methods[index]

	defer trace.StartRegion(ctx, "AnalyzeMethod").End()

	var (
		g         errgroup.Group
		thrown    exceptions.Result
		mutations mutation.Result
	)

	g.Go(func() (err error) {
		thrown, err = a.classifier.Classify(ctx, unit, m)
		return err
	})

	g.Go(func() (err error) {
		mutations, err = a.detector.Detect(ctx, m)
		return err
	})

	if err := g.Wait(); err != nil {
		return MethodVerdict{Method: m, Index: index, Status: Unanalyzable, Err: err}
	}

	return MethodVerdict{
		Method:      m,
		Index:       index,
		Status:      Analyzed,
		Kind:        thrown.Kind,
		Mutations:   mutations.Verdicts,
		Throws:      thrown.Throws,
		Undeclared:  thrown.Undeclared,
		Diagnostics: slices.Concat(thrown.Diagnostics, mutations.Diagnostics),
	}
}

// AnalyzeUnit analyzes all methods of unit on a bounded worker pool.
//
// Verdicts are returned in declaration order. A unit without type resolution
// yields [ErrNoTypeResolver]. When ctx is done, no further methods are started
// and the context error is returned.
func (a *Aggregator) AnalyzeUnit(ctx context.Context, unit *tree.Unit) ([]MethodVerdict, error) {
	if unit.Resolver == nil {
		return nil, fmt.Errorf("unit %s: %w", unit.Name, ErrNoTypeResolver)
	}

	ctx, task := trace.NewTask(ctx, "AnalyzeUnit")
	defer task.End()

	verdicts := make([]MethodVerdict, len(unit.Methods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)

	for i := range unit.Methods {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			verdicts[i] = a.AnalyzeMethod(gctx, unit, i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return verdicts, nil
}
