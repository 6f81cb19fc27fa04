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

// Package batch analyzes a sequence of units, isolating failures per unit.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fillmore-labs.com/methodguard/internal/tree"
	"fillmore-labs.com/methodguard/internal/verdict"
)

// UnitResult is the outcome of analyzing one unit.
type UnitResult struct {
	Unit     string
	File     string
	Verdicts []verdict.MethodVerdict // nil when Err is set
	Err      error
}

// Runner analyzes units one after another, with the methods of each unit analyzed in parallel.
type Runner struct {
	aggregator *verdict.Aggregator
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a [Runner] using aggregator.
func New(aggregator *verdict.Aggregator, opts ...Option) *Runner {
	r := &Runner{aggregator: aggregator, logger: slog.Default()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}

	return r
}

// Run analyzes units in order.
//
// A unit without type resolution fails the whole batch before any analysis
// starts. A unit exceeding the timeout is discarded and reported with its
// error, and the batch continues. Cancellation of ctx stops the batch and
// returns the results so far together with the context's error.
func (r *Runner) Run(ctx context.Context, units []*tree.Unit) ([]UnitResult, error) {
	ctx, span := tracer.Start(ctx, "batch.Run", trace.WithAttributes(attribute.Int("units", len(units))))
	defer span.End()

	for _, u := range units {
		if u.Resolver == nil {
			err := fmt.Errorf("unit %s in %s: %w", u.Name, u.File, verdict.ErrNoTypeResolver)
			span.RecordError(err)
			span.SetStatus(codes.Error, "no type resolution")

			return nil, err
		}
	}

	results := make([]UnitResult, 0, len(units))

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "canceled")

			return results, err
		}

		results = append(results, r.unit(ctx, u))
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}

type outcome struct {
	verdicts []verdict.MethodVerdict
	err      error
}

// unit analyzes a single unit, abandoning the analysis when the unit context is done.
func (r *Runner) unit(ctx context.Context, u *tree.Unit) UnitResult {
	ctx, span := startUnitSpan(ctx, u)
	defer span.End()

	uctx, cancel := ctx, context.CancelFunc(func() {})
	if r.timeout > 0 {
		uctx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	start := time.Now()

	done := make(chan outcome, 1)
	go func() {
		verdicts, err := r.aggregator.AnalyzeUnit(uctx, u)
		done <- outcome{verdicts, err}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-uctx.Done():
		o.err = uctx.Err()
	}

	duration := time.Since(start)
	recordUnit(ctx, duration, o.verdicts, o.err)

	res := UnitResult{Unit: u.Name, File: u.File}

	if o.err != nil {
		span.RecordError(o.err)
		span.SetStatus(codes.Error, "discarded")

		r.logger.LogAttrs(ctx, slog.LevelWarn, "Discarded unit analysis",
			slog.String("unit", u.Name), slog.String("file", u.File), slog.Any("error", o.err))

		res.Err = fmt.Errorf("unit %s: %w", u.Name, o.err)

		return res
	}

	res.Verdicts = o.verdicts

	r.logger.LogAttrs(ctx, slog.LevelDebug, "Analyzed unit",
		slog.String("unit", u.Name), slog.Int("methods", len(o.verdicts)), slog.Duration("duration", duration))

	for _, v := range o.verdicts {
		for _, d := range v.Diagnostics {
			r.logger.LogAttrs(ctx, slog.LevelDebug, "Diagnostic",
				slog.String("method", v.Name()), slog.String("diagnostic", d.String()))
		}
	}

	return res
}
