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

package batch

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"fillmore-labs.com/methodguard/internal/tree"
	"fillmore-labs.com/methodguard/internal/verdict"
)

const instrumentation = "fillmore-labs.com/methodguard/batch"

var (
	tracer = otel.Tracer(instrumentation)
	meter  = otel.Meter(instrumentation)
)

var (
	unitDuration   metric.Float64Histogram
	methodsTotal   metric.Int64Counter
	mutationsTotal metric.Int64Counter
	discardedTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		unitDuration, err = meter.Float64Histogram(
			"methodguard_unit_duration_seconds",
			metric.WithDescription("Duration of unit analyses"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		methodsTotal, err = meter.Int64Counter(
			"methodguard_methods_total",
			metric.WithDescription("Analyzed methods by exception kind"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		mutationsTotal, err = meter.Int64Counter(
			"methodguard_mutated_parameters_total",
			metric.WithDescription("Mutated collection parameters"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		discardedTotal, err = meter.Int64Counter(
			"methodguard_units_discarded_total",
			metric.WithDescription("Units whose analysis was discarded"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

// recordUnit records the metrics of a finished unit analysis.
func recordUnit(ctx context.Context, duration time.Duration, verdicts []verdict.MethodVerdict, err error) {
	if initMetrics() != nil {
		return
	}

	unitDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", err == nil)))

	if err != nil {
		discardedTotal.Add(ctx, 1)

		return
	}

	for _, v := range verdicts {
		methodsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", v.ExceptionKind())))

		if n := len(v.Mutated()); n > 0 {
			mutationsTotal.Add(ctx, int64(n))
		}
	}
}

// startUnitSpan creates a span for the analysis of u.
func startUnitSpan(ctx context.Context, u *tree.Unit) (context.Context, trace.Span) {
	return tracer.Start(ctx, "batch.Unit",
		trace.WithAttributes(
			attribute.String("unit.name", u.Name),
			attribute.String("unit.file", u.File),
			attribute.Int("unit.methods", len(u.Methods)),
		),
	)
}
