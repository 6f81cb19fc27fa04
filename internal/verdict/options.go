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

package verdict

import (
	"log/slog"

	"fillmore-labs.com/methodguard/internal/reachability/tracker"
)

// Option configures an [Aggregator].
type Option interface {
	apply(o *options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	for _, opt := range o {
		if opt == nil {
			continue
		}

		as = append(as, opt.LogAttr())
	}

	return slog.GroupValue(as...)
}

func (o Options) apply(r *options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

type options struct {
	parallelism int
	noReturn    []tracker.FuncName
}

// WithParallelism is an [Option] to limit the number of methods analyzed concurrently.
// Values below one mean [runtime.GOMAXPROCS].
func WithParallelism(n int) Option { return parallelismOption{n: n} }

type parallelismOption struct{ n int }

func (o parallelismOption) apply(r *options) { r.parallelism = o.n }

func (o parallelismOption) LogAttr() slog.Attr { return slog.Int("parallelism", o.n) }

// WithNoReturn is an [Option] to declare additional functions that never return.
func WithNoReturn(names ...tracker.FuncName) Option { return noReturnOption{names: names} }

type noReturnOption struct{ names []tracker.FuncName }

func (o noReturnOption) apply(r *options) { r.noReturn = append(r.noReturn, o.names...) }

func (o noReturnOption) LogAttr() slog.Attr {
	names := make([]string, 0, len(o.names))
	for _, n := range o.names {
		names = append(names, n.String())
	}

	return slog.Any("noReturn", names)
}
