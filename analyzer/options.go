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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/run"
)

// Option configures specific behavior of a [New] methodguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
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

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithMixed is an [Option] to configure whether functions both returning errors and panicking are reported.
func WithMixed(mixed bool) Option { return checkOption{name: "mixed", check: config.MixedCheck, enabled: mixed} }

// WithPanic is an [Option] to configure whether functions that can panic are reported.
func WithPanic(panics bool) Option { return checkOption{name: "panic", check: config.PanicCheck, enabled: panics} }

// WithMutation is an [Option] to configure whether mutated collection parameters are reported.
func WithMutation(mutation bool) Option {
	return checkOption{name: "mutation", check: config.MutationCheck, enabled: mutation}
}

type checkOption struct {
	name    string
	check   config.Checks
	enabled bool
}

func (o checkOption) apply(r *run.Options) {
	r.Checks.Set(o.check, o.enabled)
}

func (o checkOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.enabled)
}

// WithInlineDepth is an [Option] to configure how many levels of calls to the same receiver type are inlined.
func WithInlineDepth(depth int) Option { return inlineDepthOption{depth: depth} }

type inlineDepthOption struct{ depth int }

func (o inlineDepthOption) apply(r *run.Options) {
	r.InlineDepth = o.depth
}

func (o inlineDepthOption) LogAttr() slog.Attr {
	return slog.Int("inline-depth", o.depth)
}
