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

package gclplugin

import methodguard "fillmore-labs.com/methodguard/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Mixed reports functions that both return errors and panic.
	Mixed *bool `json:"mixed,omitzero"`
	// Panic reports functions that can panic.
	Panic *bool `json:"panic,omitzero"`
	// Mutation reports functions that mutate collection parameters.
	Mutation *bool `json:"mutation,omitzero"`
	// InlineDepth sets the levels of same-type calls to inline.
	InlineDepth *int `json:"inline-depth,omitzero"`
}

// Options converts [Settings] into a list of [methodguard.Option] for the methodguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []methodguard.Option {
	var opts []methodguard.Option

	opts = appendOption(opts, s.Mixed, methodguard.WithMixed)
	opts = appendOption(opts, s.Panic, methodguard.WithPanic)
	opts = appendOption(opts, s.Mutation, methodguard.WithMutation)
	opts = appendOption(opts, s.InlineDepth, methodguard.WithInlineDepth)

	return opts
}

// appendOption appends a non-nil setting to a [methodguard.Option] list.
func appendOption[T any](opts []methodguard.Option, value *T, constructor func(T) methodguard.Option) []methodguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
