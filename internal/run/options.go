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

import "fillmore-labs.com/methodguard/internal/config"

// Options represent configuration options for the methodguard analyzer.
type Options struct {
	// Checks selects the reported findings.
	Checks config.BitMask[config.Checks]

	// Behavior holds behavioral options.
	Behavior config.BitMask[config.Behavior]

	// InlineDepth bounds inlining of calls to functions of the same receiver type or package.
	InlineDepth int
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Checks:      config.DefaultChecks(),
		Behavior:    config.DefaultBehavior(),
		InlineDepth: config.DefaultInlineDepth,
	}
}

// Rules returns the analysis rules for Go sources with the configured inline depth.
func (r *Options) Rules() (*config.Rules, error) {
	f := config.GoRulesFile()
	depth := r.InlineDepth
	f.InlineDepth = &depth

	return config.NewRules(f)
}
