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
	"log/slog"
	"time"
)

// Option configures a [Runner].
type Option interface {
	apply(r *Runner)
	LogAttr() slog.Attr
}

// WithUnitTimeout limits the analysis time of a single unit. Zero means no limit.
func WithUnitTimeout(d time.Duration) Option { return timeoutOption{d: d} }

type timeoutOption struct{ d time.Duration }

func (o timeoutOption) apply(r *Runner) { r.timeout = o.d }

func (o timeoutOption) LogAttr() slog.Attr { return slog.Duration("unitTimeout", o.d) }

// WithLogger sets the logger for progress messages.
func WithLogger(l *slog.Logger) Option { return loggerOption{l: l} }

type loggerOption struct{ l *slog.Logger }

func (o loggerOption) apply(r *Runner) {
	if o.l != nil {
		r.logger = o.l
	}
}

func (o loggerOption) LogAttr() slog.Attr { return slog.Bool("logger", o.l != nil) }
