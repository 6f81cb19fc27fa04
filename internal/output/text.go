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

package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"fillmore-labs.com/methodguard/internal/batch"
	"fillmore-labs.com/methodguard/internal/verdict"
)

// styles holds the text format styles; the zero value renders plain text.
type styles struct {
	unit, method, kind, mutated, problem *lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}

	unit := lipgloss.NewStyle().Bold(true)
	method := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	kind := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutated := lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	problem := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	return styles{&unit, &method, &kind, &mutated, &problem}
}

func render(s *lipgloss.Style, text string) string {
	if s == nil {
		return text
	}

	return s.Render(text)
}

func writeText(w io.Writer, results []batch.UnitResult, color bool) error {
	st := newStyles(color)

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", render(st.unit, r.Unit), r.File); err != nil {
			return err
		}

		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "  %s\n", render(st.problem, "discarded: "+r.Err.Error())); err != nil {
				return err
			}

			continue
		}

		for _, v := range r.Verdicts {
			if err := writeVerdict(w, st, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeVerdict(w io.Writer, st styles, v verdict.MethodVerdict) error {
	report := v.Report()

	kind := render(st.kind, report.ExceptionKind)
	if v.Status == verdict.Unanalyzable {
		kind = render(st.problem, report.ExceptionKind)
	}

	if _, err := fmt.Fprintf(w, "  %s: %s\n", render(st.method, report.MethodName), kind); err != nil {
		return err
	}

	for _, p := range report.MutatedParameters {
		if _, err := fmt.Fprintf(w, "    mutates %s at %s\n", render(st.mutated, p.ParamName), p.Location); err != nil {
			return err
		}
	}

	for _, typ := range report.UndeclaredChecked {
		if _, err := fmt.Fprintf(w, "    undeclared %s\n", typ); err != nil {
			return err
		}
	}

	for _, d := range report.Diagnostics {
		if _, err := fmt.Fprintf(w, "    note: %s\n", d); err != nil {
			return err
		}
	}

	return nil
}
