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
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"fillmore-labs.com/methodguard/internal/batch"
)

func writeTable(w io.Writer, results []batch.UnitResult) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Unit", "Method", "Exceptions", "Mutated Parameters"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	methods, mutated := 0, 0

	for _, r := range results {
		if r.Err != nil {
			table.Append([]string{r.Unit, "-", "DISCARDED", r.Err.Error()})

			continue
		}

		for _, v := range r.Verdicts {
			report := v.Report()

			params := make([]string, 0, len(report.MutatedParameters))
			for _, p := range report.MutatedParameters {
				params = append(params, p.ParamName+" ("+p.Location+")")
			}

			table.Append([]string{r.Unit, report.MethodName, report.ExceptionKind, strings.Join(params, ", ")})

			methods++
			mutated += len(params)
		}
	}

	table.SetFooter([]string{"Total", strconv.Itoa(methods), "", strconv.Itoa(mutated)})

	table.Render()

	return nil
}
