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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/methodguard/analyzer"
	"fillmore-labs.com/methodguard/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.Checks
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.MixedCheck,
			args:    []string{"-panic"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.PanicCheck,
			args:    []string{"-panic=false"},
			want:    false,
		},
		{
			name:    "Off",
			initial: config.PanicCheck,
			args:    []string{"-panic=off"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags := config.NewBitMask(tt.initial)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.PanicCheck
			fv := NewCheckValue(&flags, value)
			fs.Var(fv, "panic", "report functions that can panic")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("PanicCheck enabled = %v, want %v", flags.Enabled(value), tt.want)
			}
		})
	}
}

func TestFlagValueInvalid(t *testing.T) {
	t.Parallel()

	flags := config.DefaultChecks()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	fs.Var(NewCheckValue(&flags, config.MixedCheck), "mixed", "")

	if err := fs.Parse([]string{"-mixed=maybe"}); err == nil {
		t.Error("Parse succeeded, want error")
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	flags := config.NewBitMask(config.MutationCheck)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewCheckValue(&flags, config.MutationCheck)
	fs.Var(fv, "mutation", "report functions that mutate collection parameters")

	const expectedUsage = `
  -mutation
    	report functions that mutate collection parameters (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}

func TestAnalyzerFlags(t *testing.T) {
	t.Parallel()

	a := New()

	for _, name := range []string{"mixed", "panic", "mutation", "generated", "inline-depth"} {
		if a.Flags.Lookup(name) == nil {
			t.Errorf("Flag %q not registered", name)
		}
	}

	if got := a.Flags.Lookup("mixed").DefValue; got != "true" {
		t.Errorf("mixed default = %s, want true", got)
	}

	if got := a.Flags.Lookup("panic").DefValue; got != "false" {
		t.Errorf("panic default = %s, want false", got)
	}
}
