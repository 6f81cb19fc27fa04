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

package config_test

import (
	"testing"

	. "fillmore-labs.com/methodguard/internal/config"
)

func TestBitMask(t *testing.T) {
	t.Parallel()

	checks := DefaultChecks()

	if !checks.Enabled(MixedCheck) || checks.Enabled(PanicCheck) || !checks.Enabled(MutationCheck) {
		t.Fatalf("DefaultChecks() = %03b, want mixed and mutation", checks.Value())
	}

	checks.Set(PanicCheck, true)
	checks.Disable(MixedCheck)

	if got, want := checks.Value(), PanicCheck|MutationCheck; got != want {
		t.Errorf("Value() = %03b, want %03b", got, want)
	}

	checks.Set(PanicCheck, false)
	checks.Set(MutationCheck, false)

	if !checks.Empty() {
		t.Errorf("Empty() = false after disabling all checks, value %03b", checks.Value())
	}

	if !DefaultBehavior().Empty() {
		t.Error("DefaultBehavior() has flags enabled")
	}
}
