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

package panics

import "fmt"

func mustPositive(n int) int { // want "Function mustPositive can panic"
	if n < 0 {
		panic(fmt.Sprintf("negative: %d", n))
	}

	return n
}

func double(n int) int { // want "Function double can panic"
	return 2 * mustPositive(n)
}

func safe(n int) (r int) {
	defer func() {
		if recover() != nil {
			r = 0
		}
	}()

	return mustPositive(n)
}

func parse(s string) (int, error) { // want "Function parse can panic"
	if s == "" {
		return 0, fmt.Errorf("empty")
	}

	panic("not implemented")
}

func mutate(xs []int) {
	xs[0] = 1
}
