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

package jdk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "fillmore-labs.com/methodguard/internal/frontend/jdk"
	"fillmore-labs.com/methodguard/internal/tree"
)

func TestHierarchy(t *testing.T) {
	t.Parallel()

	h := Hierarchy()

	ancestors, ok := h.Ancestors("java.net.SocketTimeoutException")
	assert.True(t, ok)
	assert.Equal(t, []string{"InterruptedIOException", "IOException", "Exception", "Throwable", "Object"}, ancestors)

	ancestors, ok = h.Ancestors("IllegalAccessException")
	assert.True(t, ok)
	assert.NotContains(t, ancestors, "RuntimeException")

	h["MyException"] = "RuntimeException"

	_, ok = Hierarchy().Ancestors("MyException")
	assert.False(t, ok, "Hierarchy must return a copy")
}

func TestCapability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  string
		want tree.Capability
	}{
		{"List<Object>", tree.MutableSequence},
		{"java.util.ArrayList<String>", tree.MutableSequence},
		{"Set<String>", tree.MutableSet},
		{"Map<String, Integer>", tree.MutableMapping},
		{"String", tree.Other},
		{"int", tree.Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Capability(tt.typ), tt.typ)
	}
}
