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
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/tree"
	"fillmore-labs.com/methodguard/internal/verdict"
)

func TestUnitDiscarded(t *testing.T) {
	t.Parallel()

	a, err := verdict.New(config.DefaultRules())
	require.NoError(t, err)

	r := New(a, WithLogger(slog.New(slog.DiscardHandler)))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	u := &tree.Unit{
		Name:     "Slow",
		File:     "Slow.java",
		Resolver: tree.Hierarchy{},
		Methods:  []*tree.Method{{Sig: tree.Signature{Name: "m"}, Body: &tree.BlockStmt{}}},
	}

	res := r.unit(ctx, u)

	assert.Equal(t, "Slow", res.Unit)
	require.ErrorIs(t, res.Err, context.Canceled)
	assert.Nil(t, res.Verdicts)
}
