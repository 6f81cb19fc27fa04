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

package tracker_test

import (
	"go/token"
	"go/types"
	"testing"

	. "fillmore-labs.com/methodguard/internal/reachability/tracker"
)

func TestFuncNameOf(t *testing.T) {
	t.Parallel()

	pkg := types.NewPackage("example.com/store", "store")

	// NewInterfaceType sets the receiver of its methods' signatures, so each function gets its own.
	noargs := func() *types.Signature { return types.NewSignatureType(nil, nil, nil, nil, nil, false) }

	store := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Store", nil), types.NewStruct(nil, nil), nil)
	ref := types.NewAlias(types.NewTypeName(token.NoPos, pkg, "Ref", nil), types.NewPointer(store))
	invalid := types.NewStruct(nil, nil)

	method := func(recv types.Type) *types.Func {
		sig := types.NewSignatureType(types.NewParam(token.NoPos, pkg, "s", recv), nil, nil, nil, nil, false)

		return types.NewFunc(token.NoPos, pkg, "Add", sig)
	}

	tests := [...]struct {
		name string
		fun  *types.Func
		want FuncName
	}{
		{"Function", types.NewFunc(token.NoPos, pkg, "Open", noargs()), FuncName{Path: "example.com/store", Name: "Open"}},
		{"ValueReceiver", method(store), FuncName{Path: "example.com/store", Receiver: "Store", Name: "Add"}},
		{"PointerReceiver", method(types.NewPointer(store)), FuncName{Path: "example.com/store", Receiver: "Store", Name: "Add"}},
		{"AliasReceiver", method(ref), FuncName{Path: "example.com/store", Receiver: "Store", Name: "Add"}},
		{"NoPackage", types.NewFunc(token.NoPos, nil, "Open", noargs()), FuncName{Name: "Open"}},
		{"Universe", types.Universe.Lookup("error").Type().Underlying().(*types.Interface).Method(0), FuncName{Receiver: "error", Name: "Error"}},
		{"Interface", types.NewInterfaceType([]*types.Func{types.NewFunc(token.NoPos, pkg, "Close", noargs())}, nil).Complete().Method(0), FuncName{Receiver: "interface", Name: "Close"}},
		{"Invalid", method(invalid), FuncName{Receiver: "<invalid>", Name: "Add"}},
		{"InvalidPointer", method(types.NewPointer(invalid)), FuncName{Receiver: "<invalid>", Name: "Add"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FuncNameOf(tt.fun); got != tt.want {
				t.Errorf("FuncNameOf() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
