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

package cantreturn

import (
	"log"
	"os"
	"runtime"
	"syscall"
	"testing"
)

func exits(code int) {
	if code != 0 {
		os.Exit(code) // want "os.Exit can't return"
	}

	syscall.Exit(0) // want "syscall.Exit can't return"
}

func fatal(l *log.Logger) {
	log.Fatal("boom") // want "log.Fatal can't return"

	l.Fatalf("%s", "boom") // want "log.Logger\\).Fatalf can't return"
}

func panics() {
	panic("boom") // want "Panics"
}

func goexit() {
	runtime.Goexit() // want "runtime.Goexit can't return"
}

func failNow(tb testing.TB) {
	tb.FailNow() // want "testing.TB\\).FailNow can't return"
}

func returns() {
	println("hello") // OK
}

func shadowed() {
	panic := log.Println

	panic("hello") // OK
}
