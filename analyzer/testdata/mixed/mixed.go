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

package mixed

import (
	"errors"
	"os"
	"slices"
)

var ErrEmpty = errors.New("empty")

type Store struct {
	closed bool
	keys   []string
}

func (s *Store) Add(key string) error { // want "Function Store.Add both returns errors and panics"
	if key == "" {
		return ErrEmpty
	}

	if s.closed {
		panic("store closed")
	}

	s.keys = append(s.keys, key)

	return nil
}

func (s *Store) Close() error {
	s.closed = true

	return nil
}

func (s *Store) ensureOpen() {
	if s.closed {
		panic("store closed")
	}
}

func (s *Store) Remove(key string) error { // want "Function Store.Remove both returns errors and panics"
	s.ensureOpen()

	if key == "" {
		return ErrEmpty
	}

	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })

	return nil
}

func Exit(code int) error {
	if code != 0 {
		os.Exit(code)
		panic("unreachable")
	}

	return nil
}

func Recovered() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("recovered")
		}
	}()

	panic("boom")
}

func normalize(names []string) {
	slices.Sort(names) // want "Function normalize mutates parameter 'names' via slices.Sort"
}

func count(seen map[string]struct{}, names []string) int {
	n := 0

	for _, name := range names {
		if _, ok := seen[name]; !ok {
			n++
		}
	}

	return n
}

func register(seen map[string]bool, name string) {
	seen[name] = true // want "Function register mutates parameter 'seen' via \\[\\]="
}

func forget(seen map[string]bool, names ...string) {
	alias := seen
	for _, name := range names {
		delete(alias, name) // want "Function forget mutates parameter 'seen' via delete"
	}
}

func rebound(names []string) {
	names = append([]string(nil), names...)
	names[0] = "first"
}

//nolint:methodguard
func ignored(names []string) {
	names[0] = "ignored"
}

func suppressed(names []string) {
	names[0] = "suppressed" //nolint:methodguard
}
