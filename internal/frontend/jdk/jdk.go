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

// Package jdk provides the type knowledge of the Java platform needed by the front-ends.
package jdk

import (
	"maps"

	"fillmore-labs.com/methodguard/internal/tree"
)

// Hierarchy returns the Throwable hierarchy of the Java platform.
// The result is a fresh map that callers may extend.
func Hierarchy() tree.Hierarchy {
	return maps.Clone(_throwables)
}

var _throwables = tree.Hierarchy{
	"Object":    "",
	"Throwable": "Object",

	"Exception": "Throwable",
	"Error":     "Throwable",

	// java.lang
	"RuntimeException":                "Exception",
	"ArithmeticException":             "RuntimeException",
	"ArrayStoreException":             "RuntimeException",
	"ClassCastException":              "RuntimeException",
	"IllegalArgumentException":        "RuntimeException",
	"IllegalCallerException":          "RuntimeException",
	"IllegalMonitorStateException":    "RuntimeException",
	"IllegalStateException":           "RuntimeException",
	"IndexOutOfBoundsException":       "RuntimeException",
	"ArrayIndexOutOfBoundsException":  "IndexOutOfBoundsException",
	"StringIndexOutOfBoundsException": "IndexOutOfBoundsException",
	"NegativeArraySizeException":      "RuntimeException",
	"NullPointerException":            "RuntimeException",
	"NumberFormatException":           "IllegalArgumentException",
	"SecurityException":               "RuntimeException",
	"UnsupportedOperationException":   "RuntimeException",
	"ClassNotFoundException":          "ReflectiveOperationException",
	"CloneNotSupportedException":      "Exception",
	"IllegalAccessException":          "ReflectiveOperationException",
	"InstantiationException":          "ReflectiveOperationException",
	"InterruptedException":            "Exception",
	"NoSuchFieldException":            "ReflectiveOperationException",
	"NoSuchMethodException":           "ReflectiveOperationException",
	"ReflectiveOperationException":    "Exception",

	"AssertionError":              "Error",
	"LinkageError":                "Error",
	"NoClassDefFoundError":        "LinkageError",
	"ExceptionInInitializerError": "LinkageError",
	"VirtualMachineError":         "Error",
	"OutOfMemoryError":            "VirtualMachineError",
	"StackOverflowError":          "VirtualMachineError",
	"InternalError":               "VirtualMachineError",

	// java.io, java.nio
	"IOException":                  "Exception",
	"EOFException":                 "IOException",
	"FileNotFoundException":        "IOException",
	"InterruptedIOException":       "IOException",
	"UnsupportedEncodingException": "IOException",
	"UncheckedIOException":         "RuntimeException",
	"NoSuchFileException":          "FileSystemException",
	"FileSystemException":          "IOException",
	"AccessDeniedException":        "FileSystemException",

	// java.net
	"MalformedURLException":  "IOException",
	"SocketException":        "IOException",
	"SocketTimeoutException": "InterruptedIOException",
	"UnknownHostException":   "IOException",
	"URISyntaxException":     "Exception",

	// java.util, java.util.concurrent
	"ConcurrentModificationException": "RuntimeException",
	"NoSuchElementException":          "RuntimeException",
	"InputMismatchException":          "NoSuchElementException",
	"EmptyStackException":             "RuntimeException",
	"MissingResourceException":        "RuntimeException",
	"ExecutionException":              "Exception",
	"TimeoutException":                "Exception",
	"CancellationException":           "IllegalStateException",
	"CompletionException":             "RuntimeException",
	"RejectedExecutionException":      "RuntimeException",

	// java.text, java.time, java.sql
	"ParseException":         "Exception",
	"DateTimeException":      "RuntimeException",
	"DateTimeParseException": "DateTimeException",
	"SQLException":           "Exception",
}

// Capability returns the collection capability of a Java type name.
// Generic arguments and package qualification are ignored.
func Capability(typ string) tree.Capability {
	return _collections[tree.SimpleName(typ)]
}

var _collections = map[string]tree.Capability{
	"Collection":           tree.MutableSequence,
	"List":                 tree.MutableSequence,
	"ArrayList":            tree.MutableSequence,
	"LinkedList":           tree.MutableSequence,
	"Vector":               tree.MutableSequence,
	"Stack":                tree.MutableSequence,
	"Deque":                tree.MutableSequence,
	"ArrayDeque":           tree.MutableSequence,
	"Queue":                tree.MutableSequence,
	"PriorityQueue":        tree.MutableSequence,
	"CopyOnWriteArrayList": tree.MutableSequence,
	"Set":                  tree.MutableSet,
	"HashSet":              tree.MutableSet,
	"LinkedHashSet":        tree.MutableSet,
	"SortedSet":            tree.MutableSet,
	"NavigableSet":         tree.MutableSet,
	"TreeSet":              tree.MutableSet,
	"EnumSet":              tree.MutableSet,
	"Map":                  tree.MutableMapping,
	"HashMap":              tree.MutableMapping,
	"LinkedHashMap":        tree.MutableMapping,
	"SortedMap":            tree.MutableMapping,
	"NavigableMap":         tree.MutableMapping,
	"TreeMap":              tree.MutableMapping,
	"EnumMap":              tree.MutableMapping,
	"Hashtable":            tree.MutableMapping,
	"ConcurrentMap":        tree.MutableMapping,
	"ConcurrentHashMap":    tree.MutableMapping,
	"MutableList":          tree.MutableSequence,
	"MutableSet":           tree.MutableSet,
	"MutableMap":           tree.MutableMapping,
	"MutableCollection":    tree.MutableSequence,
}
