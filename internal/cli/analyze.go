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

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"fillmore-labs.com/methodguard/internal/batch"
	"fillmore-labs.com/methodguard/internal/exceptions"
	"fillmore-labs.com/methodguard/internal/frontend/document"
	"fillmore-labs.com/methodguard/internal/frontend/java"
	"fillmore-labs.com/methodguard/internal/output"
	"fillmore-labs.com/methodguard/internal/tree"
	"fillmore-labs.com/methodguard/internal/verdict"
)

const analyzeLongDescription = `Analyze the given files and directories and print one verdict per method.

Units whose analysis fails or times out are reported as discarded and the
run continues. A unit without type information aborts the run.`

var (
	// ErrUnsupportedInput is returned for files of an unknown kind.
	ErrUnsupportedInput = errors.New("unsupported input")

	errFindings = errors.New("findings reported")
)

func (a *app) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Classify methods by exceptions and parameter mutation",
		Long:  analyzeLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.analyze(cmd, args)
		},
	}

	flags := cmd.Flags()

	flags.StringP(formatFlagName, "f", a.v.GetString(formatKey), "output format: json, yaml, table or text")
	a.bindFlagToConfig(flags.Lookup(formatFlagName), formatKey)

	flags.IntP(parallelFlagName, "p", a.v.GetInt(parallelKey), "methods analyzed concurrently per unit (0 = GOMAXPROCS)")
	a.bindFlagToConfig(flags.Lookup(parallelFlagName), parallelKey)

	flags.Duration(timeoutFlagName, a.v.GetDuration(unitTimeoutKey), "discard units taking longer (0 = no limit)")
	a.bindFlagToConfig(flags.Lookup(timeoutFlagName), unitTimeoutKey)

	flags.Bool(failFlagName, a.v.GetBool(failOnFindingsKey), "exit with status 2 when a method throws or mutates")
	a.bindFlagToConfig(flags.Lookup(failFlagName), failOnFindingsKey)

	return cmd
}

func (a *app) analyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := output.ParseFormat(a.v.GetString(formatKey))
	if err != nil {
		return err
	}

	r, err := rules(a.v)
	if err != nil {
		return err
	}

	names, err := noReturn(a.v)
	if err != nil {
		return err
	}

	opts := verdict.Options{
		verdict.WithParallelism(a.v.GetInt(parallelKey)),
		verdict.WithNoReturn(names...),
	}

	logger := slog.Default()
	logger.LogAttrs(ctx, slog.LevelDebug, "Starting analysis", slog.Any("paths", args), opts.LogAttr())

	aggregator, err := verdict.New(r, opts)
	if err != nil {
		return err
	}

	units, err := loadUnits(ctx, args)
	if err != nil {
		return err
	}

	runner := batch.New(aggregator, batch.WithUnitTimeout(a.v.GetDuration(unitTimeoutKey)), batch.WithLogger(logger))

	results, runErr := runner.Run(ctx, units)
	if results == nil && runErr != nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	if err := output.Write(out, format, results, output.Options{Color: isTerminal(out)}); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if runErr != nil {
		return runErr
	}

	if a.v.GetBool(failOnFindingsKey) && hasFindings(results) {
		return errFindings
	}

	return nil
}

// loadUnits parses all supported files under paths, in argument order.
// Directories are walked in lexical order.
func loadUnits(ctx context.Context, paths []string) ([]*tree.Unit, error) {
	var units []*tree.Unit

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			us, err := loadFile(ctx, path)
			if err != nil {
				return nil, err
			}

			units = append(units, us...)

			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}

				return nil
			}

			if !supported(p) {
				return nil
			}

			us, err := loadFile(ctx, p)
			if err != nil {
				return err
			}

			units = append(units, us...)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return units, nil
}

var (
	javaExts     = []string{".java"}
	documentExts = []string{".yaml", ".yml", ".json"}
)

func supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(javaExts, ext) || slices.Contains(documentExts, ext)
}

func loadFile(ctx context.Context, path string) ([]*tree.Unit, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case slices.Contains(javaExts, ext):
		return java.ParseFile(ctx, path)

	case slices.Contains(documentExts, ext):
		return document.ParseFile(path)

	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedInput)
	}
}

func hasFindings(results []batch.UnitResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}

		for _, v := range r.Verdicts {
			if v.Status != verdict.Analyzed || v.Kind != exceptions.None || len(v.Mutated()) > 0 {
				return true
			}
		}
	}

	return false
}

type fdWriter interface{ Fd() uintptr }

func isTerminal(w any) bool {
	f, ok := w.(fdWriter)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
