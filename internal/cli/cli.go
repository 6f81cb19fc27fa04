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

// Package cli provides the methodguard command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const rootLongDescription = `methodguard classifies the methods of Java, Go-lowered or document-described
units by the exceptions they can raise and reports which collection
parameters they mutate.

Supported inputs:
  - *.java            Java sources
  - *.yaml, *.json    syntax tree documents
  - directories       scanned recursively for the above`

// app carries the state shared by all commands of one root command.
type app struct {
	v        *viper.Viper
	shutdown func(context.Context) error
}

func newApp() *app { return &app{v: newViper()} }

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "methodguard",
		Short:         "Method exception and mutation classifier",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	a.configureRootFlags(cmd)

	cmd.AddCommand(
		a.newAnalyzeCmd(),
		a.newRulesCmd(),
		newVersionCmd(),
	)

	return cmd
}

func (a *app) configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String(configFlagName, "", "config file (default ./"+configFileName+")")

	flags.String(logFileFlagName, a.v.GetString(logFilenameKey), "log to a rotating file instead of stderr")
	a.bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolP(verboseFlagName, "v", a.v.GetBool(logVerboseKey), "enable debug logging")
	a.bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.Bool(telemetryFlagName, a.v.GetBool(telemetryStdoutKey), "export traces and metrics to stderr")
	a.bindFlagToConfig(flags.Lookup(telemetryFlagName), telemetryStdoutKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config and environment values feed the flag.
func (a *app) bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(a.v.BindPFlag(key, flag))
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString(configFlagName)
	if err := readConfig(a.v, path); err != nil {
		return err
	}

	a.configureLogger(cmd.ErrOrStderr())

	if !a.v.GetBool(telemetryStdoutKey) {
		return nil
	}

	shutdown, err := initTelemetry(cmd.Context(), cmd.ErrOrStderr(), version())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	a.shutdown = shutdown

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}

	shutdown := a.shutdown
	a.shutdown = nil

	return shutdown(ctx)
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	a := newApp()
	cmd := a.rootCmd()

	ctx := context.Background()

	err := cmd.ExecuteContext(ctx)
	if serr := a.teardown(ctx); serr != nil {
		cmd.PrintErrln("Error:", serr)
	}

	if err == nil {
		return
	}

	cmd.PrintErrln("Error:", err)

	if errors.Is(err, errFindings) {
		os.Exit(2)
	}

	os.Exit(1)
}
