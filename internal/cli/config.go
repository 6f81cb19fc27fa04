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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"fillmore-labs.com/methodguard/internal/config"
	"fillmore-labs.com/methodguard/internal/tree"
)

const (
	configBaseName   = "methodguard"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	configFlagName    = "config"
	logFileFlagName   = "log-file"
	verboseFlagName   = "verbose"
	telemetryFlagName = "telemetry-stdout"
	formatFlagName    = "format"
	parallelFlagName  = "parallel"
	timeoutFlagName   = "unit-timeout"
	failFlagName      = "fail-on-findings"

	formatKey         = "analyze.format"
	parallelKey       = "analyze.parallel"
	unitTimeoutKey    = "analyze.unit_timeout"
	failOnFindingsKey = "analyze.fail_on_findings"
	noReturnKey       = "analyze.no_return"
	rulesKey          = "rules"

	telemetryStdoutKey = "telemetry.stdout"

	envPrefix = "METHODGUARD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultFormat      = "text"
	defaultParallel    = 0
	defaultUnitTimeout = 30 * time.Second

	defaultLogLevel      = "warn"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(formatKey, defaultFormat)
	v.SetDefault(parallelKey, defaultParallel)
	v.SetDefault(unitTimeoutKey, defaultUnitTimeout)
	v.SetDefault(failOnFindingsKey, false)
	v.SetDefault(telemetryStdoutKey, false)

	v.SetDefault(logFilenameKey, "")
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, false)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return v
}

// readConfig loads path, or the default config file when path is empty.
// A missing default config file is not an error.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("read config: %w", err)
}

// rules builds the effective analysis rules. Fields absent from the
// configuration keep their defaults.
func rules(v *viper.Viper) (*config.Rules, error) {
	var f config.RulesFile
	if v.IsSet(rulesKey) {
		if err := v.UnmarshalKey(rulesKey, &f); err != nil {
			return nil, fmt.Errorf("decode %s: %w", rulesKey, err)
		}
	}

	def := config.DefaultRulesFile()
	if len(f.UncheckedExceptionFamily) == 0 {
		f.UncheckedExceptionFamily = def.UncheckedExceptionFamily
	}

	if len(f.MutatingOperations) == 0 {
		f.MutatingOperations = def.MutatingOperations
	}

	r, err := config.NewRules(f)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", rulesKey, err)
	}

	return r, nil
}

// noReturn lists configured functions that never return.
func noReturn(v *viper.Viper) ([]tree.FuncName, error) {
	var names []tree.FuncName
	if err := v.UnmarshalKey(noReturnKey, &names); err != nil {
		return nil, fmt.Errorf("decode %s: %w", noReturnKey, err)
	}

	return names, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger sets the default slog logger.
//
// Logs go to stderr unless a log file is configured, which is rotated by size.
func (a *app) configureLogger(stderr io.Writer) {
	level := parseSlogLevel(a.v.GetString(logLevelKey), slog.LevelWarn)
	if a.v.GetBool(logVerboseKey) {
		level = slog.LevelDebug
	}

	w := stderr
	if path := strings.TrimSpace(a.v.GetString(logFilenameKey)); path != "" {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    a.v.GetInt(logMaxSizeKey),
			MaxBackups: a.v.GetInt(logMaxBackupsKey),
			MaxAge:     a.v.GetInt(logMaxAgeKey),
			Compress:   a.v.GetBool(logCompressKey),
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	})

	slog.SetDefault(slog.New(handler))
}
