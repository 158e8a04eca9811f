/*
 * Copyright 2026 The Normalize Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"log"
	"os"
)

// Logger is the logging interface used throughout the normalizer. It is
// intentionally narrow (a single Printf-style method) so that adapting any
// existing structured logger — zap, logrus, slog — is a one-line shim.
type Logger interface {
	Printf(format string, v ...any)
}

// stdLogger adapts the standard library's *log.Logger to the Logger
// interface.
type stdLogger struct {
	*log.Logger
}

// DefaultLogger returns the Logger used when no logger Option is supplied:
// a standard library logger writing to stderr with a "normalize: " prefix.
func DefaultLogger() Logger {
	return &stdLogger{Logger: log.New(os.Stderr, "normalize: ", log.LstdFlags)}
}

// NopLogger returns a Logger that discards every message, useful in tests
// that want to silence normal operational logging.
func NopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
