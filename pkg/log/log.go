// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 FileOperation is the outcome of rewriting one file
type FileOperation struct {
	Path         string // Path relative to the run root
	Replacements int    // Number of replacements made
	IsModified   bool   // Whether the content changed
	Err          error  // Set when the file could not be rewritten
}

// 🎯 Logger prints run results to the console and mirrors them to zerolog.
// Each call writes whole lines, so it is safe to share between workers.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileOperation reports a rewritten or failed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if op.Err != nil {
		fmt.Fprintf(l.console, "%s %s: %v\n", color.New(color.FgRed).Sprint("Error fixing"), op.Path, op.Err)
		l.zlog.Debug().Err(op.Err).Str("file", op.Path).Msg("file operation failed")
		return
	}

	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgGreen).Sprint("Fixed:"), op.Path)
	l.zlog.Debug().
		Str("file", op.Path).
		Bool("is_modified", op.IsModified).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 Summary prints the run tally preceded by a blank line
func (l *Logger) Summary(fixed, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\nFixed %d out of %d files.\n", fixed, total)
	l.zlog.Debug().Int("fixed", fixed).Int("total", total).Msg("run complete")
}

// 📝 ConfigPatched reports a rewritten configuration file as "Fixed <label>: <path>"
func (l *Logger) ConfigPatched(label, path string, replacements int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgGreen).Sprintf("Fixed %s:", label), path)
	l.zlog.Debug().Str("file", path).Int("replacements", replacements).Msg("config patched")
}

// 📝 ConfigSkipped records that no configuration file was present.
// Nothing is printed to the console.
func (l *Logger) ConfigSkipped(path string) {
	l.zlog.Debug().Str("file", path).Msg("config not found, skipping")
}

// 📝 ConfigFailed reports a configuration file that could not be patched
func (l *Logger) ConfigFailed(label string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s: %v\n", color.New(color.FgRed).Sprintf("Error fixing %s", label), err)
	l.zlog.Debug().Err(err).Msg("config patch failed")
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}
