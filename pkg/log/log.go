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

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 12 // Width for status text
	countWidth  = 10 // Width for the edit counts
)

// 📊 Edit statuses
const (
	StatusModified  = "modified"
	StatusUnchanged = "unchanged"
	StatusDryRun    = "dry-run"
	StatusFailed    = "failed"
)

// 🎯 FileEdit represents the outcome of editing one file
type FileEdit struct {
	Path      string // File path relative to the plan root
	Status    string // One of the Status* constants
	Edits     int    // Number of edits applied
	Skipped   int    // Number of malformed edits skipped
	LineDelta int    // Change in line count
	Err       error  // Failure, when Status is StatusFailed
}

// 📦 RunOperation represents one plan run for logging
type RunOperation struct {
	ID     string // Run id
	Plan   string // Plan file
	Root   string // Root directory edits are resolved against
	DryRun bool   // Whether files are left untouched
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	edits      []FileEdit
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🏭 NewWithZerolog creates a logger that mirrors to an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
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

// 📝 formatFileEdit formats a file edit for display
func (l *Logger) formatFileEdit(e FileEdit) string {
	var symbol rune
	var symbolColor color.Attribute
	switch e.Status {
	case StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case StatusModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case StatusDryRun:
		symbol = '?'
		symbolColor = color.FgMagenta
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	counts := fmt.Sprintf("%d edits", e.Edits)
	if e.Skipped > 0 {
		counts = fmt.Sprintf("%d edits, %d skipped", e.Edits, e.Skipped)
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, e.Path),
		fmt.Sprintf("%-*s", statusWidth, e.Status),
		fmt.Sprintf("%-*s", countWidth, counts),
		formatDelta(e.LineDelta))
}

func formatDelta(delta int) string {
	switch {
	case delta > 0:
		return color.GreenString("%+d lines", delta)
	case delta < 0:
		return color.RedString("%+d lines", delta)
	default:
		return "±0 lines"
	}
}

// 📝 LogFileEdit logs the outcome of editing a file
func (l *Logger) LogFileEdit(ctx context.Context, e FileEdit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.edits = append(l.edits, e)

	fmt.Fprintln(l.console, l.formatFileEdit(e))

	ev := l.zlog.Info()
	if e.Err != nil {
		ev = l.zlog.Error().Err(e.Err)
	}
	ev.Str("file", e.Path).
		Str("status", e.Status).
		Int("edits", e.Edits).
		Int("skipped", e.Skipped).
		Int("line_delta", e.LineDelta).
		Msg("file edit")
}

// 📝 StartRun starts a new plan run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.edits = nil

	mode := "applying"
	if op.DryRun {
		mode = "previewing"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", mode, color.New(color.FgCyan).Sprint(op.Plan))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Root),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.ID))

	l.zlog.Info().
		Str("run_id", op.ID).
		Str("plan", op.Plan).
		Str("root", op.Root).
		Bool("dry_run", op.DryRun).
		Msg("starting run")
}

// 📝 EndRun ends the current run and returns the logged edits
func (l *Logger) EndRun(ctx context.Context) []FileEdit {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return nil
	}

	modified, failed := 0, 0
	for _, e := range l.edits {
		switch e.Status {
		case StatusModified, StatusDryRun:
			modified++
		case StatusFailed:
			failed++
		}
	}

	l.zlog.Info().
		Str("run_id", l.currentRun.ID).
		Int("files", len(l.edits)).
		Int("modified", modified).
		Int("failed", failed).
		Msg("run complete")

	edits := l.edits
	l.currentRun = nil
	l.edits = nil
	return edits
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("anchoredit")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
