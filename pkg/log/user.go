package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about edits
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎨 ChangeType represents what happened to a file
type ChangeType int

const (
	ChangeApplied ChangeType = iota
	ChangePreviewed
	ChangeUnchanged
	ChangeLocated
	ChangeFailed
)

// 🖼️ Change represents a user-visible change to a file
type Change struct {
	Type        ChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerWithWriter(ctx, os.Stdout)
}

// 🎯 NewUserLoggerWithWriter creates a user logger writing to w
func NewUserLoggerWithWriter(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: w,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📝 LogChange logs a file change with appropriate emoji and formatting
func (u *UserLogger) LogChange(change Change) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case ChangeApplied:
		action = "Edited"
		printer = u.printer(pterm.Success, "✨")
	case ChangePreviewed:
		action = "Would edit"
		printer = u.printer(pterm.Info, "🔍")
	case ChangeUnchanged:
		action = "Unchanged"
		printer = u.printer(pterm.Info, "⏭️")
	case ChangeLocated:
		action = "Located"
		printer = u.printer(pterm.Info, "📍")
	case ChangeFailed:
		action = "Failed"
		printer = u.printer(pterm.Error, "❌")
	default:
		action = "Changed"
		printer = u.printer(pterm.Info, "•")
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	if change.Error != nil {
		pterm.Error.WithWriter(u.out).Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
		return
	}
	u.log.Info().Msg(msg)
}

// 📊 LogSummary logs a one-line description of a finished run
func (u *UserLogger) LogSummary(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
	default:
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}
