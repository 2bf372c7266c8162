package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/walteh/anchoredit/cmd/anchoredit/opts"
	"github.com/walteh/anchoredit/pkg/log"
)

func main() {
	o := &opts.RootOpts{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	if err := newRootCmd(o).ExecuteContext(ctx); err != nil {
		userLogger := o.UserLogger
		if userLogger == nil {
			userLogger = log.NewUserLoggerWithWriter(ctx, os.Stderr)
		}
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
