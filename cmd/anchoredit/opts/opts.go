package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/config"
	"github.com/walteh/anchoredit/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	Out io.Writer
	Err io.Writer

	Plan       *config.Plan
	Logger     *log.Logger
	UserLogger *log.UserLogger
}

// Init loads the plan and builds the loggers once flags are parsed
func (o *RootOpts) Init(ctx context.Context) error {
	o.UserLogger = log.NewUserLoggerWithWriter(ctx, o.Err)
	o.Logger = log.NewWithZerolog(o.Out, *zerolog.Ctx(ctx))

	plan, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading plan: %w", err)
	}
	o.Plan = plan

	return nil
}
