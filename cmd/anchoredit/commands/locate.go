package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/cmd/anchoredit/opts"
	"github.com/walteh/anchoredit/pkg/operation"
)

// NewLocateCmd creates a new locate command
func NewLocateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show where each edit would land",
		Long: `Locate resolves every edit in the plan without writing anything.
Each edit prints as file:first-last (1-based, inclusive) followed by its
label, or the reason it could not be placed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.NewLocateOperation(ctx, operation.Options{
				Plan:   opts.Plan,
				Logger: opts.Logger,
				Out:    cmd.OutOrStdout(),
			})
			if err != nil {
				return errors.Errorf("creating locate operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return err
			}

			opts.UserLogger.LogValidation(true, "every edit has a unique location", nil)
			return nil
		},
	}

	return cmd
}
