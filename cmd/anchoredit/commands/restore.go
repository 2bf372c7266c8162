package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/cmd/anchoredit/opts"
	"github.com/walteh/anchoredit/pkg/operation"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(opts *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore files from the backups of a previous apply",
		Long: `Restore puts back the .bak copy of every matched file that has one.
Backups are only written when the plan sets backup: true. An existing
backup is never overwritten, so restore returns each file to how it was
before the first backed-up apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.NewRestoreOperation(ctx, operation.Options{
				Plan:   opts.Plan,
				Logger: opts.Logger,
				DryRun: dryRun,
				Out:    cmd.OutOrStdout(),
			})
			if err != nil {
				return errors.Errorf("creating restore operation: %w", err)
			}

			return op.Execute(ctx)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files that would be restored")

	return cmd
}
