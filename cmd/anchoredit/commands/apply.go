package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/cmd/anchoredit/opts"
	"github.com/walteh/anchoredit/pkg/log"
	"github.com/walteh/anchoredit/pkg/operation"
	"github.com/walteh/anchoredit/pkg/status"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		dryRun      bool
		diff        bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the plan's edits to matching files",
		Long: `Apply edits every file matched by the plan.
It will:
1. Resolve each file set's glob under the plan root
2. Locate every edit by its target and context lines
3. Fail a file without touching it if any edit is missing or ambiguous
4. Back up (when configured) and write each changed file atomically`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.NewApplyOperation(ctx, operation.Options{
				Plan:        opts.Plan,
				Logger:      opts.Logger,
				DryRun:      dryRun,
				Diff:        diff,
				Color:       !color.NoColor,
				Concurrency: concurrency,
				Out:         cmd.OutOrStdout(),
			})
			if err != nil {
				return errors.Errorf("creating apply operation: %w", err)
			}

			runErr := op.Execute(ctx)

			files, err := op.Store.ListFiles(ctx)
			if err == nil {
				opts.UserLogger.LogSummary(status.NewDefaultFileFormatter().FormatSummary(files))
			}

			if runErr != nil {
				opts.UserLogger.LogChange(log.Change{Type: log.ChangeFailed, Path: opts.Plan.Location(), Error: runErr})
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute edits without writing files")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff for each changed file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "files to edit at once (overrides the plan)")

	return cmd
}
