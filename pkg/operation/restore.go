package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/log"
	"github.com/walteh/anchoredit/pkg/status"
)

// ⏪ RestoreOperation puts back the .bak copies left by a backed-up apply
type RestoreOperation struct {
	*BaseOperation
}

// ⏪ NewRestoreOperation creates a new restore operation
func NewRestoreOperation(ctx context.Context, opts Options) (*RestoreOperation, error) {
	base, err := NewBaseOperation(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &RestoreOperation{BaseOperation: base}, nil
}

// 🏃 Execute restores every resolved file that has a backup
func (op *RestoreOperation) Execute(ctx context.Context) error {
	jobs, err := op.jobs(ctx)
	if err != nil {
		return err
	}

	tasks := make([]Task, 0, len(jobs))
	for _, job := range jobs {
		tasks = append(tasks, func(ctx context.Context) error {
			return op.restoreFile(ctx, job.Path)
		})
	}

	if err := NewRunner(zerolog.Ctx(ctx), op.Concurrency).Run(ctx, tasks...); err != nil {
		return errors.Errorf("restoring files: %w", err)
	}
	return nil
}

// 🔄 restoreFile restores a single file, skipping files without a backup
func (op *RestoreOperation) restoreFile(ctx context.Context, path string) error {
	ok, err := op.Store.FileExists(ctx, path+".bak")
	if err != nil {
		return errors.Errorf("checking backup for %s: %w", path, err)
	}
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("file", path).Msg("no backup to restore")
		return nil
	}

	if op.DryRun {
		op.Logger.Infof("would restore %s", path)
		return nil
	}

	if err := op.Store.RestoreFile(ctx, path); err != nil {
		op.Store.TrackFile(ctx, path, status.FileInfo{Status: status.StatusFailed, Error: err})
		return errors.Errorf("restoring %s: %w", path, err)
	}

	op.Store.TrackFile(ctx, path, status.FileInfo{Status: status.StatusRestored})
	op.Logger.LogFileEdit(ctx, log.FileEdit{Path: path, Status: status.StatusRestored.String()})
	return nil
}
