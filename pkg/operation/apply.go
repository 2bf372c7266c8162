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

package operation

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/log"
	"github.com/walteh/anchoredit/pkg/status"
)

// ✏️ ApplyOperation applies every file set's edits to the files it matches
type ApplyOperation struct {
	*BaseOperation

	runID string
}

// ✏️ NewApplyOperation creates a new apply operation
func NewApplyOperation(ctx context.Context, opts Options) (*ApplyOperation, error) {
	base, err := NewBaseOperation(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ApplyOperation{
		BaseOperation: base,
		runID:         uuid.New().String(),
	}, nil
}

// 🆔 RunID identifies this run in logs
func (op *ApplyOperation) RunID() string {
	return op.runID
}

// 🏃 Execute runs the apply operation
func (op *ApplyOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("run_id", op.runID).Logger()
	ctx = logger.WithContext(ctx)

	jobs, err := op.jobs(ctx)
	if err != nil {
		return err
	}

	op.Logger.StartRun(ctx, log.RunOperation{
		ID:     op.runID,
		Plan:   op.Plan.Location(),
		Root:   op.Plan.Root,
		DryRun: op.DryRun,
	})

	tasks := make([]Task, 0, len(jobs))
	for _, job := range jobs {
		tasks = append(tasks, func(ctx context.Context) error {
			return op.applyFile(ctx, job)
		})
	}

	runErr := NewRunner(&logger, op.Concurrency).Run(ctx, tasks...)
	op.Logger.EndRun(ctx)

	if runErr != nil {
		return errors.Errorf("applying plan: %w", runErr)
	}
	return nil
}

// 📄 applyFile edits one file. Nothing is written unless every edit
// from every matching file set succeeds.
func (op *ApplyOperation) applyFile(ctx context.Context, job Job) error {
	logger := zerolog.Ctx(ctx).With().Str("file", job.Path).Logger()
	ctx = logger.WithContext(ctx)

	original, err := op.Store.ReadFile(ctx, job.Path)
	if err != nil {
		return op.fail(ctx, job.Path, errors.Errorf("reading %s: %w", job.Path, err))
	}

	current := original
	edits, skipped, delta := 0, 0, 0
	for _, set := range job.Sets {
		result, err := op.Replacer.ReplaceText(ctx, bytes.NewReader(current), set.Requests())
		if err != nil {
			if set.Name != "" {
				err = errors.Errorf("editing %s (file set %s): %w", job.Path, set.Name, err)
			} else {
				err = errors.Errorf("editing %s: %w", job.Path, err)
			}
			return op.fail(ctx, job.Path, err)
		}
		current = result.ModifiedContent
		edits += result.ReplacementCount
		skipped += result.SkippedCount
		delta += result.LineDelta
	}

	st := status.StatusUnchanged
	if !bytes.Equal(original, current) {
		st = status.StatusModified
		if op.DryRun {
			st = status.StatusPreviewed
		}
	}

	if op.Diff && st != status.StatusUnchanged {
		diff, err := status.FormatDiff(job.Path, original, current, op.Color)
		if err != nil {
			return op.fail(ctx, job.Path, err)
		}
		op.write([]byte(diff))
	}

	if st == status.StatusModified {
		if op.Plan.Backup {
			if err := op.Store.BackupFile(ctx, job.Path); err != nil {
				return op.fail(ctx, job.Path, errors.Errorf("backing up %s: %w", job.Path, err))
			}
		}
		if err := op.Store.WriteFileAtomic(ctx, job.Path, current); err != nil {
			return op.fail(ctx, job.Path, errors.Errorf("writing %s: %w", job.Path, err))
		}
	}

	op.Store.TrackFile(ctx, job.Path, status.FileInfo{
		Status:   st,
		Checksum: status.Checksum(current),
		Edits:    edits,
	})
	op.Logger.LogFileEdit(ctx, log.FileEdit{
		Path:      job.Path,
		Status:    st.String(),
		Edits:     edits,
		Skipped:   skipped,
		LineDelta: delta,
	})

	logger.Debug().Stringer("status", st).Int("edits", edits).Msg("file processed")
	return nil
}

// ❌ fail records a failed file and returns err
func (op *ApplyOperation) fail(ctx context.Context, path string, err error) error {
	op.Store.TrackFile(ctx, path, status.FileInfo{Status: status.StatusFailed, Error: err})
	op.Logger.LogFileEdit(ctx, log.FileEdit{Path: path, Status: log.StatusFailed, Err: err})
	return err
}
