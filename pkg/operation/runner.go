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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ⚙️ Task is one unit of work handed to a runner
type Task func(ctx context.Context) error

// 🏃 OperationRunner executes tasks, one at a time or on a bounded pool
type OperationRunner struct {
	logger      *zerolog.Logger
	concurrency int
}

// 🏗️ NewRunner creates a new runner; concurrency below 2 runs tasks in order
func NewRunner(logger *zerolog.Logger, concurrency int) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &OperationRunner{
		logger:      logger,
		concurrency: concurrency,
	}
}

// 🏃 Run executes tasks and returns the first error. Remaining tasks are
// not started once one fails.
func (r *OperationRunner) Run(ctx context.Context, tasks ...Task) error {
	if r.concurrency > 1 {
		return r.runAsync(ctx, tasks)
	}
	return r.runSync(ctx, tasks)
}

// 🔄 runSync runs tasks in order
func (r *OperationRunner) runSync(ctx context.Context, tasks []Task) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := task(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ runAsync runs tasks on at most r.concurrency goroutines
func (r *OperationRunner) runAsync(ctx context.Context, tasks []Task) error {
	r.logger.Debug().Int("tasks", len(tasks)).Int("concurrency", r.concurrency).Msg("running tasks concurrently")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return task(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	return nil
}
