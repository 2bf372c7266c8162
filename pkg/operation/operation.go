// Package operation applies edit plans to files on disk
package operation

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/config"
	"github.com/walteh/anchoredit/pkg/log"
	"github.com/walteh/anchoredit/pkg/status"
	"github.com/walteh/anchoredit/pkg/text"
)

// 🎯 Operation is a unit of work run against a plan
type Operation interface {
	Execute(ctx context.Context) error
}

// 💾 Store is the file storage and tracking an operation needs
type Store interface {
	status.FileManager
	status.StatusReporter
}

// 🔧 Options contains configuration for operations
type Options struct {
	// Plan is the validated edit plan
	Plan *config.Plan
	// Store reads, writes and tracks files; defaults to a status.Manager at Plan.Root
	Store Store
	// Replacer applies edits; defaults to text.NewAnchoredReplacer()
	Replacer text.TextReplacer
	// Logger reports per-file outcomes; defaults to a logger writing to Out
	Logger *log.Logger
	// DryRun computes edits without writing
	DryRun bool
	// Diff writes a unified diff of each changed file to Out
	Diff bool
	// Color colors diffs
	Color bool
	// Concurrency overrides Plan.Concurrency when positive
	Concurrency int
	// Out receives diffs and locate output
	Out io.Writer
}

// 🧱 BaseOperation holds what every operation shares
type BaseOperation struct {
	Plan        *config.Plan
	Store       Store
	Replacer    text.TextReplacer
	Logger      *log.Logger
	DryRun      bool
	Diff        bool
	Color       bool
	Concurrency int

	outMu sync.Mutex
	out   io.Writer
}

// 🏭 NewBaseOperation fills in defaults for opts
func NewBaseOperation(ctx context.Context, opts Options) (*BaseOperation, error) {
	if opts.Plan == nil {
		return nil, errors.Errorf("plan is required")
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	store := opts.Store
	if store == nil {
		mgr, err := status.New(opts.Plan.Root, zerolog.Ctx(ctx))
		if err != nil {
			return nil, errors.Errorf("creating status manager: %w", err)
		}
		store = mgr
	}

	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewAnchoredReplacer()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithZerolog(out, *zerolog.Ctx(ctx))
	}

	concurrency := opts.Plan.Concurrency
	if opts.Concurrency > 0 {
		concurrency = opts.Concurrency
	}

	return &BaseOperation{
		Plan:        opts.Plan,
		Store:       store,
		Replacer:    replacer,
		Logger:      logger,
		DryRun:      opts.DryRun,
		Diff:        opts.Diff,
		Color:       opts.Color,
		Concurrency: concurrency,
		out:         out,
	}, nil
}

// 📝 write serializes output from concurrent workers
func (op *BaseOperation) write(p []byte) {
	op.outMu.Lock()
	defer op.outMu.Unlock()
	_, _ = op.out.Write(p)
}

// 📋 jobs resolves the plan's file sets against the root
func (op *BaseOperation) jobs(ctx context.Context) ([]Job, error) {
	jobs, err := Resolve(ctx, op.Plan.Root, op.Plan.Files)
	if err != nil {
		return nil, errors.Errorf("resolving files: %w", err)
	}
	return jobs, nil
}
