package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/anchoredit/pkg/text"
)

// ErrUnlocated is returned when at least one edit has no unique location.
var ErrUnlocated = errors.Base("edits could not be located")

// 📍 Located is where one edit would land in one file
type Located struct {
	Path     string
	FileSet  string
	Index    int // edit index within its file set
	Label    string
	Location text.Location
	Err      error // not found, ambiguous, malformed or overlapping
}

// 📝 String renders the location as path:first-last with 1-based lines
func (l Located) String() string {
	name := fmt.Sprintf("edit %d", l.Index)
	if l.Label != "" {
		name = l.Label
	}
	if l.Err != nil {
		return fmt.Sprintf("%s: %s: %v", l.Path, name, l.Err)
	}
	return fmt.Sprintf("%s:%d-%d %s", l.Path, l.Location.Start+1, l.Location.End, name)
}

// 📍 LocateOperation reports where each edit would land without writing
type LocateOperation struct {
	*BaseOperation
}

// 📍 NewLocateOperation creates a new locate operation
func NewLocateOperation(ctx context.Context, opts Options) (*LocateOperation, error) {
	base, err := NewBaseOperation(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &LocateOperation{BaseOperation: base}, nil
}

// 🔍 Locate resolves every edit against the current content of every file.
// Each file set is located against the file as it is on disk.
func (op *LocateOperation) Locate(ctx context.Context) ([]Located, error) {
	jobs, err := op.jobs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]Located, len(jobs))
	tasks := make([]Task, 0, len(jobs))
	for i, job := range jobs {
		tasks = append(tasks, func(ctx context.Context) error {
			found, err := op.locateFile(ctx, job)
			results[i] = found
			return err
		})
	}

	if err := NewRunner(zerolog.Ctx(ctx), op.Concurrency).Run(ctx, tasks...); err != nil {
		return nil, errors.Errorf("locating edits: %w", err)
	}

	var all []Located
	for _, found := range results {
		all = append(all, found...)
	}
	return all, nil
}

// 🏃 Execute prints each location to Out and fails if any edit is unlocated
func (op *LocateOperation) Execute(ctx context.Context) error {
	found, err := op.Locate(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	unlocated := 0
	for _, l := range found {
		if l.Err != nil {
			unlocated++
		}
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	op.write([]byte(b.String()))

	if unlocated > 0 {
		return errors.Errorf("%w: %d of %d", ErrUnlocated, unlocated, len(found))
	}
	return nil
}

func (op *LocateOperation) locateFile(ctx context.Context, job Job) ([]Located, error) {
	content, err := op.Store.ReadFile(ctx, job.Path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", job.Path, err)
	}

	lines := text.SplitLines(string(content))
	obs := text.NewLogObserver(zerolog.Ctx(ctx))

	var found []Located
	for _, set := range job.Sets {
		first := len(found)
		reqs := set.Requests()
		for i, req := range reqs {
			loc, err := text.LocateRequest(lines, req, obs)
			found = append(found, Located{
				Path:     job.Path,
				FileSet:  set.Name,
				Index:    i,
				Label:    req.Label,
				Location: loc,
				Err:      err,
			})
		}

		// edits that each have a unique location can still collide
		var overlap *text.OverlapError
		if _, err := text.PlanEdits(lines, reqs, nil); errors.As(err, &overlap) {
			for _, i := range []int{overlap.First.Index, overlap.Second.Index} {
				if found[first+i].Err == nil {
					found[first+i].Err = overlap
				}
			}
		}
	}
	return found, nil
}
