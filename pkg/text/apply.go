package text

import (
	"slices"
	"sort"
)

// Option configures Apply and AnchoredReplacer
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver sets the observer notified during planning
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Plan is the validated set of edits for one text
type Plan struct {
	// Edits are in request order
	Edits []PlannedEdit

	// Skipped lists malformed requests that were left out
	Skipped []SkippedRequest
}

// LineDelta returns the total change in line count the plan produces
func (p *Plan) LineDelta() int {
	delta := 0
	for _, e := range p.Edits {
		delta += e.LineDelta()
	}
	return delta
}

// PlanEdits locates every request against lines, which are never modified.
// Malformed requests are skipped; the first request that cannot be located
// fails the whole plan with a *RequestError.
func PlanEdits(lines []string, requests []Request, obs Observer) (*Plan, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	l := &locator{source: trimLines(lines), observer: obs}
	plan := &Plan{}

	for i, req := range requests {
		target := targetLines(req.Target)
		if target == nil {
			reason := "target has no non-blank lines"
			obs.RequestSkipped(i, reason)
			plan.Skipped = append(plan.Skipped, SkippedRequest{Index: i, Label: req.Label, Reason: reason})
			continue
		}

		l.request = i
		loc, err := l.locate(req, target)
		if err != nil {
			return nil, &RequestError{Index: i, Label: req.Label, Err: err}
		}

		plan.Edits = append(plan.Edits, PlannedEdit{
			Location: loc,
			Lines:    replacementLines(req.Replacement),
			Index:    i,
			Label:    req.Label,
		})
	}

	if err := plan.checkOverlap(); err != nil {
		return nil, err
	}

	return plan, nil
}

// checkOverlap rejects edits whose ranges intersect. Touching ranges are fine.
func (p *Plan) checkOverlap() error {
	if len(p.Edits) < 2 {
		return nil
	}
	sorted := slices.Clone(p.Edits)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Start < sorted[b].Start
	})
	for k := 1; k < len(sorted); k++ {
		if sorted[k].Start < sorted[k-1].End {
			return &OverlapError{First: sorted[k-1], Second: sorted[k]}
		}
	}
	return nil
}

// Apply splices the plan into a copy of lines and returns the copy.
// Edits run from the highest start to the lowest so that every location,
// computed against the original lines, is still valid when it is applied.
// Replacement lines take the line ending of the lines they replace.
func (p *Plan) Apply(lines []string) []string {
	work := slices.Clone(lines)

	edits := slices.Clone(p.Edits)
	sort.SliceStable(edits, func(a, b int) bool {
		return edits[a].Start > edits[b].Start
	})

	for _, e := range edits {
		repl := withLineEndings(e.Lines, lines[e.Start:e.End], e.End == len(lines))
		work = slices.Replace(work, e.Start, e.End, repl...)
	}
	return work
}

// Apply applies every request to original and returns the new text.
// Either all requests are applied or the call fails and nothing is.
// A nil requests slice is the same as an empty one.
func Apply(original string, requests []Request, opts ...Option) (string, error) {
	modified, _, err := apply(original, requests, newOptions(opts).observer)
	return modified, err
}

func apply(original string, requests []Request, obs Observer) (string, *Plan, error) {
	if err := checkText(original); err != nil {
		return "", nil, err
	}

	lines := SplitLines(original)

	plan, err := PlanEdits(lines, requests, obs)
	if err != nil {
		return "", nil, err
	}

	if len(plan.Edits) == 0 {
		return original, plan, nil
	}

	return JoinLines(plan.Apply(lines)), plan, nil
}
