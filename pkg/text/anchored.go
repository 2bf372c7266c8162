package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// AnchoredReplacer implements TextReplacer using context-anchored line matching
type AnchoredReplacer struct {
	observer Observer
}

// NewAnchoredReplacer creates a new AnchoredReplacer
func NewAnchoredReplacer(opts ...Option) *AnchoredReplacer {
	o := newOptions(opts)
	return &AnchoredReplacer{observer: o.observer}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *AnchoredReplacer) ReplaceText(ctx context.Context, content io.Reader, requests []Request) (*ReplacementResult, error) {
	if content == nil {
		return nil, errors.Errorf("%w: content reader is nil", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("%w: reading content: %s", ErrInvalidInput, err.Error())
	}

	obs := r.observer
	if obs == nil {
		obs = NewLogObserver(zerolog.Ctx(ctx))
	}

	original := string(originalContent)
	modified, plan, err := apply(original, requests, obs)
	if err != nil {
		return nil, err
	}

	return &ReplacementResult{
		WasModified:      modified != original,
		ReplacementCount: len(plan.Edits),
		SkippedCount:     len(plan.Skipped),
		LineDelta:        plan.LineDelta(),
		OriginalContent:  originalContent,
		ModifiedContent:  []byte(modified),
		Edits:            plan.Edits,
		Skipped:          plan.Skipped,
	}, nil
}

// ValidateRequests implements TextReplacer.ValidateRequests
func (r *AnchoredReplacer) ValidateRequests(requests []Request) error {
	for i, req := range requests {
		if targetLines(req.Target) == nil {
			return errors.Errorf("request %d: target is required: %w", i, ErrMalformedRequest)
		}
	}
	return nil
}
