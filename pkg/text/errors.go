package text

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Sentinel errors. The typed errors below unwrap to one of these, so callers
// can test with errors.Is at any layer.
var (
	// ErrInvalidInput is returned when the content cannot be treated as text.
	ErrInvalidInput = errors.Base("invalid input")

	// ErrMalformedRequest is returned when a request has no usable target.
	ErrMalformedRequest = errors.Base("malformed request")

	// ErrNotFound is returned when no position satisfies a request.
	ErrNotFound = errors.Base("target not found")

	// ErrAmbiguous is returned when more than one position satisfies a request.
	ErrAmbiguous = errors.Base("target is ambiguous")

	// ErrOverlap is returned when two planned edits cover the same lines.
	ErrOverlap = errors.Base("planned edits overlap")
)

// NotFoundError reports a target that matched nowhere with its context
type NotFoundError struct {
	Target string
	Before []string
	After  []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), describe(e.Target, e.Before, e.After))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AmbiguousError reports every start line that satisfied the same request.
// Adding context lines that tell the positions apart resolves it.
type AmbiguousError struct {
	Target string
	Before []string
	After  []string
	Starts []int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: %d matches at lines %v: %s",
		ErrAmbiguous.Error(), len(e.Starts), e.Starts, describe(e.Target, e.Before, e.After))
}

func (e *AmbiguousError) Unwrap() error {
	return ErrAmbiguous
}

// OverlapError reports two planned edits whose ranges intersect
type OverlapError struct {
	First  PlannedEdit
	Second PlannedEdit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: request %d [%d,%d) and request %d [%d,%d)",
		ErrOverlap.Error(),
		e.First.Index, e.First.Start, e.First.End,
		e.Second.Index, e.Second.Start, e.Second.End)
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}

// RequestError ties a failure to the request that caused it
type RequestError struct {
	Index int
	Label string
	Err   error
}

func (e *RequestError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("request %d (%s): %s", e.Index, e.Label, e.Err.Error())
	}
	return fmt.Sprintf("request %d: %s", e.Index, e.Err.Error())
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func describe(target string, before, after []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "target=%q", strings.TrimSpace(target))
	if len(before) > 0 {
		fmt.Fprintf(&b, " before=%q", before)
	}
	if len(after) > 0 {
		fmt.Fprintf(&b, " after=%q", after)
	}
	return b.String()
}
