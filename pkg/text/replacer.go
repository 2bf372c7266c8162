package text

import (
	"context"
	"io"
)

// Request describes a single anchored replacement
type Request struct {
	// Label identifies the request in diagnostics. Optional.
	Label string

	// Target is the snippet to locate. It is trimmed as a whole and then
	// matched line by line.
	Target string

	// Replacement is the text spliced in place of Target. An empty
	// Replacement deletes the target lines.
	Replacement string

	// Before lists the lines expected immediately above Target
	Before []string

	// After lists the lines expected immediately below Target
	After []string
}

// Location is a half-open line range [Start, End) in the original text
type Location struct {
	Start int
	End   int
}

// Len returns the number of lines covered
func (l Location) Len() int {
	return l.End - l.Start
}

// PlannedEdit is a located request waiting to be spliced in
type PlannedEdit struct {
	Location

	// Lines replaces the located range
	Lines []string

	// Index is the position of the originating request in the input
	Index int

	// Label is copied from the originating request
	Label string
}

// LineDelta returns how many lines the edit adds (or removes, when negative)
func (e PlannedEdit) LineDelta() int {
	return len(e.Lines) - e.Len()
}

// SkippedRequest records a malformed request that was left out of a plan
type SkippedRequest struct {
	Index  int
	Label  string
	Reason string
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the content changed
	WasModified bool

	// ReplacementCount is the number of edits applied
	ReplacementCount int

	// SkippedCount is the number of malformed requests that were skipped
	SkippedCount int

	// LineDelta is the change in line count
	LineDelta int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte

	// Edits lists the applied edits in request order
	Edits []PlannedEdit

	// Skipped lists the requests that were not applied
	Skipped []SkippedRequest
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies every request to the content, or none of them.
	// Returns a ReplacementResult containing the modified content and metadata
	ReplaceText(ctx context.Context, content io.Reader, requests []Request) (*ReplacementResult, error)

	// ValidateRequests checks that all requests are well formed
	ValidateRequests(requests []Request) error
}
