package text

import (
	"gitlab.com/tozd/go/errors"
)

// Locate returns the only position of target in lines whose surrounding
// lines match before and after. Lines are compared after trimming leading
// and trailing whitespace; case and inner whitespace must match exactly.
//
// It fails with *NotFoundError when no position qualifies and with
// *AmbiguousError when more than one does.
func Locate(lines []string, target string, before, after []string) (Location, error) {
	return LocateRequest(lines, Request{Target: target, Before: before, After: after}, nil)
}

// LocateRequest is Locate for a Request, reporting to obs as it scans
func LocateRequest(lines []string, req Request, obs Observer) (Location, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	target := targetLines(req.Target)
	if target == nil {
		return Location{}, errors.Errorf("%w: target has no non-blank lines", ErrMalformedRequest)
	}
	l := &locator{source: trimLines(lines), observer: obs, request: -1}
	return l.locate(req, target)
}

// locator scans one trimmed source; it is shared by every request of a plan
type locator struct {
	source   []string
	observer Observer
	request  int
}

func (l *locator) locate(req Request, target []string) (Location, error) {
	before := trimLines(req.Before)
	after := trimLines(req.After)

	var starts []int
	for i := 0; i+len(target) <= len(l.source); i++ {
		if !l.matchAt(i, target) {
			continue
		}
		end := i + len(target)

		if len(before) > 0 {
			if i < len(before) {
				l.observer.CandidateRejected(l.request, i, RejectBeforeOutOfRange)
				continue
			}
			if !l.matchAt(i-len(before), before) {
				l.observer.CandidateRejected(l.request, i, RejectBeforeMismatch)
				continue
			}
		}

		if len(after) > 0 {
			if end+len(after) > len(l.source) {
				l.observer.CandidateRejected(l.request, i, RejectAfterOutOfRange)
				continue
			}
			if !l.matchAt(end, after) {
				l.observer.CandidateRejected(l.request, i, RejectAfterMismatch)
				continue
			}
		}

		l.observer.MatchFound(l.request, Location{Start: i, End: end})
		starts = append(starts, i)
	}

	switch len(starts) {
	case 0:
		return Location{}, &NotFoundError{Target: req.Target, Before: req.Before, After: req.After}
	case 1:
		return Location{Start: starts[0], End: starts[0] + len(target)}, nil
	default:
		l.observer.AmbiguityDetected(l.request, starts)
		return Location{}, &AmbiguousError{Target: req.Target, Before: req.Before, After: req.After, Starts: starts}
	}
}

// matchAt reports whether want occurs at source[at:]; both sides are trimmed
func (l *locator) matchAt(at int, want []string) bool {
	for j, w := range want {
		if l.source[at+j] != w {
			return false
		}
	}
	return true
}
