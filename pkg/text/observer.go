package text

import (
	"github.com/rs/zerolog"
)

// RejectReason explains why a candidate whose target lines matched was dropped
type RejectReason string

const (
	RejectBeforeOutOfRange RejectReason = "before context runs past the start of the text"
	RejectBeforeMismatch   RejectReason = "before context does not match"
	RejectAfterOutOfRange  RejectReason = "after context runs past the end of the text"
	RejectAfterMismatch    RejectReason = "after context does not match"
)

// Observer receives notifications while requests are located and planned.
// Notifications are informational; they never change the outcome.
// request is the index of the request in its batch, or -1 for a standalone Locate.
type Observer interface {
	CandidateRejected(request, start int, reason RejectReason)
	MatchFound(request int, loc Location)
	AmbiguityDetected(request int, starts []int)
	RequestSkipped(request int, reason string)
}

// NopObserver ignores every notification
type NopObserver struct{}

func (NopObserver) CandidateRejected(int, int, RejectReason) {}
func (NopObserver) MatchFound(int, Location)                  {}
func (NopObserver) AmbiguityDetected(int, []int)              {}
func (NopObserver) RequestSkipped(int, string)                {}

// LogObserver forwards notifications to a zerolog logger
type LogObserver struct {
	logger *zerolog.Logger
}

// NewLogObserver creates a LogObserver. A nil logger disables output.
func NewLogObserver(logger *zerolog.Logger) *LogObserver {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) CandidateRejected(request, start int, reason RejectReason) {
	o.logger.Trace().
		Int("request", request).
		Int("start", start).
		Str("reason", string(reason)).
		Msg("candidate rejected")
}

func (o *LogObserver) MatchFound(request int, loc Location) {
	o.logger.Debug().
		Int("request", request).
		Int("start", loc.Start).
		Int("end", loc.End).
		Msg("match found")
}

func (o *LogObserver) AmbiguityDetected(request int, starts []int) {
	o.logger.Debug().
		Int("request", request).
		Ints("starts", starts).
		Msg("ambiguous target")
}

func (o *LogObserver) RequestSkipped(request int, reason string) {
	o.logger.Warn().
		Int("request", request).
		Str("reason", reason).
		Msg("skipping malformed request")
}
