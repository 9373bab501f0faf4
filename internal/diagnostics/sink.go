// Package diagnostics wires the expression evaluator's and stage
// resolver's scoped warnings into a structured event sink, fulfilling §7's
// requirement that "every failure produces a diagnostic tagged with PO id
// and stage id when applicable; nothing silently swallows a failure
// without a log line."
package diagnostics

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Sink records scoped, non-fatal diagnostics emitted during expression
// evaluation and stage resolution. It never aborts a PO or a batch; it only
// records what happened.
type Sink struct {
	log zerolog.Logger
}

// NewSink constructs a Sink writing structured events to w. A nil w writes
// to os.Stderr.
func NewSink(w io.Writer) *Sink {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	return &Sink{log: logger}
}

// Warn records a stage-scoped diagnostic (a skipped predecessor, an
// expression that failed to evaluate, an unknown stage id).
func (s *Sink) Warn(runID, poID, stageID, message string) {
	if s == nil {
		return
	}
	s.log.Warn().
		Str("run_id", runID).
		Str("po_id", poID).
		Str("stage_id", stageID).
		Msg(message)
}

// RowError records a row that failed the fault boundary entirely.
func (s *Sink) RowError(runID, poID, message string) {
	if s == nil {
		return
	}
	s.log.Error().
		Str("run_id", runID).
		Str("po_id", poID).
		Msg(message)
}
