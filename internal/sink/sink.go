// Package sink receives completed survey submissions.
package sink

import (
	"context"

	"audiosurvey/internal/model"

	"github.com/rs/zerolog"
)

// Sink is the external collaborator a submission is handed to
type Sink interface {
	Emit(ctx context.Context, sub *model.Submission) error
}

// LogSink writes each submission as one structured log event
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a sink writing to log
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "sink").Logger()}
}

func (s *LogSink) Emit(_ context.Context, sub *model.Submission) error {
	s.log.Info().
		Str("sessionId", sub.SessionID).
		Int("answered", len(sub.Answers)).
		Time("submittedAt", sub.SubmittedAt).
		Interface("answers", sub.Values()).
		Msg("survey answers")
	return nil
}
