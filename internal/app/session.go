package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/kiloran/phenrv/internal/adapters/patternio"
	"github.com/kiloran/phenrv/internal/domain/matching"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	"github.com/kiloran/phenrv/pkg/logger"
	"github.com/kiloran/phenrv/pkg/metrics"
)

// Session is one matching session: a target pattern plus the sliding-window
// matcher state. Create one per observation stream and discard it when the
// stream ends; there is no persistence.
type Session struct {
	id      string
	target  pattern.Pattern
	matcher *matching.Matcher
	log     logger.Logger
}

// NewSession opens a matching session against target using cfg.
func (s *Service) NewSession(ctx context.Context, target pattern.Pattern, cfg matching.Config) *Session {
	sess := &Session{
		id:      uuid.New().String(),
		target:  target,
		matcher: matching.New(cfg),
		log:     s.log,
	}
	metrics.RecordSessionStarted()
	if s.log != nil {
		s.log.Debug(ctx, "matching session opened",
			logger.String("session_id", sess.id),
			logger.Float64("epsilon", cfg.Epsilon()),
			logger.Int("window_size", cfg.WindowSize()))
	}
	return sess
}

// ID returns the session identifier used in logs and match reports.
func (sess *Session) ID() string {
	return sess.id
}

// Observe feeds one measured pattern and reports whether the match rule
// currently holds.
func (sess *Session) Observe(ctx context.Context, measured pattern.Pattern) bool {
	cfg := sess.matcher.Config()
	dist := pattern.Distance(measured.Normalized(), sess.target.Normalized())
	matched := sess.matcher.Observe(measured, sess.target)
	metrics.RecordObservation(dist <= cfg.Epsilon(), matched)
	if matched && sess.log != nil {
		sess.log.Info(ctx, "rendezvous match declared",
			logger.String("session_id", sess.id),
			logger.Int("observation", sess.matcher.Observations()))
	}
	return matched
}

// MatchReport summarizes a streamed matching session.
type MatchReport struct {
	SessionID    string `json:"session_id"`
	Matched      bool   `json:"matched"`
	MatchIndex   int    `json:"match_index"` // -1 when no match was declared
	Observations int    `json:"observations"`
}

// MatchStream runs a whole measured-pattern stream through a fresh session
// and reports the first observation index at which the match rule held.
// The stream is consumed until a match, its end, or ctx cancellation.
func (s *Service) MatchStream(ctx context.Context, target pattern.Pattern, cfg matching.Config, stream *patternio.StreamDecoder) (MatchReport, error) {
	sess := s.NewSession(ctx, target, cfg)
	report := MatchReport{SessionID: sess.ID(), MatchIndex: -1}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		measured, err := stream.Next()
		if err == io.EOF {
			return report, nil
		}
		if err != nil {
			return report, err
		}
		idx := report.Observations
		report.Observations++
		if sess.Observe(ctx, measured) {
			report.Matched = true
			report.MatchIndex = idx
			return report, nil
		}
	}
}
