package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/facdir"
)

// Ensure LoggingStrategy implements facdir.Strategy.
var _ facdir.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with debug logging.
type LoggingStrategy struct {
	next   facdir.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next facdir.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// ID delegates to the wrapped strategy.
func (s *LoggingStrategy) ID() facdir.StrategyID {
	return s.next.ID()
}

// Extract delegates to the wrapped strategy and logs how many candidates
// it produced.
func (s *LoggingStrategy) Extract(html string, sourceURL string) (candidates []facdir.Candidate) {
	defer func(begin time.Time) {
		s.logger.Debug("extract",
			"strategy", s.next.ID(),
			"url", sourceURL,
			"count", len(candidates),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Extract(html, sourceURL)
}
