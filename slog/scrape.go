package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/facdir"
)

// Ensure LoggingScrapeService implements facdir.ScrapeService.
var _ facdir.ScrapeService = (*LoggingScrapeService)(nil)

// LoggingScrapeService wraps a ScrapeService with logging.
type LoggingScrapeService struct {
	next   facdir.ScrapeService
	logger *slog.Logger
}

// NewLoggingScrapeService creates a new LoggingScrapeService.
func NewLoggingScrapeService(next facdir.ScrapeService, logger *slog.Logger) *LoggingScrapeService {
	return &LoggingScrapeService{next: next, logger: logger}
}

// Scrape delegates to the wrapped service and logs the outcome.
func (s *LoggingScrapeService) Scrape(ctx context.Context, req facdir.ScrapeRequest) (result *facdir.ScrapeResult) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"enrich", req.EnrichProfiles,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"success", result.Success,
				"count", result.TotalFound,
				"strategy", result.StrategyUsed,
			)
			if !result.Success {
				attrs = append(attrs, "message", result.Message)
			}
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, req)
}
