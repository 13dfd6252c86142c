// Package slog provides log/slog decorators for facdir services.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/facdir"
)

// Ensure LoggingFetcher implements facdir.Fetcher.
var _ facdir.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   facdir.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next facdir.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *facdir.FetchResult) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs, "status", result.StatusCode, "bytes", len(result.Content))
			if len(result.Errors) > 0 {
				attrs = append(attrs, "err", errors.New(strings.Join(result.Errors, "; ")))
			}
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
