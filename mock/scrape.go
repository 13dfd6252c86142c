package mock

import (
	"context"

	"github.com/fwojciec/facdir"
)

var _ facdir.ScrapeService = (*ScrapeService)(nil)

// ScrapeService is a mock implementation of facdir.ScrapeService.
type ScrapeService struct {
	ScrapeFn func(ctx context.Context, req facdir.ScrapeRequest) *facdir.ScrapeResult
}

func (s *ScrapeService) Scrape(ctx context.Context, req facdir.ScrapeRequest) *facdir.ScrapeResult {
	return s.ScrapeFn(ctx, req)
}
