package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/facdir"
)

// Ensure Scraper implements facdir.ScrapeService at compile time.
var _ facdir.ScrapeService = (*Scraper)(nil)

// Scraper runs the analyze, fetch, extract, enrich and normalize pipeline
// for one directory page at a time.
type Scraper struct {
	Fetcher    facdir.Fetcher
	Dispatcher *Dispatcher

	// Enricher handles requests with EnrichProfiles set. When nil, such
	// requests are served without enrichment.
	Enricher *Enricher

	// Runs, if set, persists results of requests with Save set.
	Runs facdir.RunService

	Logger *slog.Logger
}

// NewScraper creates a Scraper with the three standard strategies supplied
// by the caller and the given fetcher. The enricher shares the fetcher.
func NewScraper(fetcher facdir.Fetcher, strategies ...facdir.Strategy) *Scraper {
	return &Scraper{
		Fetcher:    fetcher,
		Dispatcher: NewDispatcher(strategies...),
		Enricher:   &Enricher{Fetcher: fetcher},
	}
}

// Scrape never returns an error: every failure, including a panic inside
// the pipeline, is reported as an envelope with Success false and no items.
func (s *Scraper) Scrape(ctx context.Context, req facdir.ScrapeRequest) (result *facdir.ScrapeResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("scrape panic", "url", req.URL, "panic", r)
			result = facdir.FailedResult(req.URL, fmt.Sprintf("Error occurred: %v", r))
		}
	}()

	if err := req.Validate(); err != nil {
		return facdir.FailedResult(req.URL, facdir.ErrorMessage(err))
	}

	plan := NewPlan(req.URL)
	s.logger().Debug("plan",
		"url", plan.URL,
		"strategies", plan.Strategies,
		"domain", plan.Hints.Domain,
		"keywords", plan.Hints.Keywords,
	)

	page := s.Fetcher.Fetch(ctx, req.URL)
	if !page.OK() {
		reason := "empty response"
		if len(page.Errors) > 0 {
			reason = strings.Join(page.Errors, "; ")
		}
		return s.finish(ctx, req, facdir.FailedResult(req.URL, fmt.Sprintf("No content fetched from %s: %s", req.URL, reason)))
	}

	candidates, used := s.Dispatcher.Dispatch(page.Content, req.URL, plan.Strategies)

	if req.EnrichProfiles && s.Enricher != nil && len(candidates) > 0 {
		candidates = s.Enricher.Enrich(ctx, candidates)
	}

	items := Normalize(candidates, req.URL)
	strategy := string(used)
	if strategy == "" {
		strategy = "no"
	}
	return s.finish(ctx, req, &facdir.ScrapeResult{
		Success:      len(items) > 0,
		Items:        items,
		TotalFound:   len(items),
		SourceURL:    req.URL,
		StrategyUsed: used,
		Message:      fmt.Sprintf("Extracted %d faculty members using %s strategy", len(items), strategy),
	})
}

// finish persists the result when requested. A storage failure is noted in
// the message and never changes the outcome.
func (s *Scraper) finish(ctx context.Context, req facdir.ScrapeRequest, result *facdir.ScrapeResult) *facdir.ScrapeResult {
	if !req.Save || s.Runs == nil {
		return result
	}

	run := &facdir.Run{
		SourceURL:    result.SourceURL,
		StrategyUsed: result.StrategyUsed,
		Success:      result.Success,
		TotalFound:   result.TotalFound,
		Message:      result.Message,
		Records:      result.Items,
	}
	if err := s.Runs.CreateRun(ctx, run); err != nil {
		s.logger().Error("save run", "url", req.URL, "err", err)
		result.Message += fmt.Sprintf(" (not saved: %s)", facdir.ErrorMessage(err))
		return result
	}
	result.RunID = run.ID
	return result
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return discardLogger()
}
