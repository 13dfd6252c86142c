package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/facdir"
	"golang.org/x/sync/errgroup"
)

// Enrichment defaults.
const (
	DefaultEnrichConcurrency = 5
	DefaultProfileTimeout    = 10 * time.Second
)

// Enricher fetches profile pages to recover emails missing from the
// directory page.
type Enricher struct {
	Fetcher facdir.Fetcher

	// Concurrency caps simultaneous profile fetches. Defaults to 5.
	Concurrency int

	// Timeout bounds each profile fetch. Defaults to 10s.
	Timeout time.Duration

	// Limiter, if set, spaces out fetches to the same host.
	Limiter *DomainLimiter

	Logger *slog.Logger
}

// Enrich returns a copy of candidates in the same order. Each candidate
// lacking a usable email but carrying an absolute profile URL has its
// profile fetched; the first email found there is stored and the candidate
// is marked EnrichmentFound, otherwise EnrichmentFailed. Failures are
// isolated per candidate and never stop the batch.
func (e *Enricher) Enrich(ctx context.Context, candidates []facdir.Candidate) []facdir.Candidate {
	out := make([]facdir.Candidate, len(candidates))
	copy(out, candidates)

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultEnrichConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range out {
		if !needsEnrichment(out[i]) {
			continue
		}
		g.Go(func() error {
			out[i] = e.enrichOne(ctx, out[i])
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// enrichOne works on its own copy of c.
func (e *Enricher) enrichOne(ctx context.Context, c facdir.Candidate) facdir.Candidate {
	c.Socials = append([]string(nil), c.Socials...)

	if e.Limiter != nil {
		if u, err := url.Parse(c.ProfileURL); err == nil {
			if err := e.Limiter.Wait(ctx, u.Host); err != nil {
				e.logger().Debug("profile rate limit", "url", c.ProfileURL, "err", err)
				c.Enrichment = facdir.EnrichmentFailed
				return c
			}
		}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultProfileTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The timeout covers the fetch only, not time spent waiting on the limiter.
	result := e.Fetcher.Fetch(fetchCtx, c.ProfileURL)
	if !result.OK() {
		e.logger().Debug("profile fetch failed", "url", c.ProfileURL, "errors", result.Errors)
		c.Enrichment = facdir.EnrichmentFailed
		return c
	}

	email := facdir.FindEmail(result.Content)
	if email == "" {
		c.Enrichment = facdir.EnrichmentFailed
		return c
	}
	c.Email = email
	c.Enrichment = facdir.EnrichmentFound
	return c
}

func (e *Enricher) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return discardLogger()
}

// needsEnrichment reports whether c has no usable email but has a profile
// page that can be fetched.
func needsEnrichment(c facdir.Candidate) bool {
	if _, ok := facdir.CleanEmail(c.Email); ok {
		return false
	}
	return isAbsoluteURL(c.ProfileURL)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
