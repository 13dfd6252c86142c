package facdir

import (
	"context"
	"net/url"
)

// ScrapeRequest asks for a directory page to be scraped.
type ScrapeRequest struct {
	URL            string `json:"url" validate:"required,url"`
	EnrichProfiles bool   `json:"enrich_profiles"`
	EnableJS       bool   `json:"enable_js"` // Accepted but inert.
	MaxPages       int    `json:"max_pages" validate:"gte=0"` // Accepted but unused.
	Save           bool   `json:"save"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ScrapeRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(r.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "url must be an absolute http(s) URL: %q", r.URL)
	}
	if r.MaxPages < 0 {
		return Errorf(EINVALID, "max_pages must be non-negative")
	}
	return nil
}

// ScrapeResult is the envelope returned for every scrape, successful or not.
type ScrapeResult struct {
	Success      bool       `json:"success"`
	Items        []Record   `json:"items"`
	TotalFound   int        `json:"total_found"`
	SourceURL    string     `json:"source_url"`
	StrategyUsed StrategyID `json:"strategy_used,omitempty"`
	Message      string     `json:"message"`
	RunID        string     `json:"run_id,omitempty"`
}

// FailedResult returns an envelope reporting failure with no items.
func FailedResult(sourceURL, message string) *ScrapeResult {
	return &ScrapeResult{
		Success:   false,
		Items:     []Record{},
		SourceURL: sourceURL,
		Message:   message,
	}
}

// ScrapeService runs the full scrape pipeline for a request.
type ScrapeService interface {
	// Scrape never returns an error; failures are reported in the envelope
	// with Success false and no items.
	Scrape(ctx context.Context, req ScrapeRequest) *ScrapeResult
}
