package facdir

import "context"

// FetchResult holds a fetched page and notes about the fetch.
// A failed fetch has empty Content and at least one entry in Errors.
type FetchResult struct {
	URL           string   `json:"url"`
	Content       string   `json:"-"`
	StatusCode    int      `json:"status_code,omitempty"`
	ContentType   string   `json:"content_type,omitempty"`
	ContentLength int      `json:"content_length,omitempty"`
	Errors        []string `json:"errors"`
}

// OK reports whether the fetch produced content.
func (r *FetchResult) OK() bool {
	return r != nil && r.Content != ""
}

// Fetcher retrieves raw page content.
type Fetcher interface {
	// Fetch retrieves the URL. It never returns an error: failures are
	// reported as empty Content plus entries in Errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) *FetchResult
}
