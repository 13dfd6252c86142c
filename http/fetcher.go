// Package http implements the network boundary of facdir: a plain HTTP
// fetcher for directory and profile pages, and the JSON API server.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/facdir"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is a desktop browser User-Agent. Some university sites
// serve an empty or blocked page to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements facdir.Fetcher at compile time.
var _ facdir.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests. It does
// not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. Its Timeout is replaced by
// the fetcher's timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		*client = *f.client
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch retrieves the page at url, following redirects. It never fails:
// problems are reported in the result's Errors and leave Content empty.
func (f *Fetcher) Fetch(ctx context.Context, url string) *facdir.FetchResult {
	result := &facdir.FetchResult{URL: url, Errors: []string{}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Request error: %v", err))
		return result
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		result.Errors = append(result.Errors, describe(err))
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.StatusCode = resp.StatusCode
		result.Errors = append(result.Errors, describe(err))
		return result
	}

	result.StatusCode = resp.StatusCode
	result.ContentType = resp.Header.Get("Content-Type")
	result.ContentLength = len(body)

	if resp.StatusCode != http.StatusOK {
		result.Errors = append(result.Errors, fmt.Sprintf("HTTP %d", resp.StatusCode))
		return result
	}

	result.Content = string(body)
	return result
}

func describe(err error) string {
	if isTimeout(err) {
		return "Request timeout"
	}
	return fmt.Sprintf("Request error: %v", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
