package mock

import (
	"context"

	"github.com/fwojciec/facdir"
)

var _ facdir.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of facdir.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) *facdir.FetchResult
}

func (f *Fetcher) Fetch(ctx context.Context, url string) *facdir.FetchResult {
	return f.FetchFn(ctx, url)
}
