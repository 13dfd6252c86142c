package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/facdir"
	facdirhttp "github.com/fwojciec/facdir/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := facdirhttp.NewFetcher()

		got := fetcher.Fetch(context.Background(), server.URL)

		require.True(t, got.OK())
		assert.Equal(t, "<html><body>Hello World</body></html>", got.Content)
		assert.Equal(t, server.URL, got.URL)
		assert.Equal(t, http.StatusOK, got.StatusCode)
		assert.Equal(t, "text/html", got.ContentType)
		assert.Equal(t, len(got.Content), got.ContentLength)
		assert.Empty(t, got.Errors)
	})

	t.Run("sends a browser user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		}))
		defer server.Close()

		fetcher := facdirhttp.NewFetcher()
		got := fetcher.Fetch(context.Background(), server.URL)

		assert.Equal(t, facdirhttp.DefaultUserAgent, got.Content)
		assert.True(t, strings.HasPrefix(got.Content, "Mozilla/5.0"))
	})

	t.Run("respects custom user agent option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		}))
		defer server.Close()

		fetcher := facdirhttp.NewFetcher(facdirhttp.WithUserAgent("facdir-test"))
		got := fetcher.Fetch(context.Background(), server.URL)

		assert.Equal(t, "facdir-test", got.Content)
	})

	t.Run("follows redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("moved"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := facdirhttp.NewFetcher()
		got := fetcher.Fetch(context.Background(), server.URL+"/old")

		assert.Equal(t, "moved", got.Content)
	})

	t.Run("reports timeouts", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := facdirhttp.NewFetcher(facdirhttp.WithTimeout(10 * time.Millisecond))

		got := fetcher.Fetch(context.Background(), server.URL)

		assert.False(t, got.OK())
		assert.Equal(t, []string{"Request timeout"}, got.Errors)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := facdirhttp.NewFetcher()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		got := fetcher.Fetch(ctx, server.URL)

		assert.False(t, got.OK())
		require.Len(t, got.Errors, 1)
		assert.True(t, strings.HasPrefix(got.Errors[0], "Request error: "))
	})

	t.Run("reports request errors for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := facdirhttp.NewFetcher(facdirhttp.WithTimeout(2 * time.Second))

		got := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")

		assert.False(t, got.OK())
		require.Len(t, got.Errors, 1)
		assert.True(t, strings.HasPrefix(got.Errors[0], "Request"), got.Errors[0])
	})

	t.Run("reports non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := facdirhttp.NewFetcher()

		got := fetcher.Fetch(context.Background(), server.URL)

		assert.Empty(t, got.Content)
		assert.Equal(t, http.StatusNotFound, got.StatusCode)
		assert.Equal(t, []string{"HTTP 404"}, got.Errors)
	})

	t.Run("uses the supplied client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("via client"))
		}))
		defer server.Close()

		fetcher := facdirhttp.NewFetcher(facdirhttp.WithClient(server.Client()))

		got := fetcher.Fetch(context.Background(), server.URL)

		assert.Equal(t, "via client", got.Content)
	})
}

// Compile-time verification that Fetcher implements facdir.Fetcher
var _ facdir.Fetcher = (*facdirhttp.Fetcher)(nil)
