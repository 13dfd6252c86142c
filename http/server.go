package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/facdir"
	"github.com/go-playground/validator/v10"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly closed.
const ShutdownTimeout = 30 * time.Second

// DefaultMaxPages is applied to scrape requests that omit max_pages.
const DefaultMaxPages = 5

// previewLength is the number of characters of HTML returned by /debug.
const previewLength = 1000

const jsonLDMarker = `<script type="application/ld+json">`

// Server serves the scrape API over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	validate *validator.Validate

	// Addr is the bind address, e.g. ":5000".
	Addr string

	// Version is reported by the health check.
	Version string

	ScrapeService facdir.ScrapeService

	// Fetcher serves /debug, which fetches without extracting.
	Fetcher facdir.Fetcher

	Logger *slog.Logger
}

// NewServer returns a Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		mux:      http.NewServeMux(),
		validate: validator.New(),
		Version:  facdir.Version,
	}
	s.server.Handler = s.mux

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /scrape", s.handleScrape)
	s.mux.HandleFunc("GET /test/{url...}", s.handleTest)
	s.mux.HandleFunc("POST /debug", s.handleDebug)

	return s
}

// Open starts listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger().Error("serve", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes requests through the server's mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "facdir - ready for university faculty directory extraction",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Version,
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	req := facdir.ScrapeRequest{MaxPages: DefaultMaxPages}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, facdir.FailedResult("", fmt.Sprintf("Invalid request body: %v", err)))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeJSON(w, http.StatusOK, facdir.FailedResult(req.URL, validationMessage(err)))
		return
	}
	s.writeJSON(w, http.StatusOK, s.ScrapeService.Scrape(r.Context(), req))
}

// handleTest scrapes the URL embedded in the path. ServeMux answers
// /test/https://host/... with a 301 to the cleaned path (one slash after the
// scheme), so clients must follow redirects. The handler sees the cleaned
// path and restores the double slash.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	target := repairScheme(r.PathValue("url"))
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	req := facdir.ScrapeRequest{URL: target, MaxPages: DefaultMaxPages}
	s.writeJSON(w, http.StatusOK, s.ScrapeService.Scrape(r.Context(), req))
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	var req facdir.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request body: %v", err)})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeJSON(w, http.StatusOK, map[string]string{"error": validationMessage(err)})
		return
	}

	s.writeJSON(w, http.StatusOK, NewDebugResponse(req.URL, s.Fetcher.Fetch(r.Context(), req.URL)))
}

// DebugResponse describes a fetched page without extracting from it.
type DebugResponse struct {
	URL         string              `json:"url"`
	HTMLLength  int                 `json:"html_length"`
	FetchNotes  *facdir.FetchResult `json:"fetch_notes"`
	HTMLPreview string              `json:"html_preview"`
	HasJSONLD   bool                `json:"has_json_ld"`
}

// NewDebugResponse summarizes a fetch of url.
func NewDebugResponse(url string, result *facdir.FetchResult) DebugResponse {
	if result == nil {
		result = &facdir.FetchResult{URL: url, Errors: []string{"empty response"}}
	}
	return DebugResponse{
		URL:         url,
		HTMLLength:  utf8.RuneCountInString(result.Content),
		FetchNotes:  result,
		HTMLPreview: preview(result.Content),
		HasJSONLD:   strings.Contains(result.Content, jsonLDMarker),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Error("encode response", "err", err)
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("validation error: %s - %s", verrs[0].Field(), verrs[0].Tag())
	}
	return "validation error: invalid request"
}

func repairScheme(u string) string {
	for _, scheme := range []string{"https:/", "http:/"} {
		if strings.HasPrefix(u, scheme) && !strings.HasPrefix(u, scheme+"/") {
			return scheme + "/" + strings.TrimPrefix(u, scheme)
		}
	}
	return u
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength]) + "..."
}
