// Package scrape runs the faculty directory pipeline: it plans a scrape from
// the URL, fetches the page, dispatches extraction strategies, optionally
// enriches candidates from their profile pages, and normalizes the result.
package scrape

import (
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/facdir"
)

var (
	directoryKeywords = []string{"faculty", "directory", "staff", "people"}
	musicKeywords     = []string{"music", "conservatory", "arts"}
	universityMarkers = []string{".edu", ".ac.", "university", "college"}
	hintKeywords      = []string{"faculty", "staff", "people", "directory", "music", "piano", "voice", "composition"}
)

// NewPlan classifies rawURL into an ordered strategy list plus hints.
func NewPlan(rawURL string) facdir.Plan {
	return facdir.Plan{
		URL:        rawURL,
		Strategies: selectStrategies(rawURL),
		Hints:      urlHints(rawURL),
	}
}

func selectStrategies(rawURL string) []facdir.StrategyID {
	lower := strings.ToLower(rawURL)

	var ids []facdir.StrategyID
	if containsAny(lower, directoryKeywords) {
		ids = append(ids, facdir.DefaultStrategies()...)
	}
	if containsAny(lower, musicKeywords) {
		ids = append(ids, facdir.StrategyJSONLD, facdir.StrategyDirectoryTable)
	}
	if len(ids) == 0 {
		return facdir.DefaultStrategies()
	}

	var out []facdir.StrategyID
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func urlHints(rawURL string) facdir.Hints {
	var h facdir.Hints
	if u, err := url.Parse(rawURL); err == nil {
		h.Domain = strings.ToLower(u.Host)
		h.Path = strings.ToLower(u.Path)
	}
	h.IsUniversity = containsAny(h.Domain, universityMarkers)
	h.Keywords = []string{}
	for _, term := range hintKeywords {
		if strings.Contains(h.Domain+h.Path, term) {
			h.Keywords = append(h.Keywords, term)
		}
	}
	return h
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
