package scrape

import (
	"net/url"
	"strings"

	"github.com/fwojciec/facdir"
)

// Normalize converts candidates from any strategy into Records.
// Candidates with a blank name are dropped; input order is preserved.
// Every record's DirectoryURL is sourceURL.
func Normalize(candidates []facdir.Candidate, sourceURL string) []facdir.Record {
	records := make([]facdir.Record, 0, len(candidates))
	for _, c := range candidates {
		if r, ok := normalizeCandidate(c, sourceURL); ok {
			records = append(records, r)
		}
	}
	return records
}

func normalizeCandidate(c facdir.Candidate, sourceURL string) (facdir.Record, bool) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return facdir.Record{}, false
	}

	r := facdir.Record{
		Name:         name,
		Title:        strings.TrimSpace(c.Title),
		DirectoryURL: sourceURL,
		Socials:      []string{},
		BioSnippet:   c.Bio,
	}
	r.Email, r.EmailStatus = emailStatus(c)
	if isAbsoluteURL(c.ProfileURL) {
		r.ProfileURL = c.ProfileURL
	}
	if c.Socials != nil {
		r.Socials = append(r.Socials, c.Socials...)
	}
	return r, true
}

func emailStatus(c facdir.Candidate) (string, facdir.EmailStatus) {
	if strings.TrimSpace(c.Email) == "" {
		return "", facdir.StatusMissing
	}
	email, ok := facdir.CleanEmail(c.Email)
	if !ok {
		return "", facdir.StatusObfuscatedUnresolved
	}
	if c.Enrichment == facdir.EnrichmentFound {
		return email, facdir.StatusFoundOnProfile
	}
	return email, facdir.StatusPresent
}

// isAbsoluteURL reports whether s is a well-formed http(s) URL with a host.
func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}
