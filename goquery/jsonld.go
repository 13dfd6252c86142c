package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/facdir"
	"github.com/titanous/json5"
)

// Ensure JSONLDStrategy implements facdir.Strategy at compile time.
var _ facdir.Strategy = (*JSONLDStrategy)(nil)

// JSONLDConfidence is the confidence assigned to structured data candidates.
const JSONLDConfidence = 0.9

// personFields hold Persons nested inside container objects.
var personFields = []string{"itemListElement", "member", "members", "employee", "person", "author", "contributor"}

// JSONLDStrategy extracts schema.org Person records embedded as JSON-LD.
type JSONLDStrategy struct{}

// NewJSONLDStrategy creates a new JSONLDStrategy.
func NewJSONLDStrategy() *JSONLDStrategy {
	return &JSONLDStrategy{}
}

// ID returns the strategy's identifier.
func (s *JSONLDStrategy) ID() facdir.StrategyID {
	return facdir.StrategyJSONLD
}

// Extract returns a candidate for every named Person found in the page's
// JSON-LD blocks. Blocks that cannot be decoded are skipped.
func (s *JSONLDStrategy) Extract(html string, sourceURL string) []facdir.Candidate {
	doc, ok := parseDocument(html)
	if !ok {
		return nil
	}

	var out []facdir.Candidate
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		data, ok := decodeJSONLD(script.Text())
		if !ok {
			return
		}
		for _, item := range topLevelItems(data) {
			for _, person := range persons(item) {
				c, ok := personCandidate(person, sourceURL)
				out = appendCandidate(out, c, ok)
			}
		}
	})
	return out
}

// decodeJSONLD decodes a block strictly, falling back to JSON5 for blocks
// with trailing commas or comments.
func decodeJSONLD(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return data, true
	}
	data = nil
	if err := json5.Unmarshal([]byte(raw), &data); err == nil {
		return data, true
	}
	return nil, false
}

// topLevelItems flattens a decoded block into its objects, expanding @graph.
func topLevelItems(data any) []map[string]any {
	var items []map[string]any
	for _, v := range asList(data) {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if graph, ok := m["@graph"]; ok {
			for _, g := range asList(graph) {
				if gm, ok := g.(map[string]any); ok {
					items = append(items, gm)
				}
			}
			continue
		}
		items = append(items, m)
	}
	return items
}

// persons returns item itself when it is a Person, otherwise the Persons
// held one level down in its container fields.
func persons(item map[string]any) []map[string]any {
	if isPerson(item) {
		return []map[string]any{item}
	}

	var out []map[string]any
	for _, field := range personFields {
		for _, v := range asList(item[field]) {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if isPerson(m) {
				out = append(out, m)
				continue
			}
			// ItemList entries are often ListItems wrapping the Person.
			if inner, ok := m["item"].(map[string]any); ok && isPerson(inner) {
				out = append(out, inner)
			}
		}
	}
	return out
}

// isPerson reports whether @type is, or includes, "Person".
func isPerson(m map[string]any) bool {
	for _, t := range asList(m["@type"]) {
		if s, ok := t.(string); ok && s == "Person" {
			return true
		}
	}
	return false
}

func personCandidate(p map[string]any, sourceURL string) (facdir.Candidate, bool) {
	name := stringValue(p["name"])
	if name == "" {
		name = strings.TrimSpace(stringValue(p["givenName"]) + " " + stringValue(p["familyName"]))
	}
	if name == "" {
		return facdir.Candidate{}, false
	}

	c := facdir.Candidate{
		Name:         name,
		Title:        personTitle(p),
		Email:        facdir.StripMailto(stringValue(p["email"])),
		ProfileURL:   stringValue(p["url"]),
		DirectoryURL: sourceURL,
		Socials:      []string{},
		Bio:          rawString(p["description"]),
		Diagnostics: &facdir.Diagnostics{
			Strategy:   facdir.StrategyJSONLD,
			Confidence: JSONLDConfidence,
		},
	}
	if c.ProfileURL == "" {
		c.ProfileURL = stringValue(p["sameAs"])
	}
	if strings.TrimSpace(c.Bio) == "" {
		c.Bio = rawString(p["bio"])
	}
	for _, v := range asList(p["sameAs"]) {
		if link, ok := v.(string); ok && isSocialLink(link) {
			c.Socials = append(c.Socials, link)
		}
	}
	return c, true
}

func personTitle(p map[string]any) string {
	if title := stringValue(p["jobTitle"]); title != "" {
		return title
	}
	if title := stringValue(p["title"]); title != "" {
		return title
	}
	for _, v := range asList(p["hasOccupation"]) {
		if occ, ok := v.(map[string]any); ok {
			return stringValue(occ["name"])
		}
	}
	return ""
}

// stringValue returns v when it is a string, or the first element when v is
// a list whose first element is a string.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// rawString returns v untouched when it is a string.
func rawString(v any) string {
	s, _ := v.(string)
	return s
}

// asList wraps a single value in a slice; lists pass through and nil yields nil.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{v}
	}
}
