package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/facdir"
)

// Ensure CardStrategy implements facdir.Strategy at compile time.
var _ facdir.Strategy = (*CardStrategy)(nil)

// CardConfidence is the confidence assigned to generic card candidates.
const CardConfidence = 0.6

// bioSnippetLength caps card bios, in runes.
const bioSnippetLength = 200

const (
	cardSelector  = ".faculty-card, .faculty, .person, .profile-card, .staff-card, li, .card"
	nameSelector  = "h1, h2, h3, .faculty-name, .name"
	titleSelector = ".faculty-title, .title, h4, p"
	bioSelector   = ".bio, .description, p"
)

// CardStrategy extracts people from loosely structured card containers
// using broad CSS selectors. Every matched container is examined on its own.
type CardStrategy struct{}

// NewCardStrategy creates a new CardStrategy.
func NewCardStrategy() *CardStrategy {
	return &CardStrategy{}
}

// ID returns the strategy's identifier.
func (s *CardStrategy) ID() facdir.StrategyID {
	return facdir.StrategyFacultyGeneric
}

// Extract returns a candidate for every card container with a name.
func (s *CardStrategy) Extract(html string, sourceURL string) []facdir.Candidate {
	doc, ok := parseDocument(html)
	if !ok {
		return nil
	}
	base := parseBase(sourceURL)

	var out []facdir.Candidate
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		name := text(card.Find(nameSelector).First())
		if name == "" {
			return
		}

		c := facdir.Candidate{
			Name:         name,
			Title:        text(card.Find(titleSelector).First()),
			DirectoryURL: sourceURL,
			Socials:      []string{},
			Bio:          truncate(text(card.Find(bioSelector).First()), bioSnippetLength),
			Diagnostics: &facdir.Diagnostics{
				Strategy:   facdir.StrategyFacultyGeneric,
				Confidence: CardConfidence,
			},
		}

		card.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href := strings.TrimSpace(a.AttrOr("href", ""))
			if href == "" {
				return
			}
			if strings.HasPrefix(strings.ToLower(href), "mailto:") {
				if c.Email == "" {
					c.Email = decodeMailto(href)
				}
			} else if c.ProfileURL == "" {
				c.ProfileURL = resolveLink(base, href)
			}
			if isSocialLink(href) {
				c.Socials = append(c.Socials, href)
			}
		})

		out = appendCandidate(out, c, true)
	})
	return out
}

// decodeMailto strips the mailto: scheme and any ?query suffix from href.
func decodeMailto(href string) string {
	addr := facdir.StripMailto(href)
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	return strings.TrimSpace(addr)
}
