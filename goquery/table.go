package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/facdir"
)

// Ensure TableStrategy implements facdir.Strategy at compile time.
var _ facdir.Strategy = (*TableStrategy)(nil)

// cardClass matches class attributes of div-based directory entries.
var cardClass = regexp.MustCompile(`(?i)faculty|person|staff|member|profile`)

// TableStrategy extracts people from directory listings laid out as table
// rows, class-tagged div cards, or list items, in that order of preference.
// Candidates carry no socials, bio or diagnostics. When a row has several
// cells with a title word, the last one wins. Profile links skip mailto:,
// tel:, javascript:, data: and fragment anchors and take the first remaining
// link, rather than the first anchor of any kind.
type TableStrategy struct{}

// NewTableStrategy creates a new TableStrategy.
func NewTableStrategy() *TableStrategy {
	return &TableStrategy{}
}

// ID returns the strategy's identifier.
func (s *TableStrategy) ID() facdir.StrategyID {
	return facdir.StrategyDirectoryTable
}

// Extract returns candidates from the first layout that yields any.
func (s *TableStrategy) Extract(html string, sourceURL string) []facdir.Candidate {
	doc, ok := parseDocument(html)
	if !ok {
		return nil
	}
	base := parseBase(sourceURL)

	if out := tableCandidates(doc, base, sourceURL); len(out) > 0 {
		return out
	}
	if out := divCandidates(doc, base, sourceURL); len(out) > 0 {
		return out
	}
	return listCandidates(doc, base, sourceURL)
}

func tableCandidates(doc *goquery.Document, base *url.URL, sourceURL string) []facdir.Candidate {
	var out []facdir.Candidate
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header
			}
			c, ok := tableRow(row, base, sourceURL)
			out = appendCandidate(out, c, ok)
		})
	})
	return out
}

func tableRow(row *goquery.Selection, base *url.URL, sourceURL string) (facdir.Candidate, bool) {
	cells := row.ChildrenFiltered("td, th")
	if cells.Length() < 2 {
		return facdir.Candidate{}, false
	}

	name := text(cells.First())
	if utf8.RuneCountInString(name) < 3 {
		return facdir.Candidate{}, false
	}

	c := facdir.Candidate{
		Name:         name,
		DirectoryURL: sourceURL,
	}
	cells.Each(func(_ int, cell *goquery.Selection) {
		cellText := text(cell)
		if c.Email == "" {
			c.Email = facdir.FindEmail(cellText)
		}
		if hasTitleWord(cellText) {
			c.Title = cellText
		}
		if c.ProfileURL == "" {
			c.ProfileURL = profileHref(cell, base)
		}
	})
	return c, true
}

func divCandidates(doc *goquery.Document, base *url.URL, sourceURL string) []facdir.Candidate {
	var out []facdir.Candidate
	doc.Find("div[class]").FilterFunction(func(_ int, div *goquery.Selection) bool {
		class, _ := div.Attr("class")
		return cardClass.MatchString(class)
	}).Each(func(_ int, div *goquery.Selection) {
		c, ok := divCard(div, base, sourceURL)
		out = appendCandidate(out, c, ok)
	})
	return out
}

func divCard(div *goquery.Selection, base *url.URL, sourceURL string) (facdir.Candidate, bool) {
	lines := textLines(div)

	name := text(div.Find("h1, h2, h3, h4, h5, h6, strong").First())
	if name == "" && len(lines) > 0 {
		if n := utf8.RuneCountInString(lines[0]); n > 3 && n < 50 {
			name = lines[0]
		}
	}
	if name == "" {
		return facdir.Candidate{}, false
	}

	c := facdir.Candidate{
		Name:         name,
		Email:        facdir.FindEmail(strings.Join(lines, "\n")),
		ProfileURL:   profileHref(div, base),
		DirectoryURL: sourceURL,
	}
	for _, line := range lines {
		if hasTitleWord(line) {
			c.Title = line
			break
		}
	}
	return c, true
}

func listCandidates(doc *goquery.Document, base *url.URL, sourceURL string) []facdir.Candidate {
	var out []facdir.Candidate
	doc.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		list.Find("li").Each(func(_ int, item *goquery.Selection) {
			c, ok := listItem(item, base, sourceURL)
			out = appendCandidate(out, c, ok)
		})
	})
	return out
}

func listItem(item *goquery.Selection, base *url.URL, sourceURL string) (facdir.Candidate, bool) {
	lines := textLines(item)
	if utf8.RuneCountInString(strings.Join(lines, "")) < 3 {
		return facdir.Candidate{}, false
	}

	return facdir.Candidate{
		Name:         lines[0],
		Email:        facdir.FindEmail(strings.Join(lines, "\n")),
		ProfileURL:   profileHref(item, base),
		DirectoryURL: sourceURL,
	}, true
}
