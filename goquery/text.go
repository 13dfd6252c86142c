package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/facdir"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// titleWords mark text that reads like an academic job title.
var titleWords = []string{"professor", "instructor", "lecturer", "chair", "director"}

// socialDomains mark links to social platform profiles.
var socialDomains = []string{"facebook", "twitter", "linkedin", "instagram"}

var whitespace = regexp.MustCompile(`\s+`)

// blockElements start a new line when rendering text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Section: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// text returns the selection's text on a single line.
func text(sel *goquery.Selection) string {
	return collapseSpace(sel.Text())
}

// textLines renders the selection's text split at block element boundaries
// and <br> tags. Empty lines are dropped. Script and style content is ignored.
func textLines(sel *goquery.Selection) []string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = collapseSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			b.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

// hasTitleWord reports whether s contains a title keyword, ignoring case.
func hasTitleWord(s string) bool {
	return containsAny(strings.ToLower(s), titleWords)
}

// isSocialLink reports whether href points at a known social platform.
func isSocialLink(href string) bool {
	return containsAny(strings.ToLower(href), socialDomains)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// resolveHref makes root-relative and scheme-relative hrefs absolute against
// base. Fully-qualified and other relative hrefs are returned unchanged.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil || !strings.HasPrefix(href, "/") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// resolveLink resolves any relative href against base.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}

// profileHref returns the first usable link target inside sel, resolved
// against base, or "" when sel holds no such link.
func profileHref(sel *goquery.Selection, base *url.URL) string {
	var href string
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, _ := a.Attr("href")
		if strings.TrimSpace(h) == "" || isNonHTTPLink(h) {
			return true
		}
		href = resolveHref(base, h)
		return false
	})
	return href
}

// parseDocument parses html, reporting false for empty or unparseable input.
func parseDocument(html string) (*goquery.Document, bool) {
	if strings.TrimSpace(html) == "" {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// parseBase parses the source URL, returning nil when it is unusable.
func parseBase(sourceURL string) *url.URL {
	base, err := url.Parse(sourceURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil
	}
	return base
}

// appendCandidate appends c to out unless its trimmed name is empty.
func appendCandidate(out []facdir.Candidate, c facdir.Candidate, ok bool) []facdir.Candidate {
	if !ok {
		return out
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return out
	}
	return append(out, c)
}
