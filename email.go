package facdir

import (
	"regexp"
	"strings"
)

// emailSearch finds email-shaped substrings inside arbitrary text.
var emailSearch = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// emailStrict validates a cleaned address in full.
var emailStrict = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9-]+(\.[a-z0-9-]+)*\.[a-z]{2,}$`)

const mailtoPrefix = "mailto:"

// FindEmail returns the first email-shaped substring of text, or "".
func FindEmail(text string) string {
	return emailSearch.FindString(text)
}

// StripMailto removes a leading, case-insensitive "mailto:" scheme.
func StripMailto(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(mailtoPrefix) && strings.EqualFold(s[:len(mailtoPrefix)], mailtoPrefix) {
		return s[len(mailtoPrefix):]
	}
	return s
}

// CleanEmail strips a mailto: prefix, trims and lower-cases raw, and reports
// whether the result is a syntactically valid address.
func CleanEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(StripMailto(raw)))
	if email == "" || !emailStrict.MatchString(email) {
		return "", false
	}
	return email, true
}
