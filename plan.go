package facdir

// Plan describes how a directory URL should be scraped.
// A Plan is computed once per request and never modified.
type Plan struct {
	URL        string
	Strategies []StrategyID

	// NeedsJS and HasPagination are reserved; both are always false.
	NeedsJS       bool
	HasPagination bool

	Hints Hints
}

// Hints holds what was learned from the URL itself.
type Hints struct {
	Domain       string   `json:"domain"`
	Path         string   `json:"path"`
	IsUniversity bool     `json:"is_university"`
	Keywords     []string `json:"faculty_keywords"`
}
