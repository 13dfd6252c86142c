package facdir

// StrategyID identifies an extraction strategy.
type StrategyID string

// Known extraction strategies.
const (
	StrategyJSONLD         StrategyID = "json_ld"
	StrategyDirectoryTable StrategyID = "directory_table"
	StrategyFacultyGeneric StrategyID = "faculty_generic"
)

// DefaultStrategies is the order tried when a URL carries no hints.
func DefaultStrategies() []StrategyID {
	return []StrategyID{StrategyJSONLD, StrategyDirectoryTable, StrategyFacultyGeneric}
}

// Enrichment records the outcome of a profile page lookup for a candidate.
type Enrichment int

const (
	EnrichmentNone Enrichment = iota
	EnrichmentFound
	EnrichmentFailed
)

// Diagnostics describes how a candidate was produced.
type Diagnostics struct {
	Strategy   StrategyID
	Confidence float64
}

// Candidate is an unvalidated person record produced by a strategy.
// Strategies never emit a candidate whose trimmed Name is empty.
type Candidate struct {
	Name         string
	Title        string
	Email        string // Raw; may carry a mailto: prefix.
	ProfileURL   string // Absolute or relative.
	DirectoryURL string
	Socials      []string
	Bio          string
	Diagnostics  *Diagnostics
	Enrichment   Enrichment
}

// Strategy extracts candidates from a fetched HTML document.
// Implementations are total: parse failures yield no candidates, never an
// error or a panic.
type Strategy interface {
	// ID returns the strategy's identifier.
	ID() StrategyID

	// Extract parses html and returns every candidate found.
	// The sourceURL is used to resolve relative links.
	Extract(html string, sourceURL string) []Candidate
}
