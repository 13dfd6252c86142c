package facdir

import (
	"context"
	"time"
)

// Run is a persisted scrape result.
type Run struct {
	ID           string     `json:"id"`
	SourceURL    string     `json:"sourceUrl"`
	StrategyUsed StrategyID `json:"strategyUsed"`
	Success      bool       `json:"success"`
	TotalFound   int        `json:"totalFound"`
	Message      string     `json:"message"`
	Records      []Record   `json:"records"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	for i := range r.Records {
		if r.Records[i].Name == "" {
			return Errorf(EINVALID, "record %d name required", i)
		}
		if !r.Records[i].EmailStatus.Valid() {
			return Errorf(EINVALID, "record %d has unknown email status %q", i, r.Records[i].EmailStatus)
		}
	}
	return nil
}

// RunService represents a service for managing scrape runs.
type RunService interface {
	// CreateRun persists a run and its records.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its records.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, without records.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its records.
	// Returns ENOTFOUND if run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
