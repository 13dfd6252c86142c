package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/facdir"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ facdir.RunService = (*RunService)(nil)

// RunService implements facdir.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// fingerprint identifies a record within a run by its lower-cased name,
// email and profile URL.
func fingerprint(r facdir.Record) string {
	key := strings.ToLower(r.Name) + "\x00" + strings.ToLower(r.Email) + "\x00" + strings.ToLower(r.ProfileURL)
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

// CreateRun creates a run and its records in one transaction. Records
// sharing a fingerprint are stored once, at the position of the first.
func (s *RunService) CreateRun(ctx context.Context, run *facdir.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, strategy_used, success, total_found, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceURL, string(run.StrategyUsed), run.Success, run.TotalFound, run.Message,
		run.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	position := 0
	for _, rec := range run.Records {
		socials := rec.Socials
		if socials == nil {
			socials = []string{}
		}
		socialsJSON, err := json.Marshal(socials)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO records (id, run_id, position, name, title, email, email_status,
				profile_url, directory_url, socials, bio_snippet, fingerprint)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, position, rec.Name, rec.Title, rec.Email, string(rec.EmailStatus),
			rec.ProfileURL, rec.DirectoryURL, string(socialsJSON), rec.BioSnippet, fingerprint(rec))
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			position++
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its records in extraction order.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*facdir.Run, error) {
	var run facdir.Run
	var strategy, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, strategy_used, success, total_found, message, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SourceURL, &strategy, &run.Success, &run.TotalFound, &run.Message, &createdAt)

	if err == sql.ErrNoRows {
		return nil, facdir.Errorf(facdir.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.StrategyUsed = facdir.StrategyID(strategy)
	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if run.Records, err = s.findRecords(ctx, run.ID); err != nil {
		return nil, err
	}

	return &run, nil
}

func (s *RunService) findRecords(ctx context.Context, runID string) ([]facdir.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, title, email, email_status, profile_url, directory_url, socials, bio_snippet
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []facdir.Record{}
	for rows.Next() {
		var rec facdir.Record
		var status, socials string

		if err := rows.Scan(&rec.Name, &rec.Title, &rec.Email, &status, &rec.ProfileURL,
			&rec.DirectoryURL, &socials, &rec.BioSnippet); err != nil {
			return nil, err
		}

		rec.EmailStatus = facdir.EmailStatus(status)
		if err := json.Unmarshal([]byte(socials), &rec.Socials); err != nil {
			return nil, fmt.Errorf("failed to parse socials: %w", err)
		}
		if rec.Socials == nil {
			rec.Socials = []string{}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// FindRuns retrieves runs matching the filter, newest first. Records are
// not loaded.
func (s *RunService) FindRuns(ctx context.Context, filter facdir.RunFilter) ([]*facdir.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, strategy_used, success, total_found, message, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*facdir.Run
	for rows.Next() {
		var run facdir.Run
		var strategy, createdAt string

		if err := rows.Scan(&run.ID, &run.SourceURL, &strategy, &run.Success, &run.TotalFound,
			&run.Message, &createdAt); err != nil {
			return nil, err
		}

		run.StrategyUsed = facdir.StrategyID(strategy)
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run and its records.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return facdir.Errorf(facdir.ENOTFOUND, "run not found")
	}

	return nil
}
