package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/facdir"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result := deps.Scraper.Scrape(deps.Ctx, facdir.ScrapeRequest{
		URL:            c.URL,
		EnrichProfiles: c.Enrich,
		Save:           c.Save,
	})

	if c.JSON {
		if err := writeJSON(deps.Stdout, result); err != nil {
			return err
		}
	} else {
		printRecords(deps.Stdout, result.Items)
		fmt.Fprintln(deps.Stdout, result.Message)
		if result.RunID != "" {
			fmt.Fprintf(deps.Stdout, "Saved run %s\n", result.RunID)
		}
	}

	if !result.Success {
		fmt.Fprintf(deps.Stderr, "error: %s\n", result.Message)
		return fmt.Errorf("no faculty records extracted from %s", c.URL)
	}
	return nil
}

// printRecords writes one line per record.
func printRecords(w io.Writer, records []facdir.Record) {
	for _, r := range records {
		line := r.Name
		if r.Title != "" {
			line += "  " + r.Title
		}
		if r.Email != "" {
			line += "  " + r.Email
		}
		line += fmt.Sprintf("  [%s]", r.EmailStatus)
		if r.ProfileURL != "" {
			line += "  " + r.ProfileURL
		}
		fmt.Fprintln(w, line)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
