package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/facdir"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := facdir.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facdir.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'facdir scrape --save' to record one.")
		return nil
	}

	for _, r := range runs {
		strategy := string(r.StrategyUsed)
		if strategy == "" {
			strategy = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-15s  %3d  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), strategy, r.TotalFound, r.SourceURL)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if facdir.ErrorCode(err) == facdir.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'facdir runs' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", facdir.ErrorMessage(err))
		}
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, run)
	}

	fmt.Fprintf(deps.Stdout, "Run %s (%s)\n", run.ID, run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Source: %s\n", run.SourceURL)
	fmt.Fprintln(deps.Stdout, run.Message)
	printRecords(deps.Stdout, run.Records)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return facdir.Errorf(facdir.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if facdir.ErrorCode(err) == facdir.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'facdir runs' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", facdir.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
