package main

import (
	facdirhttp "github.com/fwojciec/facdir/http"
)

// Run executes the debug command.
func (c *DebugCmd) Run(deps *Dependencies) error {
	result := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	return writeJSON(deps.Stdout, facdirhttp.NewDebugResponse(c.URL, result))
}
