package main

import (
	"fmt"

	"github.com/fwojciec/facdir"
	facdirhttp "github.com/fwojciec/facdir/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := facdirhttp.NewServer()
	s.Addr = c.Addr
	s.Version = facdir.Version
	s.ScrapeService = deps.Scraper
	s.Fetcher = deps.Fetcher
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	return s.Close()
}
