package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/facdir"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fetcher facdir.Fetcher
	Scraper facdir.ScrapeService
	Runs    facdir.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose        bool          `short:"v" help:"Enable debug logging"`
	DB             string        `name:"db" env:"FACDIR_DB" help:"Database path (default ~/.facdir/facdir.db)"`
	Timeout        time.Duration `default:"30s" env:"FACDIR_TIMEOUT" help:"Directory page fetch timeout"`
	ProfileTimeout time.Duration `default:"10s" env:"FACDIR_PROFILE_TIMEOUT" help:"Profile page fetch timeout"`
	Concurrency    int           `default:"5" env:"FACDIR_CONCURRENCY" help:"Concurrent profile fetch limit"`
	ProfileRPS     float64       `name:"profile-rps" default:"0" env:"FACDIR_PROFILE_RPS" help:"Profile fetches per second per host (0 for unlimited)"`

	Scrape ScrapeCmd `cmd:"" help:"Extract faculty records from a directory page"`
	Debug  DebugCmd  `cmd:"" help:"Fetch a page and describe it without extracting"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API"`
	Runs   RunsCmd   `cmd:"" help:"List saved scrape runs"`
	Show   ShowCmd   `cmd:"" help:"Show a saved run and its records"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved run"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Faculty directory URL"`
	Enrich bool   `short:"e" help:"Fetch profile pages to find missing emails"`
	Save   bool   `short:"s" help:"Save the result to run history"`
	JSON   bool   `name:"json" help:"Print the result envelope as JSON"`
}

// DebugCmd is the "debug" subcommand.
type DebugCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":5000" env:"FACDIR_ADDR" help:"Listen address"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `help:"Only runs for this source URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Run ID"`
	JSON bool   `name:"json" help:"Print the run as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
