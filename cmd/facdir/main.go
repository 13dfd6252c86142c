package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/facdir"
	"github.com/fwojciec/facdir/goquery"
	facdirhttp "github.com/fwojciec/facdir/http"
	"github.com/fwojciec/facdir/scrape"
	facslog "github.com/fwojciec/facdir/slog"
	"github.com/fwojciec/facdir/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path, used when neither --db nor FACDIR_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher. Used for end-to-end testing.
	Fetcher facdir.Fetcher

	// Runs is wired once the database is open.
	Runs facdir.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("facdir"),
		kong.Description("Extract faculty records from university directory pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'facdir --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if needsDB(cmd, cli) {
		path := cli.DB
		if path == "" {
			path = m.DBPath
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FACDIR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()

		m.Runs = sqlite.NewRunService(m.DB)
		deps.Runs = m.Runs
	}

	var fetcher facdir.Fetcher = facdirhttp.NewFetcher(facdirhttp.WithTimeout(cli.Timeout))
	if m.Fetcher != nil {
		fetcher = m.Fetcher
	}
	deps.Fetcher = facslog.NewLoggingFetcher(fetcher, deps.Logger)

	if cmd == "scrape" || cmd == "serve" {
		deps.Scraper = facslog.NewLoggingScrapeService(m.newScraper(cli, deps), deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) newScraper(cli *CLI, deps *Dependencies) *scrape.Scraper {
	var strategies []facdir.Strategy
	for _, s := range []facdir.Strategy{
		goquery.NewJSONLDStrategy(),
		goquery.NewTableStrategy(),
		goquery.NewCardStrategy(),
	} {
		strategies = append(strategies, facslog.NewLoggingStrategy(s, deps.Logger))
	}

	scraper := scrape.NewScraper(deps.Fetcher, strategies...)
	scraper.Logger = deps.Logger
	scraper.Dispatcher.WithLogger(deps.Logger)
	scraper.Enricher.Concurrency = cli.Concurrency
	scraper.Enricher.Timeout = cli.ProfileTimeout
	scraper.Enricher.Logger = deps.Logger
	if cli.ProfileRPS > 0 {
		scraper.Enricher.Limiter = scrape.NewDomainLimiter(cli.ProfileRPS)
	}
	if m.Runs != nil {
		scraper.Runs = m.Runs
	}
	return scraper
}

// needsDB reports whether cmd reads or writes run history.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "runs", "show", "delete", "serve":
		return true
	case "scrape":
		return cli.Scrape.Save
	}
	return false
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "facdir.db"
	}
	dir := filepath.Join(home, ".facdir")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "facdir.db")
}
