package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/goquery"
	harvesthttp "github.com/fwojciec/harvest/http"
	harvestslog "github.com/fwojciec/harvest/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// .env is optional; HARVEST_* variables supply flag defaults.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, harvest.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil fields use the HTTP and goquery
	// implementations.
	Checker   harvest.LivenessChecker
	Fetcher   harvest.Fetcher
	Extractor harvest.Extractor
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Scrape headings and paragraphs from web pages into a table."),
		kong.Writers(stdout, stderr),
		kong.Vars{"default_output": fs.DefaultOutput},
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Probe and fetch share one connection pool.
	transport := harvesthttp.NewTransport(cli.Concurrency)
	defer transport.CloseIdleConnections()

	var checker harvest.LivenessChecker = harvesthttp.NewChecker(
		harvesthttp.WithTimeout(cli.ProbeTimeout),
		harvesthttp.WithTransport(transport),
	)
	if m.Checker != nil {
		checker = m.Checker
	}
	var fetcher harvest.Fetcher = harvesthttp.NewFetcher(
		harvesthttp.WithTimeout(cli.FetchTimeout),
		harvesthttp.WithTransport(transport),
	)
	if m.Fetcher != nil {
		fetcher = m.Fetcher
	}
	var extractor harvest.Extractor = goquery.NewExtractor()
	if m.Extractor != nil {
		extractor = m.Extractor
	}

	if cli.Verbose {
		checker = harvestslog.NewLoggingChecker(checker, deps.Logger)
		fetcher = harvestslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	retry := crawl.DefaultRetryConfig()
	retry.MaxAttempts = cli.Attempts

	deps.Pipeline = &crawl.Pipeline{
		Checker:     checker,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Concurrency: cli.Concurrency,
		Retry:       retry,
		Verbose:     cli.Verbose,
		Events:      harvestslog.NewEventLogger(deps.Logger).Log,
	}

	return cli.Run(deps)
}
