package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Pipeline *crawl.Pipeline
}

// CLI defines the command-line interface structure for Kong. URLs come from
// --urls, positional arguments, or an interactive prompt when neither is
// given.
type CLI struct {
	Args         []string      `arg:"" optional:"" name:"url" help:"URLs to scrape"`
	URLs         []string      `short:"u" name:"urls" sep:"none" env:"HARVEST_URLS" help:"URL to scrape (repeatable)"`
	Output       string        `short:"o" default:"${default_output}" env:"HARVEST_OUTPUT" help:"Output file (${default_output} if unset); .db, .sqlite or .sqlite3 writes to SQLite"`
	Verbose      bool          `short:"v" env:"HARVEST_VERBOSE" help:"Log every request and stage, and print a failure report"`
	Concurrency  int           `short:"c" default:"10" env:"HARVEST_CONCURRENCY" help:"URLs processed at once"`
	ProbeTimeout time.Duration `default:"10s" env:"HARVEST_PROBE_TIMEOUT" help:"Liveness probe timeout"`
	FetchTimeout time.Duration `default:"15s" env:"HARVEST_FETCH_TIMEOUT" help:"Page fetch timeout"`
	Attempts     int           `default:"3" env:"HARVEST_ATTEMPTS" help:"Fetch attempts for transient failures"`
}
