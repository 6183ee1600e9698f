package main

import (
	"context"
	"io"

	"github.com/fwojciec/texdex"
	"github.com/fwojciec/texdex/crawl"
	texdexprom "github.com/fwojciec/texdex/prometheus"
	"github.com/rs/zerolog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *Config
	Logger   zerolog.Logger
	Sources  []*texdex.Source
	Records  texdex.RecordService
	Crawler  *crawl.Crawler
	Ingester texdex.Ingester
	Search   texdex.SearchService
	Metrics  *texdexprom.Metrics

	// NewSearch builds a search service with the same caching, logging and
	// metrics as Search but a different result cap.
	NewSearch func(limit int) texdex.SearchService
}

// Initialize runs ingestion over the configured sources. Sources that fail
// are reported on the returned report; an error means the run was aborted.
func (d *Dependencies) Initialize(ctx context.Context) (*texdex.Report, error) {
	return d.Ingester.Ingest(ctx, d.Sources)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Crawl all sources, then serve the search page"`
	Crawl   CrawlCmd   `cmd:"" help:"Crawl all sources once and print a report"`
	Search  SearchCmd  `cmd:"" help:"Search indexed titles"`
	Status  StatusCmd  `cmd:"" help:"Show the number of indexed entries"`
	Sources SourcesCmd `cmd:"" help:"List the configured sources"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `help:"Listen address (defaults to TEXDEX_ADDR)"`
	SkipCrawl bool   `name:"skip-crawl" help:"Serve the existing index without crawling first"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" optional:"" help:"Title substring; omit to list records"`
	Limit int    `short:"n" help:"Maximum results (defaults to TEXDEX_RESULT_LIMIT)"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	YAML bool `name:"yaml" help:"Print the registry as YAML"`
}
