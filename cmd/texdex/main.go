package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/texdex"
	"github.com/fwojciec/texdex/crawl"
	"github.com/fwojciec/texdex/goquery"
	texdexhttp "github.com/fwojciec/texdex/http"
	texdexmemcache "github.com/fwojciec/texdex/memcache"
	texdexprom "github.com/fwojciec/texdex/prometheus"
	texdexredis "github.com/fwojciec/texdex/redis"
	"github.com/fwojciec/texdex/search"
	"github.com/fwojciec/texdex/sqlite"
	texdexyaml "github.com/fwojciec/texdex/yaml"
	texdexzerolog "github.com/fwojciec/texdex/zerolog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded from the environment by Run when nil.
	Config *Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	for i := len(m.closers) - 1; i >= 0; i-- {
		_ = m.closers[i].Close()
	}
	m.closers = nil

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
		kong.Name("texdex"),
		kong.Description("Crawl texture catalogs and search their titles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'texdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Config == nil {
		if m.Config, err = LoadConfig(); err != nil {
			return err
		}
	} else if err := m.Config.Validate(); err != nil {
		return err
	}

	defer m.Close()
	if err := m.wire(deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire opens the database and builds the service graph described by Config.
func (m *Main) wire(deps *Dependencies) error {
	cfg := m.Config
	deps.Config = cfg

	logger, err := texdexzerolog.NewLogger(deps.Stderr, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid TEXDEX_LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	deps.Logger = logger

	deps.Sources = texdex.DefaultSources()
	if cfg.Sources != "" {
		if deps.Sources, err = texdexyaml.LoadSourcesFile(cfg.Sources); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: TEXDEX_SOURCES must name a YAML source registry")
			return err
		}
	}

	m.DB = sqlite.NewDB(cfg.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set TEXDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DB, err)
	}

	records := sqlite.NewRecordService(m.DB, sqlite.WithCaseSensitive(cfg.CaseSensitive))
	deps.Records = records

	fetcher := texdexhttp.NewFetcher(
		texdexhttp.WithTimeout(cfg.FetchTimeout),
		texdexhttp.WithUserAgent(cfg.UserAgent),
	)
	m.closers = append(m.closers, fetcher)

	deps.Crawler = &crawl.Crawler{
		Fetcher:   texdexzerolog.NewLoggingFetcher(fetcher, logger),
		Extractor: goquery.NewExtractor(),
		Records:   records,
	}

	if cfg.RedisAddr != "" {
		publisher := texdexredis.NewPublisher(cfg.RedisAddr, cfg.RedisStream)
		m.closers = append(m.closers, publisher)
		deps.Crawler.Publisher = texdexzerolog.NewLoggingReportPublisher(publisher, logger)
	}

	var ingester texdex.Ingester = texdexzerolog.NewLoggingIngester(deps.Crawler, logger)
	if cfg.Metrics {
		deps.Metrics = texdexprom.NewMetrics()
		ingester = texdexprom.NewIngester(ingester, deps.Metrics)
	}
	deps.Ingester = ingester

	var cache texdexmemcache.Client
	if cfg.MemcacheAddr != "" {
		cache = texdexmemcache.NewClient(cfg.MemcacheAddr)
	}

	deps.NewSearch = func(limit int) texdex.SearchService {
		var svc texdex.SearchService = search.NewService(records, limit)
		if cache != nil {
			svc = texdexmemcache.NewSearchService(svc, cache, cfg.CacheTTL,
				texdexmemcache.WithNamespace(strconv.Itoa(limit)))
		}
		svc = texdexzerolog.NewLoggingSearchService(svc, logger)
		if deps.Metrics != nil {
			svc = texdexprom.NewSearchService(svc, deps.Metrics)
		}
		return svc
	}
	deps.Search = deps.NewSearch(cfg.ResultLimit)
	return nil
}
