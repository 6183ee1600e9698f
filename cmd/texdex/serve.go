package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/texdex"
	texdexhttp "github.com/fwojciec/texdex/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. Ingestion completes before the server
// starts listening; the server stops on SIGINT, SIGTERM, or when the
// context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.SkipCrawl {
		if deps.Crawler != nil {
			deps.Crawler.Progress = progressPrinter(deps.Stdout, deps.Stderr)
		}
		report, err := deps.Initialize(ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", texdex.ErrorMessage(err))
			return err
		}
		printReport(deps.Stdout, report)
	}

	server := texdexhttp.NewServer()
	server.Addr = c.Addr
	if server.Addr == "" && deps.Config != nil {
		server.Addr = deps.Config.Addr
	}
	server.SearchService = deps.Search
	server.Logger = deps.Logger
	if deps.Metrics != nil {
		server.Observer = deps.Metrics
		server.MetricsHandler = deps.Metrics.Handler()
	}

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", server.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Prime the indexed entries gauge before the first scrape.
		if _, err := deps.Search.Status(gctx); err != nil {
			deps.Logger.Warn().Err(err).Msg("status check failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return server.Close()
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
