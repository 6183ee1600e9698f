package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/texdex"
	"github.com/fwojciec/texdex/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if deps.Crawler != nil {
		deps.Crawler.Progress = progressPrinter(deps.Stdout, deps.Stderr)
	}

	report, err := deps.Initialize(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", texdex.ErrorMessage(err))
		return err
	}

	printReport(deps.Stdout, report)
	return nil
}

// progressPrinter returns a progress callback that prints one line per
// finished or failed source.
func progressPrinter(stdout, stderr io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.SourceStarted:
			fmt.Fprintf(stdout, "[%d/%d] %s\n", event.Index+1, event.Total, event.Source)
		case crawl.SourceFailed:
			fmt.Fprintf(stderr, "  skip %s: %s\n", event.Source, texdex.ErrorMessage(event.Error))
		case crawl.SourceFinished:
			r := event.Report
			fmt.Fprintf(stdout, "  %d added, %d found, %d duplicates, %d rejected (%s)\n",
				r.Added, r.Found, r.Duplicates, r.Rejected, crawl.FormatBytes(r.Bytes))
		}
	}
}

// printReport prints the run summary.
func printReport(w io.Writer, report *texdex.Report) {
	failed := len(report.Failed())
	fmt.Fprintf(w, "Added %d records from %d sources", report.TotalAdded, len(report.Sources)-failed)
	if failed > 0 {
		fmt.Fprintf(w, " (%d failed)", failed)
	}
	fmt.Fprintln(w)
}
