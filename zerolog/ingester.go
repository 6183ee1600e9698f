package zerolog

import (
	"context"
	"time"

	"github.com/fwojciec/texdex"
	"github.com/rs/zerolog"
)

// Ensure LoggingIngester implements texdex.Ingester.
var _ texdex.Ingester = (*LoggingIngester)(nil)

// LoggingIngester wraps an Ingester and logs a line per source plus a run
// summary.
type LoggingIngester struct {
	next   texdex.Ingester
	logger zerolog.Logger
}

// NewLoggingIngester creates a new LoggingIngester.
func NewLoggingIngester(next texdex.Ingester, logger zerolog.Logger) *LoggingIngester {
	return &LoggingIngester{next: next, logger: logger}
}

// Ingest delegates to the wrapped ingester and logs the report.
func (i *LoggingIngester) Ingest(ctx context.Context, sources []*texdex.Source) (report *texdex.Report, err error) {
	defer func(begin time.Time) {
		if report != nil {
			for _, s := range report.Sources {
				ev := i.logger.Info()
				if s.Err != nil {
					ev = i.logger.Warn().Err(s.Err)
				}
				ev.Str("run_id", report.RunID).
					Str("source", s.Name).
					Int("added", s.Added).
					Int("found", s.Found).
					Int("rejected", s.Rejected).
					Int("duplicates", s.Duplicates).
					Msg("source ingested")
			}
		}

		ev := i.logger.Info()
		if err != nil {
			ev = i.logger.Error().Err(err)
		}
		if report != nil {
			ev = ev.Str("run_id", report.RunID).
				Int("total_added", report.TotalAdded).
				Int("failed_sources", len(report.Failed()))
		}
		ev.Int("sources", len(sources)).
			Dur("duration", time.Since(begin)).
			Msg("ingestion finished")
	}(time.Now())
	return i.next.Ingest(ctx, sources)
}
