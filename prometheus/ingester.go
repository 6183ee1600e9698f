package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/texdex"
)

// Ensure Ingester implements texdex.Ingester.
var _ texdex.Ingester = (*Ingester)(nil)

// Ingester wraps a texdex.Ingester and records run and per-source metrics.
type Ingester struct {
	next    texdex.Ingester
	metrics *Metrics
}

// NewIngester creates a new instrumented Ingester.
func NewIngester(next texdex.Ingester, m *Metrics) *Ingester {
	return &Ingester{next: next, metrics: m}
}

// Ingest delegates to the wrapped ingester and records the report.
func (i *Ingester) Ingest(ctx context.Context, sources []*texdex.Source) (*texdex.Report, error) {
	begin := time.Now()
	report, err := i.next.Ingest(ctx, sources)
	i.metrics.IngestDuration.Observe(time.Since(begin).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "aborted"
	}
	i.metrics.IngestRuns.WithLabelValues(outcome).Inc()

	if report != nil {
		for _, s := range report.Sources {
			i.metrics.RecordsAdded.WithLabelValues(s.Name).Add(float64(s.Added))
			i.metrics.Candidates.WithLabelValues(s.Name, "added").Add(float64(s.Added))
			i.metrics.Candidates.WithLabelValues(s.Name, "duplicate").Add(float64(s.Duplicates))
			i.metrics.Candidates.WithLabelValues(s.Name, "rejected").Add(float64(s.Rejected))
			if s.Err != nil {
				i.metrics.SourceFailures.WithLabelValues(s.Name, texdex.ErrorCode(s.Err)).Inc()
			}
		}
	}

	return report, err
}
