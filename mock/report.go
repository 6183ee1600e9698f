package mock

import (
	"context"

	"github.com/fwojciec/texdex"
)

var (
	_ texdex.Ingester        = (*Ingester)(nil)
	_ texdex.ReportPublisher = (*ReportPublisher)(nil)
)

// Ingester is a mock implementation of texdex.Ingester.
type Ingester struct {
	IngestFn func(ctx context.Context, sources []*texdex.Source) (*texdex.Report, error)
}

func (i *Ingester) Ingest(ctx context.Context, sources []*texdex.Source) (*texdex.Report, error) {
	return i.IngestFn(ctx, sources)
}

// ReportPublisher is a mock implementation of texdex.ReportPublisher.
type ReportPublisher struct {
	PublishReportFn func(ctx context.Context, report *texdex.Report) error
}

func (p *ReportPublisher) PublishReport(ctx context.Context, report *texdex.Report) error {
	return p.PublishReportFn(ctx, report)
}
