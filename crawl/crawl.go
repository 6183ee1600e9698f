// Package crawl provides catalog ingestion orchestration.
// It coordinates fetching, extraction, validation, and storage of records
// for each configured source.
package crawl

import (
	"context"

	"github.com/fwojciec/texdex"
	"github.com/google/uuid"
)

// Ensure Crawler implements texdex.Ingester at compile time.
var _ texdex.Ingester = (*Crawler)(nil)

// Crawler runs ingestion over a list of sources, one source at a time.
type Crawler struct {
	Fetcher   texdex.Fetcher
	Extractor texdex.Extractor
	Records   texdex.RecordService

	// Publisher, if set, receives the finished report. Publication errors
	// do not affect the run.
	Publisher texdex.ReportPublisher

	// Progress, if set, receives an event as each source starts and ends.
	Progress ProgressFunc
}

// ProgressEvent reports progress during an ingestion run.
type ProgressEvent struct {
	Type   ProgressType
	Source string
	Index  int
	Total  int
	Report *texdex.SourceReport
	Error  error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	SourceStarted ProgressType = iota
	SourceFailed
	SourceFinished
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// Ingest fetches and extracts every source in order and stores the valid
// candidates. A source that cannot be fetched or parsed is recorded in the
// report and skipped. If the record store becomes unavailable the current
// source's batch is rolled back and the run stops; the partial report is
// returned together with the error.
func (c *Crawler) Ingest(ctx context.Context, sources []*texdex.Source) (*texdex.Report, error) {
	report := &texdex.Report{
		RunID:   uuid.NewString(),
		Sources: make([]*texdex.SourceReport, 0, len(sources)),
	}

	for i, src := range sources {
		c.notify(ProgressEvent{Type: SourceStarted, Source: src.Name, Index: i, Total: len(sources)})

		sr, err := c.ingestSource(ctx, src)
		report.Sources = append(report.Sources, sr)
		report.TotalAdded += sr.Added
		if err != nil {
			c.notify(ProgressEvent{Type: SourceFailed, Source: src.Name, Index: i, Total: len(sources), Report: sr, Error: err})
			return report, err
		}

		if sr.Err != nil {
			c.notify(ProgressEvent{Type: SourceFailed, Source: src.Name, Index: i, Total: len(sources), Report: sr, Error: sr.Err})
			continue
		}
		c.notify(ProgressEvent{Type: SourceFinished, Source: src.Name, Index: i, Total: len(sources), Report: sr})
	}

	if c.Publisher != nil {
		// Publisher decorators log failures.
		_ = c.Publisher.PublishReport(ctx, report)
	}

	return report, nil
}

// ingestSource processes one source. Source-level failures are recorded on
// the returned report; the error return is reserved for failures that must
// abort the run.
func (c *Crawler) ingestSource(ctx context.Context, src *texdex.Source) (*texdex.SourceReport, error) {
	sr := &texdex.SourceReport{Name: src.Name}

	if err := src.Validate(); err != nil {
		sr.Err = err
		return sr, nil
	}

	body, err := c.Fetcher.Fetch(ctx, src.Endpoint)
	if err != nil {
		if ctx.Err() != nil {
			sr.Err = ctx.Err()
			return sr, ctx.Err()
		}
		if texdex.ErrorCode(err) != texdex.EFETCH {
			err = texdex.WrapError(texdex.EFETCH, err, "failed to fetch %s", src.Endpoint)
		}
		sr.Err = err
		return sr, nil
	}
	sr.Bytes = len(body)
	sr.BodyHash = ComputeHash(body)

	candidates, err := c.Extractor.Extract(body, src)
	if err != nil {
		sr.Err = err
		return sr, nil
	}

	batch, err := c.Records.BeginBatch(ctx)
	if err != nil {
		sr.Err = err
		return sr, err
	}

	abort := func(err error) (*texdex.SourceReport, error) {
		_ = batch.Rollback()
		sr.Added = 0
		sr.Err = err
		return sr, err
	}

	for cand := range candidates {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}

		sr.Found++
		if cand.Err != nil {
			sr.Rejected++
			continue
		}

		rec := &texdex.Record{Title: cand.Title, URL: cand.URL, Source: src.Name}
		if err := rec.Validate(); err != nil {
			sr.Rejected++
			continue
		}

		added, err := batch.InsertRecordIfAbsent(ctx, rec)
		switch {
		case texdex.IsUnavailable(err):
			return abort(err)
		case err != nil:
			sr.Rejected++
		case added:
			sr.Added++
		default:
			sr.Duplicates++
		}
	}

	if err := batch.Commit(); err != nil {
		return abort(err)
	}

	return sr, nil
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
