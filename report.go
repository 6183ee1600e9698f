package texdex

import "context"

// SourceReport holds the outcome of ingesting one source.
type SourceReport struct {
	Name string `json:"name"`

	// Added is the number of records newly created from this source.
	Added int `json:"added"`

	// Found is the number of candidates extracted from the page.
	Found int `json:"found"`

	// Rejected counts candidates dropped for a failed rule, a blank title,
	// or a missing or relative URL.
	Rejected int `json:"rejected"`

	// Duplicates counts valid candidates whose URL was already stored.
	Duplicates int `json:"duplicates"`

	// Bytes and BodyHash describe the fetched page.
	Bytes    int    `json:"bytes"`
	BodyHash string `json:"bodyHash,omitempty"`

	// Err is set when the source could not be fetched or parsed.
	Err error `json:"-"`
}

// Report holds the outcome of one ingestion run.
type Report struct {
	RunID      string          `json:"runId"`
	Sources    []*SourceReport `json:"sources"`
	TotalAdded int             `json:"totalAdded"`
}

// Source returns the report for the named source, or nil.
func (r *Report) Source(name string) *SourceReport {
	for _, s := range r.Sources {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Added returns the number of records added from the named source.
func (r *Report) Added(name string) int {
	if s := r.Source(name); s != nil {
		return s.Added
	}
	return 0
}

// Err returns the error recorded for the named source, if any.
func (r *Report) Err(name string) error {
	if s := r.Source(name); s != nil {
		return s.Err
	}
	return nil
}

// Failed returns the reports of sources that recorded an error.
func (r *Report) Failed() []*SourceReport {
	var failed []*SourceReport
	for _, s := range r.Sources {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Ingester runs the fetch, extract, validate and store pipeline.
type Ingester interface {
	// Ingest processes every source in order. Per-source failures are
	// recorded in the report; a returned error means the run was aborted,
	// for example because the record store became unavailable.
	Ingest(ctx context.Context, sources []*Source) (*Report, error)
}

// ReportPublisher announces finished ingestion runs to other systems.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *Report) error
}
