package texdex

import (
	"context"
	"net/url"
	"strings"
)

// Record represents a single indexed catalog item.
type Record struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return Errorf(EINVALID, "record title required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if !IsAbsoluteURL(r.URL) {
		return Errorf(EINVALID, "record URL must be absolute: %q", r.URL)
	}
	if r.Source == "" {
		return Errorf(EINVALID, "record source required")
	}
	return nil
}

// IsAbsoluteURL reports whether s is an absolute http or https URL with a host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return u.Host != ""
}

// RecordService represents a service for storing and querying records.
type RecordService interface {
	// InsertRecordIfAbsent stores the record unless a record with the same
	// URL already exists. Reports whether a new record was created; on
	// creation the record's ID is set.
	InsertRecordIfAbsent(ctx context.Context, r *Record) (bool, error)

	// BeginBatch starts a batch of insertions that become visible together
	// on Commit.
	BeginBatch(ctx context.Context) (RecordBatch, error)

	// ListRecords returns up to limit records in insertion order.
	ListRecords(ctx context.Context, limit int) ([]*Record, error)

	// SearchRecords returns up to limit records whose title contains term,
	// in insertion order. Returns EINVALID for an empty term. Unless the
	// implementation is configured for case-sensitive matching, case is
	// folded for ASCII letters only: "éclat" does not match "Éclat".
	SearchRecords(ctx context.Context, term string, limit int) ([]*Record, error)

	// CountRecords returns the total number of stored records.
	CountRecords(ctx context.Context) (int, error)
}

// RecordBatch groups insertions into a single unit of work.
// Exactly one of Commit or Rollback must be called.
type RecordBatch interface {
	InsertRecordIfAbsent(ctx context.Context, r *Record) (bool, error)
	Commit() error
	Rollback() error
}
