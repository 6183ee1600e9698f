// Package search implements the query engine and status reporter on top of a
// texdex.RecordService.
package search

import (
	"context"
	"strings"

	"github.com/fwojciec/texdex"
)

// Ensure Service implements texdex.SearchService at compile time.
var _ texdex.SearchService = (*Service)(nil)

// Service answers title queries and status requests.
type Service struct {
	Records texdex.RecordService

	// Limit caps the number of records returned. Non-positive values use
	// texdex.DefaultResultLimit.
	Limit int
}

// NewService creates a Service with the given result cap.
func NewService(records texdex.RecordService, limit int) *Service {
	return &Service{Records: records, Limit: limit}
}

// Search returns the first records in store order when query is blank and
// the records whose titles contain the trimmed query otherwise.
func (s *Service) Search(ctx context.Context, query string) (*texdex.SearchResult, error) {
	query = strings.TrimSpace(query)

	var records []*texdex.Record
	var err error
	if query == "" {
		records, err = s.Records.ListRecords(ctx, s.limit())
	} else {
		records, err = s.Records.SearchRecords(ctx, query, s.limit())
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*texdex.Record{}
	}

	return &texdex.SearchResult{Query: query, Records: records}, nil
}

// Status returns the number of indexed records.
func (s *Service) Status(ctx context.Context) (*texdex.Status, error) {
	n, err := s.Records.CountRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &texdex.Status{IndexedEntries: n}, nil
}

func (s *Service) limit() int {
	if s.Limit <= 0 {
		return texdex.DefaultResultLimit
	}
	return s.Limit
}
