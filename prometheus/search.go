package prometheus

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/texdex"
)

// Ensure SearchService implements texdex.SearchService.
var _ texdex.SearchService = (*SearchService)(nil)

// SearchService wraps a texdex.SearchService and records query metrics.
type SearchService struct {
	next    texdex.SearchService
	metrics *Metrics
}

// NewSearchService creates a new instrumented SearchService.
func NewSearchService(next texdex.SearchService, m *Metrics) *SearchService {
	return &SearchService{next: next, metrics: m}
}

// Search delegates to the wrapped service and records latency and hits.
func (s *SearchService) Search(ctx context.Context, query string) (*texdex.SearchResult, error) {
	kind := "search"
	if strings.TrimSpace(query) == "" {
		kind = "list"
	}

	begin := time.Now()
	result, err := s.next.Search(ctx, query)
	s.metrics.SearchDuration.Observe(time.Since(begin).Seconds())

	if err != nil {
		s.metrics.Searches.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	s.metrics.Searches.WithLabelValues(kind, "ok").Inc()
	s.metrics.SearchHits.Observe(float64(len(result.Records)))
	return result, nil
}

// Status delegates to the wrapped service and updates the indexed entries gauge.
func (s *SearchService) Status(ctx context.Context) (*texdex.Status, error) {
	status, err := s.next.Status(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.IndexedEntries.Set(float64(status.IndexedEntries))
	return status, nil
}
