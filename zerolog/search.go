package zerolog

import (
	"context"
	"time"

	"github.com/fwojciec/texdex"
	"github.com/rs/zerolog"
)

// Ensure LoggingSearchService implements texdex.SearchService.
var _ texdex.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   texdex.SearchService
	logger zerolog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next texdex.SearchService, logger zerolog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query.
func (s *LoggingSearchService) Search(ctx context.Context, query string) (result *texdex.SearchResult, err error) {
	defer func(begin time.Time) {
		ev := s.logger.Debug()
		if err != nil {
			ev = s.logger.Error().Err(err)
		}
		hits := 0
		if result != nil {
			hits = len(result.Records)
		}
		ev.Str("query", query).
			Int("hits", hits).
			Dur("duration", time.Since(begin)).
			Msg("search")
	}(time.Now())
	return s.next.Search(ctx, query)
}

// Status delegates to the wrapped service and logs failures.
func (s *LoggingSearchService) Status(ctx context.Context) (*texdex.Status, error) {
	status, err := s.next.Status(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("status")
	}
	return status, err
}
