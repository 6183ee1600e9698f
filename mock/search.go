package mock

import (
	"context"

	"github.com/fwojciec/texdex"
)

var _ texdex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of texdex.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string) (*texdex.SearchResult, error)
	StatusFn func(ctx context.Context) (*texdex.Status, error)
}

func (s *SearchService) Search(ctx context.Context, query string) (*texdex.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

func (s *SearchService) Status(ctx context.Context) (*texdex.Status, error) {
	return s.StatusFn(ctx)
}
