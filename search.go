package texdex

import "context"

// SearchResult holds the records answering one query.
// An empty Query means the result is the unfiltered listing.
type SearchResult struct {
	Query   string    `json:"query"`
	Records []*Record `json:"records"`
}

// Status reports the size of the record store.
type Status struct {
	IndexedEntries int `json:"indexed_entries"`
}

// SearchService answers listing, search, and status requests.
type SearchService interface {
	// Search returns the unfiltered listing for an empty query and the
	// records whose titles contain query otherwise. No results is not an error.
	Search(ctx context.Context, query string) (*SearchResult, error)

	// Status returns the number of indexed records.
	Status(ctx context.Context) (*Status, error)
}
