package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/texdex"
	main "github.com/fwojciec/texdex/cmd/texdex"
	"github.com/fwojciec/texdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the run summary", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Sources = []*texdex.Source{{Name: "A"}, {Name: "B"}}
		deps.Ingester = &mock.Ingester{
			IngestFn: func(ctx context.Context, sources []*texdex.Source) (*texdex.Report, error) {
				assert.Len(t, sources, 2)
				return &texdex.Report{
					Sources: []*texdex.SourceReport{
						{Name: "A", Added: 4},
						{Name: "B", Err: texdex.Errorf(texdex.EFETCH, "HTTP 500")},
					},
					TotalAdded: 4,
				}, nil
			},
		}

		cmd := &main.CrawlCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "Added 4 records from 1 sources (1 failed)\n", stdout.String())
	})

	t.Run("returns error when the run aborts", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Ingester = &mock.Ingester{
			IngestFn: func(ctx context.Context, sources []*texdex.Source) (*texdex.Report, error) {
				return &texdex.Report{}, texdex.Errorf(texdex.EUNAVAILABLE, "database is locked")
			},
		}

		cmd := &main.CrawlCmd{}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, texdex.EUNAVAILABLE, texdex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "database is locked")
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints one line per record", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Search = &mock.SearchService{
			SearchFn: func(ctx context.Context, query string) (*texdex.SearchResult, error) {
				assert.Equal(t, "red", query)
				return &texdex.SearchResult{
					Query: query,
					Records: []*texdex.Record{
						{Title: "Red Brick", URL: "https://a.example.com/1", Source: "A"},
						{Title: "Red Sand", URL: "https://b.example.com/2", Source: "B"},
					},
				}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "red"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t,
			"Red Brick  https://a.example.com/1  (A)\nRed Sand  https://b.example.com/2  (B)\n",
			stdout.String())
	})

	t.Run("prints a notice when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Search = &mock.SearchService{
			SearchFn: func(ctx context.Context, query string) (*texdex.SearchResult, error) {
				return &texdex.SearchResult{Query: query, Records: []*texdex.Record{}}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "zzz"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "No results found.\n", stdout.String())
	})

	t.Run("limit flag builds a search service with that cap", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Search = &mock.SearchService{
			SearchFn: func(ctx context.Context, query string) (*texdex.SearchResult, error) {
				t.Fatal("default search service should not be used")
				return nil, nil
			},
		}
		var gotLimit int
		deps.NewSearch = func(limit int) texdex.SearchService {
			gotLimit = limit
			return &mock.SearchService{
				SearchFn: func(ctx context.Context, query string) (*texdex.SearchResult, error) {
					assert.Equal(t, "red", query)
					return &texdex.SearchResult{
						Query:   query,
						Records: []*texdex.Record{{Title: "Red", URL: "https://a.example.com/r", Source: "A"}},
					}, nil
				},
			}
		}

		cmd := &main.SearchCmd{Query: "red", Limit: 3}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, 3, gotLimit)
		assert.Equal(t, "Red  https://a.example.com/r  (A)\n", stdout.String())
	})

	t.Run("returns error when search fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Search = &mock.SearchService{
			SearchFn: func(ctx context.Context, query string) (*texdex.SearchResult, error) {
				return nil, texdex.Errorf(texdex.EUNAVAILABLE, "store offline")
			},
		}

		cmd := &main.SearchCmd{Query: "red"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "store offline")
	})
}

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the indexed entry count", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Search = &mock.SearchService{
			StatusFn: func(ctx context.Context) (*texdex.Status, error) {
				return &texdex.Status{IndexedEntries: 42}, nil
			},
		}

		cmd := &main.StatusCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "Indexed entries: 42\n", stdout.String())
	})

	t.Run("returns error when status fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Search = &mock.SearchService{
			StatusFn: func(ctx context.Context) (*texdex.Status, error) {
				return nil, texdex.Errorf(texdex.EINTERNAL, "boom")
			},
		}

		cmd := &main.StatusCmd{}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "boom")
	})
}

func TestSourcesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists names and endpoints", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Sources = []*texdex.Source{
			{Name: "A", Endpoint: "https://a.example.com/list"},
			{Name: "B", Endpoint: "https://b.example.com/list"},
		}

		cmd := &main.SourcesCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "A  https://a.example.com/list\nB  https://b.example.com/list\n", stdout.String())
	})
}
