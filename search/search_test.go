package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/texdex"
	"github.com/fwojciec/texdex/mock"
	"github.com/fwojciec/texdex/search"
	"github.com/fwojciec/texdex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService(t *testing.T, limit int, titles ...string) *search.Service {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	records := sqlite.NewRecordService(db)
	for i, title := range titles {
		_, err := records.InsertRecordIfAbsent(context.Background(), &texdex.Record{
			Title:  title,
			URL:    fmt.Sprintf("https://example.com/%d", i),
			Source: "Example",
		})
		require.NoError(t, err)
	}
	return search.NewService(records, limit)
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns matching records in store order", func(t *testing.T) {
		t.Parallel()

		svc := seededService(t, 50, "Red Brick Wall", "Blue Tile", "Red Sand")

		result, err := svc.Search(context.Background(), "Red")
		require.NoError(t, err)
		assert.Equal(t, "Red", result.Query)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "Red Brick Wall", result.Records[0].Title)
		assert.Equal(t, "Red Sand", result.Records[1].Title)
	})

	t.Run("lists records for an empty query", func(t *testing.T) {
		t.Parallel()

		svc := seededService(t, 50, "Red Brick Wall", "Blue Tile", "Red Sand")

		result, err := svc.Search(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, result.Records, 3)
	})

	t.Run("treats a whitespace query as empty", func(t *testing.T) {
		t.Parallel()

		svc := seededService(t, 50, "Red Brick Wall", "Blue Tile")

		result, err := svc.Search(context.Background(), "   ")
		require.NoError(t, err)
		assert.Empty(t, result.Query)
		assert.Len(t, result.Records, 2)
	})

	t.Run("trims surrounding whitespace from the query", func(t *testing.T) {
		t.Parallel()

		svc := seededService(t, 50, "Red Brick Wall", "Blue Tile")

		result, err := svc.Search(context.Background(), "  Blue ")
		require.NoError(t, err)
		assert.Equal(t, "Blue", result.Query)
		require.Len(t, result.Records, 1)
	})

	t.Run("returns an empty result when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := seededService(t, 50, "Red Brick Wall")

		result, err := svc.Search(context.Background(), "zzz")
		require.NoError(t, err)
		assert.NotNil(t, result.Records)
		assert.Empty(t, result.Records)
	})

	t.Run("caps results at the configured limit", func(t *testing.T) {
		t.Parallel()

		titles := make([]string, 10)
		for i := range titles {
			titles[i] = fmt.Sprintf("Texture %d", i)
		}
		svc := seededService(t, 3, titles...)

		result, err := svc.Search(context.Background(), "Texture")
		require.NoError(t, err)
		assert.Len(t, result.Records, 3)

		result, err = svc.Search(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, result.Records, 3)
	})

	t.Run("uses the default limit when none is configured", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		svc := &search.Service{
			Records: &mock.RecordService{
				ListRecordsFn: func(_ context.Context, limit int) ([]*texdex.Record, error) {
					gotLimit = limit
					return nil, nil
				},
			},
		}

		result, err := svc.Search(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, texdex.DefaultResultLimit, gotLimit)
		assert.NotNil(t, result.Records)
	})

	t.Run("surfaces storage errors", func(t *testing.T) {
		t.Parallel()

		svc := search.NewService(&mock.RecordService{
			SearchRecordsFn: func(_ context.Context, _ string, _ int) ([]*texdex.Record, error) {
				return nil, texdex.Errorf(texdex.EUNAVAILABLE, "database is closed")
			},
		}, 50)

		_, err := svc.Search(context.Background(), "Red")
		require.Error(t, err)
		assert.Equal(t, texdex.EUNAVAILABLE, texdex.ErrorCode(err))
	})
}

func TestService_Status(t *testing.T) {
	t.Parallel()

	t.Run("reports the number of indexed records", func(t *testing.T) {
		t.Parallel()

		svc := seededService(t, 50, "A", "B", "C")

		status, err := svc.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, status.IndexedEntries)
	})

	t.Run("surfaces EUNAVAILABLE unchanged", func(t *testing.T) {
		t.Parallel()

		svc := search.NewService(&mock.RecordService{
			CountRecordsFn: func(_ context.Context) (int, error) {
				return 0, texdex.Errorf(texdex.EUNAVAILABLE, "database is closed")
			},
		}, 50)

		_, err := svc.Status(context.Background())
		require.Error(t, err)
		assert.Equal(t, texdex.EUNAVAILABLE, texdex.ErrorCode(err))
	})
}
