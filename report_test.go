package texdex_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/texdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	fetchErr := texdex.Errorf(texdex.EFETCH, "HTTP 503")
	report := &texdex.Report{
		Sources: []*texdex.SourceReport{
			{Name: "A", Err: fetchErr},
			{Name: "B", Added: 4, Found: 5},
		},
		TotalAdded: 4,
	}

	t.Run("looks up per-source counts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, report.Added("A"))
		assert.Equal(t, 4, report.Added("B"))
		assert.Equal(t, 0, report.Added("missing"))
		assert.Nil(t, report.Source("missing"))
	})

	t.Run("looks up per-source errors", func(t *testing.T) {
		t.Parallel()

		assert.True(t, errors.Is(report.Err("A"), fetchErr))
		assert.NoError(t, report.Err("B"))
		assert.NoError(t, report.Err("missing"))
	})

	t.Run("lists failed sources", func(t *testing.T) {
		t.Parallel()

		failed := report.Failed()
		require.Len(t, failed, 1)
		assert.Equal(t, "A", failed[0].Name)
	})
}
