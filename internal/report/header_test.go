package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	t.Run("single metric with trailing unmarked category", func(t *testing.T) {
		// "B" never receives an n marker, so it is not a metric.
		metrics := ParseHeader(",A,B", ",n,5,4,3,2,1")

		require.Len(t, metrics, 1)
		m := metrics[0]
		assert.Equal(t, "A", m.Name)
		assert.Equal(t, 1, m.ResponseCountCol)
		assert.Equal(t, map[int]int{5: 2, 4: 3, 3: 4, 2: 5, 1: 6}, m.ScoreCols)
	})

	t.Run("category propagates across its column group", func(t *testing.T) {
		// Each category is named once, above its n column; the five score
		// columns inherit it implicitly.
		metrics := ParseHeader(
			"Store ID,Overall,,,,,,Cleanliness,,,,,",
			",n,5,4,3,2,1,n,5,4,3,2,1",
		)

		require.Len(t, metrics, 2)
		assert.Equal(t, "Overall", metrics[0].Name)
		assert.Equal(t, 1, metrics[0].ResponseCountCol)
		assert.Equal(t, "Cleanliness", metrics[1].Name)
		assert.Equal(t, 7, metrics[1].ResponseCountCol)
		assert.Equal(t, map[int]int{5: 8, 4: 9, 3: 10, 2: 11, 1: 12}, metrics[1].ScoreCols)
	})

	t.Run("metric order follows header column order", func(t *testing.T) {
		metrics := ParseHeader(
			",Speed,,,,,,Accuracy,,,,,,Friendliness,,,,,",
			",n,5,4,3,2,1,n,5,4,3,2,1,n,5,4,3,2,1",
		)

		require.Len(t, metrics, 3)
		assert.Equal(t, []string{"Speed", "Accuracy", "Friendliness"},
			[]string{metrics[0].Name, metrics[1].Name, metrics[2].Name})
	})

	t.Run("marker without active category yields nothing", func(t *testing.T) {
		metrics := ParseHeader(",,,", ",n,5,4")
		assert.Empty(t, metrics)
	})

	t.Run("column zero never starts a metric", func(t *testing.T) {
		metrics := ParseHeader("Overall,,,,,,", "n,5,4,3,2,1,")
		assert.Empty(t, metrics)
	})

	t.Run("dangling marker still yields a metric past row width", func(t *testing.T) {
		metrics := ParseHeader(",Overall", ",n")

		require.Len(t, metrics, 1)
		// Score columns run past the header's width; data reads there must
		// come back zero through the lenient cell access path.
		assert.Equal(t, map[int]int{5: 2, 4: 3, 3: 4, 2: 5, 1: 6}, metrics[0].ScoreCols)
	})

	t.Run("cells are trimmed before matching", func(t *testing.T) {
		metrics := ParseHeader(", Overall ,,,,,", ", n ,5,4,3,2,1")
		require.Len(t, metrics, 1)
		assert.Equal(t, "Overall", metrics[0].Name)
	})
}
