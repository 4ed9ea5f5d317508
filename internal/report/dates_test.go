package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateRange(t *testing.T) {
	t.Run("full scale report title", func(t *testing.T) {
		info, ok := ExtractDateRange("Full Scale Report: 6/26/2024 - 6/26/2024")
		require.True(t, ok)
		assert.Equal(t, "6/26/2024", info.StartDate)
		assert.Equal(t, "6/26/2024", info.EndDate)
		assert.Equal(t, "6/26/2024 - 6/26/2024", info.Display)
	})

	t.Run("multi week period", func(t *testing.T) {
		info, ok := ExtractDateRange("Full Scale Report: 6/3/2024 - 12/15/2024")
		require.True(t, ok)
		assert.Equal(t, "6/3/2024", info.StartDate)
		assert.Equal(t, "12/15/2024", info.EndDate)
	})

	t.Run("no surrounding label required", func(t *testing.T) {
		_, ok := ExtractDateRange("weekly 1/2/2024-1/8/2024 summary")
		assert.True(t, ok)
	})

	t.Run("no dates present", func(t *testing.T) {
		_, ok := ExtractDateRange("no dates here")
		assert.False(t, ok)
	})

	t.Run("single date is not a range", func(t *testing.T) {
		_, ok := ExtractDateRange("Report for 6/26/2024")
		assert.False(t, ok)
	})
}

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "slash delimited with padding needed",
			input:    "6/26/2024",
			expected: "2024-06-26",
		},
		{
			name:     "slash delimited single digit day",
			input:    "12/3/2024",
			expected: "2024-12-03",
		},
		{
			name:     "already canonical",
			input:    "2024-06-26",
			expected: "2024-06-26",
		},
		{
			name:     "canonical with whitespace",
			input:    " 2024-01-02 ",
			expected: "2024-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalDate(tt.input))
		})
	}
}
