package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyetl/pkg/contracts/domain"
)

func testStores() []domain.Store {
	return []domain.Store{
		{ID: 1, StoreNumber: "1234", Name: "Main Street"},
		{ID: 2, StoreNumber: "0042", Name: "Airport"},
		{ID: 3, StoreNumber: "7801", Name: "Downtown Plaza"},
	}
}

func TestTableResolverDigitRuns(t *testing.T) {
	r := NewTableResolver(testStores())

	tests := []struct {
		name  string
		label string
		id    int64
		ok    bool
	}{
		{
			name:  "exact four digit number",
			label: "QDOBA #1234",
			id:    1,
			ok:    true,
		},
		{
			name:  "rightmost four digits of a longer run",
			label: "QDOBA 991234 East",
			id:    1,
			ok:    true,
		},
		{
			name:  "leading zeros stripped on secondary attempt",
			label: "Store 0042",
			id:    2,
			ok:    true,
		},
		{
			name:  "short run matches zero padded number via strip index",
			label: "Store 42",
			id:    2,
			ok:    true,
		},
		{
			name:  "later digit run matches when the first does not",
			label: "Rte 9 - 7801",
			id:    3,
			ok:    true,
		},
		{
			name:  "unknown number",
			label: "Store 5555",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := r.Resolve(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.id, id)
			}
		})
	}
}

func TestTableResolverNameFallback(t *testing.T) {
	r := NewTableResolver(testStores())

	id, ok := r.Resolve("QDOBA - DOWNTOWN PLAZA")
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	id, ok = r.Resolve("main street location")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	_, ok = r.Resolve("no such place")
	assert.False(t, ok)
}

func TestTableResolverEmptyTable(t *testing.T) {
	r := NewTableResolver(nil)
	_, ok := r.Resolve("QDOBA #1234")
	assert.False(t, ok)
}
