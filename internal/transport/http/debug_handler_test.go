package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyetl/pkg/contracts/domain"
)

type fakeSummarySource struct {
	summary *domain.IngestSummary
}

func (f *fakeSummarySource) LastSummary() *domain.IngestSummary { return f.summary }

func TestDebugPageEmpty(t *testing.T) {
	h := NewDebugHandler(&fakeSummarySource{})

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, "/debug", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No report ingested yet")
}

func TestDebugPageWithSummary(t *testing.T) {
	h := NewDebugHandler(&fakeSummarySource{summary: &domain.IngestSummary{
		BatchID:        "b1",
		Date:           "2024-06-26",
		DateInfo:       domain.DateInfo{Display: "6/26/2024 - 6/26/2024"},
		RowsSeen:       2,
		RecordsStored:  5,
		UnmappedStores: 5,
		UnmappedLabels: []string{"Mystery Diner"},
	}})

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, "/debug", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "b1")
	assert.Contains(t, w.Body.String(), "6/26/2024 - 6/26/2024")
	assert.Contains(t, w.Body.String(), "Mystery Diner")
}
