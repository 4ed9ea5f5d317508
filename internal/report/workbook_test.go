package report

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a minimal survey workbook matching the export layout.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheet)
	for i, row := range rows {
		for j, val := range row {
			col, err := excelize.ColumnNumberToName(j + 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, col+strconv.Itoa(i+1), val))
		}
	}

	path := filepath.Join(t.TempDir(), "full_scale_report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := buildWorkbook(t, "Report", [][]interface{}{
		{"Full Scale Report: 6/26/2024 - 6/26/2024"},
		{"", "Overall"},
		{"", "n", "5", "4", "3", "2", "1"},
		{"QDOBA", "100", "20", "30", "25", "15", "10"},
	})

	raw, err := LoadWorkbook(path)
	require.NoError(t, err)

	_, records, stats, err := Transform(raw, "")
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, 1, stats.Metrics)
	assert.Equal(t, "QDOBA", records[0].StoreLocation)
	assert.Equal(t, "2024-06-26", records[0].Date)
}

func TestLoadWorkbookFallsBackToFirstSheet(t *testing.T) {
	// No date token anywhere; the first non-empty sheet is still returned so
	// the engine's fallback-date rule can apply downstream.
	path := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"weekly summary"},
		{"", "Overall"},
		{"", "n", "5", "4", "3", "2", "1"},
		{"QDOBA", "100", "20", "30", "25", "15", "10"},
	})

	raw, err := LoadWorkbook(path)
	require.NoError(t, err)

	_, records, _, err := Transform(raw, "2024-07-01")
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, "2024-07-01", records[0].Date)
}

func TestLoadWorkbookMissingFile(t *testing.T) {
	_, err := LoadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
