package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyetl/pkg/contracts/domain"
)

func sampleRecords() []domain.SurveyRecord {
	return []domain.SurveyRecord{
		{
			StoreLocation:   "QDOBA #1234",
			StoreID:         7,
			Date:            "2024-06-26",
			MetricName:      "Overall",
			Question:        "Overall",
			Score:           5,
			ResponsePercent: 20,
			ResponseCount:   20,
			TotalResponses:  100,
		},
		{
			StoreLocation:   "QDOBA #1234",
			StoreID:         7,
			Date:            "2024-06-26",
			MetricName:      "Overall",
			Question:        "Overall",
			Score:           4,
			ResponsePercent: 30.5,
			ResponseCount:   31,
			TotalResponses:  100,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Strip the UTF-8 BOM before parsing.
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRecords(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteRecords("records.csv", sampleRecords()))

	path := filepath.Join(dir, "records.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"), "expected UTF-8 BOM")

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, recordHeaders, rows[0])
	assert.Equal(t, []string{"QDOBA #1234", "7", "2024-06-26", "Overall", "Overall", "5", "20", "20", "100"}, rows[1])
	assert.Equal(t, "30.5", rows[2][6])
}

func TestAppendRecordsCreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.AppendRecords("append.csv", sampleRecords()))

	path := filepath.Join(dir, "append.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"), "expected UTF-8 BOM")

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, recordHeaders, rows[0])
}

func TestAppendRecordsExtendsExistingFile(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteRecords("records.csv", sampleRecords()))
	require.NoError(t, w.AppendRecords("records.csv", sampleRecords()))

	path := filepath.Join(dir, "records.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// One BOM and one header line for the whole file.
	assert.Equal(t, 1, strings.Count(string(data), "\xef\xbb\xbf"))
	assert.Equal(t, 1, strings.Count(string(data), "store_location"))

	rows := readCSV(t, path)
	require.Len(t, rows, 5)
	assert.Equal(t, recordHeaders, rows[0])
	assert.Equal(t, rows[1], rows[3])
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	sw, err := w.CreateStreamWriter("stream.csv")
	require.NoError(t, err)
	for _, rec := range sampleRecords() {
		require.NoError(t, sw.WriteRecord(rec))
	}
	require.NoError(t, sw.Close())

	rows := readCSV(t, filepath.Join(dir, "stream.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, recordHeaders, rows[0])
}

func TestResolvePathAbsolute(t *testing.T) {
	w := NewCSVWriter("/exports")
	abs := filepath.Join(string(filepath.Separator), "tmp", "out.csv")
	assert.Equal(t, abs, w.resolvePath(abs))
	assert.Equal(t, filepath.Join("/exports", "out.csv"), w.resolvePath("out.csv"))
}
