// Package exporter writes normalized survey records to CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"surveyetl/pkg/contracts/domain"
)

// recordHeaders is the column order of every exported file.
var recordHeaders = []string{
	"store_location", "store_id", "date", "metric_name", "question",
	"score", "response_percent", "response_count", "total_responses",
}

// CSVWriter provides CSV export functionality for survey records.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a writer that resolves relative file names against
// dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// WriteRecords writes records to a CSV file, truncating any existing file.
// A UTF-8 BOM is prepended so Excel opens the file correctly.
func (w *CSVWriter) WriteRecords(filePath string, records []domain.SurveyRecord) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("writing records CSV",
		slog.String("path", fullPath),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(recordHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

// AppendRecords appends records to an export file. A missing or empty file
// gets the BOM and header first; an existing one only gets the new rows, so
// repeated appends build a single well-formed CSV.
func (w *CSVWriter) AppendRecords(filePath string, records []domain.SurveyRecord) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("appending records CSV",
		slog.String("path", fullPath),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	fresh := true
	if info, err := os.Stat(fullPath); err == nil && info.Size() > 0 {
		fresh = false
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if fresh {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if fresh {
		if err := writer.Write(recordHeaders); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, rec := range records {
		if err := writer.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

// StreamWriter provides streaming CSV writing for large record sets.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter opens a streaming writer with the record header already
// written.
func (w *CSVWriter) CreateStreamWriter(filePath string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(recordHeaders); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream.
func (s *StreamWriter) WriteRecord(rec domain.SurveyRecord) error {
	return s.writer.Write(recordRow(rec))
}

// Close flushes and closes the stream writer.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// recordRow flattens one record into the export column order.
func recordRow(rec domain.SurveyRecord) []string {
	return []string{
		rec.StoreLocation,
		strconv.FormatInt(rec.StoreID, 10),
		rec.Date,
		rec.MetricName,
		rec.Question,
		strconv.Itoa(rec.Score),
		strconv.FormatFloat(rec.ResponsePercent, 'f', -1, 64),
		strconv.Itoa(rec.ResponseCount),
		strconv.FormatFloat(rec.TotalResponses, 'f', -1, 64),
	}
}

// resolvePath resolves a relative file name against the export directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.dir == "" {
		return filePath
	}
	return filepath.Join(w.dir, filePath)
}
