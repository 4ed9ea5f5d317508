package stores

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"surveyetl/pkg/contracts/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS stores (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	store_number TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS survey_records (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id         TEXT NOT NULL,
	store_id         INTEGER NOT NULL REFERENCES stores(id),
	store_location   TEXT NOT NULL,
	date             TEXT NOT NULL,
	metric_name      TEXT NOT NULL,
	question         TEXT NOT NULL,
	score            INTEGER NOT NULL,
	response_percent REAL NOT NULL,
	response_count   INTEGER NOT NULL,
	total_responses  REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_records_date ON survey_records(date);
CREATE INDEX IF NOT EXISTS idx_survey_records_store ON survey_records(store_id);
`

// Registry is the SQLite-backed store reference table plus the persisted
// normalized records.
type Registry struct {
	db *sql.DB
}

// Open opens (or creates) the registry database at path and ensures the
// schema exists. The pure-Go sqlite driver needs a single writer, so the
// pool is capped at one connection.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure registry schema: %w", err)
	}
	return &Registry{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Ping reports whether the database is reachable, for readiness checks.
func (r *Registry) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// UpsertStore inserts or updates a store by its store number and returns the
// store's ID.
func (r *Registry) UpsertStore(ctx context.Context, store domain.Store) (int64, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (store_number, name) VALUES (?, ?)
		ON CONFLICT(store_number) DO UPDATE SET name = excluded.name`,
		store.StoreNumber, store.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert store %s: %w", store.StoreNumber, err)
	}

	// LastInsertId is unreliable on the conflict path; read the row back by
	// its natural key.
	var id int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM stores WHERE store_number = ?`, store.StoreNumber).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read back store %s: %w", store.StoreNumber, err)
	}
	return id, nil
}

// ListStores returns all known stores ordered by store number.
func (r *Registry) ListStores(ctx context.Context) ([]domain.Store, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_number, name FROM stores ORDER BY store_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.StoreNumber, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// InsertRecords writes one batch of resolved records in a single
// transaction. Records must already carry a StoreID; unresolved records are
// the ingest layer's concern and never reach this method.
func (r *Registry) InsertRecords(ctx context.Context, batchID string, records []domain.SurveyRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin record batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_records
			(batch_id, store_id, store_location, date, metric_name, question,
			 score, response_percent, response_count, total_responses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, batchID, rec.StoreID, rec.StoreLocation,
			rec.Date, rec.MetricName, rec.Question, rec.Score,
			rec.ResponsePercent, rec.ResponseCount, rec.TotalResponses); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// RecordsByDate returns all persisted records for one canonical date.
func (r *Registry) RecordsByDate(ctx context.Context, date string) ([]domain.SurveyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT store_location, store_id, date, metric_name, question,
		       score, response_percent, response_count, total_responses
		FROM survey_records WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query records for %s: %w", date, err)
	}
	defer rows.Close()

	var records []domain.SurveyRecord
	for rows.Next() {
		var rec domain.SurveyRecord
		if err := rows.Scan(&rec.StoreLocation, &rec.StoreID, &rec.Date,
			&rec.MetricName, &rec.Question, &rec.Score,
			&rec.ResponsePercent, &rec.ResponseCount, &rec.TotalResponses); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
