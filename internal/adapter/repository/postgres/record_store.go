package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// createDDL defines the backing table. A bigserial sequence preserves
// append order independently of wall-clock timestamps.
const createDDL = `
CREATE TABLE IF NOT EXISTS http_records (
	seq     BIGSERIAL PRIMARY KEY,
	id      TEXT NOT NULL UNIQUE,
	payload JSONB NOT NULL
);`

// Store implements domain.RecordStore over PostgreSQL.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates the backing table if needed and returns the store.
func NewStore(ctx context.Context, db *sql.DB, logger *slog.Logger) (*Store, error) {
	if _, err := db.ExecContext(ctx, createDDL); err != nil {
		return nil, fmt.Errorf("failed to create http_records table: %w", err)
	}
	return &Store{db: db, logger: logger.With("component", "postgres_store")}, nil
}

func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO http_records (id, payload) VALUES ($1, $2)`,
		rec.ID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM http_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return records, fmt.Errorf("failed to scan record row: %w", err)
		}
		var rec domain.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			s.logger.Warn("skipping malformed record row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return records, fmt.Errorf("error iterating record rows: %w", err)
	}

	return records, nil
}
