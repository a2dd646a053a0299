package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

const recordListKey = "http_records"

// Store implements domain.RecordStore over a Redis list. RPUSH preserves
// append order; LRANGE reads it back.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStore returns a Redis-backed record store.
func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With("component", "redis_store"),
	}
}

func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := s.client.RPush(ctx, recordListKey, data).Err(); err != nil {
		return fmt.Errorf("failed to append record to redis: %w", err)
	}
	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	entries, err := s.client.LRange(ctx, recordListKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read records from redis: %w", err)
	}

	var records []domain.Record
	for _, entry := range entries {
		var rec domain.Record
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			s.logger.Warn("skipping malformed record entry", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
