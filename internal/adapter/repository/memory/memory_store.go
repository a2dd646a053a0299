package memory

import (
	"context"
	"sync"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// Store implements domain.RecordStore in process memory. Used for tests and
// for running the console without persistence.
type Store struct {
	mu      sync.RWMutex
	records []domain.Record
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
