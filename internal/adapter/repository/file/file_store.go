package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

const filePerm = 0644

// maxLineSize bounds a single stored record line. Bodies are truncated at
// capture time, so this is generous.
const maxLineSize = 4 * 1024 * 1024

// Store implements domain.RecordStore over a newline-delimited JSON file.
// Each append is a single write of one self-contained line, synced to disk
// before returning, so concurrent appends never interleave partial records.
type Store struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	file *os.File
}

// NewStore opens (creating if necessary) the backing file at path.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log store directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log store %s: %w", path, err)
	}

	return &Store{
		path:   path,
		logger: logger.With("component", "file_store"),
		file:   f,
	}, nil
}

// Append serializes the record as one line and flushes it to disk before
// returning.
func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log store: %w", err)
	}

	return nil
}

// ReadAll scans the backing file in append order. Malformed lines are
// skipped with a warning; a partially corrupt store still serves every
// valid record.
func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open log store for reading: %w", err)
	}
	defer f.Close()

	var records []domain.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			s.logger.Warn("skipping malformed record line", "error", err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("error scanning log store: %w", err)
	}

	return records, nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}
