package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

const (
	// DefaultPageSize applies when the caller asks for no page size.
	DefaultPageSize = 20
	// MaxPageSize caps any requested page size.
	MaxPageSize = 100
)

// QueryLogsUseCase serves filtered, paginated views over the record store.
type QueryLogsUseCase struct {
	store  domain.RecordStore
	logger *slog.Logger
}

// NewQueryLogsUseCase creates a new QueryLogsUseCase.
func NewQueryLogsUseCase(store domain.RecordStore, logger *slog.Logger) *QueryLogsUseCase {
	return &QueryLogsUseCase{store: store, logger: logger}
}

// List filters the store and returns the requested page, newest first.
// Append order approximates chronological order; the listing reverses it
// rather than sorting by timestamp.
func (uc *QueryLogsUseCase) List(ctx context.Context, criteria domain.FilterCriteria, page, pageSize int) (*domain.RecordPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	records, err := uc.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}

	matched := FilterRecords(records, criteria)

	// Newest first.
	reversed := make([]domain.Record, len(matched))
	for i, rec := range matched {
		reversed[len(matched)-1-i] = rec
	}

	start := (page - 1) * pageSize
	if start > len(reversed) {
		start = len(reversed)
	}
	end := start + pageSize
	if end > len(reversed) {
		end = len(reversed)
	}

	return &domain.RecordPage{
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
		Items:    reversed[start:end],
	}, nil
}
