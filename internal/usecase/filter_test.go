package usecase

import (
	"reflect"
	"testing"
	"time"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

func recordsForFilter() []domain.Record {
	base := time.Date(2026, 1, 21, 10, 0, 0, 0, time.UTC)
	return []domain.Record{
		{ID: "1", Timestamp: base, Direction: domain.DirectionIncoming, Method: "GET", URL: "/api/buyer/today-stats?date=2026-01-21", Status: 200},
		{ID: "2", Timestamp: base.Add(time.Minute), Direction: domain.DirectionIncoming, Method: "POST", URL: "/api/orders", Status: 500},
		{ID: "3", Timestamp: base.Add(2 * time.Minute), Direction: domain.DirectionOutgoing, Method: "GET", URL: "https://backend.local/api/stats", Status: 503},
		{ID: "4", Timestamp: base.Add(3 * time.Minute), Direction: domain.DirectionIncoming, Method: "GET", URL: "/api/couriers", Error: "courier service timeout", Tag: "flaky"},
	}
}

func idsOf(records []domain.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestFilterRecords(t *testing.T) {
	records := recordsForFilter()

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		wantIDs  []string
	}{
		{
			name:     "no criteria returns everything in order",
			criteria: domain.FilterCriteria{},
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "text search over url",
			criteria: domain.FilterCriteria{Q: "today-stats"},
			wantIDs:  []string{"1"},
		},
		{
			name:     "text search is case-insensitive",
			criteria: domain.FilterCriteria{Q: "ORDERS"},
			wantIDs:  []string{"2"},
		},
		{
			name:     "text search covers error text",
			criteria: domain.FilterCriteria{Q: "timeout"},
			wantIDs:  []string{"4"},
		},
		{
			name:     "text search covers tag",
			criteria: domain.FilterCriteria{Q: "flaky"},
			wantIDs:  []string{"4"},
		},
		{
			name:     "method match ignores case",
			criteria: domain.FilterCriteria{Method: "post"},
			wantIDs:  []string{"2"},
		},
		{
			name:     "single status code",
			criteria: domain.FilterCriteria{Status: "200"},
			wantIDs:  []string{"1"},
		},
		{
			name:     "status range keeps 5xx, drops statusless",
			criteria: domain.FilterCriteria{Status: "500-599"},
			wantIDs:  []string{"2", "3"},
		},
		{
			name:     "malformed status is no constraint",
			criteria: domain.FilterCriteria{Status: "banana"},
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "inverted range is no constraint",
			criteria: domain.FilterCriteria{Status: "599-500"},
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "direction match",
			criteria: domain.FilterCriteria{Direction: "outgoing"},
			wantIDs:  []string{"3"},
		},
		{
			name:     "time bounds are inclusive",
			criteria: domain.FilterCriteria{From: "2026-01-21T10:01:00Z", To: "2026-01-21T10:02:00Z"},
			wantIDs:  []string{"2", "3"},
		},
		{
			name:     "malformed time bound is ignored",
			criteria: domain.FilterCriteria{From: "not-a-date"},
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "criteria AND together",
			criteria: domain.FilterCriteria{Method: "GET", Direction: "incoming", Status: "200"},
			wantIDs:  []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecords(records, tt.criteria)
			if !reflect.DeepEqual(idsOf(got), tt.wantIDs) {
				t.Errorf("FilterRecords() = %v, want %v", idsOf(got), tt.wantIDs)
			}
		})
	}
}

func TestFilterRecords_Idempotent(t *testing.T) {
	records := recordsForFilter()
	criteria := domain.FilterCriteria{Q: "api", Direction: "incoming"}

	first := FilterRecords(records, criteria)
	second := FilterRecords(records, criteria)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestFilterRecords_DoesNotMutateInput(t *testing.T) {
	records := recordsForFilter()
	before := make([]domain.Record, len(records))
	copy(before, records)

	FilterRecords(records, domain.FilterCriteria{Status: "500-599"})

	if !reflect.DeepEqual(records, before) {
		t.Error("input slice was mutated")
	}
}
