package mocks

import (
	"context"
	"sync"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// MockRecordStore is a mock implementation of domain.RecordStore for testing.
type MockRecordStore struct {
	mu        sync.Mutex
	Appended  []domain.Record
	AppendErr error
	ReadErr   error
}

func (m *MockRecordStore) Append(ctx context.Context, rec domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Appended = append(m.Appended, rec)
	return nil
}

func (m *MockRecordStore) ReadAll(ctx context.Context) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]domain.Record, len(m.Appended))
	copy(out, m.Appended)
	return out, nil
}

// MockCredentialSource is a mock implementation of domain.CredentialSource.
type MockCredentialSource struct {
	Credentials   map[string]string
	CredentialErr error
}

func (m *MockCredentialSource) Credential(ctx context.Context, account string) (string, error) {
	if m.CredentialErr != nil {
		return "", m.CredentialErr
	}
	return m.Credentials[account], nil
}
