package upstream

import (
	"context"
	"sync"
)

// StaticCredentialSource serves a fixed credential for every account. The
// credential itself is issued externally; this source only hands it out.
type StaticCredentialSource struct {
	mu    sync.RWMutex
	value string
}

// NewStaticCredentialSource returns a source backed by one opaque value.
func NewStaticCredentialSource(value string) *StaticCredentialSource {
	return &StaticCredentialSource{value: value}
}

func (s *StaticCredentialSource) Credential(ctx context.Context, account string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, nil
}

// Update replaces the stored credential, e.g. after an external refresh.
func (s *StaticCredentialSource) Update(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
}
