package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/leonsos/insightt-test/internal/feature/auth/usecase"
)

// MemoryStore implements usecase.RevocationStore as an in-process map for
// Redis-less deployments. Entries are checked against their expiry on
// lookup; genuinely expired ones are dropped lazily.
//
// A single-instance deployment gets correct behaviour from this store;
// anything running more than one replica needs the Redis store.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

var _ usecase.RevocationStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

// Revoke records the token until its expiry.
func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	s.revoked[token] = time.Now().Add(ttl)
	s.mu.Unlock()
	return nil
}

// IsRevoked reports whether the token is on the revocation list.
func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	expiry, ok := s.revoked[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		// Re-check under the write lock; Revoke may have refreshed it.
		if exp, ok := s.revoked[token]; ok && time.Now().After(exp) {
			delete(s.revoked, token)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
