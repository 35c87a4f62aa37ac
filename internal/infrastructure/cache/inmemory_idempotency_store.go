package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	transactionNumber string
	expiresAt         time.Time
}

// InMemoryIdempotencyStore remembers completed checkouts in a map, suitable
// for single-instance deployments and tests
type InMemoryIdempotencyStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewInMemoryIdempotencyStore creates an in-memory idempotency store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		entries: make(map[string]entry),
		ttl:     defaultCheckoutTTL,
	}
}

// Get returns the transaction number stored for the key
func (s *InMemoryIdempotencyStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.transactionNumber, true, nil
}

// Set stores the transaction number for the key with the store TTL
func (s *InMemoryIdempotencyStore) Set(_ context.Context, key, transactionNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// opportunistic cleanup of expired entries
	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = entry{transactionNumber: transactionNumber, expiresAt: now.Add(s.ttl)}
	return nil
}
