package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"nestify/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:token:"

// ErrNoTokenStore is returned by Revoke when there is no backing cache.
var ErrNoTokenStore = errors.New("token store has no cache")

// TokenStoreInterface defines the interface for token revocation.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// TokenStore keeps revoked token ids in Redis until the token would have
// expired anyway. Reads fail open when Redis is unreachable; writes do not.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke marks a token id as revoked for ttl. A failed Redis write is
// returned so logout is not reported for a token that still works.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if s.cache == nil {
		return ErrNoTokenStore
	}
	return s.cache.Store(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks whether a token id was revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	return s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID) != nil
}

// MemoryTokenStore is an in-process TokenStoreInterface for single-instance
// runs without Redis. Expired entries are dropped on read and swept on Revoke.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	sweepAt int
	now     func() time.Time
}

const minSweepSize = 1024

var _ TokenStoreInterface = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty in-process store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]time.Time), sweepAt: minSweepSize, now: time.Now}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.revoked) >= s.sweepAt {
		s.sweep(now)
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

// sweep drops expired entries and moves the next sweep to twice the
// remaining size. Callers hold mu.
func (s *MemoryTokenStore) sweep(now time.Time) {
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
		}
	}
	s.sweepAt = max(2*len(s.revoked), minSweepSize)
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, tokenID string) bool {
	now := s.now()

	s.mu.RLock()
	until, ok := s.revoked[tokenID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if now.Before(until) {
		return true
	}

	s.mu.Lock()
	if until, ok := s.revoked[tokenID]; ok && !now.Before(until) {
		delete(s.revoked, tokenID)
	}
	s.mu.Unlock()
	return false
}
