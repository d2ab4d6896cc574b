package db

import (
	"context"
	"sync"

	"github.com/dgraph-io/ristretto"

	"expense-tracker/src/models"
	"expense-tracker/src/store"
)

func NewCache() (*ristretto.Cache, error) {
	return ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
}

// CachedStore caches ListAll per user in front of another TransactionStore.
// Writes go straight through and drop the writer's cached list.
type CachedStore struct {
	next  store.TransactionStore
	cache *ristretto.Cache

	// versions counts invalidations per user so a list loaded before a
	// write is never cached after it.
	mu       sync.Mutex
	versions map[string]uint64
}

func NewCachedStore(next store.TransactionStore, cache *ristretto.Cache) *CachedStore {
	return &CachedStore{next: next, cache: cache, versions: make(map[string]uint64)}
}

func transactionCacheKey(userID string) string {
	return "transactions:" + userID
}

func (s *CachedStore) version(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[userID]
}

func (s *CachedStore) invalidate(userID string) {
	s.mu.Lock()
	s.versions[userID]++
	s.mu.Unlock()
	s.cache.Del(transactionCacheKey(userID))
}

func (s *CachedStore) Add(ctx context.Context, userID string, draft models.TransactionDraft) (*models.Transaction, error) {
	t, err := s.next.Add(ctx, userID, draft)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return t, nil
}

// ListAll returns a fresh slice on every call; callers may sort it in place.
func (s *CachedStore) ListAll(ctx context.Context, userID string) ([]models.Transaction, error) {
	key := transactionCacheKey(userID)
	if v, ok := s.cache.Get(key); ok {
		if txns, ok := v.([]models.Transaction); ok {
			return append([]models.Transaction(nil), txns...), nil
		}
	}

	before := s.version(userID)
	txns, err := s.next.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.versions[userID] == before {
		s.cache.Set(key, append([]models.Transaction(nil), txns...), 1)
	}
	s.mu.Unlock()
	s.cache.Wait()
	return txns, nil
}

func (s *CachedStore) DeleteByID(ctx context.Context, userID, id string) error {
	if err := s.next.DeleteByID(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}
