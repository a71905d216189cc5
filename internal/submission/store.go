package submission

import (
	"sync"

	"uvaexpress/pkg/models"
)

// Store keeps confirmation results keyed by idempotency key and indexes
// confirmed periods so Prepare can warn across keys. Implementations must
// make PutIfAbsent an atomic test-and-set; two concurrent confirmations
// with the same key must not both observe "new".
type Store interface {
	// Get returns the stored result for a key, false if unseen.
	Get(key string) (models.ConfirmResponse, bool)
	// PutIfAbsent stores the result under key unless the key exists. It
	// returns the winning result and whether this call inserted it.
	PutIfAbsent(key string, period string, resp models.ConfirmResponse) (models.ConfirmResponse, bool)
	// HasPeriod reports whether any confirmation was recorded for the
	// period, regardless of key.
	HasPeriod(period string) bool
}

// memoryStore is a bounded in-memory Store. When the key count reaches
// capacity the oldest half is evicted in bulk; confirmations are
// infrequent enough that the coarse bound beats LRU bookkeeping.
type memoryStore struct {
	mu       sync.Mutex
	capacity int
	results  map[string]models.ConfirmResponse
	order    []string
	periods  map[string]bool
}

// DefaultStoreCapacity bounds the in-memory idempotency store.
const DefaultStoreCapacity = 1000

// NewMemoryStore returns a bounded in-memory Store. Capacity values
// below 2 fall back to the default.
func NewMemoryStore(capacity int) Store {
	if capacity < 2 {
		capacity = DefaultStoreCapacity
	}
	return &memoryStore{
		capacity: capacity,
		results:  make(map[string]models.ConfirmResponse, capacity),
		periods:  make(map[string]bool),
	}
}

func (s *memoryStore) Get(key string) (models.ConfirmResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.results[key]
	return resp, ok
}

func (s *memoryStore) PutIfAbsent(key string, period string, resp models.ConfirmResponse) (models.ConfirmResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.results[key]; ok {
		return existing, false
	}

	if len(s.order) >= s.capacity {
		s.evictOldestHalfLocked()
	}

	s.results[key] = resp
	s.order = append(s.order, key)
	s.periods[period] = true
	return resp, true
}

func (s *memoryStore) HasPeriod(period string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.periods[period]
}

// evictOldestHalfLocked drops the oldest half of the keys. The period
// index survives eviction: "already confirmed" stays true even after the
// keyed result is gone.
func (s *memoryStore) evictOldestHalfLocked() {
	half := len(s.order) / 2
	for _, key := range s.order[:half] {
		delete(s.results, key)
	}
	s.order = append(s.order[:0], s.order[half:]...)
}
