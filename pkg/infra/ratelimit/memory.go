package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     bucketState
	expiresAt time.Time
}

// MemoryStore keeps buckets in process. Entries idle for longer than their
// window are full again and get evicted.
type MemoryStore struct {
	mu            sync.Mutex
	data          map[string]*memoryEntry
	clock         Clock
	sweepInterval time.Duration
	lastSweep     time.Time
}

type MemoryOption func(*MemoryStore)

func WithMemoryClock(clock Clock) MemoryOption {
	return func(s *MemoryStore) {
		s.clock = clock
	}
}

func WithSweepInterval(interval time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.sweepInterval = interval
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		data:          make(map[string]*memoryEntry),
		clock:         SystemClock{},
		sweepInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.clock.Now()
	return s
}

func (s *MemoryStore) GetOrCreate(key string, capacity int64, window time.Duration) BucketHandle {
	return &memoryHandle{store: s, key: key, limit: Limit{Capacity: capacity, Window: window}}
}

// Len returns the number of live buckets.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *MemoryStore) consume(key string, limit Limit, n int64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now.Sub(s.lastSweep) >= s.sweepInterval {
		s.sweep(now)
	}

	entry, exists := s.data[key]
	if !exists || now.After(entry.expiresAt) {
		entry = &memoryEntry{state: newBucketState(limit, now)}
		s.data[key] = entry
	}

	res := entry.state.take(limit, now, n)
	entry.expiresAt = entry.state.last.Add(limit.Window)
	return res
}

func (s *MemoryStore) sweep(now time.Time) {
	for key, entry := range s.data {
		if now.After(entry.expiresAt) {
			delete(s.data, key)
		}
	}
	s.lastSweep = now
}

type memoryHandle struct {
	store *MemoryStore
	key   string
	limit Limit
}

func (h *memoryHandle) TryConsume(ctx context.Context, n int64) (Result, error) {
	if err := h.limit.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateCost(h.limit, n); err != nil {
		return Result{}, err
	}
	return h.store.consume(h.key, h.limit, n), nil
}
