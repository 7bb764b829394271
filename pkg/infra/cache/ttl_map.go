package cache

import (
	"sync"
	"time"
)

type TTLEntry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// TTLMap is a thread-safe map where every entry expires a fixed TTL after it was set.
type TTLMap[V any] struct {
	data    map[string]TTLEntry[V]
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// NewTTLMap creates a map holding at most maxSize entries. Zero means unbounded.
func NewTTLMap[V any](ttl time.Duration, maxSize int) *TTLMap[V] {
	return &TTLMap[V]{
		data:    make(map[string]TTLEntry[V]),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// WithNow replaces the time source, for tests.
func (m *TTLMap[V]) WithNow(now func() time.Time) *TTLMap[V] {
	m.now = now
	return m
}

func (m *TTLMap[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	entry, exists := m.data[key]
	m.mu.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}
	if m.now().After(entry.ExpiresAt) {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && m.now().After(current.ExpiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return zero, false
	}
	return entry.Value, true
}

func (m *TTLMap[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.data[key]; !exists && m.maxSize > 0 && len(m.data) >= m.maxSize {
		m.evictExpired(now)
		if len(m.data) >= m.maxSize {
			// still full, start over rather than track recency
			m.data = make(map[string]TTLEntry[V])
		}
	}
	m.data[key] = TTLEntry[V]{Value: value, ExpiresAt: now.Add(m.ttl)}
}

func (m *TTLMap[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *TTLMap[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *TTLMap[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]TTLEntry[V])
}

func (m *TTLMap[V]) evictExpired(now time.Time) {
	for key, entry := range m.data {
		if now.After(entry.ExpiresAt) {
			delete(m.data, key)
		}
	}
}
