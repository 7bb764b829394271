package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLMap(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }

	t.Run("returns values until they expire", func(t *testing.T) {
		m := NewTTLMap[string](time.Minute, 0).WithNow(clock)
		m.Set("a", "alice")

		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "alice", v)

		now = now.Add(2 * time.Minute)
		_, ok = m.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("bounded size evicts expired entries first", func(t *testing.T) {
		m := NewTTLMap[int](time.Minute, 2).WithNow(clock)
		m.Set("old", 1)
		now = now.Add(2 * time.Minute)
		m.Set("a", 2)
		m.Set("b", 3)

		assert.Equal(t, 2, m.Len())
		_, ok := m.Get("old")
		assert.False(t, ok)
		v, ok := m.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("bounded size resets when full of live entries", func(t *testing.T) {
		m := NewTTLMap[int](time.Minute, 2).WithNow(clock)
		m.Set("a", 1)
		m.Set("b", 2)
		m.Set("c", 3)

		assert.Equal(t, 1, m.Len())
		_, ok := m.Get("c")
		assert.True(t, ok)
	})

	t.Run("delete and clear", func(t *testing.T) {
		m := NewTTLMap[int](time.Minute, 0).WithNow(clock)
		m.Set("a", 1)
		m.Set("b", 2)
		m.Delete("a")
		assert.Equal(t, 1, m.Len())
		m.Clear()
		assert.Equal(t, 0, m.Len())
	})
}
