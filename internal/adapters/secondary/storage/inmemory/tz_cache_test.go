package inmemory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/natal/internal/ports/cache"
)

func entry(id string) cache.TimezoneEntry {
	return cache.TimezoneEntry{TimezoneID: id}
}

func TestTimezoneCache(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := NewTimezoneCache(10)

		c.Put("41.0,28.9", entry("Europe/Istanbul"))

		got, ok := c.Get("41.0,28.9")
		require.True(t, ok)
		assert.Equal(t, "Europe/Istanbul", got.TimezoneID)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("miss", func(t *testing.T) {
		c := NewTimezoneCache(10)

		_, ok := c.Get("unknown")
		assert.False(t, ok)
	})

	t.Run("put overwrites existing key", func(t *testing.T) {
		c := NewTimezoneCache(10)

		c.Put("key", entry("Europe/Istanbul"))
		c.Put("key", entry("Europe/Moscow"))

		got, ok := c.Get("key")
		require.True(t, ok)
		assert.Equal(t, "Europe/Moscow", got.TimezoneID)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		c := NewTimezoneCache(2)

		c.Put("a", entry("A"))
		c.Put("b", entry("B"))
		c.Put("c", entry("C"))

		_, ok := c.Get("a")
		assert.False(t, ok)
		_, ok = c.Get("b")
		assert.True(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get refreshes recency", func(t *testing.T) {
		c := NewTimezoneCache(2)

		c.Put("a", entry("A"))
		c.Put("b", entry("B"))

		// "a" становится самым свежим, вытесняется "b"
		_, ok := c.Get("a")
		require.True(t, ok)

		c.Put("c", entry("C"))

		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("b")
		assert.False(t, ok)
	})

	t.Run("non-positive capacity gets default", func(t *testing.T) {
		c := NewTimezoneCache(0)

		for i := 0; i < 1000; i++ {
			c.Put(fmt.Sprintf("key-%d", i), entry("Z"))
		}
		assert.Equal(t, 1000, c.Len())

		c.Put("one-more", entry("Z"))
		assert.Equal(t, 1000, c.Len())
	})
}
