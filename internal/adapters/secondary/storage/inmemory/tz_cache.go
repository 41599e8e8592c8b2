package inmemory

import (
	"container/list"
	"sync"

	"github.com/bilgisen/natal/internal/ports/cache"
)

// TimezoneCache in-memory LRU-кэш результатов разрешения таймзон.
// Вместимость ограничена, при переполнении вытесняется самый давний ключ.
type TimezoneCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type tzCacheItem struct {
	key   string
	entry cache.TimezoneEntry
}

// NewTimezoneCache создаёт новый LRU-кэш таймзон с заданной вместимостью
func NewTimezoneCache(capacity int) cache.ITimezoneCache {
	if capacity <= 0 {
		capacity = 1000
	}
	return &TimezoneCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get возвращает запись по ключу и отмечает её как недавно использованную
func (c *TimezoneCache) Get(key string) (cache.TimezoneEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return cache.TimezoneEntry{}, false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*tzCacheItem).entry, true
}

// Put сохраняет запись, вытесняя самую давнюю при переполнении
func (c *TimezoneCache) Put(key string, entry cache.TimezoneEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*tzCacheItem).entry = entry
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*tzCacheItem).key)
		}
	}

	c.entries[key] = c.order.PushFront(&tzCacheItem{key: key, entry: entry})
}

// Len возвращает текущее число записей
func (c *TimezoneCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
