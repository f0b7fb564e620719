package cache

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

const (
	DefaultMaxUsers          = 10000
	DefaultMaxEntriesPerUser = 256
)

// LRUCache — кэш ответов: пользователь → (точный текст запроса → ответ).
// Оба уровня ограничены LRU, вытеснение только удаляет записи.
type LRUCache struct {
	mu         sync.Mutex
	users      *lru.Cache[int64, *lru.Cache[string, string]]
	perUserMax int

	hits   atomic.Int64
	misses atomic.Int64
}

func NewLRUCache(maxUsers, maxEntriesPerUser int) (*LRUCache, error) {
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	if maxEntriesPerUser <= 0 {
		maxEntriesPerUser = DefaultMaxEntriesPerUser
	}

	users, err := lru.New[int64, *lru.Cache[string, string]](maxUsers)
	if err != nil {
		return nil, err
	}

	return &LRUCache{
		users:      users,
		perUserMax: maxEntriesPerUser,
	}, nil
}

func (c *LRUCache) Lookup(userID int64, text string) (string, bool) {
	entries, ok := c.users.Get(userID)
	if !ok {
		c.misses.Add(1)
		return "", false
	}

	answer, ok := entries.Get(text)
	if !ok {
		c.misses.Add(1)
		return "", false
	}

	c.hits.Add(1)
	return answer, true
}

func (c *LRUCache) Store(userID int64, text, answer string) {
	c.mu.Lock()
	entries, ok := c.users.Get(userID)
	if !ok {
		// размер заведомо положительный, ошибки тут не бывает
		entries, _ = lru.New[string, string](c.perUserMax)
		c.users.Add(userID, entries)
	}
	c.mu.Unlock()

	entries.Add(text, answer)
}

func (c *LRUCache) Clear(userID int64) {
	c.mu.Lock()
	c.users.Remove(userID)
	c.mu.Unlock()
}

func (c *LRUCache) Stats() ports.CacheStats {
	st := ports.CacheStats{
		Hits:   int(c.hits.Load()),
		Misses: int(c.misses.Load()),
	}

	for _, userID := range c.users.Keys() {
		entries, ok := c.users.Peek(userID)
		if !ok {
			continue
		}
		st.Users++
		st.Entries += entries.Len()
	}

	return st
}
