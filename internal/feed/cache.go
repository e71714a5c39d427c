package feed

import (
	"slices"

	"github.com/qepting91/reddit-video-feed/internal/domain"
)

const startToken = "start"

// CacheKey identifies one page: a category plus the "after" token it was
// requested with ("start" for the first page of a window).
type CacheKey struct {
	Category string
	Token    string
}

func newCacheKey(category, token string) CacheKey {
	if token == "" {
		token = startToken
	}
	return CacheKey{Category: category, Token: token}
}

// Cache holds every non-empty batch produced in a session. No eviction.
type Cache struct {
	entries map[CacheKey][]domain.VideoRecord
}

func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey][]domain.VideoRecord)}
}

func (c *Cache) Get(key CacheKey) ([]domain.VideoRecord, bool) {
	batch, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(batch), true
}

// Put stores a copy of batch. Empty batches are never cached.
func (c *Cache) Put(key CacheKey, batch []domain.VideoRecord) {
	if len(batch) == 0 {
		return
	}
	c.entries[key] = slices.Clone(batch)
}

func (c *Cache) Len() int {
	return len(c.entries)
}
