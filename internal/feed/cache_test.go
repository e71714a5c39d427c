package feed

import (
	"testing"

	"github.com/qepting91/reddit-video-feed/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestCache_GetPut(t *testing.T) {
	c := NewCache()
	key := newCacheKey("Viral", "")
	require.Equal(t, CacheKey{Category: "Viral", Token: "start"}, key)

	_, ok := c.Get(key)
	require.False(t, ok)

	batch := []domain.VideoRecord{{ID: "a"}, {ID: "b"}}
	c.Put(key, batch)
	batch[0].ID = "mutated"

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, ids(got))

	_, ok = c.Get(newCacheKey("Hot", ""))
	require.False(t, ok)
}

func TestCache_IgnoresEmptyBatches(t *testing.T) {
	c := NewCache()
	c.Put(newCacheKey("Viral", "t3_x"), nil)
	c.Put(newCacheKey("Viral", "t3_y"), []domain.VideoRecord{})

	require.Zero(t, c.Len())
}
