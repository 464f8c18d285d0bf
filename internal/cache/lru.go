package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type lruItem struct {
	data      []byte
	expiresAt time.Time
}

// LRU is an in-process Store with per-entry expiry.
type LRU struct {
	lruCache *lru.Cache[string, lruItem]
	now      func() time.Time
}

func NewLRU(size int) *LRU {
	l, err := lru.New[string, lruItem](size)
	if err != nil {
		// only fails for size <= 0
		panic(err)
	}
	return &LRU{lruCache: l, now: time.Now}
}

func (c *LRU) Get(_ context.Context, key string, dest any) (bool, error) {
	item, ok := c.lruCache.Get(key)
	if !ok {
		return false, nil
	}
	if c.now().After(item.expiresAt) {
		c.lruCache.Remove(key)
		return false, nil
	}
	if err := decode(item.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *LRU) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	c.lruCache.Add(key, lruItem{data: data, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *LRU) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.lruCache.Remove(k)
	}
	return nil
}
