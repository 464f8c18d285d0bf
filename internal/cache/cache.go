// Package cache stores viewer-independent JSON payloads, in Redis when one is
// configured and in a process-local LRU otherwise. Per-viewer data such as a
// user's own vote must never be put here.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"agora/internal/metrics"
)

type Store interface {
	// Get unmarshals the cached value into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// New returns a Redis store when redisURL is set and reachable, otherwise a
// local LRU store.
func New(redisURL string) Store {
	if redisURL != "" {
		store, err := NewRedis(redisURL)
		if err == nil {
			log.Println("Redis cache connected")
			return store
		}
		log.Printf("Redis connection warning: %v (falling back to local cache)", err)
	}
	return NewLRU(500)
}

// Aside reads key into dest, calling fetch to populate dest on a miss and
// storing the result. Cache errors never fail the request.
func Aside(ctx context.Context, s Store, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := s.Get(ctx, key, dest)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Printf("cache get %s: %v", key, err)
	case found:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return nil
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	if err := s.Set(ctx, key, dest, ttl); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
	return nil
}

func encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

func decode(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}
