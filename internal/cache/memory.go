package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/symptom-triage-server/internal/domain"
)

// MemoryCache is an in-process LRU cache with a fixed TTL per entry
type MemoryCache struct {
	lru    *expirable.LRU[string, *domain.TriageResult]
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache effectiveness
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// NewMemoryCache creates a memory cache holding at most maxItems entries for ttl
func NewMemoryCache(maxItems int, ttl time.Duration) (*MemoryCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("memory cache size must be positive, got %d", maxItems)
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, *domain.TriageResult](maxItems, nil, ttl),
	}, nil
}

// Get returns a cached result or domain.ErrCacheMiss
func (c *MemoryCache) Get(_ context.Context, key string) (*domain.TriageResult, error) {
	result, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, domain.ErrCacheMiss
	}
	c.hits.Add(1)
	return result, nil
}

// Set stores a result. The per-call ttl is ignored; entries use the cache TTL.
func (c *MemoryCache) Set(_ context.Context, key string, result *domain.TriageResult, _ time.Duration) error {
	c.lru.Add(key, result)
	return nil
}

// Delete removes a key
func (c *MemoryCache) Delete(key string) {
	c.lru.Remove(key)
}

// Purge removes every entry
func (c *MemoryCache) Purge() {
	c.lru.Purge()
}

// Stats returns hit/miss counters and current size
func (c *MemoryCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
