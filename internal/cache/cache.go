// Package cache is a short-TTL read-through cache for the earnings
// summary. It carries no correctness obligation: a miss or a stale entry
// only costs a re-aggregation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SummaryCache wraps an optional Redis client. A nil client (no
// REDIS_ADDR configured) makes every Get a miss and every Set a no-op.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a cache backed by Redis at addr, or a no-op
// cache when addr is empty.
func NewSummaryCache(addr string) *SummaryCache {
	c := &SummaryCache{ttl: 30 * time.Second}
	if addr != "" {
		c.client = redis.NewClient(&redis.Options{Addr: addr})
	}
	return c
}

// Key builds the cache key for a summary request
func Key(period, driverID string) string {
	return fmt.Sprintf("earnings:%s:%s", period, driverID)
}

// Get unmarshals the cached entry into out, reporting whether it hit
func (c *SummaryCache) Get(ctx context.Context, key string, out interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// Set stores v under key for the cache TTL, best effort
func (c *SummaryCache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}
