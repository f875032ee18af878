package redis

import (
	"context"
	"time"
)

const summaryCachePrefix = "summary:"

// SummaryCache holds generated conversation summaries so repeated summarize
// calls on an unchanged conversation skip the LLM round trip. All methods are
// nil-receiver safe; a nil cache is a no-op.
type SummaryCache struct {
	client *Client
	ttl    time.Duration
}

// NewSummaryCache creates a new summary cache
func NewSummaryCache(client *Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary for a conversation, or "" on a miss
func (c *SummaryCache) Get(ctx context.Context, conversationID string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}

	summary, err := c.client.rdb.Get(ctx, summaryCachePrefix+conversationID).Result()
	if err != nil {
		return "", false // Cache miss
	}
	return summary, true
}

// Set caches a summary for a conversation
func (c *SummaryCache) Set(ctx context.Context, conversationID, summary string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.rdb.Set(ctx, summaryCachePrefix+conversationID, summary, c.ttl).Err()
}

// Invalidate drops the cached summary after the conversation changes
func (c *SummaryCache) Invalidate(ctx context.Context, conversationID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.rdb.Del(ctx, summaryCachePrefix+conversationID).Err()
}
