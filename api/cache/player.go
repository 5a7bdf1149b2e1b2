package cache

import (
	"context"
	"encoding/json"
	"time"

	"uchelper/api/dto"
)

const (
	cardMemoryCacheDuration = 5 * time.Minute
	cardRedisCacheDuration  = 15 * time.Minute
)

// Redis operations the card cache needs.
type cardRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// PlayerCardCache keeps rendered profile cards in two tiers, a small
// in-process cache in front of Redis. Cards are display data only, the
// eligibility path never reads from here.
type PlayerCardCache struct {
	memCache *MemCache[*dto.PlayerCard]
	redis    cardRedisClient
}

// NewPlayerCardCache creates the two tier card cache.
func NewPlayerCardCache(redis cardRedisClient) *PlayerCardCache {
	return &PlayerCardCache{
		memCache: NewMemCache[*dto.PlayerCard](),
		redis:    redis,
	}
}

// GetCard returns a cached card, or nil when no tier has it.
func (c *PlayerCardCache) GetCard(ctx context.Context, key string) *dto.PlayerCard {
	if card, ok := c.memCache.Get(key); ok {
		return card
	}

	redisCached, err := c.redis.Get(ctx, key)
	if err != nil || redisCached == "" {
		return nil
	}

	var card dto.PlayerCard
	if err := json.Unmarshal([]byte(redisCached), &card); err != nil {
		return nil
	}

	c.memCache.Set(key, &card, cardMemoryCacheDuration)
	return &card
}

// SetCard populates both tiers. Failures are ignored, the card is a
// pure display convenience.
func (c *PlayerCardCache) SetCard(ctx context.Context, key string, card *dto.PlayerCard) {
	c.memCache.Set(key, card, cardMemoryCacheDuration)

	if j, err := json.Marshal(card); err == nil {
		c.redis.Set(ctx, key, string(j), cardRedisCacheDuration)
	}
}

// Close shuts the in-process tier down.
func (c *PlayerCardCache) Close() {
	c.memCache.Close()
}
