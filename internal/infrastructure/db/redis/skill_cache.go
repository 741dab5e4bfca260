package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-api/internal/core/domain"
	"github.com/skillswap/skillswap-api/internal/core/ports"
)

const (
	skillCacheKey = "skills:all"
	skillCacheTTL = 30 * time.Second
)

// SkillCache caches the resolved full skill listing in Redis. Every cache
// failure degrades to a miss: a broken Redis must never break browsing.
type SkillCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewSkillCache creates a SkillCache wrapping the given Redis client.
func NewSkillCache(client *redis.Client, log zerolog.Logger) *SkillCache {
	return &SkillCache{client: client, log: log}
}

// Get returns the cached listing and whether it was present.
func (c *SkillCache) Get(ctx context.Context) ([]ports.SkillView, bool) {
	raw, err := c.client.Get(ctx, skillCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("skill cache read failed")
		}
		return nil, false
	}

	var views []ports.SkillView
	if err := json.Unmarshal(raw, &views); err != nil {
		c.log.Warn().Err(err).Msg("skill cache payload corrupt, dropping")
		_ = c.client.Del(ctx, skillCacheKey).Err()
		return nil, false
	}
	return views, true
}

// Set stores the listing with a short TTL.
func (c *SkillCache) Set(ctx context.Context, views []ports.SkillView) {
	raw, err := json.Marshal(views)
	if err != nil {
		c.log.Warn().Err(err).Msg("skill cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, skillCacheKey, raw, skillCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("skill cache write failed")
	}
}

// Invalidate drops the cached listing.
func (c *SkillCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, skillCacheKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("skill cache invalidation failed")
	}
}

// InvalidateOn subscribes the cache to engine events so that listings are
// dropped as soon as a skill is added or withdrawn, independently of who
// performed the mutation. Runs until ctx is cancelled or events closes.
func (c *SkillCache) InvalidateOn(ctx context.Context, events <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind == domain.EventSkillAdded || ev.Kind == domain.EventSkillRemoved {
				c.Invalidate(ctx)
			}
		}
	}
}
