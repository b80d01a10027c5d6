// internal/pkg/cache/campaign_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewspin-service/internal/domain/campaign"
)

// CampaignCache is a read-through Redis cache for campaign configuration.
// Misses and Redis errors are both treated as "not cached"; the database
// stays the source of truth.
type CampaignCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCampaignCache(client *redis.Client, ttl time.Duration) *CampaignCache {
	return &CampaignCache{client: client, ttl: ttl}
}

func (c *CampaignCache) key(campaignID int64) string {
	return fmt.Sprintf("campaign:config:%d", campaignID)
}

// Get returns the cached config, or (nil, nil) on a miss.
func (c *CampaignCache) Get(ctx context.Context, campaignID int64) (*campaign.Config, error) {
	data, err := c.client.Get(ctx, c.key(campaignID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign config from redis: %w", err)
	}

	var cfg campaign.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached campaign config: %w", err)
	}
	return &cfg, nil
}

// Set stores the config with the cache TTL.
func (c *CampaignCache) Set(ctx context.Context, cfg *campaign.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign config: %w", err)
	}
	if err := c.client.Set(ctx, c.key(cfg.Campaign.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store campaign config in redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached config for a campaign.
func (c *CampaignCache) Invalidate(ctx context.Context, campaignID int64) error {
	return c.client.Del(ctx, c.key(campaignID)).Err()
}
