package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopSense/domain"
)

const profileTTL = 10 * time.Minute

// ProfileCache stores computed behavior profiles in Redis so repeated
// recommendation requests skip profile recomputation.
type ProfileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{
		client: client,
	}
}

func profileKey(userID string) string {
	return fmt.Sprintf("behavior:profile:%s", userID)
}

// GetProfile returns the cached profile, or (nil, nil) on a cache miss.
func (c *ProfileCache) GetProfile(ctx context.Context, userID string) (*domain.UserBehaviorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	data, err := c.client.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached profile: %w", err)
	}

	var profile domain.UserBehaviorProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}

	return &profile, nil
}

func (c *ProfileCache) SetProfile(ctx context.Context, profile *domain.UserBehaviorProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if profile == nil {
		return nil
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := c.client.Set(ctx, profileKey(profile.UserID), data, profileTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}

	return nil
}

func (c *ProfileCache) DeleteProfile(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile: %w", err)
	}

	return nil
}
