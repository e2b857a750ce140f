package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache holds ephemeral counters and presence flags. Everything here
// is reconstructible; the relational store stays the source of truth.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func keyForDailyLikes(userID int, day time.Time) string {
	return fmt.Sprintf("likes:daily:%d:%s", userID, day.UTC().Format("2006-01-02"))
}

func keyForPresence(userID int) string {
	return fmt.Sprintf("presence:%d", userID)
}

// IncrDailyLikes bumps the user's like counter for today and returns the
// new value. The key expires at the next UTC midnight so the budget resets
// daily without a sweeper.
func (c *RedisCache) IncrDailyLikes(ctx context.Context, userID int) (int64, error) {
	now := time.Now().UTC()
	key := keyForDailyLikes(userID, now)

	count, err := c.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		_ = c.Client.ExpireAt(ctx, key, midnight).Err()
	}
	return count, nil
}

// GetDailyLikes returns today's like count, zero on a missing key.
func (c *RedisCache) GetDailyLikes(ctx context.Context, userID int) (int64, error) {
	val, err := c.Client.Get(ctx, keyForDailyLikes(userID, time.Now())).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return val, err
}

// SetOnline flips the user's presence flag. Online flags carry a TTL so a
// crashed client eventually reads as offline.
func (c *RedisCache) SetOnline(ctx context.Context, userID int, online bool) error {
	key := keyForPresence(userID)
	if !online {
		return c.Client.Del(ctx, key).Err()
	}
	return c.Client.Set(ctx, key, "1", 5*time.Minute).Err()
}

func (c *RedisCache) IsOnline(ctx context.Context, userID int) (bool, error) {
	_, err := c.Client.Get(ctx, keyForPresence(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
