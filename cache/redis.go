// Package cache keeps serialized list results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RoomsListKey    = "cache:rooms:list"
	BookingsListKey = "cache:bookings:list"

	// VersionKey is bumped on every flush. List entries are stored under
	// the version current when their read began, so a snapshot taken before
	// a write can never be served after it.
	VersionKey = "cache:lists:version"
)

// ListKey is the key of a list entry for one cache version.
func ListKey(base string, version int64) string {
	return fmt.Sprintf("%s:v%d", base, version)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Version returns the current cache version, 0 before the first flush.
func (c *RedisCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, VersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get decodes the value at key into dst. It reports false on a cache miss.
func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Flush stales every cached list by moving to a new version. Entries of
// older versions expire with their TTL. Rooms embed bookings and bookings
// embed rooms, so a write to either resource stales both.
func (c *RedisCache) Flush(ctx context.Context) error {
	return c.client.Incr(ctx, VersionKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
