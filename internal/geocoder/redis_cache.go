package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rajasatyajit/ReliefOps/internal/models"
	"github.com/rajasatyajit/ReliefOps/pkg/utils"
)

const redisKeyPrefix = "geocode:"

// cacheKey hashes the place name so free-form text (spaces, unicode,
// punctuation) never leaks into the key space.
func cacheKey(place string) string {
	return redisKeyPrefix + utils.HashString(place)
}

// unresolvedSentinel marks a cached failed lookup.
const unresolvedSentinel = "null"

// RedisCache shares geocode results across runs. Entries expire after the
// configured TTL; failed lookups are stored as a sentinel so they expire
// and get retried eventually.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache from a redis URL
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// NewRedisCacheWithClient wraps an existing client (used by tests)
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached entry for a normalized place name
func (c *RedisCache) Get(ctx context.Context, place string) (*models.LocationInfo, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(place)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if val == unresolvedSentinel {
		return nil, true, nil
	}

	var info models.LocationInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		return nil, false, err
	}
	return &info, true, nil
}

// Set stores an entry with the cache TTL; nil info records a failed lookup
func (c *RedisCache) Set(ctx context.Context, place string, info *models.LocationInfo) error {
	val := unresolvedSentinel
	if info != nil {
		b, err := json.Marshal(info)
		if err != nil {
			return err
		}
		val = string(b)
	}
	return c.client.Set(ctx, cacheKey(place), val, c.ttl).Err()
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
