package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
)

// RedisStore keeps serialized exchange rates in Redis.
// Every value expires after the store-wide expiration.
type RedisStore struct {
	client *redis.Client
	exp    time.Duration // expiration duration for stored values
}

// NewRedisStore creates a new store instance with the given TTL
func NewRedisStore(client *redis.Client, expiration time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		exp:    expiration,
	}
}

// Get returns the value stored under key. A missing or expired key is reported with ok == false.
func (s *RedisStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	value, err = s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Debugw("cache miss", "key", key)
		return "", false, nil
	}
	if err != nil {
		logger.Log.Debugw("cache get failed", "key", key, "error", err)
		return "", false, err
	}

	logger.Log.Debugw("cache hit", "key", key)
	return value, true, nil
}

// Set stores value under key with the store expiration.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, key, value, s.exp).Err()

	logger.Log.Debugw("cache set",
		"key", key,
		"ttl", s.exp,
		"error", err,
	)

	return err
}

// Ping checks the connection to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
