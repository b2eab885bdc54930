package kvstore

import (
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a KeyValueStore backed by Redis string keys under a prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "kv.redis.Get")(&err)

	if s.client == nil {
		return "", false, fmt.Errorf("kv get: %w: redis client is nil", ports.ErrStoreUnavailable)
	}

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get key=%q: %w", key, err)
	}

	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "kv.redis.Set")(&err)

	if s.client == nil {
		return fmt.Errorf("kv set: %w: redis client is nil", ports.ErrStoreUnavailable)
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set key=%q: %w", key, err)
	}

	return nil
}
