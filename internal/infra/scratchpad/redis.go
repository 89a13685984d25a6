package scratchpad

import (
	"context"

	"meetroom/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// RedisKV keeps scratchpad entries in Redis so several replicas on one host
// can share a queue.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errs.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", errs.Wrapf(err, "failed to read scratchpad key %s", key)
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return errs.Wrapf(err, "failed to write scratchpad key %s", key)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return errs.Wrapf(err, "failed to delete scratchpad key %s", key)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
