package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Redis is a Persist that maps each numeric key to "<prefix><key>" with
// the key rendered as four hex digits.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k uint32) string {
	return fmt.Sprintf("%s%04x", r.prefix, k)
}

func (r *Redis) Exists(ctx context.Context, key uint32) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", r.key(key), err)
	}
	return n > 0, nil
}

func (r *Redis) ReadData(ctx context.Context, key uint32) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.key(key), err)
	}
	return v, nil
}

func (r *Redis) WriteData(ctx context.Context, key uint32, data []byte) (int, error) {
	k := r.key(key)
	if err := r.client.Set(ctx, k, data, 0).Err(); err != nil {
		return 0, fmt.Errorf("set %s: %w", k, err)
	}
	n, err := r.client.StrLen(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("strlen %s: %w", k, err)
	}
	return int(n), nil
}

func (r *Redis) Delete(ctx context.Context, key uint32) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", r.key(key), err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
