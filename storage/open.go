package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rustyeddy/dialysis/config"
)

// Open constructs the Persist backend selected by cfg. Redis connections
// are pinged so a bad address fails here rather than on first save.
func Open(ctx context.Context, cfg config.StorageConfig) (Persist, error) {
	switch cfg.Type {
	case "memory":
		return NewMemory(), nil

	case "sqlite":
		return NewSQLite(cfg.DBPath)

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(client, cfg.KeyPrefix), nil
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
}
