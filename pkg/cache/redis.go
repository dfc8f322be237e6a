package cache

import (
	"context"
	"log"

	"social-api/configs"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a connected client, or nil when no address is
// configured. Callers treat a nil client as "cache disabled".
func NewRedis(cfg *configs.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("redis ping failed: %v", err)
	}
	return rdb
}
