package database

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/corebank/internal/config"
)

// InitRedis initializes the Redis client used for token revocation.
// It returns nil when Redis is unreachable.
func InitRedis(cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Redis connection failed, continuing without Redis: %v", err)
		rdb.Close()
		return nil
	}

	log.Println("[REDIS] Redis connection established")
	return rdb
}
