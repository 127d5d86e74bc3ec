package cache

import (
	"context"
	"time"

	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/logger"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis 初始化 Redis 连接，未启用时保持 nil
func InitRedis(cfg config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Infow("redis_disabled")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	logger.Infow("redis_connected", "addr", cfg.Addr, "db", cfg.DB)
	return nil
}

// Client 返回 Redis 客户端，未初始化时返回 nil
func Client() *redis.Client {
	return client
}

// Close 关闭 Redis 连接
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
