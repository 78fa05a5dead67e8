package database

import (
	"context"
	"fmt"

	"evtc/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis 连接到 Redis 并 PING 一次
// addr: "localhost:6379"
func ConnectRedis(ctx context.Context, addr string, password string, db int, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	logger.Or(log).Info("redis connected", zap.String("addr", addr), zap.Int("db", db))
	return rdb, nil
}
