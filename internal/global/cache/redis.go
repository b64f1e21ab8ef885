package cache

import (
	"context"
	"time"

	"campus-activity/config"
	"campus-activity/internal/global/sentry/tracing"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Open 连接 Redis 并 ping 一次，未配置 host 时返回 nil
func Open(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "连接 Redis 失败")
	}
	return client, nil
}
