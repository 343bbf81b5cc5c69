package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ReplyOK/config"
)

var (
	client  *redis.Client
	once    sync.Once
	initErr error
)

// Init 建立 Redis 连接并用 Ping 验证可达，只初始化一次。
func Init() error {
	once.Do(func() {
		client = redis.NewClient(&redis.Options{
			Addr:         config.Cfg.RedisAddr,
			Password:     config.Cfg.RedisPassword,
			DB:           config.Cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			MinIdleConns: 5,
			MaxRetries:   3,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		initErr = client.Ping(ctx).Err()
	})

	return initErr
}

func Client() *redis.Client {
	if client == nil {
		panic("redis client not initialized")
	}
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}

	return client.Close()
}

// Key 用服务前缀拼接 Redis 键，空片段会被跳过。
func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "rok"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteByte(':')
		sb.WriteString(part)
	}

	return sb.String()
}
