package cache

import (
	"context"
	"fmt"
	"time"

	"ReplyOK/storage/redis"
)

const (
	replyLogProcessedPrefix = "replylog:processed"

	processedTTL = 48 * time.Hour
)

// TryMarkReplyLogProcessing 尝试标记回复日志消息为处理中
// 返回 true 表示首次处理，false 表示重复消息或正在处理
func TryMarkReplyLogProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(replyLogProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	// SETNX：key 不存在才设置，已存在说明消息重复
	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reply log message as processing: %w", err)
	}
	return result, nil
}

// UnmarkReplyLogProcessing 取消处理标记，处理失败时调用以允许重投
func UnmarkReplyLogProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(replyLogProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkReplyLogProcessed 标记消息处理完成并延长 TTL
func MarkReplyLogProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(replyLogProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}
