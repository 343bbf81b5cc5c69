package cache

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ReplyOK/internal/model"
	"ReplyOK/pkg/logger"
	"ReplyOK/storage/redis"
)

// ReplyRateLimiter 基于 zset 滑动窗口的规则级限流器
// 窗口内实际消耗发生在回复确认送达之后，检查与记录分两步
type ReplyRateLimiter struct{}

// NewReplyRateLimiter 创建限流器实例
func NewReplyRateLimiter() *ReplyRateLimiter {
	return &ReplyRateLimiter{}
}

// Allow 检查当前窗口内是否仍有回复额度，只读不消耗
// redis 异常时放行，限流是尽力而为的保护而非强一致约束
func (l *ReplyRateLimiter) Allow(ctx context.Context, key string, limit model.RateLimit) bool {
	cacheKey := redis.Key(key)
	now := time.Now()
	windowStart := now.Add(-limit.Window())

	client := redis.Client()
	pipe := client.Pipeline()

	// 先移除窗口外的历史记录，再统计剩余数量
	pipe.ZRemRangeByScore(ctx, cacheKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	zcardCmd := pipe.ZCard(ctx, cacheKey)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Logger.Warn("Rate limit check failed, allowing request",
			zap.String("key", key),
			zap.Error(err),
		)
		return true
	}

	return int(zcardCmd.Val()) < limit.Count
}

// Record 在窗口内记录一次已完成的回复
// 仅在确认送达后调用，失败只告警不影响主流程
func (l *ReplyRateLimiter) Record(ctx context.Context, key string, limit model.RateLimit) {
	cacheKey := redis.Key(key)
	now := time.Now()

	client := redis.Client()
	pipe := client.Pipeline()

	pipe.ZAdd(ctx, cacheKey, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	// TTL 略大于窗口，保证窗口内记录不被提前清理
	pipe.Expire(ctx, cacheKey, limit.Window()+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Logger.Warn("Failed to record rate limit consumption",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
