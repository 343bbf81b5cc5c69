package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ReplyOK/config"
	"ReplyOK/internal/cache"
	"ReplyOK/internal/model"
	"ReplyOK/internal/repository"
	"ReplyOK/pkg/errors"
	"ReplyOK/pkg/logger"
	"ReplyOK/storage/mq"
)

// StartReplyLogConsumer 启动回复日志消费者，阻塞直到消费通道关闭
func StartReplyLogConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ReplyLogMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// 畸形消息重投也无法恢复，直接丢弃
			logger.Logger.Error("Failed to unmarshal reply log message, dropping",
				zap.Error(err),
			)
			return &errors.SkipMessageError{Reason: "malformed reply log message"}
		}

		processed, err := cache.TryMarkReplyLogProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败继续处理，落库侧有主键冲突兜底
		} else if !processed {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		if err := repository.ReplyLog().Save(ctx, msg.ToReplyLog()); err != nil {
			// 落库失败取消标记，允许重投
			if unmarkErr := cache.UnmarkReplyLogProcessing(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to unmark message processing",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return fmt.Errorf("failed to save reply log: %w", err)
		}

		if err := cache.MarkReplyLogProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		logger.Logger.Debug("Reply log persisted",
			zap.String("message_id", msg.MessageID),
			zap.Int64("log_id", msg.LogID),
			zap.String("status", string(msg.Status)),
		)

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         config.Cfg.ReplyLogQueue,
		ConsumerTag:   "reply_log_consumer",
		PrefetchCount: config.Cfg.ReplyLogPrefetch,
		Handler:       handler,
	})
}

// StartAllConsumers 启动全部消费者并阻塞到它们退出
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"reply_log", StartReplyLogConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()
}
