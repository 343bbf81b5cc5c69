package queue

import (
	"fmt"

	"go.uber.org/zap"

	"ReplyOK/config"
	"ReplyOK/internal/model"
	"ReplyOK/pkg/logger"
	"ReplyOK/pkg/snowflake"
	"ReplyOK/storage/mq"
)

// PublishReplyLog 发布回复日志落库消息
func PublishReplyLog(msg model.ReplyLogMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextStringID("reply_log")
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("account_id", msg.AccountID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = id
	}
	if msg.LogID == 0 {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate log ID: %w", err)
		}
		msg.LogID = id
	}

	err := mq.PublishMessage(
		"",                        // 默认 exchange
		config.Cfg.ReplyLogQueue,  // routing key 即队列名
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish reply log message",
			zap.String("message_id", msg.MessageID),
			zap.String("account_id", msg.AccountID),
			zap.String("status", string(msg.Status)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Debug("Published reply log message",
		zap.String("message_id", msg.MessageID),
		zap.String("rule_id", msg.RuleID),
		zap.String("status", string(msg.Status)),
	)

	return nil
}
