package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ReplyOK/config"
	"ReplyOK/internal/cache"
	"ReplyOK/internal/model"
	"ReplyOK/internal/queue"
	"ReplyOK/internal/repository"
	"ReplyOK/pkg/line"
	"ReplyOK/pkg/logger"
)

var (
	webhookService *WebhookService
	webhookOnce    sync.Once
)

// Webhook 返回装配好默认依赖的 webhook 服务单例
func Webhook() *WebhookService {
	webhookOnce.Do(func() {
		gateway := line.NewClient(
			config.Cfg.LineAPIBaseURL,
			config.Cfg.LineAccessToken,
			time.Duration(config.Cfg.LineReplyTimeoutMS)*time.Millisecond,
		)
		engine := NewRuleEngine(gateway, cache.NewReplyRateLimiter(), queue.NewReplyLogRecorder())
		webhookService = NewWebhookService(engine, repository.Rule())
	})
	return webhookService
}

// ActiveRuleSource 提供账号下启用规则的快照
type ActiveRuleSource interface {
	FindActiveByAccountID(ctx context.Context, accountID string) ([]*model.AutoReplyRule, error)
}

// WebhookService 处理 webhook 事件批次
type WebhookService struct {
	engine *RuleEngine
	rules  ActiveRuleSource
}

// NewWebhookService 构建服务，依赖显式注入
func NewWebhookService(engine *RuleEngine, rules ActiveRuleSource) *WebhookService {
	return &WebhookService{engine: engine, rules: rules}
}

// ProcessEvents 顺序处理一个批次内的全部事件
// 规则快照整批共用，单条事件失败不影响其余事件
func (s *WebhookService) ProcessEvents(ctx context.Context, accountID string, req *model.WebhookRequest) *model.WebhookResult {
	result := &model.WebhookResult{Errors: []string{}}

	rules, err := s.rules.FindActiveByAccountID(ctx, accountID)
	if err != nil {
		logger.Logger.Error("Failed to load active rules",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		result.Errors = append(result.Errors, fmt.Sprintf("failed to load rules: %v", err))
		return result
	}

	for _, event := range req.Events {
		msg := event.ToIncomingMessage()
		if msg == nil {
			// 不支持的事件类型直接跳过
			continue
		}

		result.ProcessedCount++
		if s.processOne(ctx, accountID, msg, rules, result) {
			result.RepliedCount++
		}
	}

	return result
}

func (s *WebhookService) processOne(ctx context.Context, accountID string, msg *model.IncomingMessage, rules []*model.AutoReplyRule, result *model.WebhookResult) (replied bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("Panic while processing webhook event",
				zap.String("account_id", accountID),
				zap.String("message_id", msg.ID),
				zap.Any("panic", r),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("event %s: panic: %v", msg.ID, r))
			replied = false
		}
	}()

	replied, err := s.engine.Handle(ctx, accountID, msg, rules)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("event %s: %v", msg.ID, err))
	}
	return replied
}
