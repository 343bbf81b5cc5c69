package service

import (
	"context"
	"math/rand"
	"time"

	"ReplyOK/internal/model"
	"ReplyOK/pkg/line"
)

// ReplyGateway 出站回复网关
type ReplyGateway interface {
	Reply(ctx context.Context, replyToken string, messages []line.Message) error
}

// RateLimiter 规则级限流器，检查与消耗分离
// 额度只在回复确认送达后消耗
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit model.RateLimit) bool
	Record(ctx context.Context, key string, limit model.RateLimit)
}

// LogRecorder 回复日志记录器
// 记录失败由实现方自行消化，不影响回复主流程
type LogRecorder interface {
	Record(ctx context.Context, msg model.ReplyLogMessage)
}

// RuleEngine 规则评估引擎
// 对单条入站消息按优先级顺序匹配规则，至多产生一条出站回复
type RuleEngine struct {
	gateway  ReplyGateway
	limiter  RateLimiter
	recorder LogRecorder
	roll     func() float64
	now      func() time.Time
}

// EngineOption 引擎可选配置
type EngineOption func(*RuleEngine)

// WithRoll 注入概率掷骰函数，测试用
func WithRoll(roll func() float64) EngineOption {
	return func(e *RuleEngine) { e.roll = roll }
}

// WithClock 注入时钟，测试用
func WithClock(now func() time.Time) EngineOption {
	return func(e *RuleEngine) { e.now = now }
}

// NewRuleEngine 构建引擎，依赖全部显式注入
func NewRuleEngine(gateway ReplyGateway, limiter RateLimiter, recorder LogRecorder, opts ...EngineOption) *RuleEngine {
	e := &RuleEngine{
		gateway:  gateway,
		limiter:  limiter,
		recorder: recorder,
		roll:     rand.Float64,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle 处理一条入站消息
// 命中规则后的限流拒绝与时段拦截记录日志并终止，不再尝试后续规则；
// 概率未命中视为未选中回复，继续尝试下一条规则。
// 返回是否已发出回复，err 仅在网关发送失败时非空
func (e *RuleEngine) Handle(ctx context.Context, accountID string, msg *model.IncomingMessage, rules []*model.AutoReplyRule) (bool, error) {
	start := e.now()

	for _, rule := range rules {
		if !rule.Matches(msg) {
			continue
		}

		var limitKey string
		if rule.RateLimit != nil {
			limitKey = rule.RateLimit.Key(rule.ID, msg)
			if !e.limiter.Allow(ctx, limitKey, *rule.RateLimit) {
				e.record(ctx, accountID, rule, msg, nil, model.ReplyStatusRateLimited, "", start)
				return false, nil
			}
		}

		if rule.TimeWindow != nil && !rule.TimeWindow.Contains(e.now()) {
			e.record(ctx, accountID, rule, msg, nil, model.ReplyStatusTimeWindowBlocked, "", start)
			return false, nil
		}

		resp := rule.PickResponse(e.roll)
		if resp == nil {
			continue
		}

		if err := e.gateway.Reply(ctx, msg.ReplyToken, []line.Message{toLineMessage(resp)}); err != nil {
			e.record(ctx, accountID, rule, msg, resp, model.ReplyStatusFailed, err.Error(), start)
			return false, err
		}

		// 送达确认后才消耗限流额度
		if rule.RateLimit != nil {
			e.limiter.Record(ctx, limitKey, *rule.RateLimit)
		}

		e.record(ctx, accountID, rule, msg, resp, model.ReplyStatusSuccess, "", start)
		return true, nil
	}

	// 无规则命中，不回复也不记录
	return false, nil
}

func (e *RuleEngine) record(ctx context.Context, accountID string, rule *model.AutoReplyRule, msg *model.IncomingMessage, resp *model.Response, status model.ReplyStatus, errMsg string, start time.Time) {
	now := e.now()
	logMsg := model.ReplyLogMessage{
		RuleID:      rule.ID,
		AccountID:   accountID,
		UserID:      msg.UserID,
		GroupID:     msg.GroupID,
		RoomID:      msg.RoomID,
		IncomingID:  msg.ID,
		MatchedText: msg.Text,
		Status:      status,
		Error:       errMsg,
		LatencyMs:   now.Sub(start).Milliseconds(),
		OccurredAt:  now,
	}
	if resp != nil {
		logMsg.ResponseType = string(resp.Type)
		logMsg.ResponseContent = resp.ContentSummary()
	}
	countDecision(ctx, status)
	e.recorder.Record(ctx, logMsg)
}

func toLineMessage(resp *model.Response) line.Message {
	switch resp.Type {
	case model.ResponseTypeImage:
		return line.Message{
			Type:               "image",
			OriginalContentURL: resp.OriginalContentURL,
			PreviewImageURL:    resp.PreviewImageURL,
		}
	case model.ResponseTypeSticker:
		return line.Message{
			Type:      "sticker",
			PackageID: resp.PackageID,
			StickerID: resp.StickerID,
		}
	default:
		return line.Message{
			Type: "text",
			Text: resp.Text,
		}
	}
}
