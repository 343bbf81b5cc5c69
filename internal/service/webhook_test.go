package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReplyOK/internal/model"
	"ReplyOK/pkg/line"
)

type fakeRuleSource struct {
	rules []*model.AutoReplyRule
	err   error
}

func (s *fakeRuleSource) FindActiveByAccountID(ctx context.Context, accountID string) ([]*model.AutoReplyRule, error) {
	return s.rules, s.err
}

func webhookRequest(events ...model.WebhookEvent) *model.WebhookRequest {
	return &model.WebhookRequest{Destination: "acc-1", Events: events}
}

func messageEvent(id, text string) model.WebhookEvent {
	return model.WebhookEvent{
		Type:       "message",
		Timestamp:  1700000000000,
		ReplyToken: "token-" + id,
		Source:     model.WebhookEventSource{Type: "user", UserID: "user-1"},
		Message:    &model.WebhookEventMessage{ID: id, Type: "text", Text: text},
	}
}

func followEvent(token string) model.WebhookEvent {
	return model.WebhookEvent{
		Type:       "follow",
		Timestamp:  1700000000000,
		ReplyToken: token,
		Source:     model.WebhookEventSource{Type: "user", UserID: "user-2"},
	}
}

func TestProcessEvents_CountsMessagesAndFollows(t *testing.T) {
	gw := &fakeGateway{}
	rec := &fakeRecorder{}
	engine := newTestEngine(gw, &fakeLimiter{allow: true}, rec)

	welcome := &model.AutoReplyRule{
		ID:        "welcome",
		AccountID: "acc-1",
		Name:      "welcome",
		Priority:  5,
		Conditions: model.ConditionList{
			{Type: model.ConditionTypeFollow},
		},
		Responses: model.ResponseList{
			{Type: model.ResponseTypeText, Text: "welcome", Probability: 1},
		},
		Enabled: true,
	}
	greeting := textRule("greeting", 10, "hello", "hi")

	svc := NewWebhookService(engine, &fakeRuleSource{rules: []*model.AutoReplyRule{greeting, welcome}})

	result := svc.ProcessEvents(context.Background(), "acc-1", webhookRequest(
		messageEvent("m1", "hello there"),
		followEvent("f1"),
		messageEvent("m2", "unrelated"),
	))

	assert.Equal(t, 3, result.ProcessedCount)
	assert.Equal(t, 2, result.RepliedCount)
	assert.Empty(t, result.Errors)
	assert.Len(t, gw.calls, 2)
}

func TestProcessEvents_SkipsUnsupportedEvents(t *testing.T) {
	engine := newTestEngine(&fakeGateway{}, &fakeLimiter{allow: true}, &fakeRecorder{})
	svc := NewWebhookService(engine, &fakeRuleSource{})

	result := svc.ProcessEvents(context.Background(), "acc-1", webhookRequest(
		model.WebhookEvent{Type: "unfollow"},
		model.WebhookEvent{Type: "message"}, // message 字段缺失
	))

	assert.Equal(t, 0, result.ProcessedCount)
	assert.Equal(t, 0, result.RepliedCount)
	assert.Empty(t, result.Errors)
}

func TestProcessEvents_EventFailureIsolated(t *testing.T) {
	// 网关第一次调用失败，之后恢复
	gw := &flakyGateway{failures: 1}
	rec := &fakeRecorder{}
	engine := newTestEngine(gw, &fakeLimiter{allow: true}, rec)

	svc := NewWebhookService(engine, &fakeRuleSource{
		rules: []*model.AutoReplyRule{textRule("r1", 10, "hello", "hi")},
	})

	result := svc.ProcessEvents(context.Background(), "acc-1", webhookRequest(
		messageEvent("m1", "hello"),
		messageEvent("m2", "hello"),
	))

	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 1, result.RepliedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "m1")
}

func TestProcessEvents_PanicRecoveredIntoErrors(t *testing.T) {
	engine := newTestEngine(&panicGateway{}, &fakeLimiter{allow: true}, &fakeRecorder{})
	svc := NewWebhookService(engine, &fakeRuleSource{
		rules: []*model.AutoReplyRule{textRule("r1", 10, "hello", "hi")},
	})

	result := svc.ProcessEvents(context.Background(), "acc-1", webhookRequest(
		messageEvent("m1", "hello"),
		messageEvent("m2", "unrelated"),
	))

	// panic 只打掉当前事件，批次继续
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 0, result.RepliedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "m1")
	assert.Contains(t, result.Errors[0], "panic")
}

func TestProcessEvents_RuleFetchFailure(t *testing.T) {
	engine := newTestEngine(&fakeGateway{}, &fakeLimiter{allow: true}, &fakeRecorder{})
	svc := NewWebhookService(engine, &fakeRuleSource{err: errors.New("db down")})

	result := svc.ProcessEvents(context.Background(), "acc-1", webhookRequest(messageEvent("m1", "hello")))

	assert.Equal(t, 0, result.ProcessedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "db down")
}

func TestProcessEvents_RuleSnapshotSharedAcrossBatch(t *testing.T) {
	gw := &fakeGateway{}
	source := &countingRuleSource{rules: []*model.AutoReplyRule{textRule("r1", 10, "hello", "hi")}}
	engine := newTestEngine(gw, &fakeLimiter{allow: true}, &fakeRecorder{})
	svc := NewWebhookService(engine, source)

	svc.ProcessEvents(context.Background(), "acc-1", webhookRequest(
		messageEvent("m1", "hello"),
		messageEvent("m2", "hello"),
		messageEvent("m3", "hello"),
	))

	// 规则快照整批只取一次
	assert.Equal(t, 1, source.fetches)
}

type panicGateway struct{}

func (g *panicGateway) Reply(ctx context.Context, replyToken string, messages []line.Message) error {
	panic("gateway exploded")
}

type flakyGateway struct {
	failures int
	calls    int
}

func (g *flakyGateway) Reply(ctx context.Context, replyToken string, messages []line.Message) error {
	g.calls++
	if g.calls <= g.failures {
		return errors.New("temporary gateway failure")
	}
	return nil
}

type countingRuleSource struct {
	rules   []*model.AutoReplyRule
	fetches int
}

func (s *countingRuleSource) FindActiveByAccountID(ctx context.Context, accountID string) ([]*model.AutoReplyRule, error) {
	s.fetches++
	return s.rules, nil
}
