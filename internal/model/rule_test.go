package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRule() *AutoReplyRule {
	return &AutoReplyRule{
		ID:        "550e8400-e29b-41d4-a716-446655440000",
		AccountID: "acc-1",
		Name:      "greeting",
		Priority:  10,
		Conditions: ConditionList{
			{Type: ConditionTypeKeyword, Keywords: []string{"hello"}, Match: MatchTypePartial},
		},
		Responses: ResponseList{
			{Type: ResponseTypeText, Text: "hi there", Probability: 1},
		},
		Enabled: true,
	}
}

func TestRuleMatches_AllConditionsRequired(t *testing.T) {
	rule := validRule()
	rule.Conditions = ConditionList{
		{Type: ConditionTypeKeyword, Keywords: []string{"hello"}, Match: MatchTypePartial},
		{Type: ConditionTypeKeyword, Keywords: []string{"world"}, Match: MatchTypePartial},
	}

	assert.True(t, rule.Matches(textMessage("hello world")))
	assert.False(t, rule.Matches(textMessage("hello there")))
	assert.False(t, rule.Matches(textMessage("world peace")))
}

func TestRuleMatches_DisabledRuleNeverMatches(t *testing.T) {
	rule := validRule()
	rule.Enabled = false

	assert.False(t, rule.Matches(textMessage("hello")))
}

func TestRulePickResponse_Probability(t *testing.T) {
	rule := validRule()
	rule.Responses = ResponseList{
		{Type: ResponseTypeText, Text: "never", Probability: 0},
		{Type: ResponseTypeText, Text: "always", Probability: 1},
	}

	// 概率 0 永不命中，即使掷出 0
	picked := rule.PickResponse(func() float64 { return 0 })
	require.NotNil(t, picked)
	assert.Equal(t, "always", picked.Text)

	// 概率 1 永远命中
	picked = rule.PickResponse(func() float64 { return 0.999999 })
	require.NotNil(t, picked)
	assert.Equal(t, "always", picked.Text)
}

func TestRulePickResponse_AllMissed(t *testing.T) {
	rule := validRule()
	rule.Responses = ResponseList{
		{Type: ResponseTypeText, Text: "rare", Probability: 0.1},
	}

	assert.Nil(t, rule.PickResponse(func() float64 { return 0.5 }))
}

func TestRulePickResponse_FirstHitWins(t *testing.T) {
	rule := validRule()
	rule.Responses = ResponseList{
		{Type: ResponseTypeText, Text: "first", Probability: 0.5},
		{Type: ResponseTypeText, Text: "second", Probability: 1},
	}

	picked := rule.PickResponse(func() float64 { return 0.2 })
	require.NotNil(t, picked)
	assert.Equal(t, "first", picked.Text)
}

func TestRuleValidate(t *testing.T) {
	require.NoError(t, validRule().Validate())

	rule := validRule()
	rule.Name = ""
	assert.Error(t, rule.Validate())

	rule = validRule()
	rule.Priority = -1
	assert.Error(t, rule.Validate())

	rule = validRule()
	rule.Conditions = nil
	assert.Error(t, rule.Validate())

	rule = validRule()
	rule.Responses = nil
	assert.Error(t, rule.Validate())

	rule = validRule()
	rule.Responses = ResponseList{{Type: ResponseTypeText, Text: "x", Probability: 1.5}}
	assert.Error(t, rule.Validate())

	rule = validRule()
	rule.RateLimit = &RateLimit{Count: -1, WindowMinutes: 10, Scope: RateLimitScopeUser}
	assert.Error(t, rule.Validate())

	rule = validRule()
	rule.TimeWindow = &TimeWindow{StartHour: 9, EndHour: 17, Timezone: "Nowhere/Invalid"}
	assert.Error(t, rule.Validate())
}

func TestResponseValidateAndSummary(t *testing.T) {
	text := Response{Type: ResponseTypeText, Text: "hi", Probability: 1}
	require.NoError(t, text.Validate())
	assert.Equal(t, "hi", text.ContentSummary())

	image := Response{
		Type:               ResponseTypeImage,
		OriginalContentURL: "https://cdn.example.com/a.jpg",
		PreviewImageURL:    "https://cdn.example.com/a_s.jpg",
		Probability:        1,
	}
	require.NoError(t, image.Validate())
	assert.Equal(t, "https://cdn.example.com/a.jpg", image.ContentSummary())

	sticker := Response{Type: ResponseTypeSticker, PackageID: "1", StickerID: "2", Probability: 1}
	require.NoError(t, sticker.Validate())
	assert.Equal(t, "sticker:1/2", sticker.ContentSummary())

	assert.Error(t, Response{Type: ResponseTypeText, Probability: 1}.Validate())
	assert.Error(t, Response{Type: ResponseTypeImage, OriginalContentURL: "x", Probability: 1}.Validate())
	assert.Error(t, Response{Type: ResponseTypeSticker, PackageID: "1", Probability: 1}.Validate())
}

func TestWebhookEventToIncomingMessage(t *testing.T) {
	msgEvent := WebhookEvent{
		Type:       "message",
		Timestamp:  1700000000000,
		ReplyToken: "tok",
		Source:     WebhookEventSource{Type: "group", UserID: "u1", GroupID: "g1"},
		Message:    &WebhookEventMessage{ID: "m1", Type: "text", Text: "hello"},
	}
	msg := msgEvent.ToIncomingMessage()
	require.NotNil(t, msg)
	assert.Equal(t, EventTypeMessage, msg.EventType)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, "g1", msg.GroupID)
	assert.Equal(t, "m1", msg.ID)

	// 非文本消息不携带文本
	imageEvent := msgEvent
	imageEvent.Message = &WebhookEventMessage{ID: "m2", Type: "image"}
	msg = imageEvent.ToIncomingMessage()
	require.NotNil(t, msg)
	assert.Empty(t, msg.Text)
	assert.Equal(t, "image", msg.MessageType)

	followEvent := WebhookEvent{
		Type:       "follow",
		Timestamp:  1700000000000,
		ReplyToken: "tok2",
		Source:     WebhookEventSource{Type: "user", UserID: "u1"},
	}
	msg = followEvent.ToIncomingMessage()
	require.NotNil(t, msg)
	assert.Equal(t, EventTypeFollow, msg.EventType)

	assert.Nil(t, WebhookEvent{Type: "unfollow"}.ToIncomingMessage())
	assert.Nil(t, WebhookEvent{Type: "message"}.ToIncomingMessage())
}

func TestReplyLogMessageToReplyLog(t *testing.T) {
	msg := &ReplyLogMessage{
		MessageID:    "reply_log_1",
		LogID:        42,
		RuleID:       "rule-1",
		AccountID:    "acc-1",
		UserID:       "u1",
		IncomingID:   "m1",
		MatchedText:  "hello",
		ResponseType: "text",
		Status:       ReplyStatusSuccess,
		LatencyMs:    12,
	}

	log := msg.ToReplyLog()
	assert.Equal(t, int64(42), log.ID)
	require.NotNil(t, log.RuleID)
	assert.Equal(t, "rule-1", *log.RuleID)
	assert.Equal(t, ReplyStatusSuccess, log.Status)

	// 未命中规则时 RuleID 为空
	msg.RuleID = ""
	log = msg.ToReplyLog()
	assert.Nil(t, log.RuleID)
}
