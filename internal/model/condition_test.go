package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textMessage(text string) *IncomingMessage {
	return &IncomingMessage{
		ID:          "msg-1",
		Text:        text,
		UserID:      "user-1",
		ReplyToken:  "token-1",
		EventType:   EventTypeMessage,
		MessageType: "text",
	}
}

func followMessage() *IncomingMessage {
	return &IncomingMessage{
		ID:         "follow-1",
		UserID:     "user-1",
		ReplyToken: "token-1",
		EventType:  EventTypeFollow,
	}
}

func TestConditionMatches_KeywordPartial(t *testing.T) {
	cond := Condition{
		Type:     ConditionTypeKeyword,
		Keywords: []string{"hello"},
		Match:    MatchTypePartial,
	}

	assert.True(t, cond.Matches(textMessage("hello world")))
	assert.True(t, cond.Matches(textMessage("say HELLO!")))
	assert.True(t, cond.Matches(textMessage("hello")))
	assert.False(t, cond.Matches(textMessage("hell o")))
	assert.False(t, cond.Matches(textMessage("")))
}

func TestConditionMatches_KeywordExact(t *testing.T) {
	cond := Condition{
		Type:     ConditionTypeKeyword,
		Keywords: []string{"Hours"},
		Match:    MatchTypeExact,
	}

	assert.True(t, cond.Matches(textMessage("hours")))
	assert.True(t, cond.Matches(textMessage("HOURS")))
	assert.True(t, cond.Matches(textMessage("  hours  ")))
	assert.False(t, cond.Matches(textMessage("opening hours")))
}

func TestConditionMatches_MultipleKeywordsAnyOf(t *testing.T) {
	cond := Condition{
		Type:     ConditionTypeKeyword,
		Keywords: []string{"price", "cost"},
		Match:    MatchTypePartial,
	}

	assert.True(t, cond.Matches(textMessage("what is the cost?")))
	assert.True(t, cond.Matches(textMessage("price list")))
	assert.False(t, cond.Matches(textMessage("how much")))
}

func TestConditionMatches_Follow(t *testing.T) {
	cond := Condition{Type: ConditionTypeFollow}

	assert.True(t, cond.Matches(followMessage()))
	assert.False(t, cond.Matches(textMessage("hello")))
}

func TestConditionMatches_KeywordIgnoresFollowEvents(t *testing.T) {
	cond := Condition{
		Type:     ConditionTypeKeyword,
		Keywords: []string{"hello"},
		Match:    MatchTypePartial,
	}

	assert.False(t, cond.Matches(followMessage()))
}

func TestConditionValidate(t *testing.T) {
	valid := Condition{Type: ConditionTypeKeyword, Keywords: []string{"hi"}, Match: MatchTypeExact}
	require.NoError(t, valid.Validate())

	require.NoError(t, Condition{Type: ConditionTypeFollow}.Validate())

	assert.Error(t, Condition{Type: ConditionTypeKeyword, Match: MatchTypeExact}.Validate())
	assert.Error(t, Condition{Type: ConditionTypeKeyword, Keywords: []string{"hi"}, Match: "fuzzy"}.Validate())
	assert.Error(t, Condition{Type: ConditionTypeKeyword, Keywords: []string{"  "}, Match: MatchTypeExact}.Validate())
	assert.Error(t, Condition{Type: ConditionTypeFollow, Keywords: []string{"hi"}}.Validate())
	assert.Error(t, Condition{Type: "unknown"}.Validate())
}
