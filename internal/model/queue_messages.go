package model

import "time"

// ReplyLogMessage 回复日志落库消息
type ReplyLogMessage struct {
	MessageID       string      `json:"message_id"` // 消息唯一ID，用于幂等性检查
	LogID           int64       `json:"log_id"`
	RuleID          string      `json:"rule_id,omitempty"`
	AccountID       string      `json:"account_id"`
	UserID          string      `json:"user_id"`
	GroupID         string      `json:"group_id,omitempty"`
	RoomID          string      `json:"room_id,omitempty"`
	IncomingID      string      `json:"incoming_id"`
	MatchedText     string      `json:"matched_text,omitempty"`
	ResponseType    string      `json:"response_type,omitempty"`
	ResponseContent string      `json:"response_content,omitempty"`
	Status          ReplyStatus `json:"status"`
	Error           string      `json:"error,omitempty"`
	LatencyMs       int64       `json:"latency_ms"`
	OccurredAt      time.Time   `json:"occurred_at"`
}

// ToReplyLog 转换为落库模型
func (m *ReplyLogMessage) ToReplyLog() *ReplyLog {
	log := &ReplyLog{
		ID:              m.LogID,
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		GroupID:         m.GroupID,
		RoomID:          m.RoomID,
		MessageID:       m.IncomingID,
		MatchedText:     m.MatchedText,
		ResponseType:    m.ResponseType,
		ResponseContent: m.ResponseContent,
		Status:          m.Status,
		Error:           m.Error,
		LatencyMs:       m.LatencyMs,
		Timestamp:       m.OccurredAt,
	}
	if m.RuleID != "" {
		ruleID := m.RuleID
		log.RuleID = &ruleID
	}
	return log
}
