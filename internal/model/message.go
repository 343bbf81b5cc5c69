package model

import (
	"time"
)

// EventType 入站事件类型枚举
type EventType string

const (
	EventTypeMessage EventType = "message" // 消息事件
	EventTypeFollow  EventType = "follow"  // 关注事件
)

// IncomingMessage 归一化后的入站事件
// 由 webhook 事件构建，仅在请求生命周期内存在，不落库
type IncomingMessage struct {
	ID          string
	Text        string
	UserID      string
	GroupID     string
	RoomID      string
	ReplyToken  string
	EventType   EventType
	MessageType string
	Timestamp   time.Time
}

// ConversationID 返回会话标识，优先级：群组 > 聊天室 > 用户
func (m *IncomingMessage) ConversationID() string {
	if m.GroupID != "" {
		return m.GroupID
	}
	if m.RoomID != "" {
		return m.RoomID
	}
	return m.UserID
}

// WebhookRequest webhook 请求体
type WebhookRequest struct {
	Destination string         `json:"destination"`
	Events      []WebhookEvent `json:"events"`
}

// WebhookEvent webhook 单条事件
type WebhookEvent struct {
	Type       string               `json:"type"`
	Timestamp  int64                `json:"timestamp"`
	ReplyToken string               `json:"replyToken"`
	Source     WebhookEventSource   `json:"source"`
	Message    *WebhookEventMessage `json:"message,omitempty"`
}

// WebhookEventSource 事件来源，Type 取值 user/group/room
type WebhookEventSource struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

// WebhookEventMessage 消息事件负载
type WebhookEventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ToIncomingMessage 将 webhook 事件转换为归一化消息
// 不支持的事件类型返回 nil
func (e WebhookEvent) ToIncomingMessage() *IncomingMessage {
	msg := &IncomingMessage{
		UserID:     e.Source.UserID,
		GroupID:    e.Source.GroupID,
		RoomID:     e.Source.RoomID,
		ReplyToken: e.ReplyToken,
		Timestamp:  time.UnixMilli(e.Timestamp),
	}
	switch e.Type {
	case string(EventTypeMessage):
		if e.Message == nil {
			return nil
		}
		msg.EventType = EventTypeMessage
		msg.ID = e.Message.ID
		msg.MessageType = e.Message.Type
		if e.Message.Type == "text" {
			msg.Text = e.Message.Text
		}
		return msg
	case string(EventTypeFollow):
		msg.EventType = EventTypeFollow
		msg.ID = e.ReplyToken
		return msg
	default:
		return nil
	}
}
