package model

import (
	"time"
)

// ReplyStatus 回复结果状态枚举
type ReplyStatus string

const (
	ReplyStatusSuccess           ReplyStatus = "success"             // 回复成功
	ReplyStatusFailed            ReplyStatus = "failed"              // 发送失败
	ReplyStatusRateLimited       ReplyStatus = "rate_limited"        // 触发限流
	ReplyStatusTimeWindowBlocked ReplyStatus = "time_window_blocked" // 时段外拦截
)

// Valid 判断状态取值是否合法
func (s ReplyStatus) Valid() bool {
	switch s {
	case ReplyStatusSuccess, ReplyStatusFailed, ReplyStatusRateLimited, ReplyStatusTimeWindowBlocked:
		return true
	}
	return false
}

// ReplyLog 回复决策日志，只追加不修改
type ReplyLog struct {
	ID              int64       `gorm:"primaryKey" json:"id"`
	RuleID          *string     `gorm:"type:uuid;index:idx_reply_logs_rule" json:"rule_id,omitempty"`
	AccountID       string      `gorm:"type:varchar(64);not null;index:idx_reply_logs_account" json:"account_id"`
	UserID          string      `gorm:"type:varchar(64);not null" json:"user_id"`
	GroupID         string      `gorm:"type:varchar(64)" json:"group_id,omitempty"`
	RoomID          string      `gorm:"type:varchar(64)" json:"room_id,omitempty"`
	MessageID       string      `gorm:"type:varchar(64);not null" json:"message_id"`
	MatchedText     string      `gorm:"type:text" json:"matched_text,omitempty"`
	ResponseType    string      `gorm:"type:varchar(16)" json:"response_type,omitempty"`
	ResponseContent string      `gorm:"type:text" json:"response_content,omitempty"`
	Status          ReplyStatus `gorm:"type:varchar(32);not null;index:idx_reply_logs_status" json:"status"`
	Error           string      `gorm:"type:text" json:"error,omitempty"`
	LatencyMs       int64       `gorm:"not null;default:0" json:"latency_ms"`
	Timestamp       time.Time   `gorm:"type:timestamptz;not null;index:idx_reply_logs_time" json:"timestamp"`
	CreatedAt       time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

// TableName 指定表名
func (ReplyLog) TableName() string {
	return "reply_logs"
}
