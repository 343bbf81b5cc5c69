package model

import "time"

// ========== 规则相关 DTO ==========

// CreateRuleRequest 创建规则请求
type CreateRuleRequest struct {
	Name       string      `json:"name" binding:"required"`
	Priority   int         `json:"priority"`
	Conditions []Condition `json:"conditions" binding:"required"`
	Responses  []Response  `json:"responses" binding:"required"`
	RateLimit  *RateLimit  `json:"rate_limit"`
	TimeWindow *TimeWindow `json:"time_window"`
	Enabled    *bool       `json:"enabled"`
}

// UpdateRuleRequest 更新规则请求，整体替换规则内容
type UpdateRuleRequest struct {
	Name       string      `json:"name" binding:"required"`
	Priority   int         `json:"priority"`
	Conditions []Condition `json:"conditions" binding:"required"`
	Responses  []Response  `json:"responses" binding:"required"`
	RateLimit  *RateLimit  `json:"rate_limit"`
	TimeWindow *TimeWindow `json:"time_window"`
	Enabled    *bool       `json:"enabled"`
}

// RuleItem 规则列表项
type RuleItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookResult webhook 批次处理结果
type WebhookResult struct {
	ProcessedCount int      `json:"processed_count"`
	RepliedCount   int      `json:"replied_count"`
	Errors         []string `json:"errors"`
}

// ReplyLogListQuery 回复日志列表查询参数
type ReplyLogListQuery struct {
	Status string `form:"status"`
	RuleID string `form:"rule_id"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
