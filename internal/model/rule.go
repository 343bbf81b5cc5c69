package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// MaxRuleNameLength 规则名称最大长度
	MaxRuleNameLength = 100
	// MaxKeywordsPerCondition 单个条件关键词上限
	MaxKeywordsPerCondition = 20
	// MaxKeywordLength 单个关键词最大长度
	MaxKeywordLength = 50
)

// ConditionList 条件列表，存储为 JSONB
type ConditionList []Condition

func (l ConditionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ConditionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal condition list value")
	}
	return json.Unmarshal(bytes, l)
}

// ResponseList 回复列表，存储为 JSONB
type ResponseList []Response

func (l ResponseList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ResponseList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal response list value")
	}
	return json.Unmarshal(bytes, l)
}

// AutoReplyRule 自动回复规则模型
// 规则一经创建即视为不可变，更新走整行替换
type AutoReplyRule struct {
	ID         string        `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  string        `gorm:"type:varchar(64);not null;index:idx_auto_reply_rules_account" json:"account_id"`
	Name       string        `gorm:"type:varchar(100);not null" json:"name"`
	Priority   int           `gorm:"not null;default:0;index:idx_auto_reply_rules_account" json:"priority"`
	Conditions ConditionList `gorm:"type:jsonb;not null" json:"conditions"`
	Responses  ResponseList  `gorm:"type:jsonb;not null" json:"responses"`
	RateLimit  *RateLimit    `gorm:"type:jsonb" json:"rate_limit,omitempty"`
	TimeWindow *TimeWindow   `gorm:"type:jsonb" json:"time_window,omitempty"`
	Enabled    bool          `gorm:"not null;default:true" json:"enabled"`
	CreatedAt  time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName 指定表名
func (AutoReplyRule) TableName() string {
	return "auto_reply_rules"
}

// Validate 校验规则完整性
func (r *AutoReplyRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id is required")
	}
	if r.AccountID == "" {
		return fmt.Errorf("rule account id is required")
	}
	if r.Name == "" || len(r.Name) > MaxRuleNameLength {
		return fmt.Errorf("rule name must be between 1 and %d characters", MaxRuleNameLength)
	}
	if r.Priority < 0 {
		return fmt.Errorf("rule priority must be non-negative")
	}
	if len(r.Conditions) == 0 {
		return fmt.Errorf("rule requires at least one condition")
	}
	for i, c := range r.Conditions {
		if len(c.Keywords) > MaxKeywordsPerCondition {
			return fmt.Errorf("condition %d exceeds %d keywords", i, MaxKeywordsPerCondition)
		}
		for _, kw := range c.Keywords {
			if len(kw) > MaxKeywordLength {
				return fmt.Errorf("condition %d keyword exceeds %d characters", i, MaxKeywordLength)
			}
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	if len(r.Responses) == 0 {
		return fmt.Errorf("rule requires at least one response")
	}
	for i, resp := range r.Responses {
		if err := resp.Validate(); err != nil {
			return fmt.Errorf("response %d: %w", i, err)
		}
	}
	if r.RateLimit != nil {
		if err := r.RateLimit.Validate(); err != nil {
			return err
		}
	}
	if r.TimeWindow != nil {
		if err := r.TimeWindow.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Matches 判断消息是否命中本规则，所有条件同时满足才算命中
func (r *AutoReplyRule) Matches(msg *IncomingMessage) bool {
	if !r.Enabled || len(r.Conditions) == 0 {
		return false
	}
	for _, c := range r.Conditions {
		if !c.Matches(msg) {
			return false
		}
	}
	return true
}

// PickResponse 按顺序对每条回复独立掷骰，返回第一条命中的回复
// roll 每次调用返回 [0,1) 的随机数，roll < probability 视为命中
// 全部未命中时返回 nil，调用方跳过本规则继续匹配
func (r *AutoReplyRule) PickResponse(roll func() float64) *Response {
	for i := range r.Responses {
		if roll() < r.Responses[i].Probability {
			return &r.Responses[i]
		}
	}
	return nil
}
