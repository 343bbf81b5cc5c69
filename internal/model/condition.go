package model

import (
	"fmt"
	"strings"
)

// ConditionType 触发条件类型枚举
type ConditionType string

const (
	ConditionTypeKeyword ConditionType = "keyword" // 关键词匹配
	ConditionTypeFollow  ConditionType = "follow"  // 关注事件
)

// MatchType 关键词匹配方式枚举
type MatchType string

const (
	MatchTypeExact   MatchType = "exact"   // 完全匹配
	MatchTypePartial MatchType = "partial" // 包含匹配
)

// Condition 规则触发条件
// keyword 类型要求 Keywords 与 Match 字段，follow 类型两者均为空
type Condition struct {
	Type     ConditionType `json:"type"`
	Keywords []string      `json:"keywords,omitempty"`
	Match    MatchType     `json:"match,omitempty"`
}

// Validate 校验条件字段组合是否合法
func (c Condition) Validate() error {
	switch c.Type {
	case ConditionTypeKeyword:
		if len(c.Keywords) == 0 {
			return fmt.Errorf("keyword condition requires at least one keyword")
		}
		for _, kw := range c.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("keyword condition contains an empty keyword")
			}
		}
		if c.Match != MatchTypeExact && c.Match != MatchTypePartial {
			return fmt.Errorf("keyword condition has invalid match type: %q", c.Match)
		}
		return nil
	case ConditionTypeFollow:
		if len(c.Keywords) > 0 || c.Match != "" {
			return fmt.Errorf("follow condition must not carry keyword fields")
		}
		return nil
	default:
		return fmt.Errorf("unknown condition type: %q", c.Type)
	}
}

// Matches 判断消息是否命中本条件
// 关键词比较不区分大小写，exact 先去除首尾空白再比较
func (c Condition) Matches(msg *IncomingMessage) bool {
	switch c.Type {
	case ConditionTypeFollow:
		return msg.EventType == EventTypeFollow
	case ConditionTypeKeyword:
		if msg.EventType != EventTypeMessage || msg.Text == "" {
			return false
		}
		text := strings.ToLower(msg.Text)
		trimmed := strings.TrimSpace(text)
		for _, kw := range c.Keywords {
			kwLower := strings.ToLower(kw)
			switch c.Match {
			case MatchTypeExact:
				if trimmed == strings.TrimSpace(kwLower) {
					return true
				}
			case MatchTypePartial:
				if strings.Contains(text, kwLower) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}
