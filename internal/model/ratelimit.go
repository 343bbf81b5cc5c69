package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RateLimitScope 限流作用域枚举
type RateLimitScope string

const (
	RateLimitScopeGlobal RateLimitScope = "global" // 规则全局共享计数
	RateLimitScopeUser   RateLimitScope = "user"   // 按用户计数
	RateLimitScopeGroup  RateLimitScope = "group"  // 按群组计数
	RateLimitScopeRoom   RateLimitScope = "room"   // 按聊天室计数
)

// RateLimit 规则级限流配置
// 滑动窗口内最多允许 Count 次成功回复
type RateLimit struct {
	Count         int            `json:"count"`
	WindowMinutes int            `json:"window_minutes"`
	Scope         RateLimitScope `json:"scope"`
}

// Validate 校验限流配置是否合法
func (rl RateLimit) Validate() error {
	if rl.Count <= 0 {
		return fmt.Errorf("rate limit count must be positive, got %d", rl.Count)
	}
	if rl.WindowMinutes <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %d", rl.WindowMinutes)
	}
	switch rl.Scope {
	case RateLimitScopeGlobal, RateLimitScopeUser, RateLimitScopeGroup, RateLimitScopeRoom:
		return nil
	default:
		return fmt.Errorf("unknown rate limit scope: %q", rl.Scope)
	}
}

// Window 返回滑动窗口时长
func (rl RateLimit) Window() time.Duration {
	return time.Duration(rl.WindowMinutes) * time.Minute
}

func (rl *RateLimit) Value() (driver.Value, error) {
	if rl == nil {
		return nil, nil
	}
	return json.Marshal(rl)
}

func (rl *RateLimit) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal rate limit value")
	}
	return json.Unmarshal(bytes, rl)
}

// Key 生成限流计数键
// group/room 作用域缺少对应会话标识时退化为按用户计数，
// 1:1 聊天里触发群组限流规则就会走到这里
func (rl RateLimit) Key(ruleID string, msg *IncomingMessage) string {
	switch rl.Scope {
	case RateLimitScopeUser:
		return rl.userKey(ruleID, msg)
	case RateLimitScopeGroup:
		if msg.GroupID != "" {
			return fmt.Sprintf("ratelimit:%s:group:%s", ruleID, msg.GroupID)
		}
		return rl.userKey(ruleID, msg)
	case RateLimitScopeRoom:
		if msg.RoomID != "" {
			return fmt.Sprintf("ratelimit:%s:room:%s", ruleID, msg.RoomID)
		}
		return rl.userKey(ruleID, msg)
	}
	return fmt.Sprintf("ratelimit:%s:global", ruleID)
}

func (rl RateLimit) userKey(ruleID string, msg *IncomingMessage) string {
	if msg.UserID == "" {
		return fmt.Sprintf("ratelimit:%s:global", ruleID)
	}
	return fmt.Sprintf("ratelimit:%s:user:%s", ruleID, msg.UserID)
}
