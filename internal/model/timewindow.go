package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeWindow 规则生效时段配置
// [StartHour, EndHour) 为半开区间，EndHour 小于 StartHour 时表示跨午夜
// DaysOfWeek 为空表示每天生效，星期判定以 Timezone 时区为准
type TimeWindow struct {
	StartHour  int            `json:"start_hour"`
	EndHour    int            `json:"end_hour"`
	Timezone   string         `json:"timezone"`
	DaysOfWeek []time.Weekday `json:"days_of_week,omitempty"`
}

// Validate 校验时段配置是否合法
func (tw TimeWindow) Validate() error {
	if tw.StartHour < 0 || tw.StartHour > 23 {
		return fmt.Errorf("time window start hour out of range: %d", tw.StartHour)
	}
	if tw.EndHour < 0 || tw.EndHour > 23 {
		return fmt.Errorf("time window end hour out of range: %d", tw.EndHour)
	}
	if tw.Timezone == "" {
		return fmt.Errorf("time window requires a timezone")
	}
	if _, err := time.LoadLocation(tw.Timezone); err != nil {
		return fmt.Errorf("time window has invalid timezone %q: %w", tw.Timezone, err)
	}
	for _, d := range tw.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("time window has invalid weekday: %d", d)
		}
	}
	return nil
}

func (tw *TimeWindow) Value() (driver.Value, error) {
	if tw == nil {
		return nil, nil
	}
	return json.Marshal(tw)
}

func (tw *TimeWindow) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal time window value")
	}
	return json.Unmarshal(bytes, tw)
}

// Contains 判断指定时刻是否落在生效时段内
// 时区加载失败时放行，避免配置问题拦截全部消息
func (tw TimeWindow) Contains(at time.Time) bool {
	loc, err := time.LoadLocation(tw.Timezone)
	if err != nil {
		return true
	}
	local := at.In(loc)

	if len(tw.DaysOfWeek) > 0 {
		ok := false
		for _, d := range tw.DaysOfWeek {
			if local.Weekday() == d {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	hour := local.Hour()
	if tw.StartHour == tw.EndHour {
		// 起止相同视为全天生效
		return true
	}
	if tw.StartHour < tw.EndHour {
		return hour >= tw.StartHour && hour < tw.EndHour
	}
	// 跨午夜时段，例如 22 点到次日 6 点
	return hour >= tw.StartHour || hour < tw.EndHour
}
