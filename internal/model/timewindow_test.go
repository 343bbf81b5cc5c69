package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utcAt 返回 UTC 下指定小时的时刻，星期由日期决定
func utcAt(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 30, 0, 0, time.UTC)
}

func TestTimeWindowContains_SameDayRange(t *testing.T) {
	tw := TimeWindow{StartHour: 9, EndHour: 17, Timezone: "UTC"}

	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 9)))
	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 16)))
	// 半开区间，EndHour 整点起不再生效
	assert.False(t, tw.Contains(utcAt(2026, time.March, 2, 17)))
	assert.False(t, tw.Contains(utcAt(2026, time.March, 2, 8)))
}

func TestTimeWindowContains_OvernightRange(t *testing.T) {
	tw := TimeWindow{StartHour: 22, EndHour: 6, Timezone: "UTC"}

	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 23)))
	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 2)))
	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 22)))
	assert.False(t, tw.Contains(utcAt(2026, time.March, 2, 6)))
	assert.False(t, tw.Contains(utcAt(2026, time.March, 2, 12)))
}

func TestTimeWindowContains_TimezoneConversion(t *testing.T) {
	// 东京时间 9-17 点，UTC 0 点对应东京 9 点
	tw := TimeWindow{StartHour: 9, EndHour: 17, Timezone: "Asia/Tokyo"}

	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 0)))
	assert.False(t, tw.Contains(utcAt(2026, time.March, 2, 9)))
}

func TestTimeWindowContains_DaysOfWeek(t *testing.T) {
	// 2026-03-02 是周一
	tw := TimeWindow{
		StartHour:  0,
		EndHour:    23,
		Timezone:   "UTC",
		DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday},
	}

	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 10)))  // Monday
	assert.True(t, tw.Contains(utcAt(2026, time.March, 3, 10)))  // Tuesday
	assert.False(t, tw.Contains(utcAt(2026, time.March, 4, 10))) // Wednesday
	assert.False(t, tw.Contains(utcAt(2026, time.March, 8, 10))) // Sunday
}

func TestTimeWindowContains_DayOfWeekInWindowTimezone(t *testing.T) {
	// UTC 周一 23 点在东京已经是周二
	tw := TimeWindow{
		StartHour:  0,
		EndHour:    23,
		Timezone:   "Asia/Tokyo",
		DaysOfWeek: []time.Weekday{time.Tuesday},
	}

	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 23)))
	assert.False(t, tw.Contains(utcAt(2026, time.March, 2, 10)))
}

func TestTimeWindowContains_EqualBoundsIsAllDay(t *testing.T) {
	tw := TimeWindow{StartHour: 8, EndHour: 8, Timezone: "UTC"}

	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 0)))
	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 8)))
	assert.True(t, tw.Contains(utcAt(2026, time.March, 2, 23)))
}

func TestTimeWindowValidate(t *testing.T) {
	require.NoError(t, TimeWindow{StartHour: 9, EndHour: 17, Timezone: "Asia/Tokyo"}.Validate())

	assert.Error(t, TimeWindow{StartHour: -1, EndHour: 17, Timezone: "UTC"}.Validate())
	assert.Error(t, TimeWindow{StartHour: 9, EndHour: 24, Timezone: "UTC"}.Validate())
	assert.Error(t, TimeWindow{StartHour: 9, EndHour: 17}.Validate())
	assert.Error(t, TimeWindow{StartHour: 9, EndHour: 17, Timezone: "Mars/Olympus"}.Validate())
}
