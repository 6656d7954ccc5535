package grid

import (
	"errors"
	"time"
)

var (
	// ErrInvalidRange: 起止日期缺失或开始晚于结束，操作中止，不产生任何状态变化
	ErrInvalidRange = errors.New("日期范围非法")
	// ErrEmptyResult: 范围内没有任何一天命中启用的星期模板
	ErrEmptyResult = errors.New("没有生成任何日期")
)

// DayTemplate: 某个星期几的启用开关和班次时间
type DayTemplate struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WeekdayTemplate 以英文星期名（Monday ~ Sunday）为键
type WeekdayTemplate map[string]DayTemplate

// DateEntry: 固定日期需求的一行日期配置
type DateEntry struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (e DateEntry) isBlank() bool {
	return e.Date == "" && e.StartTime == "" && e.EndTime == ""
}

// GenerateDateRange 把日期范围加每周模板展开为具体的日期行列表。
// 逐日走完 [startDate, endDate]（含两端），只保留模板中启用的星期，
// 时间取模板配置。新行的 ID 从 max(既有 ID)+1 起单调递增，避免和手工
// 输入的行冲突。既有行中未被用户动过的空白占位行会被丢弃，填过任何
// 字段的行保留。返回保留的既有行加生成的新行。
func GenerateDateRange(startDate, endDate string, tmpl WeekdayTemplate, existing []DateEntry) ([]DateEntry, error) {
	if startDate == "" || endDate == "" {
		return nil, ErrInvalidRange
	}

	// 固定用正午来规避时区导致的日期偏移
	start, err := time.Parse("2006-01-02T15:04", startDate+"T12:00")
	if err != nil {
		return nil, ErrInvalidRange
	}
	end, err := time.Parse("2006-01-02T15:04", endDate+"T12:00")
	if err != nil {
		return nil, ErrInvalidRange
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	nextID := int64(1)
	for _, e := range existing {
		if e.ID >= nextID {
			nextID = e.ID + 1
		}
	}

	generated := make([]DateEntry, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day, ok := tmpl[d.Format("Monday")]
		if !ok || !day.Enabled {
			continue
		}

		generated = append(generated, DateEntry{
			ID:        nextID,
			Date:      d.Format(dateLayout),
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
		nextID++
	}

	if len(generated) == 0 {
		return nil, ErrEmptyResult
	}

	result := make([]DateEntry, 0, len(existing)+len(generated))
	for _, e := range existing {
		if e.isBlank() {
			continue
		}
		result = append(result, e)
	}
	return append(result, generated...), nil
}
