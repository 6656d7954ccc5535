package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func weekdayTemplate() WeekdayTemplate {
	return WeekdayTemplate{
		"Monday":    {Enabled: true, StartTime: "07:00", EndTime: "15:00"},
		"Tuesday":   {Enabled: false},
		"Wednesday": {Enabled: true, StartTime: "08:00", EndTime: "16:00"},
		"Thursday":  {Enabled: false},
		"Friday":    {Enabled: false},
		"Saturday":  {Enabled: false},
		"Sunday":    {Enabled: false},
	}
}

func TestGenerateDateRange(t *testing.T) {
	// 2025-12-01 是周一，2025-12-07 是周日
	entries, err := GenerateDateRange("2025-12-01", "2025-12-07", weekdayTemplate(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "2025-12-01", entries[0].Date)
	require.Equal(t, "07:00", entries[0].StartTime)
	require.Equal(t, "15:00", entries[0].EndTime)

	require.Equal(t, "2025-12-03", entries[1].Date)
	require.Equal(t, "08:00", entries[1].StartTime)
	require.Equal(t, "16:00", entries[1].EndTime)

	require.Equal(t, int64(1), entries[0].ID)
	require.Equal(t, int64(2), entries[1].ID)
}

func TestGenerateDateRangeContinuesIDs(t *testing.T) {
	existing := []DateEntry{
		{ID: 3, Date: "2025-11-20", StartTime: "09:00", EndTime: "17:00"},
		{ID: 7, Date: "2025-11-21", StartTime: "09:00", EndTime: "17:00"},
	}

	entries, err := GenerateDateRange("2025-12-01", "2025-12-07", weekdayTemplate(), existing)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// 手工输入的行保留在前面，新行 ID 从 max(既有)+1 起递增
	require.Equal(t, int64(3), entries[0].ID)
	require.Equal(t, int64(7), entries[1].ID)
	require.Equal(t, int64(8), entries[2].ID)
	require.Equal(t, int64(9), entries[3].ID)
}

func TestGenerateDateRangeDropsBlankPlaceholder(t *testing.T) {
	existing := []DateEntry{
		{ID: 1}, // 未动过的空白占位行
		{ID: 2, StartTime: "09:00"}, // 填过字段的行保留
	}

	entries, err := GenerateDateRange("2025-12-01", "2025-12-01", weekdayTemplate(), existing)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(2), entries[0].ID)
	require.Equal(t, "2025-12-01", entries[1].Date)
	require.Equal(t, int64(3), entries[1].ID)
}

func TestGenerateDateRangeInvalidRange(t *testing.T) {
	tmpl := weekdayTemplate()

	_, err := GenerateDateRange("", "2025-12-07", tmpl, nil)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateDateRange("2025-12-01", "", tmpl, nil)
	require.ErrorIs(t, err, ErrInvalidRange)

	// 开始晚于结束
	_, err = GenerateDateRange("2025-12-07", "2025-12-01", tmpl, nil)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateDateRange("not-a-date", "2025-12-07", tmpl, nil)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateDateRangeEmptyResult(t *testing.T) {
	// 范围内只有周二和周四，而模板只启用了周一和周三
	_, err := GenerateDateRange("2025-12-02", "2025-12-02", weekdayTemplate(), nil)
	require.ErrorIs(t, err, ErrEmptyResult)

	_, err = GenerateDateRange("2025-12-01", "2025-12-07", WeekdayTemplate{}, nil)
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestGenerateDateRangeSingleDayInclusive(t *testing.T) {
	// 起止同一天且命中模板，范围是闭区间
	entries, err := GenerateDateRange("2025-12-01", "2025-12-01", weekdayTemplate(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "2025-12-01", entries[0].Date)
}
