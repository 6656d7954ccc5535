package grid

import (
	"testing"
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func fixedClock(dateStr string) func() time.Time {
	return func() time.Time {
		d, _ := time.Parse(dateLayout, dateStr)
		return d
	}
}

func TestGenerateFixedAxis(t *testing.T) {
	g := NewAxisGenerator(8, 5)
	req := &domain.StaffingRequest{
		Type:     domain.RequestTypeLabour,
		DateType: domain.DateTypeFixed,
		SkillRequirements: []domain.SkillRequirement{
			{Skill: "普工", Quantity: 1, Dates: []string{"2025-12-01", "2025-12-03"}},
			// 同一请求的所有需求共享同一日期轴，以第一条为准
			{Skill: "叉车司机", Quantity: 1, Dates: []string{"2025-12-05"}},
		},
	}

	cols := g.Generate(req, ViewModeSchedule)
	require.Len(t, cols, 2)
	require.Equal(t, "2025-12-01", cols[0].Date)
	require.Equal(t, "Mon", cols[0].DayLabel)
	require.Equal(t, "Dec 1", cols[0].DateLabel)
	require.Equal(t, "Wed", cols[1].DayLabel)
}

func TestGenerateScheduleAxis(t *testing.T) {
	g := NewAxisGenerator(8, 5)
	req := &domain.StaffingRequest{
		Type:     domain.RequestTypeLabour,
		DateType: domain.DateTypeOngoing,
		SkillRequirements: []domain.SkillRequirement{
			{
				Skill:    "普工",
				Quantity: 2,
				WeekdaySchedule: []domain.WeekdayShift{
					// 配置顺序不是日历顺序，轴必须保持配置顺序
					{Day: "Wednesday", StartTime: "08:00", EndTime: "16:00"},
					{Day: "Monday", StartTime: "07:00", EndTime: "15:00"},
				},
			},
		},
	}

	cols := g.Generate(req, ViewModeSchedule)
	require.Len(t, cols, 2)
	require.Equal(t, "Wednesday", cols[0].DayLabel)
	require.Equal(t, "Monday", cols[1].DayLabel)
	require.Empty(t, cols[0].Date)
}

func TestGenerateCalendarAxis(t *testing.T) {
	g := NewAxisGenerator(8, 5)
	// 今天是周四，请求从过去的一个周二开始
	g.Now = fixedClock("2025-12-04")

	req := &domain.StaffingRequest{
		Type:      domain.RequestTypeLabour,
		DateType:  domain.DateTypeOngoing,
		StartDate: "2025-11-25",
		SkillRequirements: []domain.SkillRequirement{
			{
				Skill:    "普工",
				Quantity: 1,
				WeekdaySchedule: []domain.WeekdayShift{
					{Day: "Monday", StartTime: "07:00", EndTime: "15:00"},
					{Day: "Wednesday", StartTime: "08:00", EndTime: "16:00"},
				},
			},
		},
	}

	cols := g.Generate(req, ViewModeCalendar)
	require.NotEmpty(t, cols)
	// 第一列必须是今天之后的第一个周一，而不是开始日期之后的
	require.Equal(t, "2025-12-08", cols[0].Date)
	require.Equal(t, "Mon", cols[0].DayLabel)

	for _, col := range cols {
		require.Contains(t, []string{"Mon", "Wed"}, col.DayLabel)
	}
	// 8 周窗口（含边界日）内共 8 个周一和 8 个周三
	require.Len(t, cols, 16)
}

func TestGenerateCalendarAxisFutureStart(t *testing.T) {
	g := NewAxisGenerator(8, 5)
	g.Now = fixedClock("2025-12-04")

	req := &domain.StaffingRequest{
		Type:      domain.RequestTypeLabour,
		DateType:  domain.DateTypeOngoing,
		StartDate: "2025-12-20",
		SkillRequirements: []domain.SkillRequirement{
			{
				Skill:           "普工",
				Quantity:        1,
				WeekdaySchedule: []domain.WeekdayShift{{Day: "Monday", StartTime: "07:00", EndTime: "15:00"}},
			},
		},
	}

	cols := g.Generate(req, ViewModeCalendar)
	require.NotEmpty(t, cols)
	// 2025-12-20 是周六，之后的第一个周一是 12-22
	require.Equal(t, "2025-12-22", cols[0].Date)
}

func TestGenerateEmptySchedule(t *testing.T) {
	g := NewAxisGenerator(8, 5)
	g.Now = fixedClock("2025-12-04")

	req := &domain.StaffingRequest{
		Type:     domain.RequestTypeLabour,
		DateType: domain.DateTypeOngoing,
		SkillRequirements: []domain.SkillRequirement{
			{Skill: "普工", Quantity: 1},
		},
	}

	// 空的每周班次意味着没有可排班的日期，不是错误
	require.Empty(t, g.Generate(req, ViewModeCalendar))
	require.Empty(t, g.Generate(req, ViewModeSchedule))
	require.Empty(t, g.Generate(nil, ViewModeSchedule))
}

func TestClampWindow(t *testing.T) {
	g := NewAxisGenerator(8, 5)

	tests := []struct {
		total, start, want int
	}{
		{10, 0, 0},
		{10, 3, 3},
		{10, 5, 5},
		{10, 99, 5},
		{10, -1, 0},
		{3, 2, 0}, // 总数少于每页列数时起点钳到 0
		{0, 4, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, g.ClampWindow(tt.total, tt.start))
	}
}

func TestVisibleWindow(t *testing.T) {
	g := NewAxisGenerator(8, 2)
	cols := []DateColumn{{Date: "a"}, {Date: "b"}, {Date: "c"}}

	window, start := g.VisibleWindow(cols, 99)
	require.Equal(t, 1, start)
	require.Len(t, window, 2)
	require.Equal(t, "b", window[0].Date)
}

func TestShiftTimeFor(t *testing.T) {
	sr := &domain.SkillRequirement{
		Skill: "普工",
		WeekdaySchedule: []domain.WeekdayShift{
			{Day: "Monday", StartTime: "07:00", EndTime: "15:00"},
			{Day: "Wednesday", StartTime: "08:00", EndTime: "16:00"},
		},
	}
	ongoing := &domain.StaffingRequest{DateType: domain.DateTypeOngoing}

	// 日历视图按真实日期的星期名匹配，2025-12-08 是周一
	require.Equal(t, "07:00 - 15:00", ShiftTimeFor(ongoing, sr, ViewModeCalendar, 0, "2025-12-08"))
	// 周课表视图直接用列序号
	require.Equal(t, "08:00 - 16:00", ShiftTimeFor(ongoing, sr, ViewModeSchedule, 1, ""))
	require.Empty(t, ShiftTimeFor(ongoing, sr, ViewModeSchedule, 9, ""))

	fixed := &domain.StaffingRequest{DateType: domain.DateTypeFixed}
	frs := &domain.SkillRequirement{
		Skill:      "普工",
		ShiftTimes: map[string]domain.ShiftTime{"2025-12-01": {StartTime: "09:00", EndTime: "17:00"}},
	}
	require.Equal(t, "09:00 - 17:00", ShiftTimeFor(fixed, frs, ViewModeSchedule, 0, "2025-12-01"))
	require.Empty(t, ShiftTimeFor(fixed, frs, ViewModeSchedule, 0, "2025-12-02"))
}
