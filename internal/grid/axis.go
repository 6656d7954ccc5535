package grid

import (
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

type ViewMode string

const (
	// ViewModeSchedule: 长期需求的周课表视图，一列对应 weekdaySchedule 的一项，
	// 顺序为配置顺序而非日历顺序，不随真实日期变化
	ViewModeSchedule ViewMode = "schedule"
	// ViewModeCalendar: 把长期需求投影成未来若干周的真实日历日期
	ViewModeCalendar ViewMode = "calendar"
)

// DateColumn: 日期轴上的一列。周课表视图下 Date 为空，只有 DayLabel 有意义。
type DateColumn struct {
	Date      string `json:"date"`
	DayLabel  string `json:"dayLabel"`
	DateLabel string `json:"dateLabel,omitempty"`
}

const dateLayout = "2006-01-02"

// AxisGenerator 为一个请求生成有序的可排班日期轴。
// Now 可注入，便于测试固定"今天"。
type AxisGenerator struct {
	WeeksToShow int
	VisibleDays int
	Now         func() time.Time
}

func NewAxisGenerator(weeksToShow, visibleDays int) *AxisGenerator {
	return &AxisGenerator{
		WeeksToShow: weeksToShow,
		VisibleDays: visibleDays,
		Now:         time.Now,
	}
}

// Generate 生成请求的日期轴。
// 固定需求：轴就是第一条需求的日期列表（同一请求的所有需求共享同一日期轴，
// 以第一条为准）。长期需求按视图模式分派。空轴表示没有可排班的日期，不是错误。
func (g *AxisGenerator) Generate(req *domain.StaffingRequest, mode ViewMode) []DateColumn {
	if req == nil || len(req.SkillRequirements) == 0 {
		return []DateColumn{}
	}

	if req.DateType != domain.DateTypeOngoing {
		return g.fixedAxis(req)
	}

	if mode == ViewModeCalendar {
		return g.calendarAxis(req)
	}
	return g.scheduleAxis(req)
}

func (g *AxisGenerator) fixedAxis(req *domain.StaffingRequest) []DateColumn {
	dates := req.SkillRequirements[0].Dates
	cols := make([]DateColumn, 0, len(dates))
	for _, dateStr := range dates {
		col := DateColumn{Date: dateStr}
		if d, err := time.Parse(dateLayout, dateStr); err == nil {
			col.DayLabel = d.Format("Mon")
			col.DateLabel = d.Format("Jan 2")
		}
		cols = append(cols, col)
	}
	return cols
}

func (g *AxisGenerator) scheduleAxis(req *domain.StaffingRequest) []DateColumn {
	schedule := req.SkillRequirements[0].WeekdaySchedule
	cols := make([]DateColumn, 0, len(schedule))
	for _, entry := range schedule {
		cols = append(cols, DateColumn{DayLabel: entry.Day})
	}
	return cols
}

// calendarAxis 把每周班次投影到真实日期：从 max(请求开始日期, 今天) 起逐日前进
// weeksToShow 周，保留星期落在 weekdaySchedule 内的日子，按日历顺序输出。
func (g *AxisGenerator) calendarAxis(req *domain.StaffingRequest) []DateColumn {
	schedule := req.SkillRequirements[0].WeekdaySchedule
	if len(schedule) == 0 {
		return []DateColumn{}
	}

	scheduled := make(map[time.Weekday]bool, len(schedule))
	for _, entry := range schedule {
		if wd, ok := weekdayByName[entry.Day]; ok {
			scheduled[wd] = true
		}
	}

	now := g.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start := today
	if req.StartDate != "" {
		if sd, err := time.Parse(dateLayout, req.StartDate); err == nil && sd.After(today) {
			start = sd
		}
	}

	weeks := g.WeeksToShow
	if weeks <= 0 {
		weeks = 8
	}
	end := start.AddDate(0, 0, weeks*7)

	cols := make([]DateColumn, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !scheduled[d.Weekday()] {
			continue
		}
		cols = append(cols, DateColumn{
			Date:      d.Format(dateLayout),
			DayLabel:  d.Format("Mon"),
			DateLabel: d.Format("Jan 2"),
		})
	}
	return cols
}

// ClampWindow 把分页起点钳制到 [0, max(0, total-visibleDays)]。翻页永不报错，只钳制。
func (g *AxisGenerator) ClampWindow(total, start int) int {
	maxStart := total - g.VisibleDays
	if maxStart < 0 {
		maxStart = 0
	}
	if start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}
	return start
}

// VisibleWindow 返回从钳制后的起点开始、至多 visibleDays 列的可见窗口
func (g *AxisGenerator) VisibleWindow(cols []DateColumn, start int) ([]DateColumn, int) {
	start = g.ClampWindow(len(cols), start)
	end := start + g.VisibleDays
	if end > len(cols) {
		end = len(cols)
	}
	return cols[start:end], start
}

var weekdayByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ShiftTimeFor 返回某一列对应的班次时间展示串，例如 "07:00 - 15:00"。
// 日历视图按真实日期的星期名匹配每周班次；周课表视图直接用列序号；
// 固定需求用日期在 shiftTimes 中查找。查不到返回空串。
func ShiftTimeFor(req *domain.StaffingRequest, sr *domain.SkillRequirement, mode ViewMode, dateIdx int, date string) string {
	if req.DateType == domain.DateTypeOngoing && mode == ViewModeCalendar {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return ""
		}
		dayName := d.Format("Monday")
		for _, entry := range sr.WeekdaySchedule {
			if entry.Day == dayName {
				return entry.StartTime + " - " + entry.EndTime
			}
		}
		return ""
	}

	if req.DateType == domain.DateTypeOngoing {
		if dateIdx >= 0 && dateIdx < len(sr.WeekdaySchedule) {
			entry := sr.WeekdaySchedule[dateIdx]
			return entry.StartTime + " - " + entry.EndTime
		}
		return ""
	}

	if times, ok := sr.ShiftTimes[date]; ok {
		return times.StartTime + " - " + times.EndTime
	}
	return ""
}
