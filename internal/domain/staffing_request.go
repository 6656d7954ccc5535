package domain

import (
	"time"
)

type RequestType string

const (
	RequestTypeLabour    RequestType = "labour"
	RequestTypeContainer RequestType = "container"
)

type DateType string

const (
	DateTypeFixed   DateType = "fixed"
	DateTypeOngoing DateType = "ongoing"
)

type RequestStatus string

const (
	RequestStatusUnstaffed RequestStatus = "unstaffed"
	RequestStatusStaffed   RequestStatus = "staffed"
)

// WeekdayShift: 长期需求的每周固定班次，Day 为英文星期名（Monday ~ Sunday）
type WeekdayShift struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ShiftTime struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SkillRequirement: 一条用工需求，Quantity 表示需要多少个并行岗位。
// 固定日期需求使用 Dates（以及可选的按日期配置的 ShiftTimes）；
// 长期需求使用 WeekdaySchedule，顺序即配置顺序。
type SkillRequirement struct {
	ID              int64                `json:"id"`
	Skill           string               `json:"skill"`
	Quantity        int32                `json:"quantity"`
	Dates           []string             `json:"dates,omitempty"`
	WeekdaySchedule []WeekdayShift       `json:"weekdaySchedule,omitempty"`
	ShiftTimes      map[string]ShiftTime `json:"shiftTimes,omitempty"`
}

// NumDates 返回这条需求的日期轴长度：长期需求取每周班次数，固定需求取日期数。
func (sr *SkillRequirement) NumDates(dateType DateType) int {
	if dateType == DateTypeOngoing {
		return len(sr.WeekdaySchedule)
	}
	return len(sr.Dates)
}

type StaffingRequest struct {
	ID                int64                        `json:"id"`
	Client            string                       `json:"client"`
	JobSite           string                       `json:"jobSite"`
	ContactPerson     string                       `json:"contactPerson"`
	ContactEmail      string                       `json:"contactEmail"`
	Phone             string                       `json:"phone"`
	Description       string                       `json:"description"`
	Supervisor        string                       `json:"supervisor"`
	Type              RequestType                  `json:"type"`
	DateType          DateType                     `json:"dateType"`
	StartDate         string                       `json:"startDate,omitempty"` // YYYY-MM-DD，仅长期需求使用
	SkillRequirements []SkillRequirement           `json:"skillRequirements"`
	Assignments       map[string]*AssignmentRecord `json:"assignments"`
	Status            RequestStatus                `json:"status"`
	CreatedAt         time.Time                    `json:"createdAt"`
	Version           int32                        `json:"-"`
}
