package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

var weekdayNames = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// ValidateStaffingRequest 按请求变体检查必填字段。
// 领域里只有三种请求形态：固定日期用工、长期用工、集装箱，
// 每种形态各有自己必须具备的字段，这里集中把关，后续代码不再猜测可选字段。
func ValidateStaffingRequest(req *domain.StaffingRequest) error {
	switch req.Type {
	case domain.RequestTypeContainer:
		if len(req.SkillRequirements) > 0 {
			return errors.New("集装箱请求不能携带用工需求")
		}
		return nil
	case domain.RequestTypeLabour:
		// 继续往下检查
	default:
		return fmt.Errorf("未知的请求类型: %q", req.Type)
	}

	if len(req.SkillRequirements) == 0 {
		return errors.New("用工请求至少需要一条用工需求")
	}

	switch req.DateType {
	case domain.DateTypeFixed:
		return validateFixedRequirements(req)
	case domain.DateTypeOngoing:
		return validateOngoingRequirements(req)
	default:
		return fmt.Errorf("未知的日期类型: %q", req.DateType)
	}
}

func validateFixedRequirements(req *domain.StaffingRequest) error {
	for i, sr := range req.SkillRequirements {
		if sr.Skill == "" {
			return fmt.Errorf("第 %d 条需求缺少技能名称", i+1)
		}
		if sr.Quantity <= 0 {
			return fmt.Errorf("第 %d 条需求的岗位数量必须为正数", i+1)
		}
		if len(sr.Dates) == 0 {
			return fmt.Errorf("第 %d 条需求缺少日期列表", i+1)
		}
		if len(sr.WeekdaySchedule) > 0 {
			return fmt.Errorf("第 %d 条需求是固定日期需求，不能配置每周班次", i+1)
		}

		for _, dateStr := range sr.Dates {
			if _, err := time.Parse("2006-01-02", dateStr); err != nil {
				return fmt.Errorf("第 %d 条需求的日期 %q 格式错误", i+1, dateStr)
			}
		}
		for dateStr, st := range sr.ShiftTimes {
			if _, err := time.Parse("2006-01-02", dateStr); err != nil {
				return fmt.Errorf("第 %d 条需求的班次时间日期 %q 格式错误", i+1, dateStr)
			}
			if err := validateShiftTime(st.StartTime, st.EndTime); err != nil {
				return fmt.Errorf("第 %d 条需求 %s 的班次时间错误: %w", i+1, dateStr, err)
			}
		}
	}
	return nil
}

func validateOngoingRequirements(req *domain.StaffingRequest) error {
	if req.StartDate == "" {
		return errors.New("长期需求缺少开始日期")
	}
	if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		return fmt.Errorf("开始日期 %q 格式错误", req.StartDate)
	}

	for i, sr := range req.SkillRequirements {
		if sr.Skill == "" {
			return fmt.Errorf("第 %d 条需求缺少技能名称", i+1)
		}
		if sr.Quantity <= 0 {
			return fmt.Errorf("第 %d 条需求的岗位数量必须为正数", i+1)
		}
		if len(sr.WeekdaySchedule) == 0 {
			return fmt.Errorf("第 %d 条需求缺少每周班次", i+1)
		}
		if len(sr.Dates) > 0 {
			return fmt.Errorf("第 %d 条需求是长期需求，不能配置固定日期", i+1)
		}

		seen := make(map[string]bool, len(sr.WeekdaySchedule))
		for _, ws := range sr.WeekdaySchedule {
			if !weekdayNames[ws.Day] {
				return fmt.Errorf("第 %d 条需求的星期 %q 非法", i+1, ws.Day)
			}
			if seen[ws.Day] {
				return fmt.Errorf("第 %d 条需求的星期 %s 重复配置", i+1, ws.Day)
			}
			seen[ws.Day] = true

			if err := validateShiftTime(ws.StartTime, ws.EndTime); err != nil {
				return fmt.Errorf("第 %d 条需求 %s 的班次时间错误: %w", i+1, ws.Day, err)
			}
		}
	}
	return nil
}

func validateShiftTime(startTime, endTime string) error {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return fmt.Errorf("开始时间 %q 格式错误", startTime)
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return fmt.Errorf("结束时间 %q 格式错误", endTime)
	}
	if end.Before(start) {
		return errors.New("结束时间不能早于开始时间")
	}
	return nil
}
