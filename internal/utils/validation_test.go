package utils

import (
	"testing"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func validFixedRequest() *domain.StaffingRequest {
	return &domain.StaffingRequest{
		Type:     domain.RequestTypeLabour,
		DateType: domain.DateTypeFixed,
		SkillRequirements: []domain.SkillRequirement{
			{
				Skill:    "普工",
				Quantity: 2,
				Dates:    []string{"2025-12-01", "2025-12-03"},
				ShiftTimes: map[string]domain.ShiftTime{
					"2025-12-01": {StartTime: "07:00", EndTime: "15:00"},
				},
			},
		},
	}
}

func validOngoingRequest() *domain.StaffingRequest {
	return &domain.StaffingRequest{
		Type:      domain.RequestTypeLabour,
		DateType:  domain.DateTypeOngoing,
		StartDate: "2025-12-01",
		SkillRequirements: []domain.SkillRequirement{
			{
				Skill:    "叉车司机",
				Quantity: 1,
				WeekdaySchedule: []domain.WeekdayShift{
					{Day: "Monday", StartTime: "07:00", EndTime: "15:00"},
					{Day: "Wednesday", StartTime: "08:00", EndTime: "16:00"},
				},
			},
		},
	}
}

func TestValidateStaffingRequest(t *testing.T) {
	require.NoError(t, ValidateStaffingRequest(validFixedRequest()))
	require.NoError(t, ValidateStaffingRequest(validOngoingRequest()))

	container := &domain.StaffingRequest{Type: domain.RequestTypeContainer}
	require.NoError(t, ValidateStaffingRequest(container))
}

func TestValidateRejectsWrongVariantFields(t *testing.T) {
	// 集装箱请求不能带用工需求
	req := &domain.StaffingRequest{
		Type:              domain.RequestTypeContainer,
		SkillRequirements: []domain.SkillRequirement{{Skill: "普工", Quantity: 1}},
	}
	require.Error(t, ValidateStaffingRequest(req))

	// 固定日期需求不能配置每周班次
	req = validFixedRequest()
	req.SkillRequirements[0].WeekdaySchedule = []domain.WeekdayShift{{Day: "Monday", StartTime: "07:00", EndTime: "15:00"}}
	require.Error(t, ValidateStaffingRequest(req))

	// 长期需求不能配置固定日期
	req = validOngoingRequest()
	req.SkillRequirements[0].Dates = []string{"2025-12-01"}
	require.Error(t, ValidateStaffingRequest(req))
}

func TestValidateRequiredFields(t *testing.T) {
	req := validFixedRequest()
	req.SkillRequirements = nil
	require.Error(t, ValidateStaffingRequest(req))

	req = validFixedRequest()
	req.SkillRequirements[0].Quantity = 0
	require.Error(t, ValidateStaffingRequest(req))

	req = validFixedRequest()
	req.SkillRequirements[0].Dates = nil
	require.Error(t, ValidateStaffingRequest(req))

	req = validOngoingRequest()
	req.StartDate = ""
	require.Error(t, ValidateStaffingRequest(req))

	req = validOngoingRequest()
	req.SkillRequirements[0].WeekdaySchedule = nil
	require.Error(t, ValidateStaffingRequest(req))
}

func TestValidateFormats(t *testing.T) {
	req := validFixedRequest()
	req.SkillRequirements[0].Dates = []string{"12/01/2025"}
	require.Error(t, ValidateStaffingRequest(req))

	req = validOngoingRequest()
	req.SkillRequirements[0].WeekdaySchedule[0].Day = "Mon"
	require.Error(t, ValidateStaffingRequest(req))

	// 结束时间早于开始时间
	req = validOngoingRequest()
	req.SkillRequirements[0].WeekdaySchedule[0].StartTime = "15:00"
	req.SkillRequirements[0].WeekdaySchedule[0].EndTime = "07:00"
	require.Error(t, ValidateStaffingRequest(req))

	// 同一星期重复配置
	req = validOngoingRequest()
	req.SkillRequirements[0].WeekdaySchedule[1].Day = "Monday"
	require.Error(t, ValidateStaffingRequest(req))

	req = &domain.StaffingRequest{Type: "unknown"}
	require.Error(t, ValidateStaffingRequest(req))
}
