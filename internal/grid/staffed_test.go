package grid

import (
	"testing"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func fixedRequest() *domain.StaffingRequest {
	return &domain.StaffingRequest{
		Type:     domain.RequestTypeLabour,
		DateType: domain.DateTypeFixed,
		SkillRequirements: []domain.SkillRequirement{
			{Skill: "普工", Quantity: 2, Dates: []string{"2025-12-01", "2025-12-02", "2025-12-03"}},
		},
	}
}

func TestTotalSlots(t *testing.T) {
	req := fixedRequest()
	require.Equal(t, 6, TotalSlots(req))

	ongoing := &domain.StaffingRequest{
		Type:     domain.RequestTypeLabour,
		DateType: domain.DateTypeOngoing,
		SkillRequirements: []domain.SkillRequirement{
			{Skill: "普工", Quantity: 3, WeekdaySchedule: []domain.WeekdayShift{{Day: "Monday"}, {Day: "Friday"}}},
			{Skill: "叉车司机", Quantity: 1, WeekdaySchedule: []domain.WeekdayShift{{Day: "Monday"}, {Day: "Friday"}}},
		},
	}
	require.Equal(t, 8, TotalSlots(ongoing))
}

func TestIsFullyStaffed(t *testing.T) {
	req := fixedRequest()
	assignments := map[string]*domain.AssignmentRecord{}

	require.False(t, IsFullyStaffed(req, assignments))

	// 逐格排班，6 个格子全满之前都不算排满
	worker := domain.StaffMember{ID: 1, Name: "张伟"}
	for pos := 0; pos < 2; pos++ {
		for date := 0; date < 3; date++ {
			require.False(t, IsFullyStaffed(req, assignments))
			assignments = Apply(assignments, []SlotKey{IndexKey(0, pos, date)}, worker, "")
		}
	}
	require.True(t, IsFullyStaffed(req, assignments))

	// 去掉一个指派立刻变回未排满
	delete(assignments, IndexKey(0, 1, 2).String())
	require.False(t, IsFullyStaffed(req, assignments))
}

func TestStaffedPlusUnstaffedEqualsTotal(t *testing.T) {
	req := fixedRequest()
	worker := domain.StaffMember{ID: 1, Name: "张伟"}
	assignments := Apply(nil, []SlotKey{IndexKey(0, 0, 0), IndexKey(0, 1, 1)}, worker, "")

	total := TotalSlots(req)
	staffed := CountStaffed(req, assignments)
	require.Equal(t, 6, total)
	require.Equal(t, 2, staffed)
	require.Equal(t, total, staffed+(total-staffed))
}

func TestPendingDoesNotCountAsStaffed(t *testing.T) {
	req := fixedRequest()
	worker := domain.StaffMember{ID: 1, Name: "张伟"}

	// 全部格子只排定未来指派：没有任何当前指派，不算排满
	keys := make([]SlotKey, 0, 6)
	for pos := 0; pos < 2; pos++ {
		for date := 0; date < 3; date++ {
			keys = append(keys, IndexKey(0, pos, date))
		}
	}
	assignments := Apply(nil, keys, worker, "2026-01-05T00:00:00Z")

	require.Equal(t, 0, CountStaffed(req, assignments))
	require.False(t, IsFullyStaffed(req, assignments))
}

func TestContainerNeverFullyStaffed(t *testing.T) {
	req := &domain.StaffingRequest{Type: domain.RequestTypeContainer}
	require.False(t, IsFullyStaffed(req, map[string]*domain.AssignmentRecord{}))
}

func TestZeroSlotsNeverFullyStaffed(t *testing.T) {
	// 零格子的请求不能被判定为已排满
	req := &domain.StaffingRequest{
		Type:              domain.RequestTypeLabour,
		DateType:          domain.DateTypeFixed,
		SkillRequirements: []domain.SkillRequirement{{Skill: "普工", Quantity: 2}},
	}
	require.False(t, IsFullyStaffed(req, map[string]*domain.AssignmentRecord{}))

	require.False(t, IsFullyStaffed(&domain.StaffingRequest{Type: domain.RequestTypeLabour}, nil))
	require.False(t, IsFullyStaffed(nil, nil))
}
