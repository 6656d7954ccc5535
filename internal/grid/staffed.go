package grid

import (
	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

// TotalSlots 返回请求的格子总数 = Σ(需求数量 × 该需求的日期数)
func TotalSlots(req *domain.StaffingRequest) int {
	total := 0
	for i := range req.SkillRequirements {
		sr := &req.SkillRequirements[i]
		total += int(sr.Quantity) * sr.NumDates(req.DateType)
	}
	return total
}

// CountStaffed 用索引键统计有当前指派的格子数。
// 只有待生效指派的格子不计入。
func CountStaffed(req *domain.StaffingRequest, assignments map[string]*domain.AssignmentRecord) int {
	staffed := 0
	for skillIdx := range req.SkillRequirements {
		sr := &req.SkillRequirements[skillIdx]
		numDates := sr.NumDates(req.DateType)

		for posIdx := 0; posIdx < int(sr.Quantity); posIdx++ {
			for dateIdx := 0; dateIdx < numDates; dateIdx++ {
				rec, _ := Lookup(assignments, IndexKey(skillIdx, posIdx, dateIdx))
				if rec.HasActive() {
					staffed++
				}
			}
		}
	}
	return staffed
}

// IsFullyStaffed 判断请求是否已全部排满。
// 集装箱类请求没有排班网格，永远返回 false；
// 零格子的请求也不算排满，避免畸形数据被当成已完成。
func IsFullyStaffed(req *domain.StaffingRequest, assignments map[string]*domain.AssignmentRecord) bool {
	if req == nil || req.Type == domain.RequestTypeContainer || len(req.SkillRequirements) == 0 {
		return false
	}

	total := TotalSlots(req)
	return total > 0 && CountStaffed(req, assignments) == total
}
