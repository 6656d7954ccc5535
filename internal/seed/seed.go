package seed

import (
	"log/slog"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/grid"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/repository"
)

// 一套固定的演示数据：几名员工加一个已经排了一部分班的固定日期需求，
// 方便前端联调时不用从零点数据开始。
var demoStaff = []*domain.StaffMember{
	{Name: "张伟", Email: "zhangwei@example.com", Phone: "13800000001", Rating: 4.5, Skills: []string{"普工", "叉车司机"}},
	{Name: "李敏", Email: "limin@example.com", Phone: "13800000002", Rating: 4.2, Skills: []string{"普工"}},
	{Name: "王芳", Email: "wangfang@example.com", Phone: "13800000003", Rating: 4.8, Skills: []string{"技工", "普工"}},
	{Name: "刘洋", Email: "liuyang@example.com", Phone: "13800000004", Rating: 3.9, Skills: []string{"叉车司机"}},
}

func SeedDemoData(r *repository.Repository) {
	staff := make([]*domain.StaffMember, 0, len(demoStaff))
	for _, s := range demoStaff {
		member := *s
		if err := r.CreateStaffMember(&member); err != nil {
			slog.Error("无法插入演示员工", "name", s.Name, "error", err)
			return
		}
		staff = append(staff, &member)
	}
	slog.Info("插入演示员工成功", "count", len(staff))

	request := &domain.StaffingRequest{
		Client:        "华东仓储",
		JobSite:       "一号仓库",
		ContactPerson: "陈经理",
		ContactEmail:  "chen@example.com",
		Phone:         "021-60000000",
		Description:   "年末盘点需要临时增援",
		Supervisor:    "赵主管",
		Type:          domain.RequestTypeLabour,
		DateType:      domain.DateTypeFixed,
		SkillRequirements: []domain.SkillRequirement{
			{
				Skill:    "普工",
				Quantity: 2,
				Dates:    []string{"2025-12-01", "2025-12-03", "2025-12-05"},
				ShiftTimes: map[string]domain.ShiftTime{
					"2025-12-01": {StartTime: "07:00", EndTime: "15:00"},
					"2025-12-03": {StartTime: "08:00", EndTime: "16:00"},
					"2025-12-05": {StartTime: "07:00", EndTime: "15:00"},
				},
			},
		},
	}
	if err := r.CreateStaffingRequest(request); err != nil {
		slog.Error("无法插入演示需求", "error", err)
		return
	}

	// 第一个岗位前两天排给张伟，留最后一天和第二个岗位给演示操作
	keys := []grid.SlotKey{
		grid.IndexKey(0, 0, 0),
		grid.IndexKey(0, 0, 1),
	}
	request.Assignments = grid.Apply(request.Assignments, keys, *staff[0], "")
	if err := r.ReplaceAssignments(request); err != nil {
		slog.Error("无法写入演示排班", "error", err)
		return
	}

	slog.Info("插入演示需求成功", "request_id", request.ID)
}
