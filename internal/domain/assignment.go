package domain

// PendingAssignment: 已排定但尚未生效的未来替换，EffectiveDate 为完整的 ISO 8601 时间串
type PendingAssignment struct {
	StaffMember
	EffectiveDate string `json:"effectiveDate"`
}

// AssignmentRecord: 某个排班格子的指派记录。
// 当前指派与待生效指派相互独立：写入其中一个不能悄悄丢掉另一个。
// 每个格子至多一条待生效指派。
type AssignmentRecord struct {
	StaffMember
	Pending *PendingAssignment `json:"pendingAssignment,omitempty"`
}

// HasActive 判断该记录是否有当前指派。
// 仅设置了 Pending 的记录没有当前指派，对应格子仍然算未排班。
func (r *AssignmentRecord) HasActive() bool {
	return r != nil && r.Name != ""
}

// Clone 返回记录的深拷贝，批量合并时避免修改共享的 map 值
func (r *AssignmentRecord) Clone() *AssignmentRecord {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Skills = append([]string(nil), r.Skills...)
	if r.Pending != nil {
		p := *r.Pending
		p.Skills = append([]string(nil), r.Pending.Skills...)
		cp.Pending = &p
	}
	return &cp
}
