package grid

import (
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

// Display: 一个格子对外展示的状态
type Display struct {
	Active  *domain.AssignmentRecord  `json:"active"`
	Pending *domain.PendingAssignment `json:"pending"`
}

// ResolveDisplay 拆出格子的当前指派和待生效指派。
// 只有 Pending 没有当前指派的记录，Active 为 nil，格子展示为未排班。
func ResolveDisplay(rec *domain.AssignmentRecord) Display {
	d := Display{}
	if rec == nil {
		return d
	}
	if rec.HasActive() {
		d.Active = rec
	}
	d.Pending = rec.Pending
	return d
}

// Merge 把新指派合并进格子的既有记录，返回新记录，不修改入参。
// effectiveDate 非空（未来指派）：当前指派原样保留，只替换待生效指派；
// effectiveDate 为空（立即指派）：替换当前指派，既有的待生效指派原样保留
// （立即改派不会取消先前排定的未来变更）。
func Merge(existing *domain.AssignmentRecord, staff domain.StaffMember, effectiveDate string) *domain.AssignmentRecord {
	if effectiveDate != "" {
		merged := existing.Clone()
		if merged == nil {
			merged = &domain.AssignmentRecord{}
		}
		merged.Pending = &domain.PendingAssignment{
			StaffMember:   staff,
			EffectiveDate: effectiveDate,
		}
		return merged
	}

	merged := &domain.AssignmentRecord{StaffMember: staff}
	if existing != nil {
		merged.Pending = existing.Pending
	}
	return merged
}

// Apply 对一批格子独立地应用 Merge 规则，返回整体替换用的新指派表。
// 入参的指派表不会被修改，外部观察不到部分写入的中间状态。
func Apply(assignments map[string]*domain.AssignmentRecord, keys []SlotKey, staff domain.StaffMember, effectiveDate string) map[string]*domain.AssignmentRecord {
	next := make(map[string]*domain.AssignmentRecord, len(assignments)+len(keys))
	for k, v := range assignments {
		next[k] = v
	}

	for _, key := range keys {
		keyStr := key.String()
		next[keyStr] = Merge(next[keyStr], staff, effectiveDate)
	}
	return next
}

// PromoteDue 把生效日期已到（不晚于 asOf）的待生效指派提升为当前指派，
// 返回新指派表和提升的格子数。提升不会自动发生，必须由外部显式调用。
func PromoteDue(assignments map[string]*domain.AssignmentRecord, asOf time.Time) (map[string]*domain.AssignmentRecord, int) {
	next := make(map[string]*domain.AssignmentRecord, len(assignments))
	promoted := 0

	for k, rec := range assignments {
		if rec == nil || rec.Pending == nil {
			next[k] = rec
			continue
		}

		due, err := time.Parse(time.RFC3339, rec.Pending.EffectiveDate)
		if err != nil || due.After(asOf) {
			next[k] = rec
			continue
		}

		next[k] = &domain.AssignmentRecord{StaffMember: rec.Pending.StaffMember}
		promoted++
	}

	return next, promoted
}
