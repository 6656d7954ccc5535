package grid

import (
	"testing"
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.StaffMember{ID: 1, Name: "张伟", Phone: "13800000001"}
	bob   = domain.StaffMember{ID: 2, Name: "李敏", Phone: "13800000002"}
	carol = domain.StaffMember{ID: 3, Name: "王芳", Phone: "13800000003"}
)

func TestMergeEffectiveDated(t *testing.T) {
	// 当前是张伟，排定李敏在未来接替：当前指派必须原样保留
	existing := &domain.AssignmentRecord{StaffMember: alice}
	future := "2026-01-05T00:00:00Z"

	merged := Merge(existing, bob, future)
	require.Equal(t, alice, merged.StaffMember)
	require.NotNil(t, merged.Pending)
	require.Equal(t, bob, merged.Pending.StaffMember)
	require.Equal(t, future, merged.Pending.EffectiveDate)

	// 再立即改派王芳：当前指派被替换，已排定的未来变更保留
	merged = Merge(merged, carol, "")
	require.Equal(t, carol, merged.StaffMember)
	require.NotNil(t, merged.Pending)
	require.Equal(t, bob, merged.Pending.StaffMember)
	require.Equal(t, future, merged.Pending.EffectiveDate)
}

func TestMergeIntoEmptySlot(t *testing.T) {
	merged := Merge(nil, alice, "")
	require.Equal(t, alice, merged.StaffMember)
	require.Nil(t, merged.Pending)

	// 空格子上的未来指派：没有当前指派，只有待生效指派
	merged = Merge(nil, bob, "2026-01-05T00:00:00Z")
	require.False(t, merged.HasActive())
	require.NotNil(t, merged.Pending)
}

func TestMergeDoesNotMutateExisting(t *testing.T) {
	existing := &domain.AssignmentRecord{StaffMember: alice}
	_ = Merge(existing, bob, "2026-01-05T00:00:00Z")
	require.Nil(t, existing.Pending)

	_ = Merge(existing, carol, "")
	require.Equal(t, alice, existing.StaffMember)
}

func TestResolveDisplay(t *testing.T) {
	d := ResolveDisplay(nil)
	require.Nil(t, d.Active)
	require.Nil(t, d.Pending)

	rec := &domain.AssignmentRecord{StaffMember: alice}
	d = ResolveDisplay(rec)
	require.Equal(t, rec, d.Active)
	require.Nil(t, d.Pending)

	// 只有待生效指派的格子展示为未排班
	pendingOnly := Merge(nil, bob, "2026-01-05T00:00:00Z")
	d = ResolveDisplay(pendingOnly)
	require.Nil(t, d.Active)
	require.NotNil(t, d.Pending)
	require.Equal(t, bob, d.Pending.StaffMember)
}

func TestApplyBatch(t *testing.T) {
	original := map[string]*domain.AssignmentRecord{
		"0-0-0": {StaffMember: alice},
	}

	keys := []SlotKey{IndexKey(0, 0, 0), IndexKey(0, 0, 1), IndexKey(0, 1, 0)}
	next := Apply(original, keys, bob, "")

	// 合并规则对每个格子独立应用
	for _, k := range keys {
		rec, ok := Lookup(next, k)
		require.True(t, ok)
		require.Equal(t, bob, rec.StaffMember)
	}

	// 入参的指派表不能被修改
	require.Len(t, original, 1)
	require.Equal(t, alice, original["0-0-0"].StaffMember)
}

func TestPromoteDue(t *testing.T) {
	assignments := map[string]*domain.AssignmentRecord{
		"0-0-0": Merge(&domain.AssignmentRecord{StaffMember: alice}, bob, "2026-01-05T00:00:00Z"),
		"0-0-1": Merge(&domain.AssignmentRecord{StaffMember: alice}, bob, "2026-03-01T00:00:00Z"),
		"0-0-2": {StaffMember: carol},
	}

	asOf, _ := time.Parse(time.RFC3339, "2026-01-10T00:00:00Z")
	next, promoted := PromoteDue(assignments, asOf)

	require.Equal(t, 1, promoted)
	require.Equal(t, bob, next["0-0-0"].StaffMember)
	require.Nil(t, next["0-0-0"].Pending)
	// 未到期的保持原样
	require.Equal(t, alice, next["0-0-1"].StaffMember)
	require.NotNil(t, next["0-0-1"].Pending)
	require.Equal(t, carol, next["0-0-2"].StaffMember)
}
