package grid

import (
	"testing"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestSlotKeyString(t *testing.T) {
	require.Equal(t, "0-1-2", IndexKey(0, 1, 2).String())
	require.Equal(t, "2-0-2025-12-01", DateKey(2, 0, "2025-12-01").String())
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("1-3-7")
	require.NoError(t, err)
	require.Equal(t, IndexKey(1, 3, 7), k)

	k, err = ParseKey("0-2-2025-12-01")
	require.NoError(t, err)
	require.Equal(t, KeyModeDate, k.Mode)
	require.Equal(t, "2025-12-01", k.Date)

	_, err = ParseKey("1-2")
	require.Error(t, err)

	_, err = ParseKey("a-b-c")
	require.Error(t, err)
}

func TestKeyRoundTrip(t *testing.T) {
	// 两种寻址模式下，keyOf 后 lookup 都应返回刚写入的记录
	alice := domain.StaffMember{ID: 1, Name: "张伟"}

	for _, key := range []SlotKey{IndexKey(0, 1, 2), DateKey(0, 1, "2025-12-01")} {
		assignments := Apply(nil, []SlotKey{key}, alice, "")
		rec, ok := Lookup(assignments, key)
		require.True(t, ok)
		require.Equal(t, alice, rec.StaffMember)
	}
}

func TestLookupMissIsBenign(t *testing.T) {
	// 从未生成过的键只是"还没排班"，不是错误
	rec, ok := Lookup(map[string]*domain.AssignmentRecord{}, IndexKey(5, 5, 5))
	require.False(t, ok)
	require.Nil(t, rec)
	require.False(t, rec.HasActive())
}

func TestMixedModesMiss(t *testing.T) {
	// 两种模式对同一格子产生不同的键，混用会查不到记录
	alice := domain.StaffMember{ID: 1, Name: "张伟"}
	assignments := Apply(nil, []SlotKey{IndexKey(0, 0, 0)}, alice, "")

	_, ok := Lookup(assignments, DateKey(0, 0, "2025-12-01"))
	require.False(t, ok)
}
