package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	s := NewSelectionSet()
	cell := SelectionCell{SkillIndex: 0, PositionIndex: 1, DateIndex: 2}

	s.Toggle(cell)
	require.True(t, s.IsSelected(0, 1, 2))
	require.Equal(t, 1, s.Len())

	s.Toggle(cell)
	require.False(t, s.IsSelected(0, 1, 2))
	require.Equal(t, 0, s.Len())
}

func TestSelectAllInRow(t *testing.T) {
	s := NewSelectionSet()

	// 部分选中时，整行选择补全该行并报告需要打开批量指派界面
	s.Toggle(SelectionCell{SkillIndex: 0, PositionIndex: 0, DateIndex: 1})
	opened := s.SelectAllInRow(0, 0, 3)
	require.True(t, opened)
	require.Equal(t, 3, s.Len())
	for dateIdx := 0; dateIdx < 3; dateIdx++ {
		require.True(t, s.IsSelected(0, 0, dateIdx))
	}

	// 整行已全选时再来一次等于撤销整行
	opened = s.SelectAllInRow(0, 0, 3)
	require.False(t, opened)
	require.Equal(t, 0, s.Len())
}

func TestSelectAllInRowKeepsOtherRows(t *testing.T) {
	s := NewSelectionSet()
	other := SelectionCell{SkillIndex: 1, PositionIndex: 0, DateIndex: 0}
	s.Toggle(other)

	s.SelectAllInRow(0, 0, 2)
	require.True(t, s.IsSelected(1, 0, 0))
	require.Equal(t, 3, s.Len())

	s.SelectAllInRow(0, 0, 2)
	require.True(t, s.IsSelected(1, 0, 0))
	require.Equal(t, 1, s.Len())
}

func TestSelectAllInRowEmptyRow(t *testing.T) {
	s := NewSelectionSet()
	// 零列的行没有可选格子，也不应触发打开界面
	require.False(t, s.SelectAllInRow(0, 0, 0))
	require.Equal(t, 0, s.Len())

	// 该行残留的零散选择会被清掉，但依然走撤销分支
	s.Toggle(SelectionCell{SkillIndex: 0, PositionIndex: 0, DateIndex: 4})
	require.False(t, s.SelectAllInRow(0, 0, 0))
	require.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	s := NewSelectionSet(
		SelectionCell{SkillIndex: 0, PositionIndex: 0, DateIndex: 0},
		SelectionCell{SkillIndex: 0, PositionIndex: 0, DateIndex: 1},
	)
	require.Equal(t, 2, s.Len())

	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Cells())
}

func TestNewSelectionSetDeduplicates(t *testing.T) {
	cell := SelectionCell{SkillIndex: 0, PositionIndex: 0, DateIndex: 0}
	s := NewSelectionSet(cell, cell)
	require.Equal(t, 1, s.Len())
}

func TestCellsReturnsCopy(t *testing.T) {
	s := NewSelectionSet(SelectionCell{SkillIndex: 0, PositionIndex: 0, DateIndex: 0})
	cells := s.Cells()
	cells[0].DateIndex = 9
	require.True(t, s.IsSelected(0, 0, 0))
}
