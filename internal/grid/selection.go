package grid

// SelectionCell: 用户标记的一个格子，唯一性由 (技能序号, 岗位序号, 日期序号) 三元组决定
type SelectionCell struct {
	SkillIndex    int `json:"skillIndex"`
	PositionIndex int `json:"positionIndex"`
	DateIndex     int `json:"dateIndex"`
}

// SelectionSet 维护一次批量指派操作前用户选中的格子集合。
// 保持选择顺序，方便前端按点击顺序回显。
type SelectionSet struct {
	cells []SelectionCell
}

func NewSelectionSet(cells ...SelectionCell) *SelectionSet {
	s := &SelectionSet{cells: make([]SelectionCell, 0, len(cells))}
	for _, c := range cells {
		if !s.IsSelected(c.SkillIndex, c.PositionIndex, c.DateIndex) {
			s.cells = append(s.cells, c)
		}
	}
	return s
}

func (s *SelectionSet) IsSelected(skillIdx, positionIdx, dateIdx int) bool {
	for _, c := range s.cells {
		if c.SkillIndex == skillIdx && c.PositionIndex == positionIdx && c.DateIndex == dateIdx {
			return true
		}
	}
	return false
}

// Toggle 选中未选的格子，取消已选的格子
func (s *SelectionSet) Toggle(cell SelectionCell) {
	for i, c := range s.cells {
		if c == cell {
			s.cells = append(s.cells[:i], s.cells[i+1:]...)
			return
		}
	}
	s.cells = append(s.cells, cell)
}

// SelectAllInRow 处理"整行选择"：
// 行内所有格子都已选中时，取消整行（再点一次等于撤销）；
// 否则清掉该行的零散选择、整行全选，其他行的选择不受影响。
// 返回值表示是否产生了整行选择——为 true 时调用方必须打开批量指派界面，
// 这是一个事件而不只是状态查询。
func (s *SelectionSet) SelectAllInRow(skillIdx, positionIdx, numDates int) bool {
	// 空行视为"已全选"，走撤销分支，绝不触发打开界面
	allSelected := true
	for dateIdx := 0; dateIdx < numDates; dateIdx++ {
		if !s.IsSelected(skillIdx, positionIdx, dateIdx) {
			allSelected = false
			break
		}
	}

	kept := s.cells[:0]
	for _, c := range s.cells {
		if !(c.SkillIndex == skillIdx && c.PositionIndex == positionIdx) {
			kept = append(kept, c)
		}
	}
	s.cells = kept

	if allSelected {
		return false
	}

	for dateIdx := 0; dateIdx < numDates; dateIdx++ {
		s.cells = append(s.cells, SelectionCell{
			SkillIndex:    skillIdx,
			PositionIndex: positionIdx,
			DateIndex:     dateIdx,
		})
	}
	return true
}

func (s *SelectionSet) Clear() {
	s.cells = s.cells[:0]
}

func (s *SelectionSet) Len() int {
	return len(s.cells)
}

// Cells 返回当前选中格子的副本
func (s *SelectionSet) Cells() []SelectionCell {
	return append([]SelectionCell(nil), s.cells...)
}
