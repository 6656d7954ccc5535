package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

// KeyMode 区分两种格子寻址方式。
// 按索引寻址用于固定需求和长期需求的周课表视图（日期轴是位置性的）；
// 按日期寻址用于长期需求的日历视图（可见窗口移动后同一个格子仍然可寻址）。
// 两种模式对同一个请求混用会静默地查不到记录，因此消费网格的一方
// 必须在构造时声明自己使用哪种模式。
type KeyMode string

const (
	KeyModeIndex KeyMode = "index"
	KeyModeDate  KeyMode = "date"
)

// SlotKey 把 (技能序号, 岗位序号, 日期) 映射到指派表中的一条记录。
// 序号从 0 开始，Date 为 YYYY-MM-DD。
type SlotKey struct {
	Mode          KeyMode
	SkillIndex    int
	PositionIndex int
	DateIndex     int
	Date          string
}

func IndexKey(skillIdx, positionIdx, dateIdx int) SlotKey {
	return SlotKey{
		Mode:          KeyModeIndex,
		SkillIndex:    skillIdx,
		PositionIndex: positionIdx,
		DateIndex:     dateIdx,
	}
}

func DateKey(skillIdx, positionIdx int, date string) SlotKey {
	return SlotKey{
		Mode:          KeyModeDate,
		SkillIndex:    skillIdx,
		PositionIndex: positionIdx,
		Date:          date,
	}
}

// String 生成指派表的键。格式必须与既有数据逐字节兼容：
// "{skillIndex}-{positionIndex}-{dateIndex}" 或 "{skillIndex}-{positionIndex}-{YYYY-MM-DD}"
func (k SlotKey) String() string {
	if k.Mode == KeyModeDate {
		return fmt.Sprintf("%d-%d-%s", k.SkillIndex, k.PositionIndex, k.Date)
	}
	return fmt.Sprintf("%d-%d-%d", k.SkillIndex, k.PositionIndex, k.DateIndex)
}

// ParseKey 从持久化的键恢复 SlotKey。第三段是纯数字则为索引键，否则为日期键。
func ParseKey(s string) (SlotKey, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return SlotKey{}, fmt.Errorf("非法的格子键: %q", s)
	}

	skillIdx, err := strconv.Atoi(parts[0])
	if err != nil {
		return SlotKey{}, fmt.Errorf("非法的格子键: %q", s)
	}
	positionIdx, err := strconv.Atoi(parts[1])
	if err != nil {
		return SlotKey{}, fmt.Errorf("非法的格子键: %q", s)
	}

	if dateIdx, err := strconv.Atoi(parts[2]); err == nil {
		return IndexKey(skillIdx, positionIdx, dateIdx), nil
	}
	return DateKey(skillIdx, positionIdx, parts[2]), nil
}

// Lookup 按键查找指派记录。键不存在是正常情况（该格子还没有排班），不是错误。
func Lookup(assignments map[string]*domain.AssignmentRecord, k SlotKey) (*domain.AssignmentRecord, bool) {
	rec, ok := assignments[k.String()]
	return rec, ok
}
