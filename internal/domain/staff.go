package domain

// StaffMember: 员工目录中的一条记录，按技能与姓名检索
type StaffMember struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Rating float64  `json:"rating"`
	Skills []string `json:"skills"`
}

// HasSkill 检查员工是否具备指定技能（精确匹配）
func (s *StaffMember) HasSkill(skill string) bool {
	for _, sk := range s.Skills {
		if sk == skill {
			return true
		}
	}
	return false
}
