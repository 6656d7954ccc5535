package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

func (r *Repository) GetStaffMemberByID(id int64) (*domain.StaffMember, error) {
	query := `
		SELECT s.name, s.email, s.phone, s.rating, sk.skill
		FROM staff_members s
		LEFT JOIN staff_member_skills sk ON sk.staff_id = s.id
		WHERE s.id = $1
		ORDER BY sk.skill
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := &domain.StaffMember{
		ID:     id,
		Skills: make([]string, 0),
	}
	found := false

	for rows.Next() {
		var skillName *string
		dst := []any{&staff.Name, &staff.Email, &staff.Phone, &staff.Rating, &skillName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		found = true

		if skillName != nil {
			staff.Skills = append(staff.Skills, *skillName)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	return staff, nil
}

// SearchStaff 按技能和姓名检索员工目录：
// 技能要求精确命中，姓名按大小写不敏感的子串匹配。search 为空表示不过滤姓名。
func (r *Repository) SearchStaff(skill string, search string) ([]*domain.StaffMember, error) {
	query := `
		SELECT s.id, s.name, s.email, s.phone, s.rating, sk.skill
		FROM staff_members s
		LEFT JOIN staff_member_skills sk ON sk.staff_id = s.id
		WHERE EXISTS (
			SELECT 1 FROM staff_member_skills m
			WHERE m.staff_id = s.id AND m.skill = $1
		)
		AND s.name ILIKE '%' || $2 || '%'
		ORDER BY s.id, sk.skill
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, skill, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staffMap := make(map[int64]*domain.StaffMember)
	order := make([]int64, 0)

	for rows.Next() {
		var (
			id        int64
			name      string
			email     string
			phone     string
			rating    float64
			skillName *string
		)
		dst := []any{&id, &name, &email, &phone, &rating, &skillName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		staff, exists := staffMap[id]
		if !exists {
			staff = &domain.StaffMember{
				ID:     id,
				Name:   name,
				Email:  email,
				Phone:  phone,
				Rating: rating,
				Skills: make([]string, 0),
			}
			staffMap[id] = staff
			order = append(order, id)
		}

		if skillName != nil {
			staff.Skills = append(staff.Skills, *skillName)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*domain.StaffMember, 0, len(order))
	for _, id := range order {
		result = append(result, staffMap[id])
	}

	return result, nil
}

func (r *Repository) GetAllStaffMembers() ([]*domain.StaffMember, error) {
	query := `
		SELECT s.id, s.name, s.email, s.phone, s.rating, sk.skill
		FROM staff_members s
		LEFT JOIN staff_member_skills sk ON sk.staff_id = s.id
		ORDER BY s.id, sk.skill
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staffMap := make(map[int64]*domain.StaffMember)
	order := make([]int64, 0)

	for rows.Next() {
		var (
			id        int64
			name      string
			email     string
			phone     string
			rating    float64
			skillName *string
		)
		dst := []any{&id, &name, &email, &phone, &rating, &skillName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		staff, exists := staffMap[id]
		if !exists {
			staff = &domain.StaffMember{
				ID:     id,
				Name:   name,
				Email:  email,
				Phone:  phone,
				Rating: rating,
				Skills: make([]string, 0),
			}
			staffMap[id] = staff
			order = append(order, id)
		}

		if skillName != nil {
			staff.Skills = append(staff.Skills, *skillName)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*domain.StaffMember, 0, len(order))
	for _, id := range order {
		result = append(result, staffMap[id])
	}

	return result, nil
}

func (r *Repository) CreateStaffMember(staff *domain.StaffMember) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO staff_members (name, email, phone, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, staff.Name, staff.Email, staff.Phone, staff.Rating).Scan(&staff.ID); err != nil {
		return err
	}

	query = `
		INSERT INTO staff_member_skills (staff_id, skill)
		VALUES ($1, $2)
	`
	for _, skill := range staff.Skills {
		if _, err := tx.ExecContext(ctx, query, staff.ID, skill); err != nil {
			return err
		}
	}

	return tx.Commit()
}
