package repository

import (
	"context"
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

func (r *Repository) GetStaffingRequestByID(id int64) (*domain.StaffingRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT client, job_site, contact_person, contact_email, phone, description, supervisor,
		       type, date_type, start_date, status, created_at, version
		FROM staffing_requests WHERE id = $1
	`

	request := &domain.StaffingRequest{
		ID: id,
	}

	var startDate *string
	dst := []any{&request.Client, &request.JobSite, &request.ContactPerson, &request.ContactEmail, &request.Phone, &request.Description, &request.Supervisor, &request.Type, &request.DateType, &startDate, &request.Status, &request.CreatedAt, &request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if startDate != nil {
		request.StartDate = *startDate
	}

	requirements, err := r.getSkillRequirements(ctx, id)
	if err != nil {
		return nil, err
	}
	request.SkillRequirements = requirements

	assignments, err := r.getSlotAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	request.Assignments = assignments

	return request, nil
}

// GetAllStaffingRequests 返回需求列表，status 为空表示不过滤。
// 列表视图只需要需求概要，不加载日期轴明细与排班记录。
func (r *Repository) GetAllStaffingRequests(status domain.RequestStatus) ([]*domain.StaffingRequest, error) {
	query := `
		SELECT sr.id, sr.client, sr.job_site, sr.contact_person, sr.contact_email, sr.phone,
		       sr.description, sr.supervisor, sr.type, sr.date_type, sr.start_date, sr.status,
		       sr.created_at, sr.version,
		       req.id, req.skill, req.quantity
		FROM staffing_requests sr
		LEFT JOIN skill_requirements req ON req.request_id = sr.id
		WHERE $1 = '' OR sr.status = $1
		ORDER BY sr.created_at DESC, sr.id, req.position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requestMap := make(map[int64]*domain.StaffingRequest)
	order := make([]int64, 0)

	for rows.Next() {
		var (
			id        int64
			startDate *string
			reqID     *int64
			skill     *string
			quantity  *int32
		)
		request := &domain.StaffingRequest{}
		dst := []any{&id, &request.Client, &request.JobSite, &request.ContactPerson, &request.ContactEmail, &request.Phone, &request.Description, &request.Supervisor, &request.Type, &request.DateType, &startDate, &request.Status, &request.CreatedAt, &request.Version, &reqID, &skill, &quantity}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		existing, exists := requestMap[id]
		if !exists {
			request.ID = id
			if startDate != nil {
				request.StartDate = *startDate
			}
			request.SkillRequirements = make([]domain.SkillRequirement, 0)
			request.Assignments = make(map[string]*domain.AssignmentRecord)
			requestMap[id] = request
			order = append(order, id)
			existing = request
		}

		if reqID != nil {
			existing.SkillRequirements = append(existing.SkillRequirements, domain.SkillRequirement{
				ID:       *reqID,
				Skill:    *skill,
				Quantity: *quantity,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*domain.StaffingRequest, 0, len(order))
	for _, id := range order {
		result = append(result, requestMap[id])
	}

	return result, nil
}

func (r *Repository) CreateStaffingRequest(request *domain.StaffingRequest) error {
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
		INSERT INTO staffing_requests (client, job_site, contact_person, contact_email, phone, description, supervisor, type, date_type, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, status, created_at, version
	`

	var startDate any
	if request.StartDate != "" {
		startDate = request.StartDate
	}

	args := []any{request.Client, request.JobSite, request.ContactPerson, request.ContactEmail, request.Phone, request.Description, request.Supervisor, request.Type, request.DateType, startDate, domain.RequestStatusUnstaffed}
	dst := []any{&request.ID, &request.Status, &request.CreatedAt, &request.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	for i := range request.SkillRequirements {
		req := &request.SkillRequirements[i]

		query = `
			INSERT INTO skill_requirements (request_id, position, skill, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, request.ID, i, req.Skill, req.Quantity).Scan(&req.ID); err != nil {
			return err
		}

		query = `
			INSERT INTO skill_requirement_dates (requirement_id, position, date_value, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`
		for j, date := range req.Dates {
			var startTime, endTime any
			if st, ok := req.ShiftTimes[date]; ok {
				startTime = st.StartTime
				endTime = st.EndTime
			}
			if _, err := tx.ExecContext(ctx, query, req.ID, j, date, startTime, endTime); err != nil {
				return err
			}
		}

		query = `
			INSERT INTO skill_requirement_weekdays (requirement_id, position, day, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`
		for j, shift := range req.WeekdaySchedule {
			if _, err := tx.ExecContext(ctx, query, req.ID, j, shift.Day, shift.StartTime, shift.EndTime); err != nil {
				return err
			}
		}
	}

	if request.Assignments == nil {
		request.Assignments = make(map[string]*domain.AssignmentRecord)
	}

	return tx.Commit()
}

// UpdateStaffingRequest 更新需求的基础字段，带乐观锁版本校验。
// 结构性字段（类型、日期模式、技能需求）创建后不可修改。
func (r *Repository) UpdateStaffingRequest(request *domain.StaffingRequest) error {
	query := `
		UPDATE staffing_requests
		SET
			client = $1,
			job_site = $2,
			contact_person = $3,
			contact_email = $4,
			phone = $5,
			description = $6,
			supervisor = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{request.Client, request.JobSite, request.ContactPerson, request.ContactEmail, request.Phone, request.Description, request.Supervisor, request.ID, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}

	return nil
}

// ReplaceAssignments 用给定的完整排班表覆盖该需求现有的全部排班记录。
// 排班表在内存里整体合并后落库，带乐观锁版本校验。
func (r *Repository) ReplaceAssignments(request *domain.StaffingRequest) error {
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
		UPDATE staffing_requests
		SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, request.ID, request.Version).Scan(&request.Version); err != nil {
		return err
	}

	query = `
		DELETE FROM slot_assignments WHERE request_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, request.ID); err != nil {
		return err
	}

	query = `
		INSERT INTO slot_assignments (request_id, slot_key, staff_id, pending_staff_id, pending_effective_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	for key, record := range request.Assignments {
		if record == nil {
			continue
		}

		var staffID, pendingStaffID, pendingEffective any
		if record.HasActive() {
			staffID = record.ID
		}
		if record.Pending != nil {
			pendingStaffID = record.Pending.ID
			pendingEffective = record.Pending.EffectiveDate
		}

		if _, err := tx.ExecContext(ctx, query, request.ID, key, staffID, pendingStaffID, pendingEffective); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// MoveRequestToStaffed 将需求从待排班翻转为已排班，只在当前状态仍是待排班时生效
func (r *Repository) MoveRequestToStaffed(request *domain.StaffingRequest) error {
	query := `
		UPDATE staffing_requests
		SET status = $1, version = version + 1
		WHERE id = $2 AND status = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{domain.RequestStatusStaffed, request.ID, domain.RequestStatusUnstaffed, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}
	request.Status = domain.RequestStatusStaffed

	return nil
}

func (r *Repository) getSkillRequirements(ctx context.Context, requestID int64) ([]domain.SkillRequirement, error) {
	query := `
		SELECT id, skill, quantity
		FROM skill_requirements
		WHERE request_id = $1
		ORDER BY position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}

	requirements := make([]domain.SkillRequirement, 0)
	for rows.Next() {
		var req domain.SkillRequirement
		if err := rows.Scan(&req.ID, &req.Skill, &req.Quantity); err != nil {
			rows.Close()
			return nil, err
		}
		requirements = append(requirements, req)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range requirements {
		req := &requirements[i]

		query = `
			SELECT date_value, start_time, end_time
			FROM skill_requirement_dates
			WHERE requirement_id = $1
			ORDER BY position
		`
		dateRows, err := r.dbpool.QueryContext(ctx, query, req.ID)
		if err != nil {
			return nil, err
		}
		for dateRows.Next() {
			var (
				date               string
				startTime, endTime *string
			)
			if err := dateRows.Scan(&date, &startTime, &endTime); err != nil {
				dateRows.Close()
				return nil, err
			}
			req.Dates = append(req.Dates, date)
			if startTime != nil && endTime != nil {
				if req.ShiftTimes == nil {
					req.ShiftTimes = make(map[string]domain.ShiftTime)
				}
				req.ShiftTimes[date] = domain.ShiftTime{StartTime: *startTime, EndTime: *endTime}
			}
		}
		if err := dateRows.Err(); err != nil {
			dateRows.Close()
			return nil, err
		}
		dateRows.Close()

		query = `
			SELECT day, start_time, end_time
			FROM skill_requirement_weekdays
			WHERE requirement_id = $1
			ORDER BY position
		`
		weekdayRows, err := r.dbpool.QueryContext(ctx, query, req.ID)
		if err != nil {
			return nil, err
		}
		for weekdayRows.Next() {
			var shift domain.WeekdayShift
			if err := weekdayRows.Scan(&shift.Day, &shift.StartTime, &shift.EndTime); err != nil {
				weekdayRows.Close()
				return nil, err
			}
			req.WeekdaySchedule = append(req.WeekdaySchedule, shift)
		}
		if err := weekdayRows.Err(); err != nil {
			weekdayRows.Close()
			return nil, err
		}
		weekdayRows.Close()
	}

	return requirements, nil
}

func (r *Repository) getSlotAssignments(ctx context.Context, requestID int64) (map[string]*domain.AssignmentRecord, error) {
	query := `
		SELECT sa.slot_key,
		       cur.id, cur.name, cur.email, cur.phone, cur.rating,
		       pen.id, pen.name, pen.email, pen.phone, pen.rating,
		       sa.pending_effective_date
		FROM slot_assignments sa
		LEFT JOIN staff_members cur ON cur.id = sa.staff_id
		LEFT JOIN staff_members pen ON pen.id = sa.pending_staff_id
		WHERE sa.request_id = $1
	`

	rows, err := r.dbpool.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make(map[string]*domain.AssignmentRecord)
	staffIDs := make([]int64, 0)

	for rows.Next() {
		var (
			key                         string
			curID, penID                *int64
			curName, curEmail, curPhone *string
			penName, penEmail, penPhone *string
			curRating, penRating        *float64
			pendingEffective            *string
		)
		dst := []any{&key, &curID, &curName, &curEmail, &curPhone, &curRating, &penID, &penName, &penEmail, &penPhone, &penRating, &pendingEffective}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		record := &domain.AssignmentRecord{}
		if curID != nil {
			record.StaffMember = domain.StaffMember{
				ID:     *curID,
				Name:   *curName,
				Email:  *curEmail,
				Phone:  *curPhone,
				Rating: *curRating,
				Skills: make([]string, 0),
			}
			staffIDs = append(staffIDs, *curID)
		}
		if penID != nil && pendingEffective != nil {
			record.Pending = &domain.PendingAssignment{
				StaffMember: domain.StaffMember{
					ID:     *penID,
					Name:   *penName,
					Email:  *penEmail,
					Phone:  *penPhone,
					Rating: *penRating,
					Skills: make([]string, 0),
				},
				EffectiveDate: *pendingEffective,
			}
			staffIDs = append(staffIDs, *penID)
		}
		assignments[key] = record
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(staffIDs) == 0 {
		return assignments, nil
	}

	skills, err := r.getSkillsByStaffIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}
	for _, record := range assignments {
		if record.ID != 0 {
			record.Skills = append(record.Skills, skills[record.ID]...)
		}
		if record.Pending != nil {
			record.Pending.Skills = append(record.Pending.Skills, skills[record.Pending.ID]...)
		}
	}

	return assignments, nil
}

func (r *Repository) getSkillsByStaffIDs(ctx context.Context, staffIDs []int64) (map[int64][]string, error) {
	query := `
		SELECT staff_id, skill
		FROM staff_member_skills
		WHERE staff_id = ANY($1)
		ORDER BY staff_id, skill
	`

	rows, err := r.dbpool.QueryContext(ctx, query, staffIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make(map[int64][]string)
	for rows.Next() {
		var (
			staffID int64
			skill   string
		)
		if err := rows.Scan(&staffID, &skill); err != nil {
			return nil, err
		}
		skills[staffID] = append(skills[staffID], skill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}
