package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/grid"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/utils"
)

func (h *Handler) GetAllStaffingRequests(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.RequestStatusUnstaffed, domain.RequestStatusStaffed:
	default:
		h.errorResponse(w, r, "无效的需求状态")
		return
	}

	requests, err := h.repository.GetAllStaffingRequests(status)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取需求列表成功", requests)
}

func (h *Handler) CreateStaffingRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Client        string `json:"client" validate:"required"`
		JobSite       string `json:"jobSite" validate:"required"`
		ContactPerson string `json:"contactPerson" validate:"required"`
		ContactEmail  string `json:"contactEmail" validate:"required,email"`
		Phone         string `json:"phone"`
		Description   string `json:"description"`
		Supervisor    string `json:"supervisor"`
		Type          string `json:"type" validate:"required,oneof=labour container"`
		DateType      string `json:"dateType" validate:"required,oneof=fixed ongoing"`
		StartDate     string `json:"startDate"`
		Requirements  []struct {
			Skill           string                      `json:"skill" validate:"required"`
			Quantity        int32                       `json:"quantity" validate:"required,gte=1"`
			Dates           []string                    `json:"dates"`
			WeekdaySchedule []domain.WeekdayShift       `json:"weekdaySchedule"`
			ShiftTimes      map[string]domain.ShiftTime `json:"shiftTimes"`
		} `json:"requirements" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	request := &domain.StaffingRequest{
		Client:            req.Client,
		JobSite:           req.JobSite,
		ContactPerson:     req.ContactPerson,
		ContactEmail:      req.ContactEmail,
		Phone:             req.Phone,
		Description:       req.Description,
		Supervisor:        req.Supervisor,
		Type:              domain.RequestType(req.Type),
		DateType:          domain.DateType(req.DateType),
		StartDate:         req.StartDate,
		SkillRequirements: make([]domain.SkillRequirement, 0, len(req.Requirements)),
	}

	for _, requirement := range req.Requirements {
		request.SkillRequirements = append(request.SkillRequirements, domain.SkillRequirement{
			Skill:           requirement.Skill,
			Quantity:        requirement.Quantity,
			Dates:           requirement.Dates,
			WeekdaySchedule: requirement.WeekdaySchedule,
			ShiftTimes:      requirement.ShiftTimes,
		})
	}

	if err := utils.ValidateStaffingRequest(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateStaffingRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建用工需求成功", request)
}

func (h *Handler) GetStaffingRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)

	h.successResponse(w, r, "获取用工需求成功", request)
}

// UpdateStaffingRequest 部分更新需求的基础字段。
// 类型、日期模式和技能需求是结构性的，创建后不开放修改。
func (h *Handler) UpdateStaffingRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)

	var req struct {
		Client        *string `json:"client"`
		JobSite       *string `json:"jobSite"`
		ContactPerson *string `json:"contactPerson"`
		ContactEmail  *string `json:"contactEmail" validate:"omitempty,email"`
		Phone         *string `json:"phone"`
		Description   *string `json:"description"`
		Supervisor    *string `json:"supervisor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Client != nil {
		request.Client = *req.Client
	}
	if req.JobSite != nil {
		request.JobSite = *req.JobSite
	}
	if req.ContactPerson != nil {
		request.ContactPerson = *req.ContactPerson
	}
	if req.ContactEmail != nil {
		request.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		request.Phone = *req.Phone
	}
	if req.Description != nil {
		request.Description = *req.Description
	}
	if req.Supervisor != nil {
		request.Supervisor = *req.Supervisor
	}

	if err := h.repository.UpdateStaffingRequest(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "需求已被其他调度员修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新用工需求成功", request)
}

// 网格视图的响应结构。列是当前可见窗口内的日期轴切片，
// 行按 (技能需求, 岗位序号) 展开，每行带完整的可见格子。
type gridCell struct {
	Key       string                    `json:"key"`
	DateIndex int                       `json:"dateIndex"`
	ShiftTime string                    `json:"shiftTime,omitempty"`
	Active    *domain.AssignmentRecord  `json:"active"`
	Pending   *domain.PendingAssignment `json:"pending"`
}

type gridRow struct {
	SkillIndex    int        `json:"skillIndex"`
	PositionIndex int        `json:"positionIndex"`
	Skill         string     `json:"skill"`
	Cells         []gridCell `json:"cells"`
}

type gridResponse struct {
	View         grid.ViewMode     `json:"view"`
	Columns      []grid.DateColumn `json:"columns"`
	Start        int               `json:"start"`
	TotalDays    int               `json:"totalDays"`
	Rows         []gridRow         `json:"rows"`
	TotalSlots   int               `json:"totalSlots"`
	Staffed      int               `json:"staffed"`
	FullyStaffed bool              `json:"fullyStaffed"`
}

func (h *Handler) GetStaffingRequestGrid(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)

	view := grid.ViewMode(r.URL.Query().Get("view"))
	switch view {
	case "":
		view = grid.ViewModeSchedule
	case grid.ViewModeSchedule, grid.ViewModeCalendar:
	default:
		h.errorResponse(w, r, "无效的视图模式")
		return
	}

	start := 0
	if startParam := r.URL.Query().Get("start"); startParam != "" {
		parsed, err := strconv.Atoi(startParam)
		if err != nil {
			h.errorResponse(w, r, "无效的起始列")
			return
		}
		start = parsed
	}

	columns := h.axis.Generate(request, view)
	visible, start := h.axis.VisibleWindow(columns, start)

	// 日历视图下格子按真实日期寻址，其余场景按列序号寻址
	useDateKey := request.DateType == domain.DateTypeOngoing && view == grid.ViewModeCalendar

	rows := make([]gridRow, 0)
	for skillIdx := range request.SkillRequirements {
		requirement := &request.SkillRequirements[skillIdx]
		for positionIdx := 0; positionIdx < int(requirement.Quantity); positionIdx++ {
			row := gridRow{
				SkillIndex:    skillIdx,
				PositionIndex: positionIdx,
				Skill:         requirement.Skill,
				Cells:         make([]gridCell, 0, len(visible)),
			}

			for offset, column := range visible {
				dateIdx := start + offset

				var key grid.SlotKey
				if useDateKey {
					key = grid.DateKey(skillIdx, positionIdx, column.Date)
				} else {
					key = grid.IndexKey(skillIdx, positionIdx, dateIdx)
				}

				record, _ := grid.Lookup(request.Assignments, key)
				display := grid.ResolveDisplay(record)

				row.Cells = append(row.Cells, gridCell{
					Key:       key.String(),
					DateIndex: dateIdx,
					ShiftTime: grid.ShiftTimeFor(request, requirement, view, dateIdx, column.Date),
					Active:    display.Active,
					Pending:   display.Pending,
				})
			}

			rows = append(rows, row)
		}
	}

	h.successResponse(w, r, "获取排班网格成功", gridResponse{
		View:         view,
		Columns:      visible,
		Start:        start,
		TotalDays:    len(columns),
		Rows:         rows,
		TotalSlots:   grid.TotalSlots(request),
		Staffed:      grid.CountStaffed(request, request.Assignments),
		FullyStaffed: grid.IsFullyStaffed(request, request.Assignments),
	})
}

// AssignStaff 把一名员工批量指派到一组格子上。
// effectiveDate 为空表示立即生效，非空表示在该时间点生效的未来替换。
// 整个需求的指派表在编辑锁保护下整体替换，避免两个调度员互相覆盖。
func (h *Handler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)

	var req struct {
		StaffID       int64    `json:"staffId" validate:"required"`
		Keys          []string `json:"keys" validate:"required,min=1"`
		EffectiveDate string   `json:"effectiveDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.EffectiveDate != "" {
		if _, err := time.Parse(time.RFC3339, req.EffectiveDate); err != nil {
			h.errorResponse(w, r, "生效时间格式无效")
			return
		}
	}

	keys := make([]grid.SlotKey, 0, len(req.Keys))
	for _, keyStr := range req.Keys {
		key, err := grid.ParseKey(keyStr)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		if key.SkillIndex >= len(request.SkillRequirements) {
			h.errorResponse(w, r, "格子键超出需求范围")
			return
		}
		if key.PositionIndex >= int(request.SkillRequirements[key.SkillIndex].Quantity) {
			h.errorResponse(w, r, "格子键超出需求范围")
			return
		}
		keys = append(keys, key)
	}

	staff, err := h.repository.GetStaffMemberByID(req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	for _, key := range keys {
		if !staff.HasSkill(request.SkillRequirements[key.SkillIndex].Skill) {
			h.errorResponse(w, r, "员工不具备该格子要求的技能")
			return
		}
	}

	// 获取编辑锁，同一需求同一时间只允许一个调度员写入
	release, err := h.acquireEditLock(r.Context(), request.ID)
	if err != nil {
		switch {
		case errors.Is(err, errEditLockHeld):
			h.errorResponse(w, r, "该需求正在被其他调度员编辑，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	defer release()

	wasUnstaffed := request.Status == domain.RequestStatusUnstaffed

	request.Assignments = grid.Apply(request.Assignments, keys, *staff, req.EffectiveDate)

	if err := h.repository.ReplaceAssignments(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "需求已被其他调度员修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 从未满足变为完全满足时翻转状态并通知客户联系人
	if wasUnstaffed && grid.IsFullyStaffed(request, request.Assignments) {
		if err := h.repository.MoveRequestToStaffed(request); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		if err := h.publishMail(domain.MailMessage{
			Type: "request_staffed",
			To:   request.ContactEmail,
			Data: domain.RequestStaffedMailData{
				ContactPerson: request.ContactPerson,
				Client:        request.Client,
				JobSite:       request.JobSite,
			},
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// 给被指派的员工发一封上岗通知
	if err := h.publishMail(domain.MailMessage{
		Type: "assignment_notice",
		To:   staff.Email,
		Data: domain.AssignmentNoticeMailData{
			StaffName:     staff.Name,
			JobSite:       request.JobSite,
			Client:        request.Client,
			ShiftCount:    len(keys),
			EffectiveDate: req.EffectiveDate,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 指派落库后该调度员的选择草稿就过时了，顺手清掉。清不掉也会随 TTL 过期
	coordinator := r.Context().Value(CoordinatorCtx).(*domain.Coordinator)
	clearCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()
	if err := h.redisClient.Del(clearCtx, selectionKey(request.ID, coordinator.ID)).Err(); err != nil {
		slog.Error("清理选择草稿失败", "request_id", request.ID, "error", err)
	}

	h.successResponse(w, r, "指派成功", request)
}

// PromoteAssignments 把生效时间已到的待生效指派提升为当前指派。
// 提升永远不会自动发生，必须由调度员显式触发。
func (h *Handler) PromoteAssignments(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)

	release, err := h.acquireEditLock(r.Context(), request.ID)
	if err != nil {
		switch {
		case errors.Is(err, errEditLockHeld):
			h.errorResponse(w, r, "该需求正在被其他调度员编辑，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	defer release()

	assignments, promoted := grid.PromoteDue(request.Assignments, time.Now())
	if promoted == 0 {
		h.successResponse(w, r, "没有到期的待生效指派", request)
		return
	}

	request.Assignments = assignments
	if err := h.repository.ReplaceAssignments(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "需求已被其他调度员修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, fmt.Sprintf("已提升 %d 个格子的待生效指派", promoted), request)
}

var errEditLockHeld = errors.New("编辑锁被占用")

// acquireEditLock 以 SetNX 方式获取某个需求的短时编辑锁。
// 锁值为随机令牌，释放时校验令牌避免误删别人的锁。
func (h *Handler) acquireEditLock(ctx context.Context, requestID int64) (func(), error) {
	lockKey := fmt.Sprintf("edit_lock_%d", requestID)
	token := uuid.NewString()

	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	ok, err := h.redisClient.SetNX(opCtx, lockKey, token, time.Duration(h.config.EditLock.Expiration)*time.Second).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errEditLockHeld
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
		defer cancel()

		current, err := h.redisClient.Get(releaseCtx, lockKey).Result()
		if err != nil || current != token {
			return
		}
		if err := h.redisClient.Del(releaseCtx, lockKey).Err(); err != nil {
			slog.Error("释放编辑锁失败", "key", lockKey, "error", err)
		}
	}
	return release, nil
}

func (h *Handler) publishMail(message domain.MailMessage) error {
	mailData, err := json.Marshal(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
