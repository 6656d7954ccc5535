package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

// SearchStaff 按技能检索员工目录。skill 为必填的查询参数，
// search 可选，为姓名的模糊匹配串。
func (h *Handler) SearchStaff(w http.ResponseWriter, r *http.Request) {
	skill := r.URL.Query().Get("skill")
	search := r.URL.Query().Get("search")

	if skill == "" {
		staff, err := h.repository.GetAllStaffMembers()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "获取员工列表成功", staff)
		return
	}

	staff, err := h.repository.SearchStaff(skill, search)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "检索员工成功", staff)
}

func (h *Handler) CreateStaffMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string   `json:"name" validate:"required"`
		Email  string   `json:"email" validate:"required,email"`
		Phone  string   `json:"phone" validate:"required"`
		Rating float64  `json:"rating" validate:"gte=0,lte=5"`
		Skills []string `json:"skills" validate:"required,min=1,dive,required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff := &domain.StaffMember{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Rating: req.Rating,
		Skills: req.Skills,
	}

	if err := h.repository.CreateStaffMember(staff); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "staff_members_email_key":
				h.errorResponse(w, r, "邮箱已被使用")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建员工成功", staff)
}
