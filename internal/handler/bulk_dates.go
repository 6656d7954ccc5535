package handler

import (
	"errors"
	"net/http"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/grid"
)

// GenerateBulkDates 把日期范围和每周模板展开成固定日期需求的日期行。
// 纯计算接口，不写任何数据，客户端拿到结果后自行决定是否用于创建需求。
func (h *Handler) GenerateBulkDates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string               `json:"startDate"`
		EndDate   string               `json:"endDate"`
		Template  grid.WeekdayTemplate `json:"template" validate:"required"`
		Existing  []grid.DateEntry     `json:"existing"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := grid.GenerateDateRange(req.StartDate, req.EndDate, req.Template, req.Existing)
	if err != nil {
		switch {
		case errors.Is(err, grid.ErrInvalidRange), errors.Is(err, grid.ErrEmptyResult):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "批量生成日期成功", entries)
}
