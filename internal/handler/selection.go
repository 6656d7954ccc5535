package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/grid"
)

// 选择草稿按 (需求, 调度员) 维度存在 redis 里，带过期时间。
// 草稿只是批量指派前的临时状态，丢了不影响任何已落库的数据。
func selectionKey(requestID, coordinatorID int64) string {
	return fmt.Sprintf("selection_%d_%d", requestID, coordinatorID)
}

func (h *Handler) loadSelection(ctx context.Context, key string) (*grid.SelectionSet, error) {
	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	raw, err := h.redisClient.Get(opCtx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return grid.NewSelectionSet(), nil
		}
		return nil, err
	}

	var cells []grid.SelectionCell
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, err
	}
	return grid.NewSelectionSet(cells...), nil
}

func (h *Handler) storeSelection(ctx context.Context, key string, selection *grid.SelectionSet) error {
	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if selection.Len() == 0 {
		return h.redisClient.Del(opCtx, key).Err()
	}

	raw, err := json.Marshal(selection.Cells())
	if err != nil {
		return err
	}
	return h.redisClient.Set(opCtx, key, raw, time.Duration(h.config.Selection.Expiration)*time.Second).Err()
}

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)
	coordinator := r.Context().Value(CoordinatorCtx).(*domain.Coordinator)

	selection, err := h.loadSelection(r.Context(), selectionKey(request.ID, coordinator.ID))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取选择成功", selection.Cells())
}

func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)
	coordinator := r.Context().Value(CoordinatorCtx).(*domain.Coordinator)

	var req struct {
		SkillIndex    int `json:"skillIndex" validate:"gte=0"`
		PositionIndex int `json:"positionIndex" validate:"gte=0"`
		DateIndex     int `json:"dateIndex" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.SkillIndex >= len(request.SkillRequirements) {
		h.errorResponse(w, r, "格子超出需求范围")
		return
	}
	if req.PositionIndex >= int(request.SkillRequirements[req.SkillIndex].Quantity) {
		h.errorResponse(w, r, "格子超出需求范围")
		return
	}

	key := selectionKey(request.ID, coordinator.ID)
	selection, err := h.loadSelection(r.Context(), key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	selection.Toggle(grid.SelectionCell{
		SkillIndex:    req.SkillIndex,
		PositionIndex: req.PositionIndex,
		DateIndex:     req.DateIndex,
	})

	if err := h.storeSelection(r.Context(), key, selection); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "切换选择成功", selection.Cells())
}

// SelectRow 整行全选。返回的 openAssignment 为 true 表示这次操作
// 产生了整行选择，客户端此时要打开批量指派界面；整行已全选时
// 再次调用等于撤销整行，不打开界面。
func (h *Handler) SelectRow(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)
	coordinator := r.Context().Value(CoordinatorCtx).(*domain.Coordinator)

	var req struct {
		SkillIndex    int `json:"skillIndex" validate:"gte=0"`
		PositionIndex int `json:"positionIndex" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.SkillIndex >= len(request.SkillRequirements) {
		h.errorResponse(w, r, "行超出需求范围")
		return
	}
	requirement := &request.SkillRequirements[req.SkillIndex]
	if req.PositionIndex >= int(requirement.Quantity) {
		h.errorResponse(w, r, "行超出需求范围")
		return
	}

	key := selectionKey(request.ID, coordinator.ID)
	selection, err := h.loadSelection(r.Context(), key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	opened := selection.SelectAllInRow(req.SkillIndex, req.PositionIndex, requirement.NumDates(request.DateType))

	if err := h.storeSelection(r.Context(), key, selection); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "整行选择成功", struct {
		OpenAssignment bool                 `json:"openAssignment"`
		Cells          []grid.SelectionCell `json:"cells"`
	}{
		OpenAssignment: opened,
		Cells:          selection.Cells(),
	})
}

func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(StaffingRequestCtx).(*domain.StaffingRequest)
	coordinator := r.Context().Value(CoordinatorCtx).(*domain.Coordinator)

	opCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Del(opCtx, selectionKey(request.ID, coordinator.ID)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "清空选择成功", nil)
}
