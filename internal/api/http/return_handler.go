package http

import (
	"net/http"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

type ReturnHandler struct {
	returns service.ReturnService
}

func NewReturnHandler(returns service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

type createReturnRequest struct {
	AssignmentID       int32      `json:"assignment_id"`
	Condition          string     `json:"condition"`
	ReturnedAt         *time.Time `json:"returned_at"`
	Notes              string     `json:"notes"`
	EquipmentPhotoPath string     `json:"equipment_photo_path"`
}

func (h *ReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ret, err := h.returns.Create(r.Context(), actorFrom(r), service.CreateReturnInput{
		AssignmentID:       req.AssignmentID,
		Condition:          domain.EquipmentCondition(req.Condition),
		ReturnedAt:         req.ReturnedAt,
		Notes:              req.Notes,
		EquipmentPhotoPath: req.EquipmentPhotoPath,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ret)
}

func (h *ReturnHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ReturnFilter{
		Condition: domain.EquipmentCondition(q.Get("condition")),
	}
	if v := q.Get("returned_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.ReturnedAfter = &t
		}
	}
	if v := q.Get("returned_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.ReturnedBefore = &t
		}
	}
	page, pageSize := pagination(r)

	items, total, err := h.returns.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}
