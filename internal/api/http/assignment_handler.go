package http

import (
	"net/http"
	"strconv"
	"time"

	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

type AssignmentHandler struct {
	assignments service.AssignmentService
}

func NewAssignmentHandler(assignments service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

type createAssignmentRequest struct {
	EquipmentID        int32      `json:"equipment_id"`
	AgentID            int32      `json:"agent_id"`
	AssignedAt         *time.Time `json:"assigned_at"`
	ExpectedReturnAt   *time.Time `json:"expected_return_at"`
	SignaturePath      string     `json:"signature_path"`
	EquipmentPhotoPath string     `json:"equipment_photo_path"`
	Notes              string     `json:"notes"`
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	assignment, err := h.assignments.Create(r.Context(), actorFrom(r), service.CreateAssignmentInput{
		EquipmentID:        req.EquipmentID,
		AgentID:            req.AgentID,
		AssignedAt:         req.AssignedAt,
		ExpectedReturnAt:   req.ExpectedReturnAt,
		SignaturePath:      req.SignaturePath,
		EquipmentPhotoPath: req.EquipmentPhotoPath,
		Notes:              req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	assignment, err := h.assignments.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repository.AssignmentFilter
	if v := q.Get("agent_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.AgentID = int32(n)
		}
	}
	if v := q.Get("equipment_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.EquipmentID = int32(n)
		}
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := q.Get("assigned_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.AssignedAfter = &t
		}
	}
	if v := q.Get("assigned_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.AssignedBefore = &t
		}
	}
	page, pageSize := pagination(r)

	items, total, err := h.assignments.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}
