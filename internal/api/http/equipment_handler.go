package http

import (
	"net/http"
	"strconv"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	equipment service.EquipmentService
}

func NewEquipmentHandler(equipment service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

type createEquipmentRequest struct {
	Type         string  `json:"type"`
	SerialNumber string  `json:"serial_number"`
	IMEI         *string `json:"imei"`
	Condition    string  `json:"condition"`
}

type equipmentResponse struct {
	Equipment *domain.Equipment `json:"equipment"`
	Warning   string            `json:"warning,omitempty"`
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	eq := &domain.Equipment{
		Type:         domain.EquipmentType(req.Type),
		SerialNumber: req.SerialNumber,
		IMEI:         req.IMEI,
		Condition:    domain.EquipmentCondition(req.Condition),
	}
	warning, err := h.equipment.Create(r.Context(), actorFrom(r), eq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, equipmentResponse{Equipment: eq, Warning: warning})
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.equipment.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

type updateEquipmentRequest struct {
	IMEI      *string `json:"imei"`
	Condition string  `json:"condition"`
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.equipment.Update(r.Context(), actorFrom(r), id, req.IMEI, domain.EquipmentCondition(req.Condition))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Retire(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.equipment.Retire(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.EquipmentFilter{
		Type:         domain.EquipmentType(q.Get("type")),
		Status:       domain.EquipmentStatus(q.Get("status")),
		Condition:    domain.EquipmentCondition(q.Get("condition")),
		SerialNumber: q.Get("serial"),
		IMEI:         q.Get("imei"),
	}
	page, pageSize := pagination(r)

	items, total, err := h.equipment.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation
	}
	return int32(id), nil
}
