package http

import (
	"net/http"
	"strconv"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

type IncidentHandler struct {
	incidents service.IncidentService
}

func NewIncidentHandler(incidents service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidents: incidents}
}

type reportIncidentRequest struct {
	EquipmentID int32      `json:"equipment_id"`
	AgentID     *int32     `json:"agent_id"`
	Type        string     `json:"incident_type"`
	Description string     `json:"description"`
	ReportedAt  *time.Time `json:"reported_at"`
}

func (h *IncidentHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportIncidentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	incident, err := h.incidents.Report(r.Context(), actorFrom(r), service.ReportIncidentInput{
		EquipmentID: req.EquipmentID,
		AgentID:     req.AgentID,
		Type:        domain.IncidentType(req.Type),
		Description: req.Description,
		ReportedAt:  req.ReportedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, incident)
}

func (h *IncidentHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	incident, err := h.incidents.Close(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}

func (h *IncidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	incident, err := h.incidents.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}

func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.IncidentFilter{
		Type:   domain.IncidentType(q.Get("type")),
		Status: domain.IncidentStatus(q.Get("status")),
	}
	if v := q.Get("equipment_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.EquipmentID = int32(n)
		}
	}
	if v := q.Get("agent_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.AgentID = int32(n)
		}
	}
	page, pageSize := pagination(r)

	items, total, err := h.incidents.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}
