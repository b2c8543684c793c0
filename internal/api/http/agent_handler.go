package http

import (
	"net/http"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

type AgentHandler struct {
	agents service.AgentService
}

func NewAgentHandler(agents service.AgentService) *AgentHandler {
	return &AgentHandler{agents: agents}
}

type agentRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	IDNumber       string `json:"id_number"`
	IDDocumentPath string `json:"id_document_path"`
	ProjectType    string `json:"project_type"`
	Status         string `json:"status"`
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	agent := &domain.Agent{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		IDNumber:       req.IDNumber,
		IDDocumentPath: req.IDDocumentPath,
		ProjectType:    req.ProjectType,
		Status:         domain.AgentStatus(req.Status),
	}
	if err := h.agents.Create(r.Context(), actorFrom(r), agent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	agent, err := h.agents.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req agentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	agent := &domain.Agent{
		ID:             id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		IDNumber:       req.IDNumber,
		IDDocumentPath: req.IDDocumentPath,
		ProjectType:    req.ProjectType,
		Status:         domain.AgentStatus(req.Status),
	}
	if err := h.agents.Update(r.Context(), actorFrom(r), agent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.AgentFilter{
		Status:     domain.AgentStatus(q.Get("status")),
		Identifier: q.Get("identifier"),
		Name:       q.Get("name"),
	}
	page, pageSize := pagination(r)

	items, total, err := h.agents.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}
