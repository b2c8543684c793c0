package http

import (
	"net/http"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/service"

	"github.com/gorilla/mux"
)

type InviteHandler struct {
	invites service.InviteService
}

func NewInviteHandler(invites service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type issueInviteRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
	TTLDays int    `json:"ttl_days"`
}

type issueInviteResponse struct {
	Invite *domain.Invite `json:"invite"`
	Link   string         `json:"link"`
}

func (h *InviteHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	invite, link, err := h.invites.Issue(r.Context(), actorFrom(r), service.IssueInviteInput{
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
		TTL:   time.Duration(req.TTLDays) * 24 * time.Hour,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, issueInviteResponse{Invite: invite, Link: link})
}

func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.invites.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}

type registrationRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Identifier     string `json:"identifier"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address"`
	IDNumber       string `json:"id_number"`
	IDDocumentPath string `json:"id_document_path"`
	ProjectType    string `json:"project_type"`
}

type registrationResponse struct {
	User  *domain.User  `json:"user"`
	Agent *domain.Agent `json:"agent"`
}

func (r registrationRequest) input() service.RegistrationInput {
	return service.RegistrationInput{
		Username:       r.Username,
		Password:       r.Password,
		Identifier:     r.Identifier,
		Email:          r.Email,
		Phone:          r.Phone,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Address:        r.Address,
		IDNumber:       r.IDNumber,
		IDDocumentPath: r.IDDocumentPath,
		ProjectType:    r.ProjectType,
	}
}

// Register consumes an invite token. This endpoint is open.
func (h *InviteHandler) Register(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, agent, err := h.invites.Register(r.Context(), token, req.input(), clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registrationResponse{User: user, Agent: agent})
}

// RegisterOpen is the invite-less self-registration path. Also open.
func (h *InviteHandler) RegisterOpen(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, agent, err := h.invites.RegisterOpen(r.Context(), req.input(), clientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registrationResponse{User: user, Agent: agent})
}
