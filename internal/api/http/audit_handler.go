package http

import (
	"net/http"
	"strconv"

	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

type AuditHandler struct {
	audit service.AuditService
}

func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.AuditFilter{
		Action:     q.Get("action"),
		TargetType: q.Get("target_type"),
	}
	if v := q.Get("user_id"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.UserID = int32(n)
		}
	}
	page, pageSize := pagination(r)

	items, total, err := h.audit.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}
