package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// writeError maps workflow error kinds to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSerial),
		errors.Is(err, domain.ErrDuplicateIdentifier),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyReturned),
		errors.Is(err, domain.ErrAlreadyUsed),
		errors.Is(err, domain.ErrAlreadyClosed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInviteExpired):
		status = http.StatusGone
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrIdentifierSpaceExhausted):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrValidation
	}
	return nil
}

// pagination reads page/page_size query parameters with sane bounds.
func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(defaultPageSize)
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = int32(n)
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			pageSize = int32(n)
		}
	}
	return page, pageSize
}

// listResponse is the envelope for every paginated collection.
type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
	Page  int32       `json:"page"`
}
