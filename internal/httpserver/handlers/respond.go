package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrInvalidShareOption):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyShared):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRecordExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrOracleUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status mapped from err. Server-side failures
// are logged and their detail is not exposed.
func writeError(w http.ResponseWriter, log logger.Logger, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: http.StatusText(status)}

	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Error(err))
	} else {
		resp.Detail = err.Error()
	}

	writeJSON(w, status, resp)
}
