package handlers

import (
	"encoding/json"
	"net/http"

	"planpilot-backend/internal/models"
	"planpilot-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", e.Message, r))
	case *services.ConfigError:
		writeJSON(w, http.StatusInternalServerError, errorResp("CONFIG_ERROR", "Service is not configured", r))
	case *services.UpstreamError:
		// Raw upstream body stays attached for diagnostics.
		writeJSON(w, http.StatusInternalServerError, errorResp("UPSTREAM_ERROR", e.Error(), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", err.Error(), r))
	}
}
