package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// writeError maps classified errors to status codes. Unclassified failures
// are logged with full detail and surfaced as a generic message unless the
// service runs in development mode.
func writeError(w http.ResponseWriter, err error, development bool) {
	switch {
	case apperrors.IsValidation(err):
		details := apperrors.ValidationDetails(err)
		message := "Validation failed"
		if len(details) == 0 {
			if appErr, ok := err.(*apperrors.AppError); ok {
				message = appErr.Message
			}
		}
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message, Errors: details})
	case apperrors.IsConflict(err):
		if appErr, ok := err.(*apperrors.AppError); ok {
			writeJSON(w, http.StatusConflict, envelope{Success: false, Message: appErr.Message})
			return
		}
		writeJSON(w, http.StatusConflict, envelope{Success: false, Message: "Duplicate record"})
	case apperrors.IsNotFound(err):
		if appErr, ok := err.(*apperrors.AppError); ok {
			writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: appErr.Message})
			return
		}
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "Not found"})
	case apperrors.IsStoreUnavailable(err):
		log.Printf("store unavailable: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Message: "Service temporarily unavailable"})
	default:
		log.Printf("unexpected error: %v", err)
		message := "Server error occurred"
		if development {
			message = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: message})
	}
}

// clientIP extracts the caller address, honoring the first X-Forwarded-For
// hop when present.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx > 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}
	return host
}
