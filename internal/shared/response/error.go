package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"biosphere-server/internal/shared/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type errorPolicy struct {
	status int
	level  slog.Level
	label  string
	// public replaces the error text sent to clients; empty sends err.Error().
	public string
}

var policies = map[errors.ErrorType]errorPolicy{
	errors.ErrorTypeNotFound:         {http.StatusNotFound, slog.LevelDebug, "Resource not found", ""},
	errors.ErrorTypeValidation:       {http.StatusBadRequest, slog.LevelDebug, "Rejected request", ""},
	errors.ErrorTypeConflict:         {http.StatusConflict, slog.LevelInfo, "Conflict", ""},
	errors.ErrorTypeUnauthorized:     {http.StatusUnauthorized, slog.LevelWarn, "Authorization error", ""},
	errors.ErrorTypeForbidden:        {http.StatusForbidden, slog.LevelWarn, "Authorization error", ""},
	errors.ErrorTypeMethodNotAllowed: {http.StatusMethodNotAllowed, slog.LevelDebug, "Method not allowed", ""},
	errors.ErrorTypeExternal:         {http.StatusServiceUnavailable, slog.LevelError, "Dependency unavailable", "a backing service is unavailable"},
	errors.ErrorTypeGeneration:       {http.StatusInternalServerError, slog.LevelError, "Generation failed", "generation failed, retry with another seed"},
	errors.ErrorTypeInternal:         {http.StatusInternalServerError, slog.LevelError, "Internal server error", "internal server error"},
}

func policyFor(t errors.ErrorType) errorPolicy {
	if p, ok := policies[t]; ok {
		return p
	}
	return policies[errors.ErrorTypeInternal]
}

// Error logs err and writes it as JSON. It is the only place request errors
// are logged. Server-side failures reach the client as a fixed message; the
// detail stays in the log.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	policy := policyFor(errorType)

	logger.Log(r.Context(), policy.level, policy.label,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", policy.status,
		"error", err,
	)

	message := policy.public
	if message == "" {
		message = err.Error()
	}
	writeJSON(w, policy.status, ErrorResponse{
		Error:   string(errorType),
		Message: message,
		Code:    policy.status,
	})
}

// Success writes data as JSON. A nil data or a 204 status sends no body.
func Success(w http.ResponseWriter, statusCode int, data any) {
	if data == nil || statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return
	}
	writeJSON(w, statusCode, data)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// The status line is already out; an encode failure can only be dropped.
	_ = json.NewEncoder(w).Encode(v)
}
