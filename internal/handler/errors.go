package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/wanderlist/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ErrorResponse wraps ErrorDetail under an "error" key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v as the response body. Encode failures can only be
// logged: the status line is already sent.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("json encode failed", slog.Int("status", status), slog.String("error", err.Error()))
	}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure,
// listing every message the validators produced.
func validationBody(err error) ErrorResponse {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ErrorResponse{Error: ErrorDetail{
			Code:    "validation_error",
			Message: strings.Join(ve.Messages, "; "),
			Details: ve.Messages,
		}}
	}
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: err.Error()}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}}
}

// storageBody returns an ErrorResponse carrying the fixed storage message.
func storageBody(err error) ErrorResponse {
	msg := "storage operation failed"
	var se *domain.StorageError
	if errors.As(err, &se) {
		msg = se.Message
	}
	return ErrorResponse{Error: ErrorDetail{Code: "storage_error", Message: msg}}
}

func internalBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal error"}}
}

// writeError maps a service error onto the matching status and body.
// notFound is the message used for domain.ErrNotFound.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrStorage):
		s.log.ErrorContext(r.Context(), "storage failure", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, storageBody(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}
