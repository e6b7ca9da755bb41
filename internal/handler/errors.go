package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ErrorDetail is the machine-readable code and human-readable message of a failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// errorMapping ties a domain sentinel to its HTTP status and error code.
type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order; the first errors.Is match wins.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidRange, http.StatusUnprocessableEntity, "invalid_range"},
	{domain.ErrIndexOutOfRange, http.StatusUnprocessableEntity, "index_out_of_range"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrDuplicateActivity, http.StatusConflict, "duplicate_activity"},
	{domain.ErrNoTrip, http.StatusConflict, "no_trip"},
}

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was ready.
const statusClientClosedRequest = 499

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// writeError maps err to a status and an ErrorResponse.
// Unknown errors become a 500 with a generic message and are logged; index
// errors are logged too because a well-behaved client never sends them.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		// Nobody reads this body; the status keeps the request log honest.
		s.logger.InfoContext(r.Context(), "request canceled by client", "path", r.URL.Path)
		w.WriteHeader(statusClientClosedRequest)
		return
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.WarnContext(r.Context(), "request timed out", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusGatewayTimeout, ErrorResponse{
			Error: ErrorDetail{Code: "timeout", Message: "request timed out"},
		})
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			if m.err == domain.ErrIndexOutOfRange {
				s.logger.ErrorContext(r.Context(), "stale reorder request", "error", err, "path", r.URL.Path)
			}
			writeJSON(w, m.status, ErrorResponse{Error: ErrorDetail{Code: m.code, Message: unwrapMessage(err, m.err)}})
			return
		}
	}

	s.logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.SessionService.CreateTrip: validation error: trip name is required"
// → "trip name is required". Without a detail the sentinel text itself is used.
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
