package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already sent; nothing left to report to.
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v. Unknown fields are rejected so
// that typos in client payloads surface as 422s instead of silent defaults.
// A body cut off by the size limit is reported as such.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is required")
		default:
			return fmt.Errorf("malformed request body: %v", err)
		}
	}
	return nil
}

// sessionID parses the {sessionId} path parameter.
// An id that is not a UUID cannot name a session, so it is reported as not found.
func sessionID(r *http.Request) (uuid.UUID, error) {
	return uuidParam(r, "sessionId", "session")
}

// activityID parses the {activityId} path parameter.
func activityID(r *http.Request) (uuid.UUID, error) {
	return uuidParam(r, "activityId", "scheduled activity")
}

func uuidParam(r *http.Request, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q does not exist", domain.ErrNotFound, what, chi.URLParam(r, name))
	}
	return id, nil
}

// dayParam parses the {day} path parameter. Malformed days are a validation error.
func dayParam(r *http.Request) (domain.Day, error) {
	return domain.ParseDay(chi.URLParam(r, "day"))
}
