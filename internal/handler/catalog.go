package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// BrowseCatalog handles GET /sessions/{sessionId}/catalog.
// Supports ?q= (free text), ?category= and ?page= / ?limit=
// (defaults: page=1, limit=20, max=100).
func (s *Server) BrowseCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	query := r.URL.Query()
	page, err := intQuery(query.Get("page"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("page must be an integer"))
		return
	}
	limit, err := intQuery(query.Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("limit must be an integer"))
		return
	}

	result, err := s.catalog.Browse(r.Context(), id, service.CatalogQuery{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Page:     domain.NewPaginationParams(page, limit),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogPageToResponse(result))
}

// intQuery parses an optional integer query value; "" yields nil.
func intQuery(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
