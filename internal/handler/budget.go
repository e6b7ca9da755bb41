package handler

import "net/http"

// GetBudgetSummary handles GET /sessions/{sessionId}/budget.
// The summary is recomputed from the session on every request.
func (s *Server) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, err := s.budget.Summary(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(summary))
}
