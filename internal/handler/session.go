package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/service"
)

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, PreferenceCatalog{
		Preferences: s.catalog.Preferences(),
		BudgetTiers: s.catalog.BudgetTiers(),
	})
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Start(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID.String())
	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// GetSession handles GET /sessions/{sessionId}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// EndSession handles DELETE /sessions/{sessionId}.
func (s *Server) EndSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.End(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession handles POST /sessions/{sessionId}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Reset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// SetPreferences handles PUT /sessions/{sessionId}/preferences.
func (s *Server) SetPreferences(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body SetPreferencesRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	sess, err := s.sessions.SetPreferences(r.Context(), id, body.Ids)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// TogglePreference handles POST /sessions/{sessionId}/preferences/{prefId}/toggle.
func (s *Server) TogglePreference(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.TogglePreference(r.Context(), id, chi.URLParam(r, "prefId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// ChooseBudgetTier handles PUT /sessions/{sessionId}/budget-tier.
func (s *Server) ChooseBudgetTier(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body ChooseBudgetTierRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	sess, err := s.sessions.ChooseBudgetTier(r.Context(), id, body.Tier)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// CreateTrip handles POST /sessions/{sessionId}/trip.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body CreateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	in, err := requestToTripInput(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	trip, err := s.sessions.CreateTrip(r.Context(), id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// GetTrip handles GET /sessions/{sessionId}/trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := s.sessions.GetTrip(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// AddExpense handles POST /sessions/{sessionId}/expenses.
func (s *Server) AddExpense(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body AddExpenseRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if body.Amount == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("amount is required"))
		return
	}

	e, err := s.sessions.AddExpense(r.Context(), id, body.Category, *body.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Expense{Category: e.Category, Amount: e.Amount, CreatedAt: e.CreatedAt})
}

// requestToTripInput converts a CreateTripRequest body into a service.TripInput.
// Returns an error if required dates are missing.
func requestToTripInput(body CreateTripRequest) (service.TripInput, error) {
	if body.StartDate == nil || body.EndDate == nil {
		return service.TripInput{}, errors.New("start_date and end_date are required")
	}
	in := service.TripInput{
		Name:          body.Name,
		Destination:   body.Destination,
		StartDate:     fromDate(*body.StartDate),
		EndDate:       fromDate(*body.EndDate),
		Budget:        body.Budget,
		TravelerCount: 1,
	}
	if body.TravelerCount != nil {
		in.TravelerCount = *body.TravelerCount
	}
	return in, nil
}
