package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// GetDays handles GET /sessions/{sessionId}/days.
func (s *Server) GetDays(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	days, err := s.itinerary.Days(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := DayList{Days: make([]openapi_types.Date, len(days))}
	for i, d := range days {
		resp.Days[i] = toDate(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetActivitiesForDay handles GET /sessions/{sessionId}/days/{day}/activities.
func (s *Server) GetActivitiesForDay(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	day, err := dayParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.itinerary.ActivitiesForDay(r.Context(), id, day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduledListToResponse(list))
}

// ReorderDay handles POST /sessions/{sessionId}/days/{day}/reorder and
// returns the day's activities in their new order.
func (s *Server) ReorderDay(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	day, err := dayParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body ReorderRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if body.From == nil || body.To == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("from and to are required"))
		return
	}

	list, err := s.itinerary.Reorder(r.Context(), id, day, *body.From, *body.To)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduledListToResponse(list))
}

// ScheduleActivity handles POST /sessions/{sessionId}/activities.
func (s *Server) ScheduleActivity(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body ScheduleActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if body.CatalogId == "" || body.Date == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("catalog_id and date are required"))
		return
	}

	sa, err := s.itinerary.Schedule(r.Context(), id, body.CatalogId, fromDate(*body.Date), body.TimeSlot)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, scheduledToResponse(sa))
}

// UnscheduleActivity handles DELETE /sessions/{sessionId}/activities/{activityId}.
// Deleting an activity that is not on the trip still answers 204.
func (s *Server) UnscheduleActivity(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	actID, err := activityID(r)
	if err != nil {
		// A malformed id cannot be on the trip either.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if _, err := s.itinerary.Unschedule(r.Context(), id, actID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveActivity handles POST /sessions/{sessionId}/activities/{activityId}/move.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	actID, err := activityID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body MoveActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if body.FromDay == nil || body.ToDay == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("from_day and to_day are required"))
		return
	}

	moved, err := s.itinerary.Move(r.Context(), id, actID, fromDate(*body.FromDay), fromDate(*body.ToDay))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduledToResponse(moved))
}

// GenerateSample handles POST /sessions/{sessionId}/itinerary/sample.
// A trip that already has activities is left alone and answers
// {"generated": false}.
func (s *Server) GenerateSample(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	placed, generated, err := s.itinerary.GenerateSample(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if placed == nil {
		placed = []domain.ScheduledActivity{}
	}
	writeJSON(w, http.StatusOK, SampleResult{Generated: generated, Activities: scheduledListToResponse(placed)})
}
