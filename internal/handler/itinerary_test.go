package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/handler"
)

func catalogIDs(list []handler.ScheduledActivity) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.CatalogId
	}
	return out
}

func TestGetDays(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)

	rec := do(t, h, http.MethodGet, base+"/days", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"days":["2025-04-01","2025-04-02","2025-04-03"]}`, rec.Body.String())
}

func TestGetDays_NoTrip(t *testing.T) {
	h := newHTTPHandler(t)
	base := startSession(t, h)

	rec := do(t, h, http.MethodGet, base+"/days", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_trip", errorCode(t, rec))
}

func TestScheduleActivity(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)

	rec := do(t, h, http.MethodPost, base+"/activities", map[string]any{
		"catalog_id": "f1", "date": "2025-04-02", "time_slot": "19:30",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[handler.ScheduledActivity](t, rec)
	assert.Equal(t, "f1", got.CatalogId)
	assert.Equal(t, "19:30", got.TimeSlot)
	assert.Equal(t, "Dining", got.Activity.CategoryLabel)
	assert.Equal(t, "150", got.Activity.Price.String())

	rec = do(t, h, http.MethodGet, base+"/days/2025-04-02/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"f1"}, catalogIDs(decode[[]handler.ScheduledActivity](t, rec)))
}

func TestScheduleActivity_Errors(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)
	schedule(t, h, base, "f1", "2025-04-01")

	rec := do(t, h, http.MethodPost, base+"/activities", map[string]any{"catalog_id": "f1", "date": "2025-04-02"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_activity", errorCode(t, rec))

	rec = do(t, h, http.MethodPost, base+"/activities", map[string]any{"catalog_id": "zz9", "date": "2025-04-02"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/activities", map[string]any{"catalog_id": "f2", "date": "2026-01-01"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/activities", map[string]any{"catalog_id": "f2", "date": "2025-04-02", "time_slot": "25:99"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/activities", map[string]any{"catalog_id": "f2"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetActivitiesForDay_MalformedDay(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)

	rec := do(t, h, http.MethodGet, base+"/days/tomorrow/activities", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnscheduleActivity_IsIdempotent(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)
	a := schedule(t, h, base, "c1", "2025-04-01")

	rec := do(t, h, http.MethodDelete, base+"/activities/"+a.Id.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, base+"/activities/"+a.Id.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, base+"/activities/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReorderDay(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)
	for _, id := range []string{"c1", "c2", "f1"} {
		schedule(t, h, base, id, "2025-04-01")
	}

	rec := do(t, h, http.MethodPost, base+"/days/2025-04-01/reorder", map[string]any{"from": 2, "to": 0})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"f1", "c1", "c2"}, catalogIDs(decode[[]handler.ScheduledActivity](t, rec)))
}

func TestReorderDay_OutOfRange(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)
	schedule(t, h, base, "c1", "2025-04-01")

	rec := do(t, h, http.MethodPost, base+"/days/2025-04-01/reorder", map[string]any{"from": 0, "to": 5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "index_out_of_range", errorCode(t, rec))

	rec = do(t, h, http.MethodPost, base+"/days/2025-04-01/reorder", map[string]any{"from": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMoveActivity(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)
	a := schedule(t, h, base, "c1", "2025-04-01")
	schedule(t, h, base, "c2", "2025-04-03")

	rec := do(t, h, http.MethodPost, base+"/activities/"+a.Id.String()+"/move", map[string]any{
		"from_day": "2025-04-01", "to_day": "2025-04-03",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, base+"/days/2025-04-03/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c2", "c1"}, catalogIDs(decode[[]handler.ScheduledActivity](t, rec)))

	rec = do(t, h, http.MethodPost, base+"/activities/"+a.Id.String()+"/move", map[string]any{
		"from_day": "2025-04-01", "to_day": "2025-04-02",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, "activity is no longer on the source day")
}

func TestGenerateSample(t *testing.T) {
	h := newHTTPHandler(t)
	base := withTrip(t, h)

	rec := do(t, h, http.MethodPost, base+"/itinerary/sample", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[handler.SampleResult](t, rec)
	assert.True(t, got.Generated)
	assert.Len(t, got.Activities, 4)

	rec = do(t, h, http.MethodPost, base+"/itinerary/sample", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[handler.SampleResult](t, rec)
	assert.False(t, again.Generated, "a trip with activities is left alone")
	assert.Empty(t, again.Activities)
}
