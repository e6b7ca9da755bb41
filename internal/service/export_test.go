package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func TestExportService_Export_OrderedByDayThenPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.sessionWithTrip(t)
	_, err := f.itinerary.Schedule(ctx, id, "f1", "2025-04-03", "19:00")
	require.NoError(t, err)
	_, err = f.itinerary.Schedule(ctx, id, "c1", "2025-04-01", "10:00")
	require.NoError(t, err)
	_, err = f.itinerary.Schedule(ctx, id, "c2", "2025-04-01", "15:00")
	require.NoError(t, err)

	rows, err := f.export.Export(ctx, id)

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Louvre Museum", rows[0].ActivityName)
	assert.Equal(t, 1, rows[0].DayNumber)
	assert.Equal(t, "c2", activityCatalogID(t, f, id, rows[1]))
	assert.Equal(t, 3, rows[2].DayNumber)
	assert.Equal(t, domain.Day("2025-04-03"), rows[2].Day)
	assert.Equal(t, "Spring in Paris", rows[2].TripName)
	assert.Equal(t, "Paris, France", rows[2].Destination)
	assert.Equal(t, "150", rows[2].Price.String())
}

func TestExportService_Export_EmptyItinerary(t *testing.T) {
	f := newFixture(t)
	id := f.sessionWithTrip(t)

	rows, err := f.export.Export(context.Background(), id)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_NoTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.sessions.Start(ctx)
	require.NoError(t, err)

	_, err = f.export.Export(ctx, s.ID)

	assert.ErrorIs(t, err, domain.ErrNoTrip)
}

func TestRows_DayNumbersAcrossMonthBoundary(t *testing.T) {
	trip := domain.Trip{
		ID:        uuid.New(),
		StartDate: "2025-01-30",
		EndDate:   "2025-02-01",
		Activities: []domain.ScheduledActivity{
			{ID: uuid.New(), Activity: domain.Activity{ID: "x"}, Date: "2025-02-01"},
			{ID: uuid.New(), Activity: domain.Activity{ID: "y"}, Date: "2025-01-30"},
		},
	}

	rows, err := service.Rows(trip)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].DayNumber)
	assert.Equal(t, 3, rows[1].DayNumber, "month boundary counted correctly")
}

// activityCatalogID resolves an export row back to its catalog id.
func activityCatalogID(t *testing.T, f fixture, sessionID uuid.UUID, row domain.ExportRow) string {
	t.Helper()
	trip, err := f.sessions.GetTrip(context.Background(), sessionID)
	require.NoError(t, err)
	for _, a := range trip.Activities {
		if a.ID.String() == row.ActivityID {
			return a.CatalogID()
		}
	}
	t.Fatalf("no activity %s", row.ActivityID)
	return ""
}
