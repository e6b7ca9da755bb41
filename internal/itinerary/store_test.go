package itinerary_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// ---- helpers ---------------------------------------------------------------

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:            uuid.New(),
		Name:          "Paris Getaway",
		Destination:   "Paris, France",
		StartDate:     "2024-06-01",
		EndDate:       "2024-06-03",
		Budget:        decimal.NewFromInt(900),
		TravelerCount: 2,
	}
}

func activity(id string, price int64) domain.Activity {
	return domain.Activity{
		ID:            id,
		Name:          "Activity " + id,
		Price:         decimal.NewFromInt(price),
		Category:      domain.CategoryTour,
		DurationHours: 2,
		Rating:        4.5,
	}
}

// mustSchedule schedules a catalog activity and fails the test on error.
func mustSchedule(t *testing.T, trip *domain.Trip, id string, d domain.Day) domain.ScheduledActivity {
	t.Helper()
	sa, err := itinerary.Schedule(trip, activity(id, 10), d, "", uuid.New)
	require.NoError(t, err)
	return sa
}

func idsOn(trip domain.Trip, d domain.Day) []uuid.UUID {
	var ids []uuid.UUID
	for _, a := range itinerary.ActivitiesForDay(trip, d) {
		ids = append(ids, a.ID)
	}
	return ids
}

// ---- Schedule --------------------------------------------------------------

func TestSchedule_AppendsCopyWithFreshID(t *testing.T) {
	trip := tripFixture()
	src := activity("c1", 17)

	got, err := itinerary.Schedule(&trip, src, "2024-06-02", "09:30", uuid.New)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "c1", got.CatalogID())
	assert.Equal(t, domain.Day("2024-06-02"), got.Date)
	assert.Equal(t, "09:30", got.TimeSlot)
	require.Len(t, trip.Activities, 1)
	assert.Equal(t, got, trip.Activities[0])
}

func TestSchedule_DefaultsAndNormalizesTimeSlot(t *testing.T) {
	trip := tripFixture()

	a, err := itinerary.Schedule(&trip, activity("a", 1), "2024-06-01", "", uuid.New)
	require.NoError(t, err)
	b, err := itinerary.Schedule(&trip, activity("b", 1), "2024-06-01", "9:05", uuid.New)
	require.NoError(t, err)

	assert.Equal(t, itinerary.DefaultTimeSlot, a.TimeSlot)
	assert.Equal(t, "09:05", b.TimeSlot)
}

func TestSchedule_InvalidTimeSlot(t *testing.T) {
	trip := tripFixture()

	_, err := itinerary.Schedule(&trip, activity("a", 1), "2024-06-01", "noon", uuid.New)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, trip.Activities)
}

func TestSchedule_DayOutsideTrip(t *testing.T) {
	trip := tripFixture()

	_, err := itinerary.Schedule(&trip, activity("a", 1), "2024-06-04", "10:00", uuid.New)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, trip.Activities)
}

func TestSchedule_DuplicateCatalogActivity(t *testing.T) {
	trip := tripFixture()
	mustSchedule(t, &trip, "f1", "2024-06-01")

	// Same catalog id, different day: still rejected.
	_, err := itinerary.Schedule(&trip, activity("f1", 10), "2024-06-02", "", uuid.New)

	assert.ErrorIs(t, err, domain.ErrDuplicateActivity)
	assert.Len(t, trip.Activities, 1, "collection must be unchanged")
}

func TestScheduleUnchecked_AllowsDuplicates(t *testing.T) {
	trip := tripFixture()
	mustSchedule(t, &trip, "f1", "2024-06-01")

	_, err := itinerary.ScheduleUnchecked(&trip, activity("f1", 10), "2024-06-02", "", uuid.New)

	require.NoError(t, err)
	assert.Len(t, trip.Activities, 2)
}

func TestSchedule_DoesNotAliasPreviousSlice(t *testing.T) {
	trip := tripFixture()
	mustSchedule(t, &trip, "a", "2024-06-01")
	before := trip.Activities

	mustSchedule(t, &trip, "b", "2024-06-01")

	assert.Len(t, before, 1, "a snapshot taken before the call must not see the new entry")
}

// ---- Unschedule ------------------------------------------------------------

func TestUnschedule_RemovesMatchingEntry(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")
	b := mustSchedule(t, &trip, "b", "2024-06-01")

	removed, ok := itinerary.Unschedule(&trip, a.ID)

	assert.True(t, ok)
	assert.Equal(t, a.ID, removed.ID)
	assert.Equal(t, []uuid.UUID{b.ID}, idsOn(trip, "2024-06-01"))
}

func TestUnschedule_UnknownIDIsNoOp(t *testing.T) {
	trip := tripFixture()
	mustSchedule(t, &trip, "a", "2024-06-01")

	_, ok := itinerary.Unschedule(&trip, uuid.New())

	assert.False(t, ok)
	assert.Len(t, trip.Activities, 1)
}

func TestUnschedule_ThenScheduleSameCatalogEntry(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")
	itinerary.Unschedule(&trip, a.ID)

	_, err := itinerary.Schedule(&trip, activity("a", 10), "2024-06-02", "", uuid.New)

	assert.NoError(t, err)
}

// ---- Reorder ---------------------------------------------------------------

func TestReorder_MovesForwardAndBack(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")
	other := mustSchedule(t, &trip, "x", "2024-06-02")
	b := mustSchedule(t, &trip, "b", "2024-06-01")
	c := mustSchedule(t, &trip, "c", "2024-06-01")

	require.NoError(t, itinerary.Reorder(&trip, "2024-06-01", 0, 2))
	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, idsOn(trip, "2024-06-01"))

	require.NoError(t, itinerary.Reorder(&trip, "2024-06-01", 2, 0))
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, idsOn(trip, "2024-06-01"))

	assert.Equal(t, []uuid.UUID{other.ID}, idsOn(trip, "2024-06-02"), "other days are untouched")
}

func TestReorder_SameIndexIsNoOp(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")
	b := mustSchedule(t, &trip, "b", "2024-06-01")

	require.NoError(t, itinerary.Reorder(&trip, "2024-06-01", 1, 1))

	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, idsOn(trip, "2024-06-01"))
}

func TestReorder_OutOfRange(t *testing.T) {
	trip := tripFixture()
	mustSchedule(t, &trip, "a", "2024-06-01")
	mustSchedule(t, &trip, "b", "2024-06-01")
	before := trip.Clone()

	for _, tc := range []struct{ from, to int }{{-1, 0}, {0, 2}, {2, 0}, {0, -1}} {
		err := itinerary.Reorder(&trip, "2024-06-01", tc.from, tc.to)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange, "from=%d to=%d", tc.from, tc.to)
	}
	assert.Equal(t, before.Activities, trip.Activities)
}

func TestReorder_EmptyDay(t *testing.T) {
	trip := tripFixture()

	err := itinerary.Reorder(&trip, "2024-06-03", 0, 0)

	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

// ---- Move ------------------------------------------------------------------

func TestMove_AppendsToDestinationDay(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")
	b := mustSchedule(t, &trip, "b", "2024-06-02")
	c := mustSchedule(t, &trip, "c", "2024-06-02")

	moved, err := itinerary.Move(&trip, a.ID, "2024-06-01", "2024-06-02")

	require.NoError(t, err)
	assert.Equal(t, domain.Day("2024-06-02"), moved.Date)
	assert.Empty(t, idsOn(trip, "2024-06-01"))
	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, idsOn(trip, "2024-06-02"))
}

func TestMove_ExactlyOneCopyRemains(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")

	_, err := itinerary.Move(&trip, a.ID, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	count := 0
	for _, sa := range trip.Activities {
		if sa.ID == a.ID {
			count++
			assert.Equal(t, domain.Day("2024-06-03"), sa.Date)
		}
	}
	assert.Equal(t, 1, count)
}

func TestMove_WrongSourceDay(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")

	_, err := itinerary.Move(&trip, a.ID, "2024-06-02", "2024-06-03")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.Day("2024-06-01"), trip.Activities[0].Date)
}

func TestMove_UnknownID(t *testing.T) {
	trip := tripFixture()

	_, err := itinerary.Move(&trip, uuid.New(), "2024-06-01", "2024-06-02")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMove_DestinationOutsideTrip(t *testing.T) {
	trip := tripFixture()
	a := mustSchedule(t, &trip, "a", "2024-06-01")

	_, err := itinerary.Move(&trip, a.ID, "2024-06-01", "2024-07-01")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.Day("2024-06-01"), trip.Activities[0].Date)
}

// ---- invariants under random operation sequences ---------------------------

// TestOperations_KeepDatesInRange drives a random mix of operations and checks
// after every step that each activity stays inside the trip, and that Reorder
// never changes which activities belong to a day.
func TestOperations_KeepDatesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	trip := tripFixture()
	days, err := itinerary.TripDays(trip)
	require.NoError(t, err)
	// Include a day outside the trip so invalid requests are exercised too.
	candidates := append(append([]domain.Day(nil), days...), "2024-06-04")

	pick := func() domain.Day { return candidates[rng.Intn(len(candidates))] }
	randomID := func() uuid.UUID {
		if len(trip.Activities) == 0 || rng.Intn(5) == 0 {
			return uuid.New()
		}
		return trip.Activities[rng.Intn(len(trip.Activities))].ID
	}

	for step := 0; step < 500; step++ {
		switch rng.Intn(4) {
		case 0:
			id := string(rune('a' + rng.Intn(12)))
			_, _ = itinerary.Schedule(&trip, activity(id, 5), pick(), "", uuid.New)
		case 1:
			itinerary.Unschedule(&trip, randomID())
		case 2:
			_, _ = itinerary.Move(&trip, randomID(), pick(), pick())
		case 3:
			d := pick()
			before := idsOn(trip, d)
			_ = itinerary.Reorder(&trip, d, rng.Intn(4), rng.Intn(4))
			assert.ElementsMatch(t, before, idsOn(trip, d), "step %d: reorder changed the set on %s", step, d)
		}

		for _, a := range trip.Activities {
			require.True(t, trip.Contains(a.Date), "step %d: %s outside trip", step, a.Date)
		}
	}
}
