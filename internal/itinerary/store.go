package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DefaultTimeSlot is used when an activity is scheduled without a time slot.
const DefaultTimeSlot = "12:00"

// IDFunc generates identities for newly scheduled activities.
// Production code passes uuid.New; tests pass a deterministic sequence.
type IDFunc func() uuid.UUID

// ActivitiesForDay returns the trip's activities on day d in display order.
// Always returns a non-nil slice.
func ActivitiesForDay(t domain.Trip, d domain.Day) []domain.ScheduledActivity {
	out := []domain.ScheduledActivity{}
	for _, a := range t.Activities {
		if a.Date == d {
			out = append(out, a)
		}
	}
	return out
}

// IsScheduled reports whether the catalog activity is already on the trip.
func IsScheduled(t domain.Trip, catalogID string) bool {
	for _, a := range t.Activities {
		if a.CatalogID() == catalogID {
			return true
		}
	}
	return false
}

// Schedule copies the catalog activity onto day d at timeSlot and appends it
// to the trip.
// Returns domain.ErrDuplicateActivity if the same catalog entry is already
// scheduled, and domain.ErrValidation if d is outside the trip or the time
// slot is malformed. The trip is unchanged on error.
func Schedule(t *domain.Trip, a domain.Activity, d domain.Day, timeSlot string, newID IDFunc) (domain.ScheduledActivity, error) {
	if IsScheduled(*t, a.ID) {
		return domain.ScheduledActivity{}, fmt.Errorf("%w: %q is already in the itinerary", domain.ErrDuplicateActivity, a.Name)
	}
	return ScheduleUnchecked(t, a, d, timeSlot, newID)
}

// ScheduleUnchecked is Schedule without the duplicate check. It exists for
// the sample itinerary, which is built before the user has touched the trip.
func ScheduleUnchecked(t *domain.Trip, a domain.Activity, d domain.Day, timeSlot string, newID IDFunc) (domain.ScheduledActivity, error) {
	if !t.Contains(d) {
		return domain.ScheduledActivity{}, fmt.Errorf("%w: %s is outside the trip (%s to %s)", domain.ErrValidation, d, t.StartDate, t.EndDate)
	}
	slot, err := normalizeTimeSlot(timeSlot)
	if err != nil {
		return domain.ScheduledActivity{}, err
	}

	sa := domain.ScheduledActivity{
		ID:       newID(),
		Activity: a,
		Date:     d,
		TimeSlot: slot,
	}
	t.Activities = append(append([]domain.ScheduledActivity(nil), t.Activities...), sa)
	return sa, nil
}

// Unschedule removes the scheduled activity with the given id.
// A missing id is not an error: a double-clicked remove must be harmless.
// Reports whether anything was removed.
func Unschedule(t *domain.Trip, id uuid.UUID) (domain.ScheduledActivity, bool) {
	for i, a := range t.Activities {
		if a.ID != id {
			continue
		}
		next := make([]domain.ScheduledActivity, 0, len(t.Activities)-1)
		next = append(next, t.Activities[:i]...)
		next = append(next, t.Activities[i+1:]...)
		t.Activities = next
		return a, true
	}
	return domain.ScheduledActivity{}, false
}

// Reorder moves the activity at position from within day d to position to,
// shifting the activities in between. The set of activities on d and on
// every other day is unchanged.
// Returns domain.ErrIndexOutOfRange if either index does not address an
// activity of d.
func Reorder(t *domain.Trip, d domain.Day, from, to int) error {
	// positions[i] is the index in t.Activities of the day's i-th activity.
	var positions []int
	for i, a := range t.Activities {
		if a.Date == d {
			positions = append(positions, i)
		}
	}
	n := len(positions)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: reorder %d -> %d on %s with %d activities", domain.ErrIndexOutOfRange, from, to, d, n)
	}
	if from == to {
		return nil
	}

	day := make([]domain.ScheduledActivity, n)
	for i, p := range positions {
		day[i] = t.Activities[p]
	}
	moved := day[from]
	day = append(day[:from], day[from+1:]...)
	day = append(day[:to], append([]domain.ScheduledActivity{moved}, day[to:]...)...)

	next := append([]domain.ScheduledActivity(nil), t.Activities...)
	for i, p := range positions {
		next[p] = day[i]
	}
	t.Activities = next
	return nil
}

// Move reassigns the activity with the given id from day from to day to and
// places it last on to, the way a drag between two day columns ends.
// Returns domain.ErrNotFound if no activity with that id is on from (the
// caller's view is stale), and domain.ErrValidation if to is outside the trip.
func Move(t *domain.Trip, id uuid.UUID, from, to domain.Day) (domain.ScheduledActivity, error) {
	idx := -1
	for i, a := range t.Activities {
		if a.ID == id && a.Date == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ScheduledActivity{}, fmt.Errorf("%w: activity %s on %s", domain.ErrNotFound, id, from)
	}
	if !t.Contains(to) {
		return domain.ScheduledActivity{}, fmt.Errorf("%w: %s is outside the trip (%s to %s)", domain.ErrValidation, to, t.StartDate, t.EndDate)
	}

	moved := t.Activities[idx]
	moved.Date = to

	next := make([]domain.ScheduledActivity, 0, len(t.Activities))
	next = append(next, t.Activities[:idx]...)
	next = append(next, t.Activities[idx+1:]...)
	next = append(next, moved)
	t.Activities = next
	return moved, nil
}

// normalizeTimeSlot validates an "HH:MM" slot, defaulting empty input.
func normalizeTimeSlot(slot string) (string, error) {
	if slot == "" {
		return DefaultTimeSlot, nil
	}
	ts, err := time.Parse("15:04", slot)
	if err != nil {
		return "", fmt.Errorf("%w: invalid time slot %q, want HH:MM", domain.ErrValidation, slot)
	}
	return ts.Format("15:04"), nil
}
