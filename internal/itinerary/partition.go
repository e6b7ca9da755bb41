// Package itinerary implements the day-by-day scheduling rules for a trip:
// partitioning the date range into days and the add, remove, reorder and
// move operations on the trip's scheduled activities.
//
// Every function here is pure with respect to its inputs: operations that
// change a trip work on a copy of its activity list and only write it back
// when the whole operation has succeeded.
package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Days returns one key per calendar day from start to end, both inclusive,
// in chronological order.
// Returns domain.ErrInvalidRange if start is after end or either day is unset.
func Days(start, end domain.Day) ([]domain.Day, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidRange)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", domain.ErrInvalidRange, start, end)
	}

	n := domain.DaysBetween(start, end) + 1
	days := make([]domain.Day, n)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days, nil
}

// DayCount returns the number of days in the range, never less than 1.
// Unlike Days it does not fail on a malformed range; the budget math relies
// on it as a safe divisor.
func DayCount(start, end domain.Day) int {
	if start.IsZero() || end.IsZero() {
		return 1
	}
	return max(1, domain.DaysBetween(start, end)+1)
}

// TripDays is Days over the trip's own range.
func TripDays(t domain.Trip) ([]domain.Day, error) {
	return Days(t.StartDate, t.EndDate)
}
