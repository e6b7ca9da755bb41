// Package domain contains the core data types for the trip planner.
// This package has no dependencies on other internal packages and is
// imported by every other internal package (itinerary, budget, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTripDays is the longest trip, in days, that can be created.
const MaxTripDays = 366

// Trip is the single travel plan being edited in a session.
// StartDate and EndDate are inclusive and StartDate is never after EndDate.
// Activities is ordered: the relative order of activities sharing a Date is
// the order shown for that day. Order across days carries no meaning.
type Trip struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Destination   string              `json:"destination"`
	StartDate     Day                 `json:"start_date"`
	EndDate       Day                 `json:"end_date"`
	Budget        decimal.Decimal     `json:"budget"`
	TravelerCount int                 `json:"traveler_count"`
	Activities    []ScheduledActivity `json:"activities"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Contains reports whether d falls within the trip's date range.
func (t Trip) Contains(d Day) bool {
	return !d.IsZero() && !d.Before(t.StartDate) && !d.After(t.EndDate)
}

// Clone returns a copy of t whose Activities slice can be modified without
// affecting t.
func (t Trip) Clone() Trip {
	c := t
	c.Activities = append([]ScheduledActivity(nil), t.Activities...)
	return c
}
