package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known activity categories. The set is open: catalog entries and
// expenses may carry any label, and an empty label is reported as CategoryOther.
const (
	CategoryAttraction = "attraction"
	CategoryMuseum     = "museum"
	CategoryTour       = "tour"
	CategoryDining     = "dining"
	CategoryOutdoor    = "outdoor"
	CategoryNightlife  = "nightlife"
	CategoryShopping   = "shopping"
	CategoryOther      = "other"
)

// Activity is an immutable catalog template supplied by the activity catalog.
// It is never mutated; scheduling copies it into a ScheduledActivity.
type Activity struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Image         string          `json:"image"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	DurationHours float64         `json:"duration_hours"`
	Rating        float64         `json:"rating"`
}

// ScheduledActivity is a copy of a catalog Activity bound to one day of a trip.
// ID is fresh per scheduling because the same catalog entry may appear more than once.
// TimeSlot is a wall-clock "HH:MM" string and is advisory only.
type ScheduledActivity struct {
	ID       uuid.UUID `json:"id"`
	Activity Activity  `json:"activity"`
	Date     Day       `json:"date"`
	TimeSlot string    `json:"time_slot"`
}

// CatalogID returns the identity of the catalog entry this activity was copied from.
func (s ScheduledActivity) CatalogID() string {
	return s.Activity.ID
}
