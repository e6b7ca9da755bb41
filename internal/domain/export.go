package domain

import "github.com/shopspring/decimal"

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per scheduled activity, with trip
// fields repeated on every row. Rows are ordered by day, then by position
// within the day.
type ExportRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID      string
	TripName    string
	Destination string

	// DayNumber is 1 for the trip's first day.
	DayNumber int
	Day       Day
	TimeSlot  string

	ActivityID    string
	ActivityName  string
	Category      string
	Location      string
	Price         decimal.Decimal
	DurationHours float64
}
