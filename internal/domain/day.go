package domain

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage format of a Day.
const DayLayout = "2006-01-02"

// Day is a calendar-date key such as "2024-06-01".
// Days carry no time of day and no zone. Because the layout is fixed-width,
// comparing two Days as strings orders them chronologically.
type Day string

// NewDay returns the calendar date of t in t's own location.
func NewDay(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay parses a "YYYY-MM-DD" string.
// Returns ErrValidation for anything else.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, s)
	}
	return NewDay(t), nil
}

// Time returns midnight UTC of the day. A zero Day yields the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool { return d > other }

// IsZero reports whether d is unset.
func (d Day) IsZero() bool { return d == "" }

func (d Day) String() string { return string(d) }

// secondsPerDay is exact for Days, which are always midnight UTC.
const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole days from start to end.
// The result is negative when end is before start. It counts in Unix seconds
// rather than time.Duration, which saturates after about 292 years.
func DaysBetween(start, end Day) int {
	return int((end.Time().Unix() - start.Time().Unix()) / secondsPerDay)
}
