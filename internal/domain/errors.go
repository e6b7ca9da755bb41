package domain

import "errors"

// ErrNotFound is returned when the requested session or scheduled activity
// does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing trip name, day outside the trip, negative amount).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when a trip's start date is after its end date.
// It must be caught before a trip is created; nothing downstream recovers from it.
var ErrInvalidRange = errors.New("invalid date range")

// ErrDuplicateActivity is returned when a catalog activity is scheduled a
// second time on the same trip. The itinerary is left unchanged.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateActivity = errors.New("activity already scheduled")

// ErrIndexOutOfRange is returned by reorder when an index does not address an
// activity of the requested day. Clients only ever submit indices from a list
// they rendered, so this indicates a stale or buggy client.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrNoTrip is returned by itinerary operations when the session has no trip yet.
// "No trip selected" is a normal state, not a missing resource.
var ErrNoTrip = errors.New("no trip selected")
