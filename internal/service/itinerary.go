package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// errStale aborts a sample write whose trip changed while it was waiting.
var errStale = errors.New("trip changed")

// ItineraryService schedules catalog activities onto the days of a session's trip.
type ItineraryService struct {
	repo        repo.SessionRepo
	catalog     ActivityCatalog
	newID       itinerary.IDFunc
	sampleDelay time.Duration
	logger      *slog.Logger
}

// ItineraryOption configures an ItineraryService.
type ItineraryOption func(*ItineraryService)

// WithIDFunc replaces uuid.New for scheduled activity ids.
func WithIDFunc(f itinerary.IDFunc) ItineraryOption {
	return func(s *ItineraryService) { s.newID = f }
}

// WithSampleDelay makes GenerateSample wait d before writing.
func WithSampleDelay(d time.Duration) ItineraryOption {
	return func(s *ItineraryService) { s.sampleDelay = d }
}

// WithLogger sets the logger used for skipped sample writes.
func WithLogger(l *slog.Logger) ItineraryOption {
	return func(s *ItineraryService) { s.logger = l }
}

// NewItineraryService constructs an ItineraryService.
func NewItineraryService(r repo.SessionRepo, c ActivityCatalog, opts ...ItineraryOption) *ItineraryService {
	s := &ItineraryService{
		repo:    r,
		catalog: c,
		newID:   uuid.New,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Days returns the calendar days of the session's trip in order.
func (s *ItineraryService) Days(ctx context.Context, id uuid.UUID) ([]domain.Day, error) {
	trip, err := s.trip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	days, err := itinerary.TripDays(trip)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	return days, nil
}

// ActivitiesForDay returns the activities scheduled on day d in display order.
// A day outside the trip simply has no activities.
func (s *ItineraryService) ActivitiesForDay(ctx context.Context, id uuid.UUID, d domain.Day) ([]domain.ScheduledActivity, error) {
	trip, err := s.trip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ActivitiesForDay: %w", err)
	}
	return itinerary.ActivitiesForDay(trip, d), nil
}

// Schedule adds the catalog activity to day d at timeSlot.
func (s *ItineraryService) Schedule(ctx context.Context, id uuid.UUID, catalogID string, d domain.Day, timeSlot string) (domain.ScheduledActivity, error) {
	a, err := s.catalog.ByID(catalogID)
	if err != nil {
		return domain.ScheduledActivity{}, fmt.Errorf("service.ItineraryService.Schedule: %w", err)
	}

	var scheduled domain.ScheduledActivity
	_, err = s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Trip == nil {
			return domain.ErrNoTrip
		}
		var err error
		scheduled, err = itinerary.Schedule(sess.Trip, a, d, timeSlot, s.newID)
		return err
	})
	if err != nil {
		return domain.ScheduledActivity{}, fmt.Errorf("service.ItineraryService.Schedule: %w", err)
	}
	return scheduled, nil
}

// Unschedule removes a scheduled activity. Removing an id that is not on the
// trip is not an error; the returned bool reports whether anything was removed.
func (s *ItineraryService) Unschedule(ctx context.Context, id, activityID uuid.UUID) (bool, error) {
	var removed bool
	_, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Trip == nil {
			return domain.ErrNoTrip
		}
		_, removed = itinerary.Unschedule(sess.Trip, activityID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("service.ItineraryService.Unschedule: %w", err)
	}
	return removed, nil
}

// Reorder moves the activity at position from to position to within day d
// and returns the day's new order.
func (s *ItineraryService) Reorder(ctx context.Context, id uuid.UUID, d domain.Day, from, to int) ([]domain.ScheduledActivity, error) {
	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Trip == nil {
			return domain.ErrNoTrip
		}
		return itinerary.Reorder(sess.Trip, d, from, to)
	})
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Reorder: %w", err)
	}
	return itinerary.ActivitiesForDay(*sess.Trip, d), nil
}

// Move reassigns a scheduled activity from one day to the end of another.
func (s *ItineraryService) Move(ctx context.Context, id, activityID uuid.UUID, from, to domain.Day) (domain.ScheduledActivity, error) {
	var moved domain.ScheduledActivity
	_, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Trip == nil {
			return domain.ErrNoTrip
		}
		var err error
		moved, err = itinerary.Move(sess.Trip, activityID, from, to)
		return err
	})
	if err != nil {
		return domain.ScheduledActivity{}, fmt.Errorf("service.ItineraryService.Move: %w", err)
	}
	return moved, nil
}

// GenerateSample fills an empty trip with the catalog's sample plan.
//
// After the configured delay it re-reads the session and writes only if the
// same trip is still there and still empty. A session deleted or a trip
// replaced or edited in the meantime makes the call a no-op, reported by the
// returned bool. The delay honours ctx.
func (s *ItineraryService) GenerateSample(ctx context.Context, id uuid.UUID) ([]domain.ScheduledActivity, bool, error) {
	trip, err := s.trip(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("service.ItineraryService.GenerateSample: %w", err)
	}
	if len(trip.Activities) > 0 {
		return nil, false, nil
	}

	if s.sampleDelay > 0 {
		timer := time.NewTimer(s.sampleDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, false, fmt.Errorf("service.ItineraryService.GenerateSample: %w", ctx.Err())
		case <-timer.C:
		}
	}

	var placed []domain.ScheduledActivity
	_, err = s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Trip == nil || sess.Trip.ID != trip.ID || len(sess.Trip.Activities) > 0 {
			return errStale
		}
		var err error
		placed, err = s.placeSample(sess.Trip)
		return err
	})
	switch {
	case errors.Is(err, errStale), errors.Is(err, domain.ErrNotFound):
		s.logger.InfoContext(ctx, "sample itinerary skipped", "session_id", id, "reason", err.Error())
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("service.ItineraryService.GenerateSample: %w", err)
	}
	return placed, true, nil
}

// placeSample schedules each sample entry on the trip day at its offset,
// clamped to the last day so short trips keep every entry.
func (s *ItineraryService) placeSample(t *domain.Trip) ([]domain.ScheduledActivity, error) {
	days, err := itinerary.TripDays(*t)
	if err != nil {
		return nil, err
	}
	placed := []domain.ScheduledActivity{}
	for _, e := range s.catalog.SamplePlan() {
		a, err := s.catalog.ByID(e.ActivityID)
		if err != nil {
			return nil, err
		}
		d := days[min(max(e.DayOffset, 0), len(days)-1)]
		sa, err := itinerary.ScheduleUnchecked(t, a, d, e.TimeSlot, s.newID)
		if err != nil {
			return nil, err
		}
		placed = append(placed, sa)
	}
	return placed, nil
}

// trip loads the session and returns its trip, or domain.ErrNoTrip.
func (s *ItineraryService) trip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if sess.Trip == nil {
		return domain.Trip{}, domain.ErrNoTrip
	}
	return *sess.Trip, nil
}
