package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ExportService assembles a flat export of a session's itinerary.
type ExportService struct {
	repo repo.SessionRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(r repo.SessionRepo) *ExportService {
	return &ExportService{repo: r}
}

// Export returns one ExportRow per scheduled activity, ordered by day and
// then by position within the day. An empty itinerary yields no rows.
func (s *ExportService) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if sess.Trip == nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", domain.ErrNoTrip)
	}
	return Rows(*sess.Trip)
}

// Rows flattens a trip into export rows ordered by day, then by position
// within the day.
func Rows(t domain.Trip) ([]domain.ExportRow, error) {
	days, err := itinerary.TripDays(t)
	if err != nil {
		return nil, fmt.Errorf("service.Rows: %w", err)
	}

	rows := []domain.ExportRow{}
	for i, d := range days {
		for _, a := range itinerary.ActivitiesForDay(t, d) {
			rows = append(rows, domain.ExportRow{
				TripID:        t.ID.String(),
				TripName:      t.Name,
				Destination:   t.Destination,
				DayNumber:     i + 1,
				Day:           d,
				TimeSlot:      a.TimeSlot,
				ActivityID:    a.ID.String(),
				ActivityName:  a.Activity.Name,
				Category:      a.Activity.Category,
				Location:      a.Activity.Location,
				Price:         a.Activity.Price,
				DurationHours: a.Activity.DurationHours,
			})
		}
	}
	return rows, nil
}
