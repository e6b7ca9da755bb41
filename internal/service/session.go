// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and run every mutation
// through repo.SessionRepo.Update so that it either commits whole or not at all.
// No SQL lives here. Services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ActivityCatalog is the read-only catalog the services consult.
// *catalog.Catalog satisfies it.
type ActivityCatalog interface {
	Preferences() []domain.Preference
	HasPreference(id string) bool
	BudgetTiers() []domain.BudgetTier
	Tier(id string) (domain.BudgetTier, bool)
	DestinationLabel(idOrName string) string
	ByID(id string) (domain.Activity, error)
	ForPreferences(prefIDs []string) []domain.Activity
	Defaults() []domain.Activity
	SamplePlan() []catalog.SampleEntry
}

var _ ActivityCatalog = (*catalog.Catalog)(nil)

// TripInput carries the fields needed to create a trip.
// A nil Budget means "use the session's budget tier".
type TripInput struct {
	Name          string
	Destination   string
	StartDate     domain.Day
	EndDate       domain.Day
	Budget        *decimal.Decimal
	TravelerCount int
}

// SessionService implements the session lifecycle: preferences, budget tier,
// trip creation and the expense ledger.
type SessionService struct {
	repo    repo.SessionRepo
	catalog ActivityCatalog
}

// NewSessionService constructs a SessionService.
func NewSessionService(r repo.SessionRepo, c ActivityCatalog) *SessionService {
	return &SessionService{repo: r, catalog: c}
}

// Start creates a fresh session: the preference catalog, nothing selected,
// no trip, an empty ledger and a zero budget.
func (s *SessionService) Start(ctx context.Context) (domain.Session, error) {
	sess := s.initial(uuid.New())
	created, err := s.repo.Create(ctx, sess)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Start: %w", err)
	}
	return created, nil
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	return sess, nil
}

// End discards a session.
func (s *SessionService) End(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SessionService.End: %w", err)
	}
	return nil
}

// Reset returns the session to its initial state, keeping its id.
// Any trip, itinerary, selection and expense is dropped.
func (s *SessionService) Reset(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		*sess = s.initial(sess.ID)
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Reset: %w", err)
	}
	return sess, nil
}

// SetPreferences replaces the selected preferences. Duplicates are dropped
// and the first occurrence wins. Unknown ids are rejected.
func (s *SessionService) SetPreferences(ctx context.Context, id uuid.UUID, prefIDs []string) (domain.Session, error) {
	selected := []string{}
	for _, p := range prefIDs {
		if !s.catalog.HasPreference(p) {
			return domain.Session{}, fmt.Errorf("service.SessionService.SetPreferences: %w: unknown preference %q", domain.ErrValidation, p)
		}
		if !slices.Contains(selected, p) {
			selected = append(selected, p)
		}
	}

	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		sess.SelectedPreferences = selected
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.SetPreferences: %w", err)
	}
	return sess, nil
}

// TogglePreference selects prefID if it is not selected, and deselects it otherwise.
func (s *SessionService) TogglePreference(ctx context.Context, id uuid.UUID, prefID string) (domain.Session, error) {
	if !s.catalog.HasPreference(prefID) {
		return domain.Session{}, fmt.Errorf("service.SessionService.TogglePreference: %w: unknown preference %q", domain.ErrValidation, prefID)
	}

	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if i := slices.Index(sess.SelectedPreferences, prefID); i >= 0 {
			sess.SelectedPreferences = slices.Delete(sess.SelectedPreferences, i, i+1)
		} else {
			sess.SelectedPreferences = append(sess.SelectedPreferences, prefID)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.TogglePreference: %w", err)
	}
	return sess, nil
}

// ChooseBudgetTier sets the session's tier and the budget derived from it.
// An existing trip keeps the budget it was created with.
func (s *SessionService) ChooseBudgetTier(ctx context.Context, id uuid.UUID, tierID string) (domain.Session, error) {
	tier, ok := s.catalog.Tier(tierID)
	if !ok {
		return domain.Session{}, fmt.Errorf("service.SessionService.ChooseBudgetTier: %w: unknown budget tier %q", domain.ErrValidation, tierID)
	}

	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		sess.BudgetTier = tier.ID
		sess.Budget = tier.Amount
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.ChooseBudgetTier: %w", err)
	}
	return sess, nil
}

// CreateTrip validates in and installs a new, empty trip on the session,
// replacing any previous one. A destination preset id is resolved to its label.
func (s *SessionService) CreateTrip(ctx context.Context, id uuid.UUID, in TripInput) (domain.Trip, error) {
	if err := validateTrip(in); err != nil {
		return domain.Trip{}, fmt.Errorf("service.SessionService.CreateTrip: %w", err)
	}

	var trip domain.Trip
	_, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		budget := sess.Budget
		if in.Budget != nil {
			budget = *in.Budget
		}
		trip = domain.Trip{
			ID:            uuid.New(),
			Name:          strings.TrimSpace(in.Name),
			Destination:   s.catalog.DestinationLabel(strings.TrimSpace(in.Destination)),
			StartDate:     in.StartDate,
			EndDate:       in.EndDate,
			Budget:        budget,
			TravelerCount: in.TravelerCount,
			Activities:    []domain.ScheduledActivity{},
			CreatedAt:     time.Now().UTC(),
		}
		sess.Trip = &trip
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.SessionService.CreateTrip: %w", err)
	}
	return trip, nil
}

// GetTrip returns the session's trip, or domain.ErrNoTrip.
func (s *SessionService) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.SessionService.GetTrip: %w", err)
	}
	if sess.Trip == nil {
		return domain.Trip{}, fmt.Errorf("service.SessionService.GetTrip: %w", domain.ErrNoTrip)
	}
	return *sess.Trip, nil
}

// AddExpense appends an ad-hoc expense to the ledger. A trip is not required.
func (s *SessionService) AddExpense(ctx context.Context, id uuid.UUID, category string, amount decimal.Decimal) (domain.Expense, error) {
	if amount.IsNegative() {
		return domain.Expense{}, fmt.Errorf("service.SessionService.AddExpense: %w: amount must not be negative", domain.ErrValidation)
	}

	e := domain.Expense{
		Category:  strings.TrimSpace(category),
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		sess.Expenses = append(sess.Expenses, e)
		return nil
	})
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.SessionService.AddExpense: %w", err)
	}
	return e, nil
}

func (s *SessionService) initial(id uuid.UUID) domain.Session {
	return domain.Session{
		ID:                  id,
		Preferences:         s.catalog.Preferences(),
		SelectedPreferences: []string{},
		Budget:              decimal.Zero,
		Expenses:            []domain.Expense{},
	}
}

func validateTrip(in TripInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if in.StartDate.After(in.EndDate) {
		return fmt.Errorf("%w: start date %s is after end date %s", domain.ErrInvalidRange, in.StartDate, in.EndDate)
	}
	if n := domain.DaysBetween(in.StartDate, in.EndDate) + 1; n > domain.MaxTripDays {
		return fmt.Errorf("%w: trip spans %d days, at most %d are allowed", domain.ErrValidation, n, domain.MaxTripDays)
	}
	if in.TravelerCount < 1 {
		return fmt.Errorf("%w: traveler count must be at least 1", domain.ErrValidation)
	}
	if in.Budget != nil && in.Budget.IsNegative() {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	return nil
}
