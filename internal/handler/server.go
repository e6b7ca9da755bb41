// Package handler implements the HTTP/JSON API of the trip planner.
// All handlers are methods on Server. Methods are split into domain-specific
// files (session.go, itinerary.go, budget.go, ...) but share the same Server
// struct so they can access its dependencies. Routes wires them into chi.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// SessionServicer defines the session operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or the service layer.
type SessionServicer interface {
	Start(ctx context.Context) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	End(ctx context.Context, id uuid.UUID) error
	Reset(ctx context.Context, id uuid.UUID) (domain.Session, error)
	SetPreferences(ctx context.Context, id uuid.UUID, prefIDs []string) (domain.Session, error)
	TogglePreference(ctx context.Context, id uuid.UUID, prefID string) (domain.Session, error)
	ChooseBudgetTier(ctx context.Context, id uuid.UUID, tierID string) (domain.Session, error)
	CreateTrip(ctx context.Context, id uuid.UUID, in service.TripInput) (domain.Trip, error)
	GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	AddExpense(ctx context.Context, id uuid.UUID, category string, amount decimal.Decimal) (domain.Expense, error)
}

// ItineraryServicer defines the scheduling operations the handlers depend on.
type ItineraryServicer interface {
	Days(ctx context.Context, id uuid.UUID) ([]domain.Day, error)
	ActivitiesForDay(ctx context.Context, id uuid.UUID, d domain.Day) ([]domain.ScheduledActivity, error)
	Schedule(ctx context.Context, id uuid.UUID, catalogID string, d domain.Day, timeSlot string) (domain.ScheduledActivity, error)
	Unschedule(ctx context.Context, id, activityID uuid.UUID) (bool, error)
	Reorder(ctx context.Context, id uuid.UUID, d domain.Day, from, to int) ([]domain.ScheduledActivity, error)
	Move(ctx context.Context, id, activityID uuid.UUID, from, to domain.Day) (domain.ScheduledActivity, error)
	GenerateSample(ctx context.Context, id uuid.UUID) ([]domain.ScheduledActivity, bool, error)
}

// BudgetServicer defines the budget read the handlers depend on.
type BudgetServicer interface {
	Summary(ctx context.Context, id uuid.UUID) (domain.BudgetSummary, error)
}

// CatalogServicer defines the catalog reads the handlers depend on.
type CatalogServicer interface {
	Preferences() []domain.Preference
	BudgetTiers() []domain.BudgetTier
	Browse(ctx context.Context, id uuid.UUID, q service.CatalogQuery) (service.CatalogPage, error)
}

// ExportServicer defines the export operation the handlers depend on.
type ExportServicer interface {
	Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// Services groups the dependencies of a Server. Every field must be set.
type Services struct {
	Sessions  SessionServicer
	Itinerary ItineraryServicer
	Budget    BudgetServicer
	Catalog   CatalogServicer
	Export    ExportServicer
}

// Server implements every API endpoint.
type Server struct {
	sessions  SessionServicer
	itinerary ItineraryServicer
	budget    BudgetServicer
	catalog   CatalogServicer
	export    ExportServicer
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svcs Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		sessions:  svcs.Sessions,
		itinerary: svcs.Itinerary,
		budget:    svcs.Budget,
		catalog:   svcs.Catalog,
		export:    svcs.Export,
		logger:    logger,
	}
}

// Routes returns the API router. Mount it under "/" in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/preferences", s.GetPreferences)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.StartSession)

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.EndSession)
			r.Post("/reset", s.ResetSession)
			r.Put("/preferences", s.SetPreferences)
			r.Post("/preferences/{prefId}/toggle", s.TogglePreference)
			r.Put("/budget-tier", s.ChooseBudgetTier)

			r.Post("/trip", s.CreateTrip)
			r.Get("/trip", s.GetTrip)
			r.Get("/catalog", s.BrowseCatalog)

			r.Get("/days", s.GetDays)
			r.Get("/days/{day}/activities", s.GetActivitiesForDay)
			r.Post("/days/{day}/reorder", s.ReorderDay)

			r.Post("/activities", s.ScheduleActivity)
			r.Delete("/activities/{activityId}", s.UnscheduleActivity)
			r.Post("/activities/{activityId}/move", s.MoveActivity)
			r.Post("/itinerary/sample", s.GenerateSample)

			r.Post("/expenses", s.AddExpense)
			r.Get("/budget", s.GetBudgetSummary)
			r.Get("/export", s.GetExport)
		})
	})

	return r
}
