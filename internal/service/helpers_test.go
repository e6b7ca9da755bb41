package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockSessionRepo is a hand-written test double for repo.SessionRepo.
// Each method is a function field; set only the ones your test needs.
type mockSessionRepo struct {
	create  func(ctx context.Context, s domain.Session) (domain.Session, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Session, error)
	update  func(ctx context.Context, id uuid.UUID, fn repo.MutateFunc) (domain.Session, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSessionRepo) Create(ctx context.Context, s domain.Session) (domain.Session, error) {
	return m.create(ctx, s)
}
func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	return m.getByID(ctx, id)
}
func (m *mockSessionRepo) Update(ctx context.Context, id uuid.UUID, fn repo.MutateFunc) (domain.Session, error) {
	return m.update(ctx, id, fn)
}
func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockSessionRepo must satisfy repo.SessionRepo.
var _ repo.SessionRepo = (*mockSessionRepo)(nil)

// hookRepo wraps a real store and runs afterGet once GetByID has returned,
// simulating a concurrent writer slipping in between a read and a write.
type hookRepo struct {
	repo.SessionRepo
	afterGet func()
}

func (h *hookRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	s, err := h.SessionRepo.GetByID(ctx, id)
	if h.afterGet != nil {
		h.afterGet()
	}
	return s, err
}

// ---- helpers ---------------------------------------------------------------

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

// sequentialIDs returns an IDFunc producing 00000000-...-000000000001, -02, ...
func sequentialIDs() func() uuid.UUID {
	var n byte
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = n
		return id
	}
}

// fixture bundles the services over one memory store.
type fixture struct {
	repo      repo.SessionRepo
	sessions  *service.SessionService
	itinerary *service.ItineraryService
	budget    *service.BudgetService
	catalog   *service.CatalogService
	export    *service.ExportService
}

func newFixture(t *testing.T, opts ...service.ItineraryOption) fixture {
	t.Helper()
	r := repo.NewMemorySessionRepo()
	c := testCatalog(t)
	opts = append([]service.ItineraryOption{service.WithIDFunc(sequentialIDs())}, opts...)
	return fixture{
		repo:      r,
		sessions:  service.NewSessionService(r, c),
		itinerary: service.NewItineraryService(r, c, opts...),
		budget:    service.NewBudgetService(r),
		catalog:   service.NewCatalogService(r, c),
		export:    service.NewExportService(r),
	}
}

// tripInput is a three-day, two-traveler trip to Paris.
func tripInput() service.TripInput {
	return service.TripInput{
		Name:          "Spring in Paris",
		Destination:   "paris",
		StartDate:     "2025-04-01",
		EndDate:       "2025-04-03",
		TravelerCount: 2,
	}
}

// sessionWithTrip starts a session on the medium tier and creates tripInput.
func (f fixture) sessionWithTrip(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	s, err := f.sessions.Start(ctx)
	require.NoError(t, err)
	_, err = f.sessions.ChooseBudgetTier(ctx, s.ID, "medium")
	require.NoError(t, err)
	_, err = f.sessions.CreateTrip(ctx, s.ID, tripInput())
	require.NoError(t, err)
	return s.ID
}
