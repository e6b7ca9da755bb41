package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// CatalogQuery narrows a catalog browse.
type CatalogQuery struct {
	Query    string
	Category string
	Page     domain.PaginationParams
}

// CatalogPage is one page of browsable activities.
// Categories lists every category offered for the session's preferences,
// before the category filter is applied, so clients can render filter chips.
// Scheduled holds the catalog ids already on the trip.
type CatalogPage struct {
	Activities []domain.Activity
	Categories []string
	Scheduled  []string
	Total      int
	Page       int
	Limit      int
}

// CatalogService exposes the activity catalog filtered by session preferences.
type CatalogService struct {
	repo    repo.SessionRepo
	catalog ActivityCatalog
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(r repo.SessionRepo, c ActivityCatalog) *CatalogService {
	return &CatalogService{repo: r, catalog: c}
}

// Preferences returns the preference catalog.
func (s *CatalogService) Preferences() []domain.Preference {
	return s.catalog.Preferences()
}

// BudgetTiers returns the budget tiers in display order.
func (s *CatalogService) BudgetTiers() []domain.BudgetTier {
	return s.catalog.BudgetTiers()
}

// Browse returns the activities offered for the session's selected
// preferences, or the default selection when none is selected.
func (s *CatalogService) Browse(ctx context.Context, id uuid.UUID, q CatalogQuery) (CatalogPage, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CatalogPage{}, fmt.Errorf("service.CatalogService.Browse: %w", err)
	}

	offered := s.catalog.Defaults()
	if len(sess.SelectedPreferences) > 0 {
		offered = s.catalog.ForPreferences(sess.SelectedPreferences)
	}
	matched := catalog.Filter(offered, q.Query, q.Category)

	start, end := q.Page.Window(len(matched))
	page := CatalogPage{
		Activities: matched[start:end],
		Categories: catalog.Categories(offered),
		Scheduled:  []string{},
		Total:      len(matched),
		Page:       q.Page.Page,
		Limit:      q.Page.Limit,
	}
	if sess.Trip != nil {
		for _, a := range sess.Trip.Activities {
			page.Scheduled = append(page.Scheduled, a.CatalogID())
		}
	}
	return page, nil
}
