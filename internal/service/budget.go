package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/budget"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// BudgetService derives the budget summary of a session on every call.
type BudgetService struct {
	repo repo.SessionRepo
}

// NewBudgetService constructs a BudgetService.
func NewBudgetService(r repo.SessionRepo) *BudgetService {
	return &BudgetService{repo: r}
}

// Summary returns the budget summary for the session's trip and ledger.
// A session without a trip yields a zero-budget summary of its expenses.
func (s *BudgetService) Summary(ctx context.Context, id uuid.UUID) (domain.BudgetSummary, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.Summary: %w", err)
	}
	return budget.Summarize(sess.Trip, sess.Expenses), nil
}
