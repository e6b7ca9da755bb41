// Package budget derives spend analytics from a trip and its expense ledger.
// Nothing here is cached: activities and expenses change often, so every
// summary is recomputed from the state it is given.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// OtherCategory is the bucket for spend recorded without a category label.
// It is the same label catalog entries without a category carry, so both
// kinds of spend land in one bucket.
const OtherCategory = domain.CategoryOther

// moneyPlaces is the rounding applied to per-day and per-person allocations.
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Summarize computes the budget summary for trip and expenses.
// It never fails: a nil trip, a zero budget or an empty itinerary all degrade
// to zero values.
func Summarize(trip *domain.Trip, expenses []domain.Expense) domain.BudgetSummary {
	s := domain.BudgetSummary{
		TotalSpent:      decimal.Zero,
		Budget:          decimal.Zero,
		PerCategory:     map[string]decimal.Decimal{},
		PerDay:          []domain.DaySpend{},
		DayCount:        1,
		TravelerCount:   1,
		BudgetPerDay:    decimal.Zero,
		BudgetPerPerson: decimal.Zero,
		OverBudgetBy:    decimal.Zero,
		Remaining:       decimal.Zero,
	}

	var activities []domain.ScheduledActivity
	if trip != nil {
		activities = trip.Activities
		s.Budget = trip.Budget
		s.DayCount = itinerary.DayCount(trip.StartDate, trip.EndDate)
		s.TravelerCount = max(1, trip.TravelerCount)
	}

	perDay := make(map[domain.Day]decimal.Decimal)
	for _, a := range activities {
		s.TotalSpent = s.TotalSpent.Add(a.Activity.Price)
		addCategory(s.PerCategory, a.Activity.Category, a.Activity.Price)
		if !a.Date.IsZero() {
			perDay[a.Date] = perDay[a.Date].Add(a.Activity.Price)
		}
	}
	for _, e := range expenses {
		s.TotalSpent = s.TotalSpent.Add(e.Amount)
		addCategory(s.PerCategory, e.Category, e.Amount)
	}

	for d, amt := range perDay {
		s.PerDay = append(s.PerDay, domain.DaySpend{Day: d, Amount: amt})
	}
	sort.Slice(s.PerDay, func(i, j int) bool {
		return s.PerDay[i].Day.Before(s.PerDay[j].Day)
	})

	s.BudgetPerDay = s.Budget.DivRound(decimal.NewFromInt(int64(s.DayCount)), moneyPlaces)
	s.BudgetPerPerson = s.Budget.DivRound(decimal.NewFromInt(int64(s.TravelerCount)), moneyPlaces)

	s.PercentSpentRaw = percentSpent(s.TotalSpent, s.Budget)
	s.PercentSpent = min(100, s.PercentSpentRaw)

	if s.TotalSpent.LessThanOrEqual(s.Budget) {
		s.Status = domain.StatusOnBudget
		s.Remaining = s.Budget.Sub(s.TotalSpent)
	} else {
		s.Status = domain.StatusOverBudget
		s.OverBudgetBy = s.TotalSpent.Sub(s.Budget)
	}

	return s
}

// addCategory merges amount into the bucket for label.
func addCategory(m map[string]decimal.Decimal, label string, amount decimal.Decimal) {
	if label == "" {
		label = OtherCategory
	}
	m[label] = m[label].Add(amount)
}

// percentSpent returns round(100 * spent / budget).
// With a zero budget any spend counts as 100% and no spend as 0%.
func percentSpent(spent, total decimal.Decimal) int {
	if total.IsZero() {
		if spent.IsPositive() {
			return 100
		}
		return 0
	}
	pct := spent.Mul(hundred).Div(total).Round(0)
	if pct.GreaterThan(decimal.NewFromInt(1 << 30)) {
		return 1 << 30
	}
	return int(pct.IntPart())
}
