package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BudgetStatus reports whether spend is within the trip budget.
type BudgetStatus string

const (
	StatusOnBudget   BudgetStatus = "on-budget"
	StatusOverBudget BudgetStatus = "over-budget"
)

// DaySpend is the summed activity price of one itinerary day.
type DaySpend struct {
	Day    Day             `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// CategorySpend is the summed spend of one category label.
type CategorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// BudgetSummary holds the analytics derived from a trip and its expense ledger.
// It is computed on every read and never stored.
//
// PercentSpent is clamped to 100 for progress display; PercentSpentRaw is not.
// OverBudgetBy is non-zero only when Status is StatusOverBudget, and
// Remaining only when Status is StatusOnBudget.
type BudgetSummary struct {
	Budget          decimal.Decimal            `json:"budget"`
	TotalSpent      decimal.Decimal            `json:"total_spent"`
	PerCategory     map[string]decimal.Decimal `json:"per_category"`
	PerDay          []DaySpend                 `json:"per_day"`
	DayCount        int                        `json:"day_count"`
	TravelerCount   int                        `json:"traveler_count"`
	BudgetPerDay    decimal.Decimal            `json:"budget_per_day"`
	BudgetPerPerson decimal.Decimal            `json:"budget_per_person"`
	PercentSpent    int                        `json:"percent_spent"`
	PercentSpentRaw int                        `json:"percent_spent_raw"`
	Status          BudgetStatus               `json:"status"`
	OverBudgetBy    decimal.Decimal            `json:"over_budget_by"`
	Remaining       decimal.Decimal            `json:"remaining"`
}

// Categories returns PerCategory as a slice ordered by amount, largest first.
// Ties are broken by category name so the order is stable.
func (b BudgetSummary) Categories() []CategorySpend {
	out := make([]CategorySpend, 0, len(b.PerCategory))
	for c, amt := range b.PerCategory {
		out = append(out, CategorySpend{Category: c, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
