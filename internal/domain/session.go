package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Preference is a travel interest the user can select, e.g. "food".
type Preference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// BudgetTier is a coarse preset mapped to a fixed numeric budget.
type BudgetTier struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Session is the state of one planning session.
// It holds at most one Trip; a nil Trip means no trip has been created yet.
// Every mutation goes through repo.SessionRepo.Update so that a failed
// operation never leaves a half-applied change behind.
type Session struct {
	ID                  uuid.UUID       `json:"id"`
	Preferences         []Preference    `json:"preferences"`
	SelectedPreferences []string        `json:"selected_preferences"`
	BudgetTier          string          `json:"budget_tier,omitempty"`
	Budget              decimal.Decimal `json:"budget"`
	Trip                *Trip           `json:"trip,omitempty"`
	Expenses            []Expense       `json:"expenses"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	c := s
	c.Preferences = append([]Preference(nil), s.Preferences...)
	c.SelectedPreferences = append([]string(nil), s.SelectedPreferences...)
	c.Expenses = append([]Expense(nil), s.Expenses...)
	if s.Trip != nil {
		t := s.Trip.Clone()
		c.Trip = &t
	}
	return c
}

// HasSelected reports whether the preference with the given id is selected.
func (s Session) HasSelected(prefID string) bool {
	for _, id := range s.SelectedPreferences {
		if id == prefID {
			return true
		}
	}
	return false
}
