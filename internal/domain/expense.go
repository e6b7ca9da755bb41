package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is spend that is not tied to a scheduled activity, such as a taxi
// or a souvenir. The session's expense ledger is append-only.
type Expense struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
