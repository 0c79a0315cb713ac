package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an immutable ledger entry in payments.csv. Payments are never
// updated or deleted once recorded.
type Payment struct {
	ID     string
	LoanID string
	Amount decimal.Decimal
	Date   time.Time
}
