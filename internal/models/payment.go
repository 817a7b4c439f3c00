package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table. Rows are never updated.
type Payment struct {
	PaymentID       string          `db:"payment_id"`
	InvoiceID       string          `db:"invoice_id"`
	Amount          decimal.Decimal `db:"amount"`
	Method          string          `db:"method"`
	ReferenceNumber *string         `db:"reference_number"` // Nullable
	RecordedAt      time.Time       `db:"recorded_at"`
	RecordedBy      string          `db:"recorded_by"`
}
