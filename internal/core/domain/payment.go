package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was settled outside the ledger.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentOther        PaymentMethod = "other"
)

// PaymentMethods lists every accepted method.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentBankTransfer, PaymentCreditCard, PaymentOther}

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Payment is a settlement applied against exactly one invoice. Immutable once recorded.
type Payment struct {
	PaymentID       string          `json:"paymentID"`       // Primary Key (UUID)
	InvoiceID       string          `json:"invoiceID"`       // FK -> invoices.invoice_id, fixed for life
	Amount          decimal.Decimal `json:"amount"`          // Positive
	Method          PaymentMethod   `json:"method"`
	ReferenceNumber string          `json:"referenceNumber"` // Optional, not unique
	RecordedAt      time.Time       `json:"recordedAt"`
	RecordedBy      string          `json:"recordedBy"`
}

// SumPayments adds up payment amounts.
func SumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
