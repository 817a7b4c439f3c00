package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the derived payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// IsValid reports whether s is one of the known statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceUnpaid, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// SweepActor is recorded as UpdatedBy when the overdue sweep transitions an invoice.
const SweepActor = "system:overdue-sweep"

// Invoice is a billing obligation owed by a student. It is the aggregate root for its payments.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`     // Primary Key (UUID), immutable
	InvoiceNumber string          `json:"invoiceNumber"` // INV-YYYY-MM-NNN, unique, immutable
	StudentRef    string          `json:"studentRef"`    // Opaque key into the student directory
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`        // Positive, immutable after creation
	PaidAmount    decimal.Decimal `json:"paidAmount"`    // Sum of payment amounts, recomputed with Status
	BillingPeriod *BillingPeriod  `json:"billingPeriod"` // Nil for ad-hoc invoices
	DueDate       time.Time       `json:"dueDate"`       // Calendar date (UTC midnight)
	Status        InvoiceStatus   `json:"status"`        // Derived, never set by clients
	RemindedAt    *time.Time      `json:"remindedAt"`    // Set by the sweep that sent the ReminderDue event
	IssuedAt      time.Time       `json:"issuedAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CreatedBy     string          `json:"createdBy"`
	UpdatedBy     string          `json:"updatedBy"`
	Version       int64           `json:"version"`
}

// DeriveInvoiceStatus is the single definition of invoice status:
// paid when paid >= amount, otherwise overdue once the due date has passed, otherwise unpaid.
func DeriveInvoiceStatus(amount, paid decimal.Decimal, dueDate, now time.Time) InvoiceStatus {
	if paid.GreaterThanOrEqual(amount) {
		return InvoicePaid
	}
	if IsPastDue(dueDate, now) {
		return InvoiceOverdue
	}
	return InvoiceUnpaid
}

// IsPastDue reports whether now falls on a calendar day (UTC) after dueDate.
func IsPastDue(dueDate, now time.Time) bool {
	return !now.UTC().Before(DateOnly(dueDate).AddDate(0, 0, 1))
}

// DateOnly truncates t to midnight UTC of its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Recompute refreshes PaidAmount and Status from the given paid sum.
// Settling the invoice clears RemindedAt, so a later reversal into overdue is reminded again.
// It reports whether anything changed.
func (i *Invoice) Recompute(paid decimal.Decimal, now time.Time) bool {
	status := DeriveInvoiceStatus(i.Amount, paid, i.DueDate, now)
	changed := status != i.Status || !paid.Equal(i.PaidAmount)
	i.PaidAmount = paid
	i.Status = status
	if status == InvoicePaid {
		i.RemindedAt = nil
	}
	return changed
}

// NeedsReminder reports whether the invoice is past due, not covered, and nobody has reminded
// the student yet. It does not matter how the invoice reached overdue.
func (i *Invoice) NeedsReminder(now time.Time) bool {
	return i.Status != InvoicePaid &&
		i.RemindedAt == nil &&
		i.PaidAmount.LessThan(i.Amount) &&
		IsPastDue(i.DueDate, now)
}

// EffectiveStatus derives the status as of now without mutating the invoice.
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	return DeriveInvoiceStatus(i.Amount, i.PaidAmount, i.DueDate, now)
}

// BalanceDue is what remains owed; never negative.
func (i *Invoice) BalanceDue() decimal.Decimal {
	rest := i.Amount.Sub(i.PaidAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// CreditAmount is the overpayment held against the invoice; never negative.
func (i *Invoice) CreditAmount() decimal.Decimal {
	over := i.PaidAmount.Sub(i.Amount)
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}

// NumberingPeriod is the period the invoice number is allocated in: the billing period,
// or the issue month for ad-hoc invoices.
func (i *Invoice) NumberingPeriod() BillingPeriod {
	if i.BillingPeriod != nil {
		return *i.BillingPeriod
	}
	return PeriodOf(i.IssuedAt)
}

// FormatInvoiceNumber renders the externally visible invoice number for a period sequence.
func FormatInvoiceNumber(period BillingPeriod, seq int64) string {
	return fmt.Sprintf("INV-%04d-%02d-%03d", period.Year, int(period.Month), seq)
}
