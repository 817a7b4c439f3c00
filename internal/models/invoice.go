package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the persisted status column.
type InvoiceStatus string

const (
	Unpaid  InvoiceStatus = "unpaid"
	Paid    InvoiceStatus = "paid"
	Overdue InvoiceStatus = "overdue"
)

// Invoice is a row of the invoices table.
// PeriodYear and PeriodMonth are both NULL for ad-hoc invoices; RemindedAt is NULL until a reminder goes out.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	StudentRef    string          `db:"student_ref"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	PeriodYear    *int16          `db:"period_year"`
	PeriodMonth   *int16          `db:"period_month"`
	DueDate       time.Time       `db:"due_date"`
	Status        InvoiceStatus   `db:"status"`
	RemindedAt    *time.Time      `db:"reminded_at"`
	IssuedAt      time.Time       `db:"issued_at"`
	AuditFields
}
