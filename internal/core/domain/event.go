package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a ledger notification.
type EventType string

const (
	EventReminderDue     EventType = "ReminderDue"
	EventPaymentRecorded EventType = "PaymentRecorded"
)

// Event is handed to the notification collaborator after the triggering mutation has committed.
type Event struct {
	Type          EventType        `json:"type"`
	InvoiceRef    string           `json:"invoiceRef"`
	InvoiceNumber string           `json:"invoiceNumber"`
	StudentRef    string           `json:"studentRef"`
	Amount        *decimal.Decimal `json:"amount,omitempty"` // payment amount for PaymentRecorded
	OccurredAt    time.Time        `json:"occurredAt"`
}
