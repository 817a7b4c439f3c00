package domain

import "time"

// ItemFailure attributes one failed item of a batch to the entity it concerns.
type ItemFailure struct {
	EntityRef string `json:"entityRef"`
	Reason    string `json:"reason"`
	Err       error  `json:"-"`
}

// CreatedInvoiceRef summarises an invoice created by a batch.
type CreatedInvoiceRef struct {
	InvoiceID     string `json:"invoiceID"`
	InvoiceNumber string `json:"invoiceNumber"`
	StudentRef    string `json:"studentRef"`
}

// CycleResult is the outcome of generating one billing cycle.
type CycleResult struct {
	Period       BillingPeriod       `json:"period"`
	Eligible     int                 `json:"eligible"`
	Created      []CreatedInvoiceRef `json:"created"`
	Skipped      []string            `json:"skipped"` // students already invoiced for the period
	Failed       []ItemFailure       `json:"failed"`
	NotAttempted int                 `json:"notAttempted"` // left unprocessed by cancellation
	Cancelled    bool                `json:"cancelled"`
}

// SweepResult is the outcome of one overdue sweep.
type SweepResult struct {
	Now              time.Time     `json:"now"`
	Scanned          int           `json:"scanned"`
	Transitioned     []string      `json:"transitioned"` // invoice IDs moved to overdue by this run
	Failed           []ItemFailure `json:"failed"`
	RemindersSent    int           `json:"remindersSent"`
	ReminderFailures int           `json:"reminderFailures"`
	Cancelled        bool          `json:"cancelled"`
}
