package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBreakdown aggregates invoices of one status issued inside a report window.
type StatusBreakdown struct {
	Status      InvoiceStatus   `json:"status"`
	Count       int             `json:"count"`
	Invoiced    decimal.Decimal `json:"invoiced"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Credit      decimal.Decimal `json:"credit"`
}

// MethodBreakdown aggregates payments of one method recorded inside a report window.
type MethodBreakdown struct {
	Method PaymentMethod   `json:"method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// FinancialReportData is the raw snapshot read by the store for a report window.
type FinancialReportData struct {
	AsOf     time.Time
	ByStatus []StatusBreakdown
	ByMethod []MethodBreakdown
}

// FinancialReport summarises the ledger over [From, To], consistent as of AsOf.
type FinancialReport struct {
	From             time.Time         `json:"from"`
	To               time.Time         `json:"to"`
	AsOf             time.Time         `json:"asOf"`
	InvoiceCount     int               `json:"invoiceCount"`
	TotalInvoiced    decimal.Decimal   `json:"totalInvoiced"`
	TotalOutstanding decimal.Decimal   `json:"totalOutstanding"`
	TotalCredit      decimal.Decimal   `json:"totalCredit"`
	PaymentCount     int               `json:"paymentCount"`
	TotalCollected   decimal.Decimal   `json:"totalCollected"`
	ByStatus         []StatusBreakdown `json:"byStatus"`
	ByMethod         []MethodBreakdown `json:"byMethod"`
}

// StudentBalance summarises every invoice billed to one student.
type StudentBalance struct {
	StudentRef    string          `json:"studentRef"`
	InvoiceCount  int             `json:"invoiceCount"`
	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Credit        decimal.Decimal `json:"credit"`
}
