package dto

import (
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatusBreakdownResponse represents the invoices of one status in a financial report
type StatusBreakdownResponse struct {
	Status      domain.InvoiceStatus `json:"status"`
	Count       int                  `json:"count"`
	Invoiced    decimal.Decimal      `json:"invoiced"`
	Paid        decimal.Decimal      `json:"paid"`
	Outstanding decimal.Decimal      `json:"outstanding"`
	Credit      decimal.Decimal      `json:"credit"`
}

// MethodBreakdownResponse represents the payments of one method in a financial report
type MethodBreakdownResponse struct {
	Method domain.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
	Amount decimal.Decimal      `json:"amount"`
}

// FinancialReportResponse represents the financial report response
type FinancialReportResponse struct {
	FromDate string                    `json:"fromDate"`
	ToDate   string                    `json:"toDate"`
	AsOf     string                    `json:"asOf"` // RFC3339 instant the figures are consistent at
	ByStatus []StatusBreakdownResponse `json:"byStatus"`
	ByMethod []MethodBreakdownResponse `json:"byMethod"`
	Summary  struct {
		InvoiceCount     int             `json:"invoiceCount"`
		TotalInvoiced    decimal.Decimal `json:"totalInvoiced"`
		TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
		TotalCredit      decimal.Decimal `json:"totalCredit"`
		PaymentCount     int             `json:"paymentCount"`
		TotalCollected   decimal.Decimal `json:"totalCollected"`
	} `json:"summary"`
}

// ToFinancialReportResponse converts a domain.FinancialReport to its DTO.
func ToFinancialReportResponse(r *domain.FinancialReport) FinancialReportResponse {
	resp := FinancialReportResponse{
		FromDate: r.From.Format(DateLayout),
		ToDate:   r.To.Format(DateLayout),
		AsOf:     r.AsOf.Format(time.RFC3339Nano),
		ByStatus: make([]StatusBreakdownResponse, len(r.ByStatus)),
		ByMethod: make([]MethodBreakdownResponse, len(r.ByMethod)),
	}
	for i, s := range r.ByStatus {
		resp.ByStatus[i] = StatusBreakdownResponse(s)
	}
	for i, m := range r.ByMethod {
		resp.ByMethod[i] = MethodBreakdownResponse(m)
	}
	resp.Summary.InvoiceCount = r.InvoiceCount
	resp.Summary.TotalInvoiced = r.TotalInvoiced
	resp.Summary.TotalOutstanding = r.TotalOutstanding
	resp.Summary.TotalCredit = r.TotalCredit
	resp.Summary.PaymentCount = r.PaymentCount
	resp.Summary.TotalCollected = r.TotalCollected
	return resp
}
