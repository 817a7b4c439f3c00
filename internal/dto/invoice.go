package dto

import (
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateInvoiceRequest defines the data needed to issue an ad-hoc invoice.
type CreateInvoiceRequest struct {
	StudentRef  string          `json:"studentRef" binding:"required,max=64"`
	Amount      decimal.Decimal `json:"amount" binding:"dpositive"`
	DueDate     string          `json:"dueDate" binding:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Description string          `json:"description" binding:"max=255"`
}

// ListInvoicesParams filters and pages the invoice listing.
type ListInvoicesParams struct {
	Status    domain.InvoiceStatus `form:"status" binding:"required,oneof=unpaid paid overdue"`
	Limit     int                  `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken *string              `form:"nextToken"`
}

// BillingPeriodResponse is the (year, month) pair of a cycle invoice.
type BillingPeriodResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string                 `json:"invoiceID"`
	InvoiceNumber   string                 `json:"invoiceNumber"`
	StudentRef      string                 `json:"studentRef"`
	Description     string                 `json:"description"`
	Amount          decimal.Decimal        `json:"amount"`
	PaidAmount      decimal.Decimal        `json:"paidAmount"`
	BalanceDue      decimal.Decimal        `json:"balanceDue"`
	CreditAmount    decimal.Decimal        `json:"creditAmount"`
	BillingPeriod   *BillingPeriodResponse `json:"billingPeriod,omitempty"`
	DueDate         string                 `json:"dueDate"`
	Status          domain.InvoiceStatus   `json:"status"`
	EffectiveStatus domain.InvoiceStatus   `json:"effectiveStatus"` // status as of the response time
	RemindedAt      *time.Time             `json:"remindedAt,omitempty"`
	IssuedAt        time.Time              `json:"issuedAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	CreatedBy       string                 `json:"createdBy"`
	Version         int64                  `json:"version"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// StudentBalanceResponse summarises what a student owes and holds in credit.
type StudentBalanceResponse struct {
	StudentRef    string          `json:"studentRef"`
	InvoiceCount  int             `json:"invoiceCount"`
	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Credit        decimal.Decimal `json:"credit"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice, now time.Time) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		InvoiceNumber:   inv.InvoiceNumber,
		StudentRef:      inv.StudentRef,
		Description:     inv.Description,
		Amount:          inv.Amount,
		PaidAmount:      inv.PaidAmount,
		BalanceDue:      inv.BalanceDue(),
		CreditAmount:    inv.CreditAmount(),
		DueDate:         inv.DueDate.Format(DateLayout),
		Status:          inv.Status,
		EffectiveStatus: inv.EffectiveStatus(now),
		RemindedAt:      inv.RemindedAt,
		IssuedAt:        inv.IssuedAt,
		UpdatedAt:       inv.UpdatedAt,
		CreatedBy:       inv.CreatedBy,
		Version:         inv.Version,
	}
	if inv.BillingPeriod != nil {
		resp.BillingPeriod = &BillingPeriodResponse{Year: inv.BillingPeriod.Year, Month: int(inv.BillingPeriod.Month)}
	}
	return resp
}

// ToInvoiceResponses converts a slice of domain.Invoice to []InvoiceResponse.
func ToInvoiceResponses(invoices []domain.Invoice, now time.Time) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i], now)
	}
	return responses
}

// ToStudentBalanceResponse converts a domain.StudentBalance to its DTO.
func ToStudentBalanceResponse(b *domain.StudentBalance) StudentBalanceResponse {
	return StudentBalanceResponse{
		StudentRef:    b.StudentRef,
		InvoiceCount:  b.InvoiceCount,
		TotalInvoiced: b.TotalInvoiced,
		TotalPaid:     b.TotalPaid,
		Outstanding:   b.Outstanding,
		Credit:        b.Credit,
	}
}
