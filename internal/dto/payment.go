package dto

import (
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to apply a payment to an invoice.
type RecordPaymentRequest struct {
	Amount          decimal.Decimal      `json:"amount" binding:"dpositive"`
	Method          domain.PaymentMethod `json:"method" binding:"required,paymethod"`
	ReferenceNumber string               `json:"referenceNumber" binding:"max=100"` // Optional
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string               `json:"paymentID"`
	InvoiceID       string               `json:"invoiceID"`
	Amount          decimal.Decimal      `json:"amount"`
	Method          domain.PaymentMethod `json:"method"`
	ReferenceNumber string               `json:"referenceNumber,omitempty"`
	RecordedAt      time.Time            `json:"recordedAt"`
	RecordedBy      string               `json:"recordedBy"`
}

// ApplyPaymentResponse returns the recorded payment with the invoice as recomputed by it.
type ApplyPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// ListPaymentsResponse wraps the payments of an invoice.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    decimal.Decimal   `json:"total"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		RecordedAt:      p.RecordedAt,
		RecordedBy:      p.RecordedBy,
	}
}

// ToListPaymentsResponse converts the payments of an invoice to their DTO.
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	resp := ListPaymentsResponse{
		Payments: make([]PaymentResponse, len(payments)),
		Total:    domain.SumPayments(payments),
	}
	for i := range payments {
		resp.Payments[i] = ToPaymentResponse(&payments[i])
	}
	return resp
}
