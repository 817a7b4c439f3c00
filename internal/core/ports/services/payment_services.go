package services

import (
	"context"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/SscSPs/fee_ledger/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// ApplyPayment records a payment and returns it together with the recomputed invoice.
	ApplyPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, recordedBy string) (*domain.Payment, *domain.Invoice, error)

	// DeletePayment removes a payment and returns the recomputed invoice.
	DeletePayment(ctx context.Context, paymentID string, requestingUserID string) (*domain.Invoice, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
