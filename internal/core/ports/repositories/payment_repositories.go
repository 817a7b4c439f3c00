package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoice retrieves the payments of an invoice in recording order.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriter defines the payment mutations. Each one records the change and recomputes the
// owning invoice's paid amount and status in a single unit of work, returning the invoice as committed.
type PaymentWriter interface {
	ApplyPayment(ctx context.Context, payment domain.Payment, now time.Time) (*domain.Invoice, error)
	DeletePayment(ctx context.Context, paymentID string, deletedBy string, now time.Time) (*domain.Invoice, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
