package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByStudentPeriod retrieves the cycle invoice of a student for a billing period.
	FindInvoiceByStudentPeriod(ctx context.Context, studentRef string, period domain.BillingPeriod) (*domain.Invoice, error)

	// ListInvoicesByStudent retrieves every invoice billed to a student, newest first.
	ListInvoicesByStudent(ctx context.Context, studentRef string) ([]domain.Invoice, error)

	// ListInvoicesByStatus retrieves a page of invoices with the stored status using token-based pagination.
	// It returns the invoices, a token for the next page, and an error.
	ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListInvoicesByPeriod retrieves every invoice generated for a billing period.
	ListInvoicesByPeriod(ctx context.Context, period domain.BillingPeriod) ([]domain.Invoice, error)

	// ListInvoicesIssuedBetween retrieves invoices with issuedAt inside [from, to].
	ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice inserts a new invoice. A clash on the invoice number yields apperrors.ErrDuplicateInvoiceNumber,
	// a second invoice for the same (student, period) yields apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice that has no payments, otherwise apperrors.ErrReferentialConflict.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
