package services

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/SscSPs/fee_ledger/internal/dto"
)

// InvoiceNumberAllocator mints invoice numbers unique within their billing period.
type InvoiceNumberAllocator interface {
	// AllocateInvoiceNumber returns the next formatted number for the period, or an error wrapping
	// apperrors.ErrAllocatorUnavailable when no number could be reserved.
	AllocateInvoiceNumber(ctx context.Context, period domain.BillingPeriod) (string, error)
}

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoice retrieves a specific invoice by its ID.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByStudent retrieves every invoice billed to a student.
	ListInvoicesByStudent(ctx context.Context, studentRef string) ([]domain.Invoice, error)

	// ListInvoicesByStatus retrieves a page of invoices in a stored status.
	ListInvoicesByStatus(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListInvoicesByPeriod retrieves every invoice generated for a billing period.
	ListInvoicesByPeriod(ctx context.Context, period domain.BillingPeriod) ([]domain.Invoice, error)

	// ListInvoicesIssuedBetween retrieves invoices issued inside [from, to].
	ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)

	// GetStudentBalance summarises the outstanding amount and credit of a student.
	GetStudentBalance(ctx context.Context, studentRef string) (*domain.StudentBalance, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice issues an ad-hoc invoice numbered in its issue month.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice that has no payments.
	DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
