package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

// invoiceNumberAllocator formats numbers from the per-period counter kept by the store.
// It never derives a number from a count of existing invoices.
type invoiceNumberAllocator struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewInvoiceNumberAllocator creates a new allocator backed by the sequence repository.
func NewInvoiceNumberAllocator(sequenceRepo portsrepo.SequenceRepository) portssvc.InvoiceNumberAllocator {
	return &invoiceNumberAllocator{sequenceRepo: sequenceRepo}
}

var _ portssvc.InvoiceNumberAllocator = (*invoiceNumberAllocator)(nil)

// AllocateInvoiceNumber reserves the next number of the period. It fails closed: any error from the
// counter means no number is handed out.
func (a *invoiceNumberAllocator) AllocateInvoiceNumber(ctx context.Context, period domain.BillingPeriod) (string, error) {
	if err := period.Validate(); err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}

	seq, err := a.sequenceRepo.NextInvoiceSequence(ctx, period)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %v", apperrors.ErrCancelled, ctxErr)
		}
		a.LogError(ctx, err, "Failed to advance invoice sequence", slog.String("period", period.String()))
		return "", fmt.Errorf("%w: period %s: %v", apperrors.ErrAllocatorUnavailable, period, err)
	}
	if seq < 1 {
		return "", fmt.Errorf("%w: period %s returned sequence %d", apperrors.ErrAllocatorUnavailable, period, seq)
	}

	return domain.FormatInvoiceNumber(period, seq), nil
}
