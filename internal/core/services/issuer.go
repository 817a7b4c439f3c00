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

// DefaultAllocatorMaxRetries bounds how often an invoice insert is retried on a number clash.
const DefaultAllocatorMaxRetries = 5

// invoiceIssuer numbers and persists new invoices for both the manual and the cycle paths.
type invoiceIssuer struct {
	BaseService
	invoiceRepo portsrepo.InvoiceWriter
	allocator   portssvc.InvoiceNumberAllocator
	maxRetries  int
}

func newInvoiceIssuer(invoiceRepo portsrepo.InvoiceWriter, allocator portssvc.InvoiceNumberAllocator) *invoiceIssuer {
	return &invoiceIssuer{
		invoiceRepo: invoiceRepo,
		allocator:   allocator,
		maxRetries:  DefaultAllocatorMaxRetries,
	}
}

// issue assigns a fresh number to inv and saves it. A clash on the number draws a new one,
// up to maxRetries attempts; every other error is returned as is.
func (i *invoiceIssuer) issue(ctx context.Context, inv *domain.Invoice) error {
	period := inv.NumberingPeriod()
	attempts := i.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		number, err := i.allocator.AllocateInvoiceNumber(ctx, period)
		if err != nil {
			inv.InvoiceNumber = ""
			return err
		}
		inv.InvoiceNumber = number

		err = i.invoiceRepo.SaveInvoice(ctx, *inv)
		if err == nil {
			return nil
		}
		if !apperrors.IsRetryable(err) {
			inv.InvoiceNumber = ""
			return err
		}
		lastErr = err
		i.LogWarn(ctx, "Invoice number clash, drawing a new number",
			slog.String("invoice_number", number),
			slog.String("student_ref", inv.StudentRef),
			slog.Int("attempt", attempt))
	}

	inv.InvoiceNumber = ""
	return fmt.Errorf("%w: no free number for period %s after %d attempts: %v",
		apperrors.ErrDuplicateInvoiceNumber, period, attempts, lastErr)
}
