package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// SequenceRepository hands out invoice sequence numbers per billing period.
type SequenceRepository interface {
	// NextInvoiceSequence atomically advances and returns the counter of the period.
	// Concurrent callers never observe the same value.
	NextInvoiceSequence(ctx context.Context, period domain.BillingPeriod) (int64, error)
}

// OverdueRepository supports the overdue sweep.
type OverdueRepository interface {
	// ListOverdueCandidates returns up to limit invoices that are not covered, not yet reminded and due
	// before now's calendar day, ordered by invoice ID and starting after afterID.
	ListOverdueCandidates(ctx context.Context, now time.Time, afterID string, limit int) ([]domain.Invoice, error)

	// MarkOverdue moves an invoice to overdue and stamps its reminder, only if it is still not covered,
	// not reminded and past due. It reports whether this call performed the transition.
	MarkOverdue(ctx context.Context, invoiceID string, now time.Time) (*domain.Invoice, bool, error)
}
