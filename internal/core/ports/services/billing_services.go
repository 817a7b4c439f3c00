package services

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillingCycleSvc bills every active student once per period.
type BillingCycleSvc interface {
	// GenerateCycle returns the per-student outcome. When ctx ends early the partial result is
	// returned together with an error wrapping apperrors.ErrCancelled.
	GenerateCycle(ctx context.Context, period domain.BillingPeriod, amount decimal.Decimal, description string, requestingUserID string) (*domain.CycleResult, error)
}

// OverdueSweepSvc moves unpaid invoices past their due date to overdue.
type OverdueSweepSvc interface {
	// SweepOverdue evaluates due dates against now. Cancellation behaves as in GenerateCycle.
	SweepOverdue(ctx context.Context, now time.Time) (*domain.SweepResult, error)
}
