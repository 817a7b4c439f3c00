package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

// DefaultSweepBatchSize is how many candidates one sweep page reads.
const DefaultSweepBatchSize = 500

// overdueSweepService transitions invoices past due to overdue and reminds their students. Each
// transition is a conditional update that also claims the reminder, so overlapping sweeps and
// concurrent payments are safe and a reminder is emitted only by the sweep that performed it.
// Invoices that were already derived overdue on creation or by a payment recompute are picked up
// the same way, since they have not been reminded yet.
type overdueSweepService struct {
	BaseService
	overdueRepo portsrepo.OverdueRepository
	notifier    portssvc.Notifier
	batchSize   int
}

// OverdueSweepOption is a functional option for configuring the overdue sweeper
type OverdueSweepOption func(*overdueSweepService)

// WithSweepBatchSize sets the candidate page size.
func WithSweepBatchSize(n int) OverdueSweepOption {
	return func(s *overdueSweepService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithSweepClock sets the clock used when SweepOverdue is given a zero time.
func WithSweepClock(clock func() time.Time) OverdueSweepOption {
	return func(s *overdueSweepService) {
		s.Clock = clock
	}
}

// NewOverdueSweepService creates a new overdue sweeper with the provided options
func NewOverdueSweepService(overdueRepo portsrepo.OverdueRepository, notifier portssvc.Notifier, options ...OverdueSweepOption) portssvc.OverdueSweepSvc {
	svc := &overdueSweepService{
		overdueRepo: overdueRepo,
		notifier:    notifier,
		batchSize:   DefaultSweepBatchSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OverdueSweepSvc = (*overdueSweepService)(nil)

// SweepOverdue scans unreminded invoices due before now's calendar day and marks them overdue.
func (s *overdueSweepService) SweepOverdue(ctx context.Context, now time.Time) (*domain.SweepResult, error) {
	if now.IsZero() {
		now = s.Now()
	}
	now = now.UTC()

	result := &domain.SweepResult{
		Now:          now,
		Transitioned: []string{},
		Failed:       []domain.ItemFailure{},
	}

	afterID := ""
	for {
		if ctx.Err() != nil {
			return s.cancelled(ctx, result)
		}

		candidates, err := s.overdueRepo.ListOverdueCandidates(ctx, now, afterID, s.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				return s.cancelled(ctx, result)
			}
			s.LogError(ctx, err, "Failed to list overdue candidates", slog.String("after_id", afterID))
			return result, fmt.Errorf("failed to list overdue candidates: %w", err)
		}

		for i := range candidates {
			if ctx.Err() != nil {
				return s.cancelled(ctx, result)
			}
			s.sweepOne(ctx, &candidates[i], now, result)
		}

		if len(candidates) < s.batchSize {
			break
		}
		afterID = candidates[len(candidates)-1].InvoiceID
	}

	s.LogInfo(ctx, "Overdue sweep finished",
		slog.Time("now", now),
		slog.Int("scanned", result.Scanned),
		slog.Int("transitioned", len(result.Transitioned)),
		slog.Int("failed", len(result.Failed)),
		slog.Int("reminders_sent", result.RemindersSent),
		slog.Int("reminder_failures", result.ReminderFailures))
	return result, nil
}

func (s *overdueSweepService) sweepOne(ctx context.Context, candidate *domain.Invoice, now time.Time, result *domain.SweepResult) {
	result.Scanned++

	updated, transitioned, err := s.overdueRepo.MarkOverdue(ctx, candidate.InvoiceID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark invoice overdue", slog.String("invoice_id", candidate.InvoiceID))
		result.Failed = append(result.Failed, domain.ItemFailure{EntityRef: candidate.InvoiceID, Reason: err.Error(), Err: err})
		return
	}
	if !transitioned {
		// paid or swept by someone else since it was listed
		s.LogDebug(ctx, "Invoice no longer eligible for overdue", slog.String("invoice_id", candidate.InvoiceID))
		return
	}
	result.Transitioned = append(result.Transitioned, updated.InvoiceID)

	event := domain.Event{
		Type:          domain.EventReminderDue,
		InvoiceRef:    updated.InvoiceID,
		InvoiceNumber: updated.InvoiceNumber,
		StudentRef:    updated.StudentRef,
		OccurredAt:    now,
	}
	// the transition is committed, so the reminder goes out even if the sweep is being cancelled
	if err := s.notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
		result.ReminderFailures++
		s.LogWarn(ctx, "ReminderDue notification not delivered",
			slog.String("invoice_id", updated.InvoiceID),
			slog.String("student_ref", updated.StudentRef),
			slog.String("error", err.Error()))
		return
	}
	result.RemindersSent++
}

func (s *overdueSweepService) cancelled(ctx context.Context, result *domain.SweepResult) (*domain.SweepResult, error) {
	result.Cancelled = true
	s.LogWarn(ctx, "Overdue sweep cancelled",
		slog.Int("scanned", result.Scanned),
		slog.Int("transitioned", len(result.Transitioned)))
	return result, fmt.Errorf("%w: overdue sweep: %v", apperrors.ErrCancelled, ctx.Err())
}
