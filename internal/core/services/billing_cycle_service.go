package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

const (
	DefaultInvoiceDueDay    = 15
	DefaultCycleConcurrency = 8
)

// billingCycleService creates one invoice per active student and period.
// The (student, period) pair is the idempotency key and is enforced by the store.
type billingCycleService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	studentDir  portssvc.StudentDirectory
	issuer      *invoiceIssuer
	dueDay      int
	concurrency int
}

// BillingCycleOption is a functional option for configuring the billing cycle service
type BillingCycleOption func(*billingCycleService)

// WithDueDay sets the day of the billing month invoices fall due on.
func WithDueDay(day int) BillingCycleOption {
	return func(s *billingCycleService) {
		s.dueDay = day
	}
}

// WithCycleConcurrency bounds how many students are billed at once.
func WithCycleConcurrency(n int) BillingCycleOption {
	return func(s *billingCycleService) {
		s.concurrency = n
	}
}

// WithCycleMaxRetries sets how many numbers are drawn per student before a clash is reported.
func WithCycleMaxRetries(n int) BillingCycleOption {
	return func(s *billingCycleService) {
		s.issuer.maxRetries = n
	}
}

// WithCycleClock sets the clock used for issue timestamps.
func WithCycleClock(clock func() time.Time) BillingCycleOption {
	return func(s *billingCycleService) {
		s.Clock = clock
		s.issuer.Clock = clock
	}
}

// NewBillingCycleService creates a new billing cycle service with the provided options
func NewBillingCycleService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	allocator portssvc.InvoiceNumberAllocator,
	studentDir portssvc.StudentDirectory,
	options ...BillingCycleOption,
) portssvc.BillingCycleSvc {
	svc := &billingCycleService{
		invoiceRepo: invoiceRepo,
		studentDir:  studentDir,
		issuer:      newInvoiceIssuer(invoiceRepo, allocator),
		dueDay:      DefaultInvoiceDueDay,
		concurrency: DefaultCycleConcurrency,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.concurrency < 1 {
		svc.concurrency = 1
	}
	return svc
}

var _ portssvc.BillingCycleSvc = (*billingCycleService)(nil)

type studentOutcome struct {
	created   *domain.CreatedInvoiceRef
	skipped   bool
	cancelled bool
	err       error
}

// GenerateCycle bills every active student for the period. Students are billed concurrently and
// independently: one student's failure is recorded and the rest carry on.
func (s *billingCycleService) GenerateCycle(ctx context.Context, period domain.BillingPeriod, amount decimal.Decimal, description string, requestingUserID string) (*domain.CycleResult, error) {
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount)
	}

	students, err := s.studentDir.ListActiveStudents(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active students", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to list active students: %w", err)
	}
	refs := uniqueRefs(students)

	result := &domain.CycleResult{
		Period:   period,
		Eligible: len(refs),
		Created:  []domain.CreatedInvoiceRef{},
		Skipped:  []string{},
		Failed:   []domain.ItemFailure{},
	}
	dueDate := period.DueDate(s.dueDay)
	description = strings.TrimSpace(description)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	notStarted := 0
	for i, ref := range refs {
		if ctx.Err() != nil {
			notStarted = len(refs) - i
			break
		}
		g.Go(func() error {
			outcome := s.billStudent(ctx, ref, period, amount, description, dueDate, requestingUserID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case outcome.cancelled:
				result.NotAttempted++
			case outcome.err != nil:
				result.Failed = append(result.Failed, domain.ItemFailure{EntityRef: ref, Reason: outcome.err.Error(), Err: outcome.err})
			case outcome.skipped:
				result.Skipped = append(result.Skipped, ref)
			default:
				result.Created = append(result.Created, *outcome.created)
			}
			// failures are collected, never propagated, so the group keeps going
			return nil
		})
	}
	_ = g.Wait()
	result.NotAttempted += notStarted

	sort.Slice(result.Created, func(i, j int) bool { return result.Created[i].InvoiceNumber < result.Created[j].InvoiceNumber })
	sort.Strings(result.Skipped)
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].EntityRef < result.Failed[j].EntityRef })

	attrs := []any{
		slog.String("period", period.String()),
		slog.Int("eligible", result.Eligible),
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failed", len(result.Failed)),
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.Cancelled = true
		s.LogWarn(ctx, "Billing cycle cancelled", append(attrs, slog.Int("not_attempted", result.NotAttempted))...)
		return result, fmt.Errorf("%w: billing cycle %s: %v", apperrors.ErrCancelled, period, ctxErr)
	}

	s.LogInfo(ctx, "Billing cycle generated", attrs...)
	return result, nil
}

func (s *billingCycleService) billStudent(ctx context.Context, studentRef string, period domain.BillingPeriod, amount decimal.Decimal, description string, dueDate time.Time, userID string) studentOutcome {
	if ctx.Err() != nil {
		return studentOutcome{cancelled: true}
	}

	existing, err := s.invoiceRepo.FindInvoiceByStudentPeriod(ctx, studentRef, period)
	if err == nil && existing != nil {
		return studentOutcome{skipped: true}
	}
	if err != nil && interruptedBy(ctx, err) {
		return studentOutcome{cancelled: true}
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing cycle invoice", slog.String("student_ref", studentRef), slog.String("period", period.String()))
		return studentOutcome{err: err}
	}

	now := s.Now()
	billed := period
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		StudentRef:    studentRef,
		Description:   description,
		Amount:        amount,
		PaidAmount:    decimal.Zero,
		BillingPeriod: &billed,
		DueDate:       dueDate,
		IssuedAt:      now,
		UpdatedAt:     now,
		CreatedBy:     userID,
		UpdatedBy:     userID,
		Version:       1,
	}
	invoice.Status = domain.DeriveInvoiceStatus(invoice.Amount, invoice.PaidAmount, invoice.DueDate, now)

	if err := s.issuer.issue(ctx, &invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// a concurrent run billed this student first
			return studentOutcome{skipped: true}
		}
		if interruptedBy(ctx, err) {
			return studentOutcome{cancelled: true}
		}
		s.LogError(ctx, err, "Failed to bill student", slog.String("student_ref", studentRef), slog.String("period", period.String()))
		return studentOutcome{err: err}
	}

	return studentOutcome{created: &domain.CreatedInvoiceRef{
		InvoiceID:     invoice.InvoiceID,
		InvoiceNumber: invoice.InvoiceNumber,
		StudentRef:    studentRef,
	}}
}

// interruptedBy reports whether err is the run's own cancellation rather than a failure of the student.
func interruptedBy(ctx context.Context, err error) bool {
	if ctx.Err() == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, apperrors.ErrCancelled)
}

func uniqueRefs(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
