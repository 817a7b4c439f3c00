package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/dto"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// invoiceService provides invoice issuance and the invoice query surface.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	studentDir  portssvc.StudentDirectory
	issuer      *invoiceIssuer
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceClock sets the clock used for issue timestamps and status derivation.
func WithInvoiceClock(clock func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.Clock = clock
		s.issuer.Clock = clock
	}
}

// WithInvoiceMaxRetries sets how many numbers are drawn before a clash is reported.
func WithInvoiceMaxRetries(n int) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.issuer.maxRetries = n
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	allocator portssvc.InvoiceNumberAllocator,
	studentDir portssvc.StudentDirectory,
	options ...InvoiceServiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: invoiceRepo,
		studentDir:  studentDir,
		issuer:      newInvoiceIssuer(invoiceRepo, allocator),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure invoiceService implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice issues an ad-hoc invoice after checking the amount and the student.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	studentRef := strings.TrimSpace(req.StudentRef)
	if studentRef == "" {
		return nil, apperrors.NewValidationError("studentRef is required")
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	dueDate, err := time.Parse(dto.DateLayout, req.DueDate)
	if err != nil {
		return nil, apperrors.NewValidationError("dueDate must be a date in YYYY-MM-DD format")
	}

	if err := s.ensureStudentExists(ctx, studentRef); err != nil {
		return nil, err
	}

	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		StudentRef:  studentRef,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		PaidAmount:  decimal.Zero,
		DueDate:     domain.DateOnly(dueDate),
		IssuedAt:    now,
		UpdatedAt:   now,
		CreatedBy:   creatorUserID,
		UpdatedBy:   creatorUserID,
		Version:     1,
	}
	invoice.Status = domain.DeriveInvoiceStatus(invoice.Amount, invoice.PaidAmount, invoice.DueDate, now)

	if err := s.issuer.issue(ctx, &invoice); err != nil {
		s.LogError(ctx, err, "Failed to issue invoice", slog.String("student_ref", studentRef))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice issued",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("student_ref", studentRef))
	return &invoice, nil
}

func (s *invoiceService) ensureStudentExists(ctx context.Context, studentRef string) error {
	exists, err := s.studentDir.StudentExists(ctx, studentRef)
	if err != nil {
		s.LogError(ctx, err, "Student directory lookup failed", slog.String("student_ref", studentRef))
		return fmt.Errorf("failed to look up student %s: %w", studentRef, err)
	}
	if !exists {
		return apperrors.NewNotFoundError("student " + studentRef + " not found")
	}
	return nil
}

// GetInvoice retrieves a specific invoice by its ID.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if invoiceID == "" {
		return nil, apperrors.NewValidationError("invoiceID is required")
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

// ListInvoicesByStudent retrieves every invoice billed to a student.
func (s *invoiceService) ListInvoicesByStudent(ctx context.Context, studentRef string) ([]domain.Invoice, error) {
	if studentRef == "" {
		return nil, apperrors.NewValidationError("studentRef is required")
	}
	invoices, err := s.invoiceRepo.ListInvoicesByStudent(ctx, studentRef)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by student", slog.String("student_ref", studentRef))
		return nil, err
	}
	return invoices, nil
}

// ListInvoicesByStatus retrieves a page of invoices in a stored status.
func (s *invoiceService) ListInvoicesByStatus(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	if !params.Status.IsValid() {
		return nil, apperrors.NewValidationError("unknown invoice status " + string(params.Status))
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByStatus(ctx, params.Status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by status", slog.String("status", string(params.Status)))
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices, s.Now()),
		NextToken: nextToken,
	}, nil
}

// ListInvoicesByPeriod retrieves every invoice generated for a billing period.
func (s *invoiceService) ListInvoicesByPeriod(ctx context.Context, period domain.BillingPeriod) ([]domain.Invoice, error) {
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	invoices, err := s.invoiceRepo.ListInvoicesByPeriod(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by period", slog.String("period", period.String()))
		return nil, err
	}
	return invoices, nil
}

// ListInvoicesIssuedBetween retrieves invoices issued inside [from, to].
func (s *invoiceService) ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("from must be before or equal to to")
	}
	invoices, err := s.invoiceRepo.ListInvoicesIssuedBetween(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by issue date")
		return nil, err
	}
	return invoices, nil
}

// GetStudentBalance sums what a student still owes and any credit held on their invoices.
func (s *invoiceService) GetStudentBalance(ctx context.Context, studentRef string) (*domain.StudentBalance, error) {
	invoices, err := s.ListInvoicesByStudent(ctx, studentRef)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		if err := s.ensureStudentExists(ctx, studentRef); err != nil {
			return nil, err
		}
	}

	balance := &domain.StudentBalance{
		StudentRef:    studentRef,
		InvoiceCount:  len(invoices),
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
		Outstanding:   decimal.Zero,
		Credit:        decimal.Zero,
	}
	for i := range invoices {
		inv := &invoices[i]
		balance.TotalInvoiced = balance.TotalInvoiced.Add(inv.Amount)
		balance.TotalPaid = balance.TotalPaid.Add(inv.PaidAmount)
		balance.Outstanding = balance.Outstanding.Add(inv.BalanceDue())
		balance.Credit = balance.Credit.Add(inv.CreditAmount())
	}
	return balance, nil
}

// DeleteInvoice removes an invoice that has no payments.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	if invoiceID == "" {
		return apperrors.NewValidationError("invoiceID is required")
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		if errors.Is(err, apperrors.ErrReferentialConflict) {
			s.LogWarn(ctx, "Refused to delete invoice with payments", slog.String("invoice_id", invoiceID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		}
		return err
	}
	s.LogInfo(ctx, "Invoice deleted",
		slog.String("invoice_id", invoiceID),
		slog.String("user_id", requestingUserID))
	return nil
}
