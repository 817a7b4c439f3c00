package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/dto"
)

// paymentService applies and removes payments. The store recomputes the owning invoice
// in the same unit of work as every payment mutation.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
	notifier    portssvc.Notifier
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentClock sets the clock used for recording time and status derivation.
func WithPaymentClock(clock func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.Clock = clock
	}
}

// NewPaymentService creates a new payment service with the provided options
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceReader,
	notifier portssvc.Notifier,
	options ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// ApplyPayment records a payment against an invoice. Overpayment is accepted and shows up as credit.
func (s *paymentService) ApplyPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, recordedBy string) (*domain.Payment, *domain.Invoice, error) {
	if invoiceID == "" {
		return nil, nil, apperrors.NewValidationError("invoiceID is required")
	}
	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if !req.Method.IsValid() {
		return nil, nil, apperrors.NewValidationError("unknown payment method " + string(req.Method))
	}

	now := s.Now()
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		InvoiceID:       invoiceID,
		Amount:          req.Amount,
		Method:          req.Method,
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		RecordedAt:      now,
		RecordedBy:      recordedBy,
	}

	invoice, err := s.paymentRepo.ApplyPayment(ctx, payment, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to apply payment",
				slog.String("invoice_id", invoiceID),
				slog.String("payment_id", payment.PaymentID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Payment applied",
		slog.String("invoice_id", invoiceID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("status", string(invoice.Status)))

	amount := payment.Amount
	event := domain.Event{
		Type:          domain.EventPaymentRecorded,
		InvoiceRef:    invoice.InvoiceID,
		InvoiceNumber: invoice.InvoiceNumber,
		StudentRef:    invoice.StudentRef,
		Amount:        &amount,
		OccurredAt:    now,
	}
	if err := s.notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
		s.LogWarn(ctx, "PaymentRecorded notification not delivered",
			slog.String("invoice_id", invoiceID),
			slog.String("payment_id", payment.PaymentID),
			slog.String("error", err.Error()))
	}

	return &payment, invoice, nil
}

// DeletePayment removes a payment; the invoice falls back to unpaid or overdue if it is no longer covered.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, requestingUserID string) (*domain.Invoice, error) {
	if paymentID == "" {
		return nil, apperrors.NewValidationError("paymentID is required")
	}

	invoice, err := s.paymentRepo.DeletePayment(ctx, paymentID, requestingUserID, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment deleted",
		slog.String("payment_id", paymentID),
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("status", string(invoice.Status)))
	return invoice, nil
}

// GetPayment retrieves a payment by its ID.
func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, apperrors.NewValidationError("paymentID is required")
	}
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// ListPaymentsByInvoice retrieves the payments of an existing invoice.
func (s *paymentService) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	if invoiceID == "" {
		return nil, apperrors.NewValidationError("invoiceID is required")
	}
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return payments, nil
}
