package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// FinancialReport summarises invoices issued and payments recorded in [from, to].
// All figures come from one snapshot of the ledger, taken at the report's AsOf.
func (s *reportingService) FinancialReport(ctx context.Context, from, to time.Time) (*domain.FinancialReport, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("fromDate must be before or equal to toDate")
	}

	data, err := s.reportingRepo.GetFinancialReportData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve financial report data",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve financial report data: %w", err)
	}

	report := &domain.FinancialReport{
		From:             from,
		To:               to,
		AsOf:             data.AsOf,
		TotalInvoiced:    decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalCredit:      decimal.Zero,
		TotalCollected:   decimal.Zero,
		ByStatus:         data.ByStatus,
		ByMethod:         data.ByMethod,
	}
	if report.ByStatus == nil {
		report.ByStatus = []domain.StatusBreakdown{}
	}
	if report.ByMethod == nil {
		report.ByMethod = []domain.MethodBreakdown{}
	}

	for _, row := range report.ByStatus {
		report.InvoiceCount += row.Count
		report.TotalInvoiced = report.TotalInvoiced.Add(row.Invoiced)
		report.TotalOutstanding = report.TotalOutstanding.Add(row.Outstanding)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	for _, row := range report.ByMethod {
		report.PaymentCount += row.Count
		report.TotalCollected = report.TotalCollected.Add(row.Amount)
	}

	s.LogInfo(ctx, "Financial report generated",
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Time("as_of", report.AsOf),
		slog.Int("invoices", report.InvoiceCount),
		slog.Int("payments", report.PaymentCount))
	return report, nil
}
