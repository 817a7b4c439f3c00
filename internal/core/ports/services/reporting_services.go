package services

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// FinancialReport summarises invoices issued and payments recorded in [from, to].
	FinancialReport(ctx context.Context, from, to time.Time) (*domain.FinancialReport, error)
}
