package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetFinancialReportData reads invoice and payment aggregates for [from, to] from one consistent snapshot.
	// Invoice statuses are derived as of the snapshot time, which is returned in AsOf.
	GetFinancialReportData(ctx context.Context, from, to time.Time) (*domain.FinancialReportData, error)
}
