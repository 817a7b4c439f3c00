package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetFinancialReportData runs every report query in one REPEATABLE READ, READ ONLY transaction,
// so invoices and payments are read from the same snapshot. AsOf is the transaction's start time.
func (r *reportingRepository) GetFinancialReportData(ctx context.Context, from, to time.Time) (*domain.FinancialReportData, error) {
	tx, err := r.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	data := &domain.FinancialReportData{
		ByStatus: []domain.StatusBreakdown{},
		ByMethod: []domain.MethodBreakdown{},
	}
	if err := tx.QueryRow(ctx, `SELECT now();`).Scan(&data.AsOf); err != nil {
		return nil, translateError(err, "failed to read report snapshot time")
	}
	data.AsOf = data.AsOf.UTC()

	if err := r.readStatusBreakdown(ctx, tx, data, from, to); err != nil {
		return nil, err
	}
	if err := r.readMethodBreakdown(ctx, tx, data, from, to); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *reportingRepository) readStatusBreakdown(ctx context.Context, tx pgx.Tx, data *domain.FinancialReportData, from, to time.Time) error {
	// status is derived as of the snapshot, not read from the stored column
	query := `
		SELECT
			CASE
				WHEN paid_amount >= amount THEN 'paid'
				WHEN due_date < $1 THEN 'overdue'
				ELSE 'unpaid'
			END AS effective_status,
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(GREATEST(amount - paid_amount, 0)), 0),
			COALESCE(SUM(GREATEST(paid_amount - amount, 0)), 0)
		FROM invoices
		WHERE issued_at BETWEEN $2 AND $3
		GROUP BY effective_status
		ORDER BY effective_status;
	`
	rows, err := tx.Query(ctx, query, domain.DateOnly(data.AsOf), from, to)
	if err != nil {
		return translateError(err, "error querying invoice status breakdown")
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.StatusBreakdown
		var status string
		if err := rows.Scan(&status, &row.Count, &row.Invoiced, &row.Paid, &row.Outstanding, &row.Credit); err != nil {
			return apperrors.NewAppError(500, "error scanning invoice status breakdown row", err)
		}
		row.Status = domain.InvoiceStatus(status)
		data.ByStatus = append(data.ByStatus, row)
	}
	if err := rows.Err(); err != nil {
		return translateError(err, "error iterating invoice status breakdown rows")
	}
	return nil
}

func (r *reportingRepository) readMethodBreakdown(ctx context.Context, tx pgx.Tx, data *domain.FinancialReportData, from, to time.Time) error {
	query := `
		SELECT method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE recorded_at BETWEEN $1 AND $2
		GROUP BY method
		ORDER BY method;
	`
	rows, err := tx.Query(ctx, query, from, to)
	if err != nil {
		return translateError(err, "error querying payment method breakdown")
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.MethodBreakdown
		var method string
		if err := rows.Scan(&method, &row.Count, &row.Amount); err != nil {
			return apperrors.NewAppError(500, "error scanning payment method breakdown row", err)
		}
		row.Method = domain.PaymentMethod(method)
		data.ByMethod = append(data.ByMethod, row)
	}
	if err := rows.Err(); err != nil {
		return translateError(err, "error iterating payment method breakdown rows")
	}
	return nil
}
