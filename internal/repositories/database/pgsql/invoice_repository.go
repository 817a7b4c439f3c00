package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/fee_ledger/internal/models"
	"github.com/SscSPs/fee_ledger/internal/utils/mapping"
	"github.com/SscSPs/fee_ledger/internal/utils/pagination"
)

const invoiceColumns = `invoice_id, invoice_number, student_ref, description, amount, paid_amount,
	period_year, period_month, due_date, status, issued_at,
	created_by, last_updated_at, last_updated_by, version, reminded_at`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.StudentRef,
		&m.Description,
		&m.Amount,
		&m.PaidAmount,
		&m.PeriodYear,
		&m.PeriodMonth,
		&m.DueDate,
		&m.Status,
		&m.IssuedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
		&m.RemindedAt,
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	return mapping.ToDomainInvoice(m), nil
}

func collectInvoices(rows pgx.Rows, what string) ([]domain.Invoice, error) {
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for "+what, err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating invoice rows for "+what)
	}
	return invoices, nil
}

// SaveInvoice inserts a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.StudentRef,
		m.Description,
		m.Amount,
		m.PaidAmount,
		m.PeriodYear,
		m.PeriodMonth,
		m.DueDate,
		m.Status,
		m.IssuedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
		m.RemindedAt,
	)
	if err != nil {
		return translateError(err, "failed to insert invoice "+m.InvoiceNumber)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, translateError(err, "failed to find invoice "+invoiceID)
	}
	return &inv, nil
}

// FindInvoiceByStudentPeriod retrieves the cycle invoice of a student for a billing period.
func (r *PgxInvoiceRepository) FindInvoiceByStudentPeriod(ctx context.Context, studentRef string, period domain.BillingPeriod) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE student_ref = $1 AND period_year = $2 AND period_month = $3;
	`
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, studentRef, period.Year, int(period.Month)))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find invoice of student %s for %s", studentRef, period))
	}
	return &inv, nil
}

// ListInvoicesByStudent retrieves every invoice of a student, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByStudent(ctx context.Context, studentRef string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE student_ref = $1
		ORDER BY issued_at DESC, invoice_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, studentRef)
	if err != nil {
		return nil, translateError(err, "failed to query invoices for student "+studentRef)
	}
	return collectInvoices(rows, "student "+studentRef)
}

// ListInvoicesByStatus retrieves a page of invoices in a stored status using token-based pagination.
// It returns the invoices, a token for the next page, and an error.
func (r *PgxInvoiceRepository) ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE status = $1`
	// Ordering must be stable; invoice_id breaks ties on issued_at.
	orderByClause := `ORDER BY issued_at DESC, invoice_id DESC`
	args := []any{string(status)}

	if nextToken != nil && *nextToken != "" {
		lastIssuedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		// Tuple comparison is concise and efficient in Postgres
		baseQuery += ` AND (issued_at, invoice_id) < ($2, $3)`
		args = append(args, lastIssuedAt, lastID)
	}

	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to query invoices with status "+string(status))
	}
	invoices, err := collectInvoices(rows, "status "+string(status))
	if err != nil {
		return nil, nil, err
	}

	if len(invoices) <= limit {
		return invoices, nil, nil
	}
	page := invoices[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.IssuedAt, last.InvoiceID)
	return page, &token, nil
}

// ListInvoicesByPeriod retrieves every invoice generated for a billing period.
func (r *PgxInvoiceRepository) ListInvoicesByPeriod(ctx context.Context, period domain.BillingPeriod) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE period_year = $1 AND period_month = $2
		ORDER BY issued_at DESC, invoice_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, period.Year, int(period.Month))
	if err != nil {
		return nil, translateError(err, "failed to query invoices for period "+period.String())
	}
	return collectInvoices(rows, "period "+period.String())
}

// ListInvoicesIssuedBetween retrieves invoices issued inside [from, to].
func (r *PgxInvoiceRepository) ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE issued_at BETWEEN $1 AND $2
		ORDER BY issued_at DESC, invoice_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, translateError(err, "failed to query invoices by issue date")
	}
	return collectInvoices(rows, "issue window")
}

// DeleteInvoice removes an invoice that has no payments.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if _, err := lockInvoice(ctx, tx, invoiceID); err != nil {
		return err
	}

	var paymentCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE invoice_id = $1;`, invoiceID).Scan(&paymentCount); err != nil {
		return translateError(err, "failed to count payments of invoice "+invoiceID)
	}
	if paymentCount > 0 {
		return fmt.Errorf("%w: invoice %s has %d payment(s)", apperrors.ErrReferentialConflict, invoiceID, paymentCount)
	}

	// ON DELETE RESTRICT on payments backs up the check above
	if _, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID); err != nil {
		return translateError(err, "failed to delete invoice "+invoiceID)
	}
	return r.Commit(ctx, tx)
}

// lockInvoice reads an invoice and holds its row lock until the transaction ends.
func lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	inv, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return domain.Invoice{}, translateError(err, "failed to lock invoice "+invoiceID)
	}
	return inv, nil
}

// updateInvoiceTotals persists a recomputed paid amount, status and reminder mark, guarded by the previous version.
func updateInvoiceTotals(ctx context.Context, tx pgx.Tx, inv domain.Invoice, previousVersion int64) error {
	query := `
		UPDATE invoices
		SET paid_amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5, version = $6, reminded_at = $8
		WHERE invoice_id = $1 AND version = $7;
	`
	tag, err := tx.Exec(ctx, query,
		inv.InvoiceID,
		inv.PaidAmount,
		string(inv.Status),
		inv.UpdatedAt,
		inv.UpdatedBy,
		inv.Version,
		previousVersion,
		inv.RemindedAt,
	)
	if err != nil {
		return translateError(err, "failed to update invoice "+inv.InvoiceID)
	}
	if tag.RowsAffected() != 1 {
		return apperrors.NewAppError(409, "invoice "+inv.InvoiceID+" changed concurrently", apperrors.ErrInternal)
	}
	return nil
}
