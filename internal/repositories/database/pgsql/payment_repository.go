package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/fee_ledger/internal/models"
	"github.com/SscSPs/fee_ledger/internal/utils/mapping"
)

const paymentColumns = `payment_id, invoice_id, amount, method, reference_number, recorded_at, recorded_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row rowScanner) (domain.Payment, error) {
	var m models.Payment
	if err := row.Scan(
		&m.PaymentID,
		&m.InvoiceID,
		&m.Amount,
		&m.Method,
		&m.ReferenceNumber,
		&m.RecordedAt,
		&m.RecordedBy,
	); err != nil {
		return domain.Payment{}, err
	}
	return mapping.ToDomainPayment(m), nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	p, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, translateError(err, "failed to find payment "+paymentID)
	}
	return &p, nil
}

// ListPaymentsByInvoice retrieves the payments of an invoice in recording order.
func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE invoice_id = $1
		ORDER BY recorded_at, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, translateError(err, "failed to query payments for invoice "+invoiceID)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for invoice "+invoiceID, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating payment rows for invoice "+invoiceID)
	}
	return payments, nil
}

// ApplyPayment inserts the payment and recomputes the invoice under its row lock, so concurrent
// payments against one invoice are serialised and each sees the other's amount.
func (r *PgxPaymentRepository) ApplyPayment(ctx context.Context, payment domain.Payment, now time.Time) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	inv, err := lockInvoice(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	m := mapping.ToModelPayment(payment)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.PaymentID, m.InvoiceID, m.Amount, m.Method, m.ReferenceNumber, m.RecordedAt, m.RecordedBy)
	batch.Queue(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1;`, payment.InvoiceID)

	br := tx.SendBatch(ctx, batch)
	if _, err := br.Exec(); err != nil {
		br.Close()
		return nil, translateError(err, "failed to insert payment "+payment.PaymentID)
	}
	var paid decimal.Decimal
	if err := br.QueryRow().Scan(&paid); err != nil {
		br.Close()
		return nil, translateError(err, "failed to sum payments of invoice "+payment.InvoiceID)
	}
	// Important: Close the batch results before the connection is used again
	if err := br.Close(); err != nil {
		return nil, translateError(err, "failed to execute payment batch for invoice "+payment.InvoiceID)
	}

	if err := recomputeAndStore(ctx, tx, &inv, paid, payment.RecordedBy, now); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeletePayment removes a payment and recomputes its invoice in the same transaction.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string, deletedBy string, now time.Time) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	var invoiceID string
	if err := tx.QueryRow(ctx, `SELECT invoice_id FROM payments WHERE payment_id = $1;`, paymentID).Scan(&invoiceID); err != nil {
		return nil, translateError(err, "failed to find payment "+paymentID)
	}

	inv, err := lockInvoice(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return nil, translateError(err, "failed to delete payment "+paymentID)
	}
	if tag.RowsAffected() == 0 {
		// removed by a concurrent delete between the lookup and the lock
		return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
	}

	var paid decimal.Decimal
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1;`, invoiceID).Scan(&paid); err != nil {
		return nil, translateError(err, "failed to sum payments of invoice "+invoiceID)
	}

	if err := recomputeAndStore(ctx, tx, &inv, paid, deletedBy, now); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &inv, nil
}

func recomputeAndStore(ctx context.Context, tx pgx.Tx, inv *domain.Invoice, paid decimal.Decimal, updatedBy string, now time.Time) error {
	previousVersion := inv.Version
	inv.Recompute(paid, now)
	inv.UpdatedAt = now
	inv.UpdatedBy = updatedBy
	inv.Version++
	return updateInvoiceTotals(ctx, tx, *inv, previousVersion)
}
