package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
)

// overdueCondition is the single SQL rendition of "not covered, past due and not reminded yet".
// Invoices already derived overdue by a create or a payment recompute qualify too.
// $1 is the current UTC calendar day.
const overdueCondition = `status <> 'paid' AND reminded_at IS NULL AND paid_amount < amount AND due_date < $1`

type PgxOverdueRepository struct {
	BaseRepository
}

func newPgxOverdueRepository(pool *pgxpool.Pool) portsrepo.OverdueRepository {
	return &PgxOverdueRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OverdueRepository = (*PgxOverdueRepository)(nil)

// ListOverdueCandidates returns a page of invoices eligible for the overdue transition, by invoice ID.
func (r *PgxOverdueRepository) ListOverdueCandidates(ctx context.Context, now time.Time, afterID string, limit int) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ` + overdueCondition + ` AND invoice_id > $2
		ORDER BY invoice_id
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(now), afterID, limit)
	if err != nil {
		return nil, translateError(err, "failed to query overdue candidates")
	}
	return collectInvoices(rows, "overdue candidates")
}

// MarkOverdue performs the transition and claims the reminder as one conditional update. Zero rows
// means the invoice was paid, swept by someone else, or is not due yet; none of those is an error.
func (r *PgxOverdueRepository) MarkOverdue(ctx context.Context, invoiceID string, now time.Time) (*domain.Invoice, bool, error) {
	query := `
		UPDATE invoices
		SET status = 'overdue', reminded_at = $3, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE invoice_id = $2 AND ` + overdueCondition + `
		RETURNING ` + invoiceColumns + `;
	`
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, domain.DateOnly(now), invoiceID, now, domain.SweepActor))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, translateError(err, "failed to mark invoice "+invoiceID+" overdue")
	}
	return &inv, true, nil
}
